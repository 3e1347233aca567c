package value

// Thrown wraps a thrown Value so it can travel through ordinary Go error
// returns, per spec.md §4.4's "Thrown values propagate through Result".
// Any Value may be thrown — not just Error objects — so Thrown carries a
// Value, not a string message.
type Thrown struct {
	V Value
}

func (t *Thrown) Error() string {
	if t == nil {
		return "<nil thrown value>"
	}
	return t.V.ToStringSimple()
}

// Throw wraps v as a *Thrown, the form every evaluation path that can
// raise returns.
func Throw(v Value) *Thrown { return &Thrown{V: v} }
