package object

// Attribute is the flag bitset carried by a Property, per spec.md §3.
// It mirrors the Rust original's `Attribute` bitflags
// (original_source/boa/src/property/attribute.rs) closely enough that
// the nativeclass builder's default-attribute Open Question (SPEC_FULL
// §6.5) can be resolved the same way the original names its flags.
type Attribute uint8

const (
	// Writable marks a data property as assignable. Cleared means
	// read-only.
	Writable Attribute = 1 << iota
	// Enumerable marks a property as visible to for-in / Object.keys.
	Enumerable
	// Configurable marks a property as deletable and redefinable.
	Configurable
)

// Common combinations used throughout the engine and by nativeclass
// defaults.
const (
	// Empty has every flag cleared: read-only, non-enumerable,
	// non-configurable. This is the zero value and also the
	// nativeclass builder's default when the caller supplies no
	// explicit Attribute (SPEC_FULL.md §6.5).
	Empty Attribute = 0
	// All has every flag set: writable, enumerable, configurable —
	// the attributes an ordinary object literal property gets.
	All Attribute = Writable | Enumerable | Configurable
	// ReadOnly is an alias for Empty kept for readability at call
	// sites that want to say "read-only" rather than "zero".
	ReadOnly Attribute = Empty
	// NonEnumerable is the zero value for Enumerable; named for
	// readability when building an explicit Attribute value, e.g.
	// Writable | Configurable (without NonEnumerable's bit set).
	NonEnumerable Attribute = 0
	// Permanent is the zero value for Configurable, named for the same
	// readability reason as NonEnumerable.
	Permanent Attribute = 0
)

func (a Attribute) Writable() bool     { return a&Writable != 0 }
func (a Attribute) Enumerable() bool   { return a&Enumerable != 0 }
func (a Attribute) Configurable() bool { return a&Configurable != 0 }

func (a Attribute) String() string {
	s := ""
	if a.Writable() {
		s += "w"
	} else {
		s += "-"
	}
	if a.Enumerable() {
		s += "e"
	} else {
		s += "-"
	}
	if a.Configurable() {
		s += "c"
	} else {
		s += "-"
	}
	return s
}
