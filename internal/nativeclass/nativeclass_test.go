package nativeclass_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quill-lang/quill/internal/nativeclass"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
	"github.com/quill-lang/quill/pkg/quill"
)

// counter is a minimal Class: `new Counter(start)` wraps an *int payload
// and exposes `.increment()`/`.value` through the builder.
type counter struct{}

func (counter) Name() string             { return "Counter" }
func (counter) Length() int               { return 1 }
func (counter) Attribute() object.Attribute { return object.Empty }

func (counter) Construct(this value.Value, args []value.Value) (any, *value.Thrown) {
	start := 0
	if len(args) > 0 && args[0].IsNumber() {
		start = int(args[0].AsFloat64())
	}
	n := start
	return &n, nil
}

func (counter) Init(b *nativeclass.Builder) {
	b.Method("increment", 0, func(this value.Value, args []value.Value) (value.Value, *value.Thrown) {
		payload, ok := nativeclass.PayloadOf(this)
		if !ok {
			return value.Undefined, value.Throw(value.String("not a Counter"))
		}
		p := payload.(*int)
		*p++
		return value.Integer(int32(*p)), nil
	})
	b.Accessor("value", func(this value.Value, _ []value.Value) (value.Value, *value.Thrown) {
		payload, _ := nativeclass.PayloadOf(this)
		return value.Integer(int32(*payload.(*int))), nil
	}, nil)
}

func TestRegisterClassConstructsAndCallsMethods(t *testing.T) {
	ctx := quill.New()
	require.NoError(t, ctx.RegisterClass(counter{}))

	result, err := ctx.Eval(`
		let c = new Counter(10);
		c.increment();
		c.increment();
		c.value
	`)
	require.NoError(t, err)
	require.Equal(t, "12", result.Display())
}

func TestRegisterClassRejectsEmptyName(t *testing.T) {
	ctx := quill.New()
	err := ctx.RegisterClass(anonymousClass{})
	require.Error(t, err)
}

type anonymousClass struct{}

func (anonymousClass) Name() string               { return "" }
func (anonymousClass) Length() int                 { return 0 }
func (anonymousClass) Attribute() object.Attribute { return object.Empty }
func (anonymousClass) Construct(value.Value, []value.Value) (any, *value.Thrown) {
	return nil, nil
}
func (anonymousClass) Init(*nativeclass.Builder) {}
