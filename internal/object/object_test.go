package object_test

import (
	"testing"

	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnPropertyKeysOrder(t *testing.T) {
	o := object.New(nil)
	sym := value.NewSymbol("s")

	o.DefineData(object.StringKey("b"), value.Integer(1), object.All)
	o.DefineData(object.IndexKey(5), value.Integer(2), object.All)
	o.DefineData(object.SymbolKey(sym), value.Integer(3), object.All)
	o.DefineData(object.StringKey("a"), value.Integer(4), object.All)
	o.DefineData(object.IndexKey(1), value.Integer(5), object.All)

	keys := o.OwnPropertyKeys()
	require.Len(t, keys, 5)

	assert.True(t, keys[0].IsIndex())
	assert.Equal(t, uint32(1), keys[0].Index())
	assert.True(t, keys[1].IsIndex())
	assert.Equal(t, uint32(5), keys[1].Index())

	assert.Equal(t, "b", keys[2].String())
	assert.Equal(t, "a", keys[3].String())

	assert.True(t, keys[4].IsSymbol())
}

func TestPrototypeChainGet(t *testing.T) {
	proto := object.New(nil)
	proto.DefineData(object.StringKey("greeting"), value.String("hi"), object.All)

	child := object.New(proto)
	v, _, ok := child.Get(object.StringKey("greeting"))
	require.True(t, ok)
	assert.Equal(t, "hi", v.AsString())
}

func TestDefineOwnPropertyIdempotent(t *testing.T) {
	o := object.New(nil)
	key := object.StringKey("x")
	desc := object.PropertyDescriptor{Value: value.Integer(1), HasValue: true, HasWritable: true, Writable: true}
	assert.True(t, o.DefineOwnProperty(key, desc))
	assert.True(t, o.DefineOwnProperty(key, desc), "re-applying an unchanged descriptor must succeed")
}

func TestNonConfigurableRejectsRedefinition(t *testing.T) {
	o := object.New(nil)
	key := object.StringKey("frozen")
	o.DefineData(key, value.Integer(1), object.Empty)

	ok := o.DefineOwnProperty(key, object.PropertyDescriptor{
		Value: value.Integer(2), HasValue: true,
	})
	assert.False(t, ok)
}

func TestDeleteNonConfigurable(t *testing.T) {
	o := object.New(nil)
	key := object.StringKey("frozen")
	o.DefineData(key, value.Integer(1), object.Empty)
	assert.False(t, o.Delete(key))

	o2 := object.New(nil)
	o2.DefineData(key, value.Integer(1), object.Configurable)
	assert.True(t, o2.Delete(key))
}

func TestSetWritesOwnPropertyOnReceiver(t *testing.T) {
	proto := object.New(nil)
	proto.DefineData(object.StringKey("x"), value.Integer(1), object.All)

	child := object.New(proto)
	handled, _, isAccessor := child.Set(object.StringKey("x"), value.Integer(2))
	assert.True(t, handled)
	assert.False(t, isAccessor)
	assert.False(t, proto.HasOwnProperty(object.StringKey("x+child-shadow-should-not-touch-proto")))

	v, _, _ := child.Get(object.StringKey("x"))
	assert.Equal(t, int32(2), v.AsInt32())
	protoVal, _, _ := proto.Get(object.StringKey("x"))
	assert.Equal(t, int32(1), protoVal.AsInt32(), "writing through receiver must not mutate the prototype")
}

func TestCallRejectsNonFunction(t *testing.T) {
	o := object.New(nil)
	_, thrown := o.Call(value.Undefined, nil)
	require.NotNil(t, thrown)
}

func TestCallInvokesBuiltIn(t *testing.T) {
	fn := object.New(nil)
	fn.SetInternal(object.NewBuiltIn("id", 1, true, false, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		return args[0], nil
	}))
	result, thrown := fn.Call(value.Undefined, []value.Value{value.Integer(42)})
	require.Nil(t, thrown)
	assert.Equal(t, int32(42), result.AsInt32())
}
