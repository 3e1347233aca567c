package gc_test

import (
	"testing"

	"github.com/quill-lang/quill/internal/gc"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
	"github.com/stretchr/testify/assert"
)

type fakeRoot struct{ vs []value.Value }

func (f fakeRoot) Roots() []value.Value { return f.vs }

func TestCollectHandlesCycles(t *testing.T) {
	h := gc.NewHeap()

	a := object.New(nil)
	b := object.New(nil)
	h.Register(a)
	h.Register(b)

	a.DefineData(object.StringKey("b"), value.Object(b), object.All)
	b.DefineData(object.StringKey("a"), value.Object(a), object.All)

	h.AddRoot(fakeRoot{vs: []value.Value{value.Object(a)}})

	stats := h.Collect()
	assert.Equal(t, 2, stats.Registered)
	assert.Equal(t, 2, stats.Reached)
	assert.Equal(t, 0, stats.Unreached)
}

func TestCollectReportsUnreached(t *testing.T) {
	h := gc.NewHeap()
	a := object.New(nil)
	orphan := object.New(nil)
	h.Register(a)
	h.Register(orphan)

	h.AddRoot(fakeRoot{vs: []value.Value{value.Object(a)}})

	stats := h.Collect()
	assert.Equal(t, 1, stats.Reached)
	assert.Equal(t, 1, stats.Unreached)
}

func TestPrototypeChainTerminatesAtNull(t *testing.T) {
	h := gc.NewHeap()
	root := object.New(nil)
	leaf := object.New(root)
	h.Register(root)
	h.Register(leaf)

	h.AddRoot(fakeRoot{vs: []value.Value{value.Object(leaf)}})

	stats := h.Collect()
	assert.Equal(t, 2, stats.Reached)
}
