// Package gc implements quill's logical tracing collector
// (SPEC_FULL.md §5's Object+GC notes, grounded on spec.md §9's
// "generational arena" alternative discussion). It is layered over Go's
// own garbage-collected heap rather than replacing it: Heap keeps a map
// of registered *object.Object values (ordinary strong references, never
// removed) plus an explicit root set, and Collect performs a mark phase
// that reports, without freeing or unregistering anything, unreached
// object counts for diagnostics and for the testable property
// "prototype lookup terminates for every chain ending in null".
package gc

import (
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// Root is anything that can contribute live objects to a Collect mark
// phase: the Realm's global object, the current environment chain,
// evaluation-stack temporaries, and host-held handles (spec.md §5).
type Root interface {
	// Roots returns every Value this root directly holds. Collect walks
	// from there through object properties and prototype links.
	Roots() []value.Value
}

// Stats summarizes one Collect pass.
type Stats struct {
	Registered int
	Reached    int
	Unreached  int
}

// Heap is quill's per-Context collector state.
type Heap struct {
	nextID  uint64
	objects map[uint64]*object.Object
	roots   []Root
}

// NewHeap constructs an empty Heap.
func NewHeap() *Heap {
	return &Heap{objects: make(map[uint64]*object.Object)}
}

// Register records obj as live, assigning it a stable trace ID if it
// does not already have one. Every object.New call site that matters for
// collection reporting should register its result; objects created as
// pure scratch temporaries inside an operator don't need to.
func (h *Heap) Register(obj *object.Object) {
	if obj.TraceID() != 0 {
		return
	}
	h.nextID++
	obj.SetTraceID(h.nextID)
	h.objects[h.nextID] = obj
}

// AddRoot registers a Root contributing to every future Collect's mark
// phase (e.g. the Realm, once at Context construction).
func (h *Heap) AddRoot(r Root) {
	h.roots = append(h.roots, r)
}

// Collect performs one mark phase over the transitive object graph
// reachable from the registered roots (prototype links and property
// values, per spec.md §5: "The collector must root: the Context's realm,
// the current environment chain, temporaries on the evaluation stack,
// and any host-held handles"). It never frees memory — Go's own
// collector owns that — it only reports what it found, which is enough
// to expose cycle-tolerance and termination as a testable property.
func (h *Heap) Collect() Stats {
	reached := make(map[uint64]bool)
	var stack []*object.Object

	for _, r := range h.roots {
		for _, v := range r.Roots() {
			if v.IsObject() {
				if obj, ok := v.AsObject().(*object.Object); ok {
					stack = append(stack, obj)
				}
			}
		}
	}

	for len(stack) > 0 {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if obj == nil {
			continue
		}
		id := obj.TraceID()
		if id != 0 {
			if reached[id] {
				continue
			}
			reached[id] = true
		}
		if proto := obj.Prototype(); proto != nil {
			stack = append(stack, proto)
		}
		for _, p := range obj.Properties() {
			for _, v := range []value.Value{p.Value(), p.Getter(), p.Setter()} {
				if v.IsObject() {
					if child, ok := v.AsObject().(*object.Object); ok {
						stack = append(stack, child)
					}
				}
			}
		}
		switch slot := obj.Internal().(type) {
		case *object.FunctionSlot:
			if slot.Prototype != nil {
				stack = append(stack, slot.Prototype)
			}
		case *object.NativeObjectSlot:
			if slot.Trace != nil {
				slot.Trace(func(v value.Value) {
					if v.IsObject() {
						if child, ok := v.AsObject().(*object.Object); ok {
							stack = append(stack, child)
						}
					}
				})
			}
		}
	}

	return Stats{
		Registered: len(h.objects),
		Reached:    len(reached),
		Unreached:  len(h.objects) - len(reached),
	}
}
