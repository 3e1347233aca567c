// Package object implements quill's heap-allocated Object: a property
// container with a prototype link, an internal-data slot that tags the
// object's kind (spec.md §3), and the property-protocol operations every
// object supports (spec.md §4.3).
package object

import (
	"sort"

	"github.com/quill-lang/quill/internal/value"
)

// InternalDataKind tags which variant of internal data an Object holds.
type InternalDataKind uint8

const (
	Ordinary InternalDataKind = iota
	FunctionData
	ArrayData
	StringData
	BooleanData
	NumberData
	DateData
	RegExpData
	ErrorData
	NativeObjectData
)

// InternalData is the marker interface implemented only by the
// documented internal-data variants (FunctionSlot, ArraySlot, ...); its
// one method is unexported, so external packages cannot smuggle an
// undocumented kind onto an Object — mirrored from SPEC_FULL.md §5's note on Object's internal
// field.
type InternalData interface {
	internalDataKind() InternalDataKind
}

// Object is the heap-allocated record described in spec.md §3.
type Object struct {
	internal InternalData
	proto    *Object

	extensible bool

	// keys preserves insertion order for String/Symbol keys; Index keys
	// are tracked separately in indexKeys and sorted ascending on
	// demand by OwnPropertyKeys, per the enumeration order law in
	// spec.md §3 and §8.
	keys      []PropertyKey
	indexKeys map[uint32]bool
	props     map[PropertyKey]Property

	// traceID is a cheap identity tag for the gc package's root-set
	// reporting; it is not used for equality (Object pointers already
	// serve that) and is lazily assigned by gc.Heap.Register.
	traceID uint64
}

// New constructs an empty Ordinary object with the given prototype
// (which may be nil for the ultimate Object.prototype).
func New(proto *Object) *Object {
	return &Object{
		proto:      proto,
		extensible: true,
		props:      make(map[PropertyKey]Property),
		indexKeys:  make(map[uint32]bool),
	}
}

// Prototype returns the object's prototype link, or nil at the end of
// the chain.
func (o *Object) Prototype() *Object { return o.proto }

// SetPrototype replaces the object's prototype link.
func (o *Object) SetPrototype(p *Object) { o.proto = p }

// Extensible reports whether new own properties may still be added.
func (o *Object) Extensible() bool { return o.extensible }

// PreventExtensions permanently clears the extensible flag, per
// spec.md §3 ("preventExtensions clears it permanently").
func (o *Object) PreventExtensions() { o.extensible = false }

// InternalDataKind reports which internal-data variant is populated.
func (o *Object) InternalDataKind() InternalDataKind {
	if o.internal == nil {
		return Ordinary
	}
	return o.internal.internalDataKind()
}

// Internal returns the raw internal-data payload (a *FunctionSlot,
// *ArraySlot, ... or nil for a plain Ordinary object).
func (o *Object) Internal() InternalData { return o.internal }

// SetInternal installs the object's internal-data slot. Constructors
// call this once at creation time.
func (o *Object) SetInternal(d InternalData) { o.internal = d }

// ObjectDisplay implements value.Objecter, giving Object the minimal
// surface value.Value needs without an import cycle back into object.
func (o *Object) ObjectDisplay() string {
	switch d := o.internal.(type) {
	case *FunctionSlot:
		if d.Name != "" {
			return "function " + d.Name + "() { [native or script code] }"
		}
		return "function () { [native or script code] }"
	case *ErrorSlot:
		if d.Message == "" {
			return d.Name
		}
		return d.Name + ": " + d.Message
	}
	return "[object Object]"
}

// IsCallable implements value.Objecter.
func (o *Object) IsCallable() bool {
	fn, ok := o.internal.(*FunctionSlot)
	return ok && fn.Callable
}

// IsConstructable reports whether Construct is valid on this object.
func (o *Object) IsConstructable() bool {
	fn, ok := o.internal.(*FunctionSlot)
	return ok && fn.Constructable
}

// --- Property protocol (spec.md §4.3) ---

// GetOwnProperty looks up key in this object's own property map only.
func (o *Object) GetOwnProperty(key PropertyKey) (Property, bool) {
	p, ok := o.props[key]
	return p, ok
}

// HasOwnProperty is a boolean-only convenience over GetOwnProperty.
func (o *Object) HasOwnProperty(key PropertyKey) bool {
	_, ok := o.props[key]
	return ok
}

// HasProperty walks the prototype chain, per spec.md §4.3.
func (o *Object) HasProperty(key PropertyKey) bool {
	for cur := o; cur != nil; cur = cur.proto {
		if cur.HasOwnProperty(key) {
			return true
		}
	}
	return false
}

// DefineOwnProperty applies desc to key following a simplified form of
// ECMAScript's ValidateAndApplyPropertyDescriptor: once a property is
// non-configurable, most further redefinition attempts fail, except a
// no-op redefinition (an unchanged descriptor), which always succeeds —
// this is the idempotence the spec's Testable Properties (§8) require.
func (o *Object) DefineOwnProperty(key PropertyKey, desc PropertyDescriptor) bool {
	existing, hasExisting := o.props[key]

	if !hasExisting {
		if !o.extensible {
			return false
		}
		o.setOwnProperty(key, fromDescriptor(desc, Property{}))
		return true
	}

	if !existing.Configurable() {
		if isNoOpRedefinition(existing, desc) {
			return true
		}
		if desc.HasConfigurable && desc.Configurable {
			return false
		}
		if existing.IsData() && !existing.Writable() {
			if desc.IsAccessorDescriptor() {
				return false
			}
			if desc.HasWritable && desc.Writable {
				return false
			}
			if desc.HasValue && !value.SameValue(desc.Value, existing.Value()) {
				return false
			}
		}
		if existing.IsAccessor() {
			if desc.IsDataDescriptor() {
				return false
			}
			if desc.HasGet && !value.SameValue(desc.Get, existing.Getter()) {
				return false
			}
			if desc.HasSet && !value.SameValue(desc.Set, existing.Setter()) {
				return false
			}
		}
	}

	o.props[key] = fromDescriptor(desc, existing)
	return true
}

func isNoOpRedefinition(existing Property, desc PropertyDescriptor) bool {
	if desc.HasWritable && desc.Writable != existing.Writable() {
		return false
	}
	if desc.HasEnumerable && desc.Enumerable != existing.Enumerable() {
		return false
	}
	if desc.HasConfigurable && desc.Configurable != existing.Configurable() {
		return false
	}
	if desc.HasValue && (!existing.IsData() || !value.SameValue(desc.Value, existing.Value())) {
		return false
	}
	if desc.HasGet && (!existing.IsAccessor() || !value.SameValue(desc.Get, existing.Getter())) {
		return false
	}
	if desc.HasSet && (!existing.IsAccessor() || !value.SameValue(desc.Set, existing.Setter())) {
		return false
	}
	return true
}

func fromDescriptor(desc PropertyDescriptor, prior Property) Property {
	attr := prior.attr
	if desc.HasWritable {
		attr = setBit(attr, Writable, desc.Writable)
	}
	if desc.HasEnumerable {
		attr = setBit(attr, Enumerable, desc.Enumerable)
	}
	if desc.HasConfigurable {
		attr = setBit(attr, Configurable, desc.Configurable)
	}

	if desc.IsAccessorDescriptor() {
		get, set := desc.Get, desc.Set
		if !desc.HasGet {
			get = prior.get
		}
		if !desc.HasSet {
			set = prior.set
		}
		return AccessorProperty(get, set, attr)
	}

	v := prior.value
	if desc.HasValue {
		v = desc.Value
	}
	return DataProperty(v, attr)
}

func setBit(a Attribute, bit Attribute, set bool) Attribute {
	if set {
		return a | bit
	}
	return a &^ bit
}

// setOwnProperty installs p at key, tracking insertion order for
// OwnPropertyKeys.
func (o *Object) setOwnProperty(key PropertyKey, p Property) {
	if _, exists := o.props[key]; !exists {
		if key.IsIndex() {
			o.indexKeys[key.Index()] = true
		} else {
			o.keys = append(o.keys, key)
		}
	}
	o.props[key] = p
}

// DefineData is a convenience for the common case of installing a plain
// data property, used heavily by nativeclass and built-in constructors.
func (o *Object) DefineData(key PropertyKey, v value.Value, attr Attribute) {
	o.setOwnProperty(key, DataProperty(v, attr))
}

// DefineAccessor is the accessor-property equivalent of DefineData.
func (o *Object) DefineAccessor(key PropertyKey, get, set value.Value, attr Attribute) {
	o.setOwnProperty(key, AccessorProperty(get, set, attr))
}

// Get implements the chain-walking Get operation. For a data property it
// returns the value, the Property and ok=true. For an accessor it returns
// value.Undefined, the raw accessor Property and ok=true; invoking the
// getter against the receiver is left to the caller (the executor, which
// alone can Call). ok is false when no object on the chain has key.
func (o *Object) Get(key PropertyKey) (value.Value, Property, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if p, ok := cur.props[key]; ok {
			if p.IsData() {
				return p.Value(), p, true
			}
			return value.Undefined, p, true
		}
	}
	return value.Undefined, Property{}, false
}

// Set implements the chain-walking Set operation for data properties
// only: if the resolved property (own or inherited) is a data property,
// write an own data property on o (receiver) when either no property
// exists yet or the existing one is writable. Accessor properties are
// reported via the returned Property with ok=true and IsAccessor()=true
// so the executor can invoke the setter instead.
func (o *Object) Set(key PropertyKey, v value.Value) (handledAsData bool, accessor Property, isAccessor bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if p, ok := cur.props[key]; ok {
			if p.IsAccessor() {
				return false, p, true
			}
			if cur == o {
				if !p.Writable() {
					return false, Property{}, false
				}
				o.props[key] = p.WithValue(v)
				return true, Property{}, false
			}
			// Inherited data property: shadow with an own writable
			// property unless the inherited one says read-only.
			if !p.Writable() {
				return false, Property{}, false
			}
			break
		}
	}
	if !o.extensible {
		return false, Property{}, false
	}
	o.setOwnProperty(key, DataProperty(v, All))
	return true, Property{}, false
}

// Delete removes an own property if configurable, per spec.md §4.3 and
// §8 ("deleting a non-configurable own property ... returns false in
// sloppy mode"); strict-mode throwing is the executor's responsibility
// since only it knows the current strictness.
func (o *Object) Delete(key PropertyKey) bool {
	p, ok := o.props[key]
	if !ok {
		return true
	}
	if !p.Configurable() {
		return false
	}
	delete(o.props, key)
	if key.IsIndex() {
		delete(o.indexKeys, key.Index())
	} else {
		for i, k := range o.keys {
			if k == key {
				o.keys = append(o.keys[:i], o.keys[i+1:]...)
				break
			}
		}
	}
	return true
}

// OwnPropertyKeys returns this object's own keys ordered per spec.md §3:
// ascending integer-index keys, then string keys in insertion order,
// then symbol keys in insertion order.
func (o *Object) OwnPropertyKeys() []PropertyKey {
	indices := make([]uint32, 0, len(o.indexKeys))
	for idx := range o.indexKeys {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	out := make([]PropertyKey, 0, len(indices)+len(o.keys))
	for _, idx := range indices {
		out = append(out, IndexKey(idx))
	}
	strings := make([]PropertyKey, 0, len(o.keys))
	symbols := make([]PropertyKey, 0, len(o.keys))
	for _, k := range o.keys {
		if k.IsSymbol() {
			symbols = append(symbols, k)
		} else {
			strings = append(strings, k)
		}
	}
	out = append(out, strings...)
	out = append(out, symbols...)
	return out
}

// Properties exposes the raw own-property map for trace-collectors and
// diagnostics that need to walk every Value reachable from this object.
func (o *Object) Properties() map[PropertyKey]Property {
	return o.props
}

// TraceID and SetTraceID let gc.Heap tag objects for its own root-set
// bookkeeping without object needing to import gc.
func (o *Object) TraceID() uint64     { return o.traceID }
func (o *Object) SetTraceID(id uint64) { o.traceID = id }
