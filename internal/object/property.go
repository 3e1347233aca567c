package object

import "github.com/quill-lang/quill/internal/value"

// Property is either a data descriptor (Value/Writable) or an accessor
// descriptor (Get/Set), per spec.md §3. IsAccessor distinguishes the two;
// a zero Property is a data descriptor holding Undefined.
type Property struct {
	value value.Value
	get   value.Value
	set   value.Value

	isAccessor bool
	attr       Attribute
}

// DataProperty constructs a data descriptor.
func DataProperty(v value.Value, attr Attribute) Property {
	return Property{value: v, attr: attr}
}

// AccessorProperty constructs an accessor descriptor. get and/or set may
// be value.Undefined when only one half of the pair is defined.
func AccessorProperty(get, set value.Value, attr Attribute) Property {
	return Property{get: get, set: set, isAccessor: true, attr: attr}
}

func (p Property) IsAccessor() bool    { return p.isAccessor }
func (p Property) IsData() bool        { return !p.isAccessor }
func (p Property) Value() value.Value  { return p.value }
func (p Property) Getter() value.Value { return p.get }
func (p Property) Setter() value.Value { return p.set }
func (p Property) Attribute() Attribute { return p.attr }

func (p Property) Writable() bool     { return p.attr.Writable() }
func (p Property) Enumerable() bool   { return p.attr.Enumerable() }
func (p Property) Configurable() bool { return p.attr.Configurable() }

// WithValue returns a copy of p with its data value replaced, preserving
// attributes. Used by Set on an existing writable data property.
func (p Property) WithValue(v value.Value) Property {
	p.value = v
	return p
}

// PropertyDescriptor is the partial-update view DefineOwnProperty
// accepts, mirroring ECMAScript's Property Descriptor record: any field
// left at its zero value (Value undefined, flags unset) does not
// overwrite the corresponding field of an existing property unless the
// matching Has flag is set. This is what lets `Object.defineProperty(o,
// 'b', {value: 2})` leave enumerable/writable/configurable at their
// prior (or default-false) values instead of clobbering them.
type PropertyDescriptor struct {
	Value Value
	Get   value.Value
	Set   value.Value

	HasValue        bool
	HasGet          bool
	HasSet          bool
	HasWritable     bool
	HasEnumerable   bool
	HasConfigurable bool

	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Value is a re-export so PropertyDescriptor's field type reads
// naturally; it is exactly value.Value.
type Value = value.Value

// IsAccessorDescriptor reports whether d specifies get/set fields.
func (d PropertyDescriptor) IsAccessorDescriptor() bool { return d.HasGet || d.HasSet }

// IsDataDescriptor reports whether d specifies value/writable fields.
func (d PropertyDescriptor) IsDataDescriptor() bool { return d.HasValue || d.HasWritable }

// IsGenericDescriptor reports whether d specifies neither data nor
// accessor fields (only enumerable/configurable, or nothing at all).
func (d PropertyDescriptor) IsGenericDescriptor() bool {
	return !d.IsAccessorDescriptor() && !d.IsDataDescriptor()
}
