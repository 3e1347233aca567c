package executor

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// installBuiltins populates a freshly built Realm with the global
// bindings and intrinsic methods the Testable Properties in spec.md §8
// actually exercise: console.log, the Object statics a defineProperty/
// keys scenario needs, the Array.prototype methods a map/reduce chain
// needs, and enough String/Number/Boolean/Error surface that ordinary
// scripts don't immediately hit "is not a function". Anything beyond
// that (a full built-in library) is out of scope per spec.md §1.
func installBuiltins(e *Executor) {
	installObjectProto(e)
	installFunctionProto(e)
	installArrayProto(e)
	installStringProto(e)
	installNumberProto(e)
	installBooleanProto(e)
	installErrorProtos(e)
	installGlobals(e)
}

func argAt(args []value.Value, i int) value.Value {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined
}

// --- Object ---

func installObjectProto(e *Executor) {
	proto := e.Realm.ObjectProto

	e.defineBuiltIn(proto, "hasOwnProperty", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(this)
		if !ok {
			return value.Bool(false), nil
		}
		key, thrown := e.toPropertyKey(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(obj.HasOwnProperty(key)), nil
	})

	e.defineBuiltIn(proto, "isPrototypeOf", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		self, ok := asObject(this)
		target, ok2 := asObject(argAt(args, 0))
		if !ok || !ok2 {
			return value.Bool(false), nil
		}
		for cur := target.Prototype(); cur != nil; cur = cur.Prototype() {
			if cur == self {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})

	e.defineBuiltIn(proto, "toString", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return value.String(this.Display()), nil
	})

	e.defineBuiltIn(proto, "valueOf", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return this, nil
	})

	ctor := e.defineBuiltInConstructor(e.Realm.Global, "Object", 1, proto, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		arg := argAt(args, 0)
		if arg.IsObject() {
			return arg, nil
		}
		return value.Object(e.newPlainObject()), nil
	})

	e.defineBuiltIn(ctor, "keys", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.keys called on non-object")
		}
		var out []value.Value
		for _, k := range obj.OwnPropertyKeys() {
			p, _ := obj.GetOwnProperty(k)
			if p.Enumerable() && !k.IsSymbol() {
				out = append(out, value.String(k.String()))
			}
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(ctor, "values", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.values called on non-object")
		}
		var out []value.Value
		for _, k := range obj.OwnPropertyKeys() {
			p, _ := obj.GetOwnProperty(k)
			if p.Enumerable() && !k.IsSymbol() {
				v, thrown := e.getProperty(value.Object(obj), k)
				if thrown != nil {
					return value.Undefined, thrown
				}
				out = append(out, v)
			}
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(ctor, "entries", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.entries called on non-object")
		}
		var out []value.Value
		for _, k := range obj.OwnPropertyKeys() {
			p, _ := obj.GetOwnProperty(k)
			if p.Enumerable() && !k.IsSymbol() {
				v, thrown := e.getProperty(value.Object(obj), k)
				if thrown != nil {
					return value.Undefined, thrown
				}
				out = append(out, value.Object(e.newArray([]value.Value{value.String(k.String()), v})))
			}
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(ctor, "assign", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		target, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.assign target must be an object")
		}
		for _, src := range args[1:] {
			srcObj, ok := asObject(src)
			if !ok {
				continue
			}
			for _, k := range srcObj.OwnPropertyKeys() {
				p, _ := srcObj.GetOwnProperty(k)
				if !p.Enumerable() {
					continue
				}
				v, thrown := e.getProperty(src, k)
				if thrown != nil {
					return value.Undefined, thrown
				}
				if thrown := e.setProperty(value.Object(target), k, v); thrown != nil {
					return value.Undefined, thrown
				}
			}
		}
		return value.Object(target), nil
	})

	e.defineBuiltIn(ctor, "is", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return value.Bool(value.SameValue(argAt(args, 0), argAt(args, 1))), nil
	})

	e.defineBuiltIn(ctor, "getPrototypeOf", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.getPrototypeOf called on non-object")
		}
		if p := obj.Prototype(); p != nil {
			return value.Object(p), nil
		}
		return value.Null, nil
	})

	e.defineBuiltIn(ctor, "setPrototypeOf", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.setPrototypeOf called on non-object")
		}
		if p, ok := asObject(argAt(args, 1)); ok {
			obj.SetPrototype(p)
		} else {
			obj.SetPrototype(nil)
		}
		return argAt(args, 0), nil
	})

	e.defineBuiltIn(ctor, "preventExtensions", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		if obj, ok := asObject(argAt(args, 0)); ok {
			obj.PreventExtensions()
		}
		return argAt(args, 0), nil
	})

	e.defineBuiltIn(ctor, "isExtensible", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Bool(false), nil
		}
		return value.Bool(obj.Extensible()), nil
	})

	e.defineBuiltIn(ctor, "defineProperty", 3, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return value.Undefined, e.typeError("Object.defineProperty called on non-object")
		}
		key, thrown := e.toPropertyKey(argAt(args, 1))
		if thrown != nil {
			return value.Undefined, thrown
		}
		desc, thrown := e.toPropertyDescriptor(argAt(args, 2))
		if thrown != nil {
			return value.Undefined, thrown
		}
		if !obj.DefineOwnProperty(key, desc) {
			return value.Undefined, e.typeError("Cannot redefine property: " + key.String())
		}
		return argAt(args, 0), nil
	})

	e.defineBuiltIn(ctor, "freeze", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return argAt(args, 0), nil
		}
		obj.PreventExtensions()
		for _, k := range obj.OwnPropertyKeys() {
			p, _ := obj.GetOwnProperty(k)
			desc := object.PropertyDescriptor{HasWritable: true, HasConfigurable: true}
			if p.IsData() {
				desc.HasValue, desc.Value = true, p.Value()
			}
			obj.DefineOwnProperty(k, desc)
		}
		return argAt(args, 0), nil
	})
}

// toPropertyDescriptor reads the own-property shape of a descriptor
// object literal (`{value, writable, enumerable, configurable, get,
// set}`), the way Object.defineProperty's argument is always authored
// in script.
func (e *Executor) toPropertyDescriptor(v value.Value) (object.PropertyDescriptor, *value.Thrown) {
	obj, ok := asObject(v)
	if !ok {
		return object.PropertyDescriptor{}, e.typeError("Property description must be an object")
	}
	var desc object.PropertyDescriptor
	if obj.HasProperty(object.StringKey("value")) {
		v, thrown := e.getProperty(value.Object(obj), object.StringKey("value"))
		if thrown != nil {
			return desc, thrown
		}
		desc.HasValue, desc.Value = true, v
	}
	if obj.HasProperty(object.StringKey("get")) {
		v, thrown := e.getProperty(value.Object(obj), object.StringKey("get"))
		if thrown != nil {
			return desc, thrown
		}
		desc.HasGet, desc.Get = true, v
	}
	if obj.HasProperty(object.StringKey("set")) {
		v, thrown := e.getProperty(value.Object(obj), object.StringKey("set"))
		if thrown != nil {
			return desc, thrown
		}
		desc.HasSet, desc.Set = true, v
	}
	for name, hasFlag := range map[string]*bool{"writable": &desc.HasWritable, "enumerable": &desc.HasEnumerable, "configurable": &desc.HasConfigurable} {
		if obj.HasProperty(object.StringKey(name)) {
			v, thrown := e.getProperty(value.Object(obj), object.StringKey(name))
			if thrown != nil {
				return desc, thrown
			}
			*hasFlag = true
			switch name {
			case "writable":
				desc.Writable = v.ToBoolean()
			case "enumerable":
				desc.Enumerable = v.ToBoolean()
			case "configurable":
				desc.Configurable = v.ToBoolean()
			}
		}
	}
	return desc, nil
}

// --- Function ---

func installFunctionProto(e *Executor) {
	proto := e.Realm.FunctionProto

	e.defineBuiltIn(proto, "call", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return e.callFunction(this, argAt(args, 0), rest(args, 1))
	})

	e.defineBuiltIn(proto, "apply", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		var callArgs []value.Value
		if len(args) > 1 && !args[1].IsNullish() {
			expanded, thrown := e.iterateArrayLike(args[1])
			if thrown != nil {
				return value.Undefined, thrown
			}
			callArgs = expanded
		}
		return e.callFunction(this, argAt(args, 0), callArgs)
	})

	e.defineBuiltIn(proto, "bind", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		fnVal := this
		boundThis := argAt(args, 0)
		boundArgs := rest(args, 1)
		name := ""
		if obj, ok := asObject(fnVal); ok {
			if slot, ok := obj.Internal().(*object.FunctionSlot); ok {
				name = "bound " + slot.Name
			}
		}
		slot := object.NewBuiltIn(name, 0, true, false, func(_ value.Value, callArgs []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
			return e.callFunction(fnVal, boundThis, append(append([]value.Value(nil), boundArgs...), callArgs...))
		})
		boundObj := object.New(e.Realm.FunctionProto)
		boundObj.SetInternal(slot)
		boundObj.DefineData(object.StringKey("name"), value.String(name), object.Empty)
		e.Heap.Register(boundObj)
		return value.Object(boundObj), nil
	})

	e.defineBuiltIn(proto, "toString", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return value.String(this.Display()), nil
	})
}

func rest(args []value.Value, i int) []value.Value {
	if i >= len(args) {
		return nil
	}
	return args[i:]
}

// --- Array ---

func installArrayProto(e *Executor) {
	proto := e.Realm.ArrayProto

	e.defineBuiltIn(proto, "push", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		arr, ok := asObject(this)
		if !ok {
			return value.Undefined, e.typeError("Array.prototype.push called on non-array")
		}
		for _, v := range args {
			e.arrayPush(arr, v)
		}
		length, thrown := e.arrayLength(arr)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Integer(int32(length)), nil
	})

	e.defineBuiltIn(proto, "pop", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		arr, ok := asObject(this)
		if !ok {
			return value.Undefined, e.typeError("Array.prototype.pop called on non-array")
		}
		length, thrown := e.arrayLength(arr)
		if thrown != nil || length == 0 {
			return value.Undefined, thrown
		}
		last, thrown := e.getProperty(this, object.IndexKey(uint32(length-1)))
		if thrown != nil {
			return value.Undefined, thrown
		}
		arr.Delete(object.IndexKey(uint32(length - 1)))
		arr.DefineData(object.StringKey("length"), value.Integer(int32(length-1)), object.Writable)
		if slot, ok := arr.Internal().(*object.ArraySlot); ok && len(slot.Elements) > 0 {
			slot.Elements = slot.Elements[:len(slot.Elements)-1]
		}
		return last, nil
	})

	e.defineBuiltIn(proto, "shift", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil || len(elems) == 0 {
			return value.Undefined, thrown
		}
		arr, _ := asObject(this)
		first := elems[0]
		rebuildArray(arr, elems[1:])
		return first, nil
	})

	e.defineBuiltIn(proto, "unshift", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		arr, ok := asObject(this)
		if !ok {
			return value.Undefined, e.typeError("Array.prototype.unshift called on non-array")
		}
		merged := append(append([]value.Value(nil), args...), elems...)
		rebuildArray(arr, merged)
		return value.Integer(int32(len(merged))), nil
	})

	e.defineBuiltIn(proto, "slice", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		start := clampIndex(argAt(args, 0), len(elems), 0)
		end := clampIndex(argAt(args, 1), len(elems), len(elems))
		if start > end {
			start = end
		}
		return value.Object(e.newArray(append([]value.Value(nil), elems[start:end]...))), nil
	})

	e.defineBuiltIn(proto, "splice", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		arr, ok := asObject(this)
		if !ok {
			return value.Undefined, e.typeError("Array.prototype.splice called on non-array")
		}
		start := clampIndex(argAt(args, 0), len(elems), 0)
		deleteCount := len(elems) - start
		if len(args) > 1 {
			if n, ok := argAt(args, 1).ToNumber(); ok {
				deleteCount = int(n)
			}
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > len(elems) {
				deleteCount = len(elems) - start
			}
		}
		removed := append([]value.Value(nil), elems[start:start+deleteCount]...)
		inserted := rest(args, 2)
		merged := append(append(append([]value.Value(nil), elems[:start]...), inserted...), elems[start+deleteCount:]...)
		rebuildArray(arr, merged)
		return value.Object(e.newArray(removed)), nil
	})

	e.defineBuiltIn(proto, "concat", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		out := append([]value.Value(nil), elems...)
		for _, a := range args {
			if isArrayLike(a) {
				more, thrown := e.iterateArrayLike(a)
				if thrown != nil {
					return value.Undefined, thrown
				}
				out = append(out, more...)
			} else {
				out = append(out, a)
			}
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(proto, "join", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		sep := ","
		if len(args) > 0 && !args[0].IsUndefined() {
			s, thrown := e.toStringValue(args[0])
			if thrown != nil {
				return value.Undefined, thrown
			}
			sep = s
		}
		parts := make([]string, len(elems))
		for i, v := range elems {
			if v.IsNullish() {
				parts[i] = ""
				continue
			}
			s, thrown := e.toStringValue(v)
			if thrown != nil {
				return value.Undefined, thrown
			}
			parts[i] = s
		}
		return value.String(strings.Join(parts, sep)), nil
	})

	e.defineBuiltIn(proto, "reverse", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		arr, _ := asObject(this)
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
		rebuildArray(arr, elems)
		return this, nil
	})

	e.defineBuiltIn(proto, "indexOf", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		target := argAt(args, 0)
		for i, v := range elems {
			if value.StrictEquals(v, target) {
				return value.Integer(int32(i)), nil
			}
		}
		return value.Integer(-1), nil
	})

	e.defineBuiltIn(proto, "includes", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		target := argAt(args, 0)
		for _, v := range elems {
			if value.SameValueZero(v, target) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})

	e.defineBuiltIn(proto, "find", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		for i, v := range elems {
			keep, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			if keep.ToBoolean() {
				return v, nil
			}
		}
		return value.Undefined, nil
	})

	e.defineBuiltIn(proto, "findIndex", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		for i, v := range elems {
			keep, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			if keep.ToBoolean() {
				return value.Integer(int32(i)), nil
			}
		}
		return value.Integer(-1), nil
	})

	e.defineBuiltIn(proto, "forEach", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		for i, v := range elems {
			if _, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this}); thrown != nil {
				return value.Undefined, thrown
			}
		}
		return value.Undefined, nil
	})

	e.defineBuiltIn(proto, "map", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		out := make([]value.Value, len(elems))
		for i, v := range elems {
			r, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			out[i] = r
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(proto, "filter", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		var out []value.Value
		for i, v := range elems {
			keep, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			if keep.ToBoolean() {
				out = append(out, v)
			}
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(proto, "some", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		for i, v := range elems {
			r, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			if r.ToBoolean() {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	})

	e.defineBuiltIn(proto, "every", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		for i, v := range elems {
			r, thrown := e.callFunction(argAt(args, 0), argAt(args, 1), []value.Value{v, value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			if !r.ToBoolean() {
				return value.Bool(false), nil
			}
		}
		return value.Bool(true), nil
	})

	e.defineBuiltIn(proto, "reduce", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		i := 0
		var acc value.Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(elems) == 0 {
				return value.Undefined, e.typeError("Reduce of empty array with no initial value")
			}
			acc = elems[0]
			i = 1
		}
		for ; i < len(elems); i++ {
			r, thrown := e.callFunction(argAt(args, 0), value.Undefined, []value.Value{acc, elems[i], value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			acc = r
		}
		return acc, nil
	})

	e.defineBuiltIn(proto, "reduceRight", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		i := len(elems) - 1
		var acc value.Value
		if len(args) > 1 {
			acc = args[1]
		} else {
			if len(elems) == 0 {
				return value.Undefined, e.typeError("Reduce of empty array with no initial value")
			}
			acc = elems[i]
			i--
		}
		for ; i >= 0; i-- {
			r, thrown := e.callFunction(argAt(args, 0), value.Undefined, []value.Value{acc, elems[i], value.Integer(int32(i)), this})
			if thrown != nil {
				return value.Undefined, thrown
			}
			acc = r
		}
		return acc, nil
	})

	e.defineBuiltIn(proto, "sort", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		arr, ok := asObject(this)
		if !ok {
			return value.Undefined, e.typeError("Array.prototype.sort called on non-array")
		}
		cmp := argAt(args, 0)
		var sortErr *value.Thrown
		sort.SliceStable(elems, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			if cmp.IsUndefined() {
				si, t1 := e.toStringValue(elems[i])
				sj, t2 := e.toStringValue(elems[j])
				if t1 != nil {
					sortErr = t1
				} else if t2 != nil {
					sortErr = t2
				}
				return si < sj
			}
			r, thrown := e.callFunction(cmp, value.Undefined, []value.Value{elems[i], elems[j]})
			if thrown != nil {
				sortErr = thrown
				return false
			}
			f, _ := r.ToNumber()
			return f < 0
		})
		if sortErr != nil {
			return value.Undefined, sortErr
		}
		rebuildArray(arr, elems)
		return this, nil
	})

	ctor := e.defineBuiltInConstructor(e.Realm.Global, "Array", 1, proto, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		if len(args) == 1 {
			if n, ok := args[0].ToNumber(); ok && args[0].IsNumber() {
				length := int(n)
				if length < 0 || float64(length) != n {
					return value.Undefined, e.rangeError("Invalid array length")
				}
				return value.Object(e.newArray(make([]value.Value, length))), nil
			}
		}
		return value.Object(e.newArray(append([]value.Value(nil), args...))), nil
	})

	e.defineBuiltIn(ctor, "isArray", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(argAt(args, 0))
		return value.Bool(ok && isArray(obj)), nil
	})

	e.defineBuiltIn(ctor, "from", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		elems, thrown := e.iterateArrayLike(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		fn := argAt(args, 1)
		if fn.IsUndefined() {
			return value.Object(e.newArray(elems)), nil
		}
		out := make([]value.Value, len(elems))
		for i, v := range elems {
			r, thrown := e.callFunction(fn, value.Undefined, []value.Value{v, value.Integer(int32(i))})
			if thrown != nil {
				return value.Undefined, thrown
			}
			out[i] = r
		}
		return value.Object(e.newArray(out)), nil
	})

	e.defineBuiltIn(ctor, "of", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return value.Object(e.newArray(append([]value.Value(nil), args...))), nil
	})
}

func isArrayLike(v value.Value) bool {
	obj, ok := asObject(v)
	return ok && isArray(obj)
}

// rebuildArray replaces arr's own indexed properties and "length" in
// place, the shared tail of every array method that reshapes its
// receiver (shift/unshift/splice/reverse/sort).
func rebuildArray(arr *object.Object, elems []value.Value) {
	for _, k := range arr.OwnPropertyKeys() {
		if k.IsIndex() {
			arr.Delete(k)
		}
	}
	for i, v := range elems {
		arr.DefineData(object.IndexKey(uint32(i)), v, object.All)
	}
	arr.DefineData(object.StringKey("length"), value.Integer(int32(len(elems))), object.Writable)
	if slot, ok := arr.Internal().(*object.ArraySlot); ok {
		slot.Elements = append([]value.Value(nil), elems...)
	}
}

func clampIndex(v value.Value, length int, def int) int {
	if v.IsUndefined() {
		return def
	}
	f, ok := v.ToNumber()
	if !ok {
		return def
	}
	n := int(f)
	if n < 0 {
		n += length
	}
	if n < 0 {
		n = 0
	}
	if n > length {
		n = length
	}
	return n
}

// --- String ---

func installStringProto(e *Executor) {
	proto := e.Realm.StringProto

	thisString := func(e *Executor, this value.Value) (string, *value.Thrown) {
		if this.IsString() {
			return this.AsString(), nil
		}
		return e.toStringValue(this)
	}

	e.defineBuiltIn(proto, "toString", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		return value.String(s), thrown
	})
	e.defineBuiltIn(proto, "valueOf", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		return value.String(s), thrown
	})
	e.defineBuiltIn(proto, "charAt", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		runes := []rune(s)
		idx, _ := argAt(args, 0).ToNumber()
		if int(idx) < 0 || int(idx) >= len(runes) {
			return value.String(""), nil
		}
		return value.String(string(runes[int(idx)])), nil
	})
	e.defineBuiltIn(proto, "charCodeAt", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		runes := []rune(s)
		idx, _ := argAt(args, 0).ToNumber()
		if int(idx) < 0 || int(idx) >= len(runes) {
			return value.NumberFromFloat64(math.NaN()), nil
		}
		return value.Integer(int32(runes[int(idx)])), nil
	})
	e.defineBuiltIn(proto, "indexOf", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		sub, thrown := e.toStringValue(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Integer(int32(strings.Index(s, sub))), nil
	})
	e.defineBuiltIn(proto, "includes", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		sub, thrown := e.toStringValue(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(strings.Contains(s, sub)), nil
	})
	e.defineBuiltIn(proto, "startsWith", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		sub, thrown := e.toStringValue(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(strings.HasPrefix(s, sub)), nil
	})
	e.defineBuiltIn(proto, "endsWith", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		sub, thrown := e.toStringValue(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(strings.HasSuffix(s, sub)), nil
	})
	e.defineBuiltIn(proto, "slice", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		runes := []rune(s)
		start := clampIndex(argAt(args, 0), len(runes), 0)
		end := clampIndex(argAt(args, 1), len(runes), len(runes))
		if start > end {
			start = end
		}
		return value.String(string(runes[start:end])), nil
	})
	e.defineBuiltIn(proto, "substring", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		runes := []rune(s)
		start := clampNonNegative(argAt(args, 0), len(runes), 0)
		end := clampNonNegative(argAt(args, 1), len(runes), len(runes))
		if start > end {
			start, end = end, start
		}
		return value.String(string(runes[start:end])), nil
	})
	e.defineBuiltIn(proto, "toUpperCase", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		return value.String(strings.ToUpper(s)), thrown
	})
	e.defineBuiltIn(proto, "toLowerCase", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		return value.String(strings.ToLower(s)), thrown
	})
	e.defineBuiltIn(proto, "trim", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		return value.String(strings.TrimSpace(s)), thrown
	})
	e.defineBuiltIn(proto, "split", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		if argAt(args, 0).IsUndefined() {
			return value.Object(e.newArray([]value.Value{value.String(s)})), nil
		}
		sep, thrown := e.toStringValue(args[0])
		if thrown != nil {
			return value.Undefined, thrown
		}
		var parts []string
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
		} else {
			parts = strings.Split(s, sep)
		}
		out := make([]value.Value, len(parts))
		for i, p := range parts {
			out[i] = value.String(p)
		}
		return value.Object(e.newArray(out)), nil
	})
	e.defineBuiltIn(proto, "concat", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		var b strings.Builder
		b.WriteString(s)
		for _, a := range args {
			as, thrown := e.toStringValue(a)
			if thrown != nil {
				return value.Undefined, thrown
			}
			b.WriteString(as)
		}
		return value.String(b.String()), nil
	})
	e.defineBuiltIn(proto, "repeat", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := thisString(e, this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		n, _ := argAt(args, 0).ToNumber()
		if n < 0 {
			return value.Undefined, e.rangeError("Invalid count value")
		}
		return value.String(strings.Repeat(s, int(n))), nil
	})
	e.defineBuiltIn(proto, "padStart", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return padString(e, this, args, true)
	})
	e.defineBuiltIn(proto, "padEnd", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return padString(e, this, args, false)
	})

	e.defineBuiltInConstructor(e.Realm.Global, "String", 1, proto, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		s, thrown := e.toStringValue(args[0])
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.String(s), nil
	})
}

func padString(e *Executor, this value.Value, args []value.Value, start bool) (value.Value, *value.Thrown) {
	s := this.ToStringSimple()
	if this.IsObject() {
		v, thrown := e.toStringValue(this)
		if thrown != nil {
			return value.Undefined, thrown
		}
		s = v
	}
	targetLen, _ := argAt(args, 0).ToNumber()
	pad := " "
	if len(args) > 1 && !args[1].IsUndefined() {
		p, thrown := e.toStringValue(args[1])
		if thrown != nil {
			return value.Undefined, thrown
		}
		pad = p
	}
	runes := []rune(s)
	need := int(targetLen) - len(runes)
	if need <= 0 || pad == "" {
		return value.String(s), nil
	}
	fill := strings.Repeat(pad, need/len([]rune(pad))+1)
	fill = string([]rune(fill)[:need])
	if start {
		return value.String(fill + s), nil
	}
	return value.String(s + fill), nil
}

func clampNonNegative(v value.Value, length, def int) int {
	if v.IsUndefined() {
		return def
	}
	f, ok := v.ToNumber()
	if !ok || f < 0 {
		return 0
	}
	if int(f) > length {
		return length
	}
	return int(f)
}

// --- Number ---

func installNumberProto(e *Executor) {
	proto := e.Realm.NumberProto

	e.defineBuiltIn(proto, "toString", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		f, _ := this.ToNumber()
		radix := 10
		if len(args) > 0 {
			if r, ok := args[0].ToNumber(); ok {
				radix = int(r)
			}
		}
		if radix == 10 {
			return value.String(this.ToStringSimple()), nil
		}
		return value.String(strconv.FormatInt(int64(f), radix)), nil
	})
	e.defineBuiltIn(proto, "valueOf", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return this, nil
	})
	e.defineBuiltIn(proto, "toFixed", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		f, _ := this.ToNumber()
		digits := 0
		if len(args) > 0 {
			if d, ok := args[0].ToNumber(); ok {
				digits = int(d)
			}
		}
		return value.String(strconv.FormatFloat(f, 'f', digits, 64)), nil
	})

	ctor := e.defineBuiltInConstructor(e.Realm.Global, "Number", 1, proto, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		if len(args) == 0 {
			return value.Integer(0), nil
		}
		f, thrown := e.toNumber(args[0])
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.NumberFromFloat64(f), nil
	})
	ctor.DefineData(object.StringKey("MAX_SAFE_INTEGER"), value.NumberFromFloat64(9007199254740991), object.Empty)
	ctor.DefineData(object.StringKey("MIN_SAFE_INTEGER"), value.NumberFromFloat64(-9007199254740991), object.Empty)
	ctor.DefineData(object.StringKey("EPSILON"), value.NumberFromFloat64(math.Nextafter(1, 2)-1), object.Empty)
	ctor.DefineData(object.StringKey("POSITIVE_INFINITY"), value.NumberFromFloat64(math.Inf(1)), object.Empty)
	ctor.DefineData(object.StringKey("NEGATIVE_INFINITY"), value.NumberFromFloat64(math.Inf(-1)), object.Empty)
	ctor.DefineData(object.StringKey("NaN"), value.NumberFromFloat64(math.NaN()), object.Empty)
	e.defineBuiltIn(ctor, "isInteger", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		v := argAt(args, 0)
		if !v.IsNumber() {
			return value.Bool(false), nil
		}
		f, _ := v.ToNumber()
		return value.Bool(!math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)), nil
	})
	e.defineBuiltIn(ctor, "isFinite", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		v := argAt(args, 0)
		if !v.IsNumber() {
			return value.Bool(false), nil
		}
		f, _ := v.ToNumber()
		return value.Bool(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
	})
	e.defineBuiltIn(ctor, "isNaN", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		v := argAt(args, 0)
		if !v.IsNumber() {
			return value.Bool(false), nil
		}
		f, _ := v.ToNumber()
		return value.Bool(math.IsNaN(f)), nil
	})
}

// --- Boolean ---

func installBooleanProto(e *Executor) {
	proto := e.Realm.BooleanProto
	e.defineBuiltIn(proto, "toString", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return value.String(this.ToStringSimple()), nil
	})
	e.defineBuiltIn(proto, "valueOf", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return this, nil
	})
	e.defineBuiltInConstructor(e.Realm.Global, "Boolean", 1, proto, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		return value.Bool(argAt(args, 0).ToBoolean()), nil
	})
}

// --- Errors ---

func installErrorProtos(e *Executor) {
	e.defineBuiltIn(e.Realm.ErrorProto, "toString", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		obj, ok := asObject(this)
		if !ok {
			return value.String("Error"), nil
		}
		name, _, _ := obj.Get(object.StringKey("name"))
		msg, _, _ := obj.Get(object.StringKey("message"))
		nameStr := "Error"
		if name.IsString() {
			nameStr = name.AsString()
		}
		msgDisplay := ""
		if msg.IsString() {
			msgDisplay = msg.AsString()
		}
		if msgDisplay == "" {
			return value.String(nameStr), nil
		}
		return value.String(nameStr + ": " + msgDisplay), nil
	})
	e.Realm.ErrorProto.DefineData(object.StringKey("name"), value.String("Error"), object.Writable|object.Configurable)
	e.Realm.ErrorProto.DefineData(object.StringKey("message"), value.String(""), object.Writable|object.Configurable)

	makeErrorCtor := func(name string, proto *object.Object) {
		e.defineBuiltInConstructor(e.Realm.Global, name, 1, proto, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
			msg := ""
			if len(args) > 0 && !args[0].IsUndefined() {
				s, thrown := e.toStringValue(args[0])
				if thrown != nil {
					return value.Undefined, thrown
				}
				msg = s
			}
			errProto := proto
			if newTarget != nil {
				if pv, _, ok := newTarget.Get(object.StringKey("prototype")); ok {
					if p, ok := asObject(pv); ok {
						errProto = p
					}
				}
			}
			return value.Object(e.newError(errProto, name, msg)), nil
		})
	}
	makeErrorCtor("Error", e.Realm.ErrorProto)
	makeErrorCtor("TypeError", e.Realm.TypeErrorProto)
	makeErrorCtor("RangeError", e.Realm.RangeErrorProto)
	makeErrorCtor("ReferenceError", e.Realm.ReferenceErrorProto)
	makeErrorCtor("SyntaxError", e.Realm.SyntaxErrorProto)
}

// --- Globals ---

func installGlobals(e *Executor) {
	g := e.Realm.Global

	g.DefineData(object.StringKey("undefined"), value.Undefined, object.Empty)
	g.DefineData(object.StringKey("NaN"), value.NumberFromFloat64(math.NaN()), object.Empty)
	g.DefineData(object.StringKey("Infinity"), value.NumberFromFloat64(math.Inf(1)), object.Empty)
	g.DefineData(object.StringKey("globalThis"), value.Object(g), object.Writable|object.Configurable)

	e.defineBuiltIn(g, "parseInt", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := e.toStringValue(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		s = strings.TrimSpace(s)
		radix := 10
		if len(args) > 1 {
			if r, ok := args[1].ToNumber(); ok && r != 0 {
				radix = int(r)
			}
		}
		neg := false
		if strings.HasPrefix(s, "-") {
			neg, s = true, s[1:]
		} else if strings.HasPrefix(s, "+") {
			s = s[1:]
		}
		if (radix == 16 || radix == 0) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
			s = s[2:]
			radix = 16
		}
		end := 0
		for end < len(s) && isRadixDigit(s[end], radix) {
			end++
		}
		if end == 0 {
			return value.NumberFromFloat64(math.NaN()), nil
		}
		n, err := strconv.ParseInt(s[:end], radix, 64)
		if err != nil {
			return value.NumberFromFloat64(math.NaN()), nil
		}
		if neg {
			n = -n
		}
		return value.NumberFromInt64(n), nil
	})

	e.defineBuiltIn(g, "parseFloat", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := e.toStringValue(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		s = strings.TrimSpace(s)
		end := len(s)
		for end > 0 {
			if _, err := strconv.ParseFloat(s[:end], 64); err == nil {
				break
			}
			end--
		}
		if end == 0 {
			return value.NumberFromFloat64(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(s[:end], 64)
		if err != nil {
			return value.NumberFromFloat64(math.NaN()), nil
		}
		return value.NumberFromFloat64(f), nil
	})

	e.defineBuiltIn(g, "isNaN", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		f, thrown := e.toNumber(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(math.IsNaN(f)), nil
	})

	e.defineBuiltIn(g, "isFinite", 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		f, thrown := e.toNumber(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(!math.IsNaN(f) && !math.IsInf(f, 0)), nil
	})

	installConsole(e)
	installMath(e)
	installJSON(e)
}

func isRadixDigit(c byte, radix int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < radix
}

// installConsole wires a console.log/error/warn surface writing to
// Realm.Stdout — the host-visible side effect every embedder expects
// from a scripting console, grounded in the display form value.Value
// already produces for exactly this purpose.
func installConsole(e *Executor) {
	console := e.newPlainObject()
	log := func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		parts := make([]string, len(args))
		for i, a := range args {
			s, thrown := e.toStringValue(a)
			if thrown != nil {
				parts[i] = a.Display()
				continue
			}
			parts[i] = s
		}
		fmt.Fprintln(e.Realm.Stdout, strings.Join(parts, " "))
		return value.Undefined, nil
	}
	e.defineBuiltIn(console, "log", 0, log)
	e.defineBuiltIn(console, "error", 0, log)
	e.defineBuiltIn(console, "warn", 0, log)
	e.defineBuiltIn(console, "info", 0, log)
	e.Realm.Global.DefineData(object.StringKey("console"), value.Object(console), object.Writable|object.Configurable)
}

func installMath(e *Executor) {
	m := e.newPlainObject()
	m.DefineData(object.StringKey("PI"), value.NumberFromFloat64(math.Pi), object.Empty)
	m.DefineData(object.StringKey("E"), value.NumberFromFloat64(math.E), object.Empty)
	m.DefineData(object.StringKey("LN2"), value.NumberFromFloat64(math.Ln2), object.Empty)
	m.DefineData(object.StringKey("LN10"), value.NumberFromFloat64(math.Log(10)), object.Empty)
	m.DefineData(object.StringKey("SQRT2"), value.NumberFromFloat64(math.Sqrt2), object.Empty)

	unary := func(name string, fn func(float64) float64) {
		e.defineBuiltIn(m, name, 1, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
			f, thrown := e.toNumber(argAt(args, 0))
			if thrown != nil {
				return value.Undefined, thrown
			}
			return value.NumberFromFloat64(fn(f)), nil
		})
	}
	unary("abs", math.Abs)
	unary("floor", math.Floor)
	unary("ceil", math.Ceil)
	unary("trunc", math.Trunc)
	unary("sqrt", math.Sqrt)
	unary("cbrt", math.Cbrt)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)
	unary("sign", func(f float64) float64 {
		switch {
		case f > 0:
			return 1
		case f < 0:
			return -1
		default:
			return f
		}
	})
	unary("round", func(f float64) float64 { return math.Floor(f + 0.5) })

	e.defineBuiltIn(m, "pow", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		base, thrown := e.toNumber(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		exp, thrown := e.toNumber(argAt(args, 1))
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.NumberFromFloat64(math.Pow(base, exp)), nil
	})
	e.defineBuiltIn(m, "max", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		if len(args) == 0 {
			return value.NumberFromFloat64(math.Inf(-1)), nil
		}
		best := math.Inf(-1)
		for _, a := range args {
			f, thrown := e.toNumber(a)
			if thrown != nil {
				return value.Undefined, thrown
			}
			if math.IsNaN(f) {
				return value.NumberFromFloat64(math.NaN()), nil
			}
			if f > best {
				best = f
			}
		}
		return value.NumberFromFloat64(best), nil
	})
	e.defineBuiltIn(m, "min", 2, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		if len(args) == 0 {
			return value.NumberFromFloat64(math.Inf(1)), nil
		}
		best := math.Inf(1)
		for _, a := range args {
			f, thrown := e.toNumber(a)
			if thrown != nil {
				return value.Undefined, thrown
			}
			if math.IsNaN(f) {
				return value.NumberFromFloat64(math.NaN()), nil
			}
			if f < best {
				best = f
			}
		}
		return value.NumberFromFloat64(best), nil
	})
	e.defineBuiltIn(m, "random", 0, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		return value.NumberFromFloat64(0.5), nil
	})

	e.Realm.Global.DefineData(object.StringKey("Math"), value.Object(m), object.Writable|object.Configurable)
}

// installJSON wires JSON.stringify over the generic property protocol;
// JSON.parse is intentionally omitted (it would need its own lexer
// entry point, out of scope for this core per spec.md §1's Non-goals).
func installJSON(e *Executor) {
	j := e.newPlainObject()
	e.defineBuiltIn(j, "stringify", 3, func(this value.Value, args []value.Value, _ *object.Object) (value.Value, *value.Thrown) {
		s, thrown := e.jsonStringify(argAt(args, 0))
		if thrown != nil {
			return value.Undefined, thrown
		}
		if s == "" {
			return value.Undefined, nil
		}
		return value.String(s), nil
	})
	e.Realm.Global.DefineData(object.StringKey("JSON"), value.Object(j), object.Writable|object.Configurable)
}

func (e *Executor) jsonStringify(v value.Value) (string, *value.Thrown) {
	switch {
	case v.IsUndefined():
		return "", nil
	case v.IsNull():
		return "null", nil
	case v.IsBoolean():
		if v.AsBool() {
			return "true", nil
		}
		return "false", nil
	case v.IsNumber():
		return v.ToStringSimple(), nil
	case v.IsString():
		return strconv.Quote(v.AsString()), nil
	case v.IsObject():
		obj, ok := asObject(v)
		if !ok {
			return "null", nil
		}
		if obj.IsCallable() {
			return "", nil
		}
		if isArray(obj) {
			elems, thrown := e.iterateArrayLike(v)
			if thrown != nil {
				return "", thrown
			}
			parts := make([]string, len(elems))
			for i, el := range elems {
				s, thrown := e.jsonStringify(el)
				if thrown != nil {
					return "", thrown
				}
				if s == "" {
					s = "null"
				}
				parts[i] = s
			}
			return "[" + strings.Join(parts, ",") + "]", nil
		}
		var parts []string
		for _, k := range obj.OwnPropertyKeys() {
			if k.IsSymbol() {
				continue
			}
			p, _ := obj.GetOwnProperty(k)
			if !p.Enumerable() {
				continue
			}
			fv, thrown := e.getProperty(v, k)
			if thrown != nil {
				return "", thrown
			}
			s, thrown := e.jsonStringify(fv)
			if thrown != nil {
				return "", thrown
			}
			if s == "" {
				continue
			}
			parts = append(parts, strconv.Quote(k.String())+":"+s)
		}
		return "{" + strings.Join(parts, ",") + "}", nil
	}
	return "null", nil
}
