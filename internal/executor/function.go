package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// makeFunction builds an Ordinary Function object for fn, closing over
// closureEnv per spec.md §3's Ordinary Function record (parameter list,
// body reference, closure environment).
func (e *Executor) makeFunction(closureEnv *environment.Environment, fn *ast.FunctionExpression) *object.Object {
	length := requiredParamCount(fn.Params)
	proto := e.newPlainObject()

	slot := object.NewOrdinary(fn.Name, length, true, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		return e.callOrdinary(closureEnv, fn, this, args)
	})
	slot.Prototype = proto

	fnObj := object.New(e.Realm.FunctionProto)
	fnObj.SetInternal(slot)
	fnObj.DefineData(object.StringKey("name"), value.String(fn.Name), object.Empty)
	fnObj.DefineData(object.StringKey("length"), value.Integer(int32(length)), object.Empty)
	fnObj.DefineData(object.StringKey("prototype"), value.Object(proto), object.Writable)
	proto.DefineData(object.StringKey("constructor"), value.Object(fnObj), object.Writable|object.Configurable)
	e.Heap.Register(fnObj)
	return fnObj
}

// makeArrowFunction builds a non-constructable Function object for an
// arrow expression; its Call closure never allocates its own `this`/
// `arguments` frame (environment.NewArrowFunctionRecord falls through to
// the enclosing one), per spec.md §4.2's arrow-function rule.
func (e *Executor) makeArrowFunction(closureEnv *environment.Environment, fn *ast.ArrowFunctionExpression) *object.Object {
	length := requiredParamCount(fn.Params)
	slot := object.NewOrdinary("", length, false, func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		return e.callArrow(closureEnv, fn, args)
	})
	fnObj := object.New(e.Realm.FunctionProto)
	fnObj.SetInternal(slot)
	fnObj.DefineData(object.StringKey("name"), value.String(""), object.Empty)
	fnObj.DefineData(object.StringKey("length"), value.Integer(int32(length)), object.Empty)
	e.Heap.Register(fnObj)
	return fnObj
}

// requiredParamCount is a Function's "length": the count of parameters
// before the first default or rest parameter.
func requiredParamCount(params []ast.Param) int {
	n := 0
	for _, p := range params {
		if p.Rest || p.Default != nil {
			break
		}
		n++
	}
	return n
}

func (e *Executor) callOrdinary(closureEnv *environment.Environment, fn *ast.FunctionExpression, this value.Value, args []value.Value) (value.Value, *value.Thrown) {
	argsObj := value.Object(e.buildArgumentsObject(args))
	funcEnv := environment.NewFunctionRecord(closureEnv, this, argsObj)
	if thrown := e.bindParams(funcEnv, fn.Params, args); thrown != nil {
		return value.Undefined, thrown
	}
	_, sig := e.execStatements(funcEnv, fn.Body.Body)
	switch sig.kind {
	case Throw:
		return value.Undefined, sig.thrown
	case Return:
		return sig.value, nil
	default:
		return value.Undefined, nil
	}
}

func (e *Executor) callArrow(closureEnv *environment.Environment, fn *ast.ArrowFunctionExpression, args []value.Value) (value.Value, *value.Thrown) {
	funcEnv := environment.NewArrowFunctionRecord(closureEnv)
	if thrown := e.bindParams(funcEnv, fn.Params, args); thrown != nil {
		return value.Undefined, thrown
	}
	if fn.Body != nil {
		_, sig := e.execStatements(funcEnv, fn.Body.Body)
		switch sig.kind {
		case Throw:
			return value.Undefined, sig.thrown
		case Return:
			return sig.value, nil
		default:
			return value.Undefined, nil
		}
	}
	return e.evalExpr(funcEnv, fn.ExprBody)
}

// bindParams destructures args against params in declaration order,
// evaluating each default expression against the function environment so
// it can reference already-bound earlier parameters (spec.md §4.4).
func (e *Executor) bindParams(funcEnv *environment.Environment, params []ast.Param, args []value.Value) *value.Thrown {
	bind := func(name string, v value.Value) *value.Thrown {
		funcEnv.DeclareMutable(name, v)
		return nil
	}
	for i, p := range params {
		if p.Rest {
			var rest []value.Value
			if i < len(args) {
				rest = args[i:]
			}
			return e.bindPattern(funcEnv, p.Pattern, value.Object(e.newArray(rest)), bind)
		}
		var v value.Value
		if i < len(args) {
			v = args[i]
		} else {
			v = value.Undefined
		}
		if p.Default != nil && v.IsUndefined() {
			dv, thrown := e.evalExpr(funcEnv, p.Default)
			if thrown != nil {
				return thrown
			}
			v = dv
		}
		if thrown := e.bindPattern(funcEnv, p.Pattern, v, bind); thrown != nil {
			return thrown
		}
	}
	return nil
}

// buildArgumentsObject materializes the array-like `arguments` binding
// every non-arrow function call installs.
func (e *Executor) buildArgumentsObject(args []value.Value) *object.Object {
	obj := e.newArray(args)
	obj.SetPrototype(e.Realm.ObjectProto)
	obj.DefineData(object.StringKey("callee"), value.Undefined, object.Writable|object.Configurable)
	return obj
}
