package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// makeClass evaluates a ClassExpression/ClassDeclaration into a
// constructor Function object with its instance prototype wired up,
// per spec.md §4.2: fields initialize in declaration order inside the
// constructor, methods install as non-enumerable prototype properties,
// and an `extends` clause chains both the prototype and the `super()`/
// `super.x` lookup a member body can make.
func (e *Executor) makeClass(env *environment.Environment, cls *ast.ClassExpression) (*object.Object, *value.Thrown) {
	var superCtor *object.Object
	proto := e.newPlainObject()

	if cls.SuperClass != nil {
		superVal, thrown := e.evalExpr(env, cls.SuperClass)
		if thrown != nil {
			return nil, thrown
		}
		sc, ok := asObject(superVal)
		if !ok || !sc.IsConstructable() {
			return nil, e.typeError("Class extends value is not a constructor")
		}
		superCtor = sc
		if superProtoVal, _, ok := sc.Get(object.StringKey("prototype")); ok {
			if sp, ok2 := asObject(superProtoVal); ok2 {
				proto.SetPrototype(sp)
			}
		}
	}

	classEnv := environment.NewDeclarative(env)
	if cls.Name != "" {
		classEnv.DeclareUninitialized(cls.Name, false)
	}

	var ctorFn *ast.FunctionExpression
	var fields []ast.ClassMember
	for _, m := range cls.Members {
		if m.Static || m.Kind != ast.PropertyInit {
			continue
		}
		fields = append(fields, m)
	}
	for _, m := range cls.Members {
		if m.Static || m.Kind == ast.PropertyInit {
			continue
		}
		if ident, ok := m.Key.(*ast.Identifier); ok && !m.Computed && ident.Name == "constructor" {
			ctorFn = m.Value
		}
	}

	length := 0
	if ctorFn != nil {
		length = requiredParamCount(ctorFn.Params)
	}

	invoke := func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		e.pushSuper(superCtor, proto.Prototype())
		defer e.popSuper()

		if ctorFn == nil {
			if superCtor != nil {
				if _, thrown := superCtor.Call(this, args); thrown != nil {
					return value.Undefined, thrown
				}
			}
			if thrown := e.initFields(classEnv, this, fields); thrown != nil {
				return value.Undefined, thrown
			}
			return value.Undefined, nil
		}
		// Field initializers run before the constructor body; an
		// explicit `super(...)` call inside it only forwards args to the
		// parent constructor, since `this` already exists by the time any
		// script code runs (spec.md §4.2 does not model the TDZ a real
		// derived-constructor `this` would have before super() returns).
		if thrown := e.initFields(classEnv, this, fields); thrown != nil {
			return value.Undefined, thrown
		}
		return e.callOrdinary(classEnv, ctorFn, this, args)
	}

	slot := object.NewOrdinary(cls.Name, length, true, invoke)
	slot.Prototype = proto
	ctorObj := object.New(e.Realm.FunctionProto)
	ctorObj.SetInternal(slot)
	ctorObj.DefineData(object.StringKey("name"), value.String(cls.Name), object.Empty)
	ctorObj.DefineData(object.StringKey("length"), value.Integer(int32(length)), object.Empty)
	ctorObj.DefineData(object.StringKey("prototype"), value.Object(proto), object.Empty)
	proto.DefineData(object.StringKey("constructor"), value.Object(ctorObj), object.Writable|object.Configurable)
	e.Heap.Register(ctorObj)

	if cls.Name != "" {
		classEnv.Initialize(cls.Name, value.Object(ctorObj))
	}

	for _, m := range cls.Members {
		if err := e.installClassMember(classEnv, ctorObj, proto, superCtor, m); err != nil {
			return nil, err
		}
	}

	return ctorObj, nil
}

// initFields assigns each non-static field initializer onto a freshly
// constructed instance, in declaration order, per spec.md §4.2.
func (e *Executor) initFields(classEnv *environment.Environment, this value.Value, fields []ast.ClassMember) *value.Thrown {
	obj, ok := asObject(this)
	if !ok {
		return nil
	}
	for _, f := range fields {
		fv := value.Undefined
		if f.Field != nil {
			v, thrown := e.evalExpr(classEnv, f.Field)
			if thrown != nil {
				return thrown
			}
			fv = v
		}
		key, thrown := e.classMemberKey(classEnv, f)
		if thrown != nil {
			return thrown
		}
		obj.DefineData(key, fv, object.All)
	}
	return nil
}

func (e *Executor) installClassMember(classEnv *environment.Environment, ctorObj, proto, superCtor *object.Object, m ast.ClassMember) *value.Thrown {
	if m.Kind == ast.PropertyInit {
		if !m.Static {
			return nil
		}
		key, thrown := e.classMemberKey(classEnv, m)
		if thrown != nil {
			return thrown
		}
		fv := value.Undefined
		if m.Field != nil {
			v, thrown := e.evalExpr(classEnv, m.Field)
			if thrown != nil {
				return thrown
			}
			fv = v
		}
		ctorObj.DefineData(key, fv, object.All)
		return nil
	}

	if ident, ok := m.Key.(*ast.Identifier); ok && !m.Computed && ident.Name == "constructor" && !m.Static {
		return nil
	}

	target := proto
	homeProto := proto.Prototype()
	if m.Static {
		target = ctorObj
		homeProto = superCtor
	}
	key, thrown := e.classMemberKey(classEnv, m)
	if thrown != nil {
		return thrown
	}
	methodFn := e.makeMethod(classEnv, m.Value, homeProto, superCtor)

	switch m.Kind {
	case ast.PropertyGet:
		existing, _ := target.GetOwnProperty(key)
		setFn := value.Undefined
		if existing.IsAccessor() {
			setFn = existing.Setter()
		}
		target.DefineAccessor(key, value.Object(methodFn), setFn, object.Configurable)
	case ast.PropertySet:
		existing, _ := target.GetOwnProperty(key)
		getFn := value.Undefined
		if existing.IsAccessor() {
			getFn = existing.Getter()
		}
		target.DefineAccessor(key, getFn, value.Object(methodFn), object.Configurable)
	default:
		target.DefineData(key, value.Object(methodFn), object.Writable|object.Configurable)
	}
	return nil
}

// makeMethod wraps makeFunction's closure so that `super` inside a
// class method resolves against that method's own home object, not
// whatever class happened to be executing last (pushSuper/popSuper are a
// stack precisely so nested/re-entrant calls stay correct).
func (e *Executor) makeMethod(env *environment.Environment, fn *ast.FunctionExpression, homeProto, superCtor *object.Object) *object.Object {
	obj := e.makeFunction(env, fn)
	slot := obj.Internal().(*object.FunctionSlot)
	inner := slot.Call
	slot.Call = func(this value.Value, args []value.Value, newTarget *object.Object) (value.Value, *value.Thrown) {
		e.pushSuper(superCtor, homeProto)
		defer e.popSuper()
		return inner(this, args, newTarget)
	}
	return obj
}

func (e *Executor) classMemberKey(env *environment.Environment, m ast.ClassMember) (object.PropertyKey, *value.Thrown) {
	if priv, ok := m.Key.(*ast.PrivateIdentifier); ok {
		return object.StringKey("#" + priv.Name), nil
	}
	if m.Computed {
		v, thrown := e.evalExpr(env, m.Key)
		if thrown != nil {
			return object.PropertyKey{}, thrown
		}
		return e.toPropertyKey(v)
	}
	switch k := m.Key.(type) {
	case *ast.Identifier:
		return object.StringKey(k.Name), nil
	case *ast.StringLiteral:
		return object.StringKey(k.Value), nil
	case *ast.NumericLiteral:
		return object.StringKey(k.Raw), nil
	}
	return object.PropertyKey{}, nil
}
