package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// evalExpr dispatches one Expression against env, following spec.md
// §4.4's InterpreterState model: a non-nil *value.Thrown always means the
// returned Value should be ignored.
func (e *Executor) evalExpr(env *environment.Environment, expr ast.Expression) (value.Value, *value.Thrown) {
	switch ex := expr.(type) {
	case *ast.NumericLiteral:
		return value.NumberFromFloat64(ex.Value), nil
	case *ast.StringLiteral:
		return value.String(ex.Value), nil
	case *ast.BooleanLiteral:
		return value.Bool(ex.Value), nil
	case *ast.NullLiteral:
		return value.Null, nil
	case *ast.UndefinedLiteral:
		return value.Undefined, nil
	case *ast.RegExpLiteral:
		return e.evalRegExpLiteral(ex), nil
	case *ast.ThisExpression:
		return env.This(), nil
	case *ast.Identifier:
		return e.evalIdentifier(env, ex)
	case *ast.TemplateLiteral:
		return e.evalTemplateLiteral(env, ex)
	case *ast.TaggedTemplate:
		return e.evalTaggedTemplate(env, ex)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(env, ex)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(env, ex)
	case *ast.FunctionExpression:
		return value.Object(e.makeFunction(env, ex)), nil
	case *ast.ArrowFunctionExpression:
		return value.Object(e.makeArrowFunction(env, ex)), nil
	case *ast.ClassExpression:
		ctor, thrown := e.makeClass(env, ex)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Object(ctor), nil
	case *ast.UnaryExpression:
		return e.evalUnary(env, ex)
	case *ast.UpdateExpression:
		return e.evalUpdate(env, ex)
	case *ast.BinaryExpression:
		return e.evalBinary(env, ex)
	case *ast.LogicalExpression:
		return e.evalLogical(env, ex)
	case *ast.AssignmentExpression:
		return e.evalAssignment(env, ex)
	case *ast.ConditionalExpression:
		test, thrown := e.evalExpr(env, ex.Test)
		if thrown != nil {
			return value.Undefined, thrown
		}
		if test.ToBoolean() {
			return e.evalExpr(env, ex.Consequent)
		}
		return e.evalExpr(env, ex.Alternate)
	case *ast.CallExpression:
		return e.evalCallExpression(env, ex)
	case *ast.NewExpression:
		return e.evalNewExpression(env, ex)
	case *ast.MemberExpression:
		v, _, thrown := e.evalMemberExpression(env, ex)
		return v, thrown
	case *ast.SequenceExpression:
		var v value.Value
		for _, sub := range ex.Expressions {
			var thrown *value.Thrown
			v, thrown = e.evalExpr(env, sub)
			if thrown != nil {
				return value.Undefined, thrown
			}
		}
		return v, nil
	case *ast.YieldExpression:
		if ex.Argument == nil {
			return value.Undefined, nil
		}
		return e.evalExpr(env, ex.Argument)
	case *ast.AwaitExpression:
		return e.evalExpr(env, ex.Argument)
	case *ast.Spread:
		// Only legal inside CallExpression.Arguments/ArrayLiteral.Elements,
		// both of which expand it themselves before ever calling evalExpr
		// on the element; reaching here means the parser let one slip
		// through elsewhere, which is a SyntaxError per spec.md §9 Open
		// Question #1's resolution.
		return value.Undefined, e.syntaxError("Unexpected spread operator")
	case *ast.SuperExpression:
		return value.Undefined, e.syntaxError("'super' keyword is only valid inside a class")
	case *ast.PrivateIdentifier:
		return value.Undefined, e.syntaxError("Private field '#" + ex.Name + "' must be accessed through a member expression")
	}
	return value.Undefined, nil
}

func (e *Executor) evalRegExpLiteral(ex *ast.RegExpLiteral) value.Value {
	obj := object.New(e.Realm.ObjectProto)
	obj.SetInternal(&object.RegExpSlot{Source: ex.Source, Flags: ex.Flags})
	obj.DefineData(object.StringKey("source"), value.String(ex.Source), object.Empty)
	obj.DefineData(object.StringKey("flags"), value.String(ex.Flags), object.Empty)
	e.Heap.Register(obj)
	return value.Object(obj)
}

func (e *Executor) evalIdentifier(env *environment.Environment, ex *ast.Identifier) (value.Value, *value.Thrown) {
	if ex.Name == "undefined" {
		return value.Undefined, nil
	}
	if ex.Name == "new.target" {
		return value.Undefined, nil
	}
	v, res, _ := env.Resolve(ex.Name)
	switch res {
	case environment.Found:
		return v, nil
	case environment.FoundUninitialized:
		return value.Undefined, e.referenceError("Cannot access '" + ex.Name + "' before initialization")
	default:
		return value.Undefined, e.referenceError(ex.Name + " is not defined")
	}
}

func (e *Executor) evalTemplateLiteral(env *environment.Environment, ex *ast.TemplateLiteral) (value.Value, *value.Thrown) {
	var b []byte
	b = append(b, ex.Quasis[0]...)
	for i, sub := range ex.Expressions {
		v, thrown := e.evalExpr(env, sub)
		if thrown != nil {
			return value.Undefined, thrown
		}
		s, thrown := e.toStringValue(v)
		if thrown != nil {
			return value.Undefined, thrown
		}
		b = append(b, s...)
		b = append(b, ex.Quasis[i+1]...)
	}
	return value.String(string(b)), nil
}

func (e *Executor) evalTaggedTemplate(env *environment.Environment, ex *ast.TaggedTemplate) (value.Value, *value.Thrown) {
	fnVal, thisVal, thrown := e.evalCallee(env, ex.Tag)
	if thrown != nil {
		return value.Undefined, thrown
	}
	strings := make([]value.Value, len(ex.Template.Quasis))
	for i, q := range ex.Template.Quasis {
		strings[i] = value.String(q)
	}
	stringsArr := e.newArray(strings)
	stringsArr.DefineData(object.StringKey("raw"), value.Object(e.newArray(strings)), object.Empty)
	args := []value.Value{value.Object(stringsArr)}
	for _, sub := range ex.Template.Expressions {
		v, thrown := e.evalExpr(env, sub)
		if thrown != nil {
			return value.Undefined, thrown
		}
		args = append(args, v)
	}
	return e.callFunction(fnVal, thisVal, args)
}

// evalArguments evaluates a call/new argument list, expanding *ast.Spread
// entries in place (the only place spec.md §9 Open Question #1 allows
// one) and leaving elisions out entirely (only valid in ArrayLiteral).
func (e *Executor) evalArguments(env *environment.Environment, args []ast.Expression) ([]value.Value, *value.Thrown) {
	out := make([]value.Value, 0, len(args))
	for _, a := range args {
		if spread, ok := a.(*ast.Spread); ok {
			v, thrown := e.evalExpr(env, spread.Argument)
			if thrown != nil {
				return nil, thrown
			}
			elems, thrown := e.iterateArrayLike(v)
			if thrown != nil {
				return nil, thrown
			}
			out = append(out, elems...)
			continue
		}
		v, thrown := e.evalExpr(env, a)
		if thrown != nil {
			return nil, thrown
		}
		out = append(out, v)
	}
	return out, nil
}

func (e *Executor) evalArrayLiteral(env *environment.Environment, ex *ast.ArrayLiteral) (value.Value, *value.Thrown) {
	var elems []value.Value
	for _, el := range ex.Elements {
		if el == nil {
			elems = append(elems, value.Undefined)
			continue
		}
		if spread, ok := el.(*ast.Spread); ok {
			v, thrown := e.evalExpr(env, spread.Argument)
			if thrown != nil {
				return value.Undefined, thrown
			}
			expanded, thrown := e.iterateArrayLike(v)
			if thrown != nil {
				return value.Undefined, thrown
			}
			elems = append(elems, expanded...)
			continue
		}
		v, thrown := e.evalExpr(env, el)
		if thrown != nil {
			return value.Undefined, thrown
		}
		elems = append(elems, v)
	}
	return value.Object(e.newArray(elems)), nil
}

func (e *Executor) evalObjectLiteral(env *environment.Environment, ex *ast.ObjectLiteral) (value.Value, *value.Thrown) {
	obj := e.newPlainObject()
	for _, p := range ex.Properties {
		if p.Kind == ast.PropertySpread {
			sv, thrown := e.evalExpr(env, p.Value)
			if thrown != nil {
				return value.Undefined, thrown
			}
			if src, ok := asObject(sv); ok {
				for _, key := range src.OwnPropertyKeys() {
					if owned, ok := src.GetOwnProperty(key); ok && owned.Enumerable() {
						pv, thrown := e.getProperty(sv, key)
						if thrown != nil {
							return value.Undefined, thrown
						}
						obj.DefineData(key, pv, object.All)
					}
				}
			}
			continue
		}
		key, thrown := e.evalPropertyKey(env, p)
		if thrown != nil {
			return value.Undefined, thrown
		}
		switch p.Kind {
		case ast.PropertyGet:
			fn := e.makeFunction(env, p.Value.(*ast.FunctionExpression))
			existing, _ := obj.GetOwnProperty(key)
			setFn := value.Undefined
			if existing.IsAccessor() {
				setFn = existing.Setter()
			}
			obj.DefineAccessor(key, value.Object(fn), setFn, object.All)
		case ast.PropertySet:
			fn := e.makeFunction(env, p.Value.(*ast.FunctionExpression))
			existing, _ := obj.GetOwnProperty(key)
			getFn := value.Undefined
			if existing.IsAccessor() {
				getFn = existing.Getter()
			}
			obj.DefineAccessor(key, getFn, value.Object(fn), object.All)
		case ast.PropertyMethod:
			fn := e.makeFunction(env, p.Value.(*ast.FunctionExpression))
			obj.DefineData(key, value.Object(fn), object.All)
		default:
			v, thrown := e.evalExpr(env, p.Value)
			if thrown != nil {
				return value.Undefined, thrown
			}
			obj.DefineData(key, v, object.All)
		}
	}
	return value.Object(obj), nil
}

func (e *Executor) evalPropertyKey(env *environment.Environment, p ast.ObjectProperty) (object.PropertyKey, *value.Thrown) {
	if p.Computed {
		kv, thrown := e.evalExpr(env, p.Key)
		if thrown != nil {
			return object.PropertyKey{}, thrown
		}
		return e.toPropertyKey(kv)
	}
	switch k := p.Key.(type) {
	case *ast.Identifier:
		return object.StringKey(k.Name), nil
	case *ast.StringLiteral:
		return object.StringKey(k.Value), nil
	case *ast.NumericLiteral:
		return object.StringKey(k.Raw), nil
	}
	return object.PropertyKey{}, nil
}

func (e *Executor) evalUnary(env *environment.Environment, ex *ast.UnaryExpression) (value.Value, *value.Thrown) {
	if ex.Operator == "typeof" {
		if ident, ok := ex.Operand.(*ast.Identifier); ok {
			v, res, _ := env.Resolve(ident.Name)
			if res == environment.NotFound {
				return value.String("undefined"), nil
			}
			if res == environment.FoundUninitialized {
				return value.Undefined, e.referenceError("Cannot access '" + ident.Name + "' before initialization")
			}
			return value.String(v.TypeOf()), nil
		}
		v, thrown := e.evalExpr(env, ex.Operand)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.String(v.TypeOf()), nil
	}
	if ex.Operator == "delete" {
		if mem, ok := ex.Operand.(*ast.MemberExpression); ok {
			objVal, thrown := e.evalExpr(env, mem.Object)
			if thrown != nil {
				return value.Undefined, thrown
			}
			key, thrown := e.memberKey(env, mem)
			if thrown != nil {
				return value.Undefined, thrown
			}
			obj, ok := asObject(objVal)
			if !ok {
				return value.Bool(true), nil
			}
			deleted := obj.Delete(key)
			if !deleted && e.strict {
				return value.Undefined, e.typeError("Cannot delete property '" + key.String() + "' of " + objVal.Display())
			}
			return value.Bool(deleted), nil
		}
		return value.Bool(true), nil
	}
	v, thrown := e.evalExpr(env, ex.Operand)
	if thrown != nil {
		return value.Undefined, thrown
	}
	switch ex.Operator {
	case "!":
		return value.Bool(!v.ToBoolean()), nil
	case "-":
		n, thrown := e.toNumber(v)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Neg(value.NumberFromFloat64(n)), nil
	case "+":
		n, thrown := e.toNumber(v)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.NumberFromFloat64(n), nil
	case "~":
		return value.Integer(^value.ToInt32(v)), nil
	case "void":
		return value.Undefined, nil
	}
	return value.Undefined, nil
}

func (e *Executor) evalUpdate(env *environment.Environment, ex *ast.UpdateExpression) (value.Value, *value.Thrown) {
	old, thrown := e.evalExpr(env, ex.Operand)
	if thrown != nil {
		return value.Undefined, thrown
	}
	n, thrown := e.toNumber(old)
	if thrown != nil {
		return value.Undefined, thrown
	}
	delta := 1.0
	if ex.Operator == "--" {
		delta = -1.0
	}
	updated := value.NumberFromFloat64(n + delta)
	if thrown := e.assignToTarget(env, ex.Operand, updated); thrown != nil {
		return value.Undefined, thrown
	}
	if ex.Prefix {
		return updated, nil
	}
	return value.NumberFromFloat64(n), nil
}

func (e *Executor) evalBinary(env *environment.Environment, ex *ast.BinaryExpression) (value.Value, *value.Thrown) {
	left, thrown := e.evalExpr(env, ex.Left)
	if thrown != nil {
		return value.Undefined, thrown
	}
	right, thrown := e.evalExpr(env, ex.Right)
	if thrown != nil {
		return value.Undefined, thrown
	}
	return e.applyBinary(ex.Operator, left, right)
}

func (e *Executor) applyBinary(op string, left, right value.Value) (value.Value, *value.Thrown) {
	switch op {
	case "+":
		if left.IsString() || right.IsString() {
			ls, thrown := e.toStringValue(left)
			if thrown != nil {
				return value.Undefined, thrown
			}
			rs, thrown := e.toStringValue(right)
			if thrown != nil {
				return value.Undefined, thrown
			}
			return value.String(ls + rs), nil
		}
		lp, thrown := e.toPrimitive(left, "default")
		if thrown != nil {
			return value.Undefined, thrown
		}
		rp, thrown := e.toPrimitive(right, "default")
		if thrown != nil {
			return value.Undefined, thrown
		}
		if lp.IsString() || rp.IsString() {
			ls, thrown := e.toStringValue(lp)
			if thrown != nil {
				return value.Undefined, thrown
			}
			rs, thrown := e.toStringValue(rp)
			if thrown != nil {
				return value.Undefined, thrown
			}
			return value.String(ls + rs), nil
		}
		ln, thrown := e.toNumber(lp)
		if thrown != nil {
			return value.Undefined, thrown
		}
		rn, thrown := e.toNumber(rp)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Add(value.NumberFromFloat64(ln), value.NumberFromFloat64(rn)), nil
	case "-", "*", "/", "%", "**":
		ln, thrown := e.toNumber(left)
		if thrown != nil {
			return value.Undefined, thrown
		}
		rn, thrown := e.toNumber(right)
		if thrown != nil {
			return value.Undefined, thrown
		}
		a, b := value.NumberFromFloat64(ln), value.NumberFromFloat64(rn)
		switch op {
		case "-":
			return value.Sub(a, b), nil
		case "*":
			return value.Mul(a, b), nil
		case "/":
			return value.Div(a, b), nil
		case "%":
			return value.Mod(a, b), nil
		case "**":
			return value.Pow(a, b), nil
		}
	case "==":
		ok, thrown := e.isLooselyEqual(left, right)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(ok), nil
	case "!=":
		ok, thrown := e.isLooselyEqual(left, right)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(!ok), nil
	case "===":
		return value.Bool(value.StrictEquals(left, right)), nil
	case "!==":
		return value.Bool(!value.StrictEquals(left, right)), nil
	case "<", ">", "<=", ">=":
		return e.compareRelational(op, left, right)
	case "&", "|", "^", "<<", ">>":
		l, r := value.ToInt32(left), value.ToInt32(right)
		switch op {
		case "&":
			return value.Integer(l & r), nil
		case "|":
			return value.Integer(l | r), nil
		case "^":
			return value.Integer(l ^ r), nil
		case "<<":
			return value.Integer(l << (uint32(r) & 31)), nil
		case ">>":
			return value.Integer(l >> (uint32(r) & 31)), nil
		}
	case ">>>":
		l, r := value.ToUint32(left), value.ToUint32(right)
		return value.NumberFromInt64(int64(l >> (r & 31))), nil
	case "instanceof":
		return e.evalInstanceof(left, right)
	case "in":
		rightObj, ok := asObject(right)
		if !ok {
			return value.Undefined, e.typeError("Cannot use 'in' operator on a non-object")
		}
		key, thrown := e.toPropertyKey(left)
		if thrown != nil {
			return value.Undefined, thrown
		}
		return value.Bool(rightObj.HasProperty(key)), nil
	}
	return value.Undefined, nil
}

func (e *Executor) compareRelational(op string, left, right value.Value) (value.Value, *value.Thrown) {
	lp, thrown := e.toPrimitive(left, "number")
	if thrown != nil {
		return value.Undefined, thrown
	}
	rp, thrown := e.toPrimitive(right, "number")
	if thrown != nil {
		return value.Undefined, thrown
	}
	if lp.IsString() && rp.IsString() {
		ls, rs := lp.AsString(), rp.AsString()
		switch op {
		case "<":
			return value.Bool(ls < rs), nil
		case ">":
			return value.Bool(ls > rs), nil
		case "<=":
			return value.Bool(ls <= rs), nil
		default:
			return value.Bool(ls >= rs), nil
		}
	}
	ln, thrown := e.toNumber(lp)
	if thrown != nil {
		return value.Undefined, thrown
	}
	rn, thrown := e.toNumber(rp)
	if thrown != nil {
		return value.Undefined, thrown
	}
	cmp, ok := value.Compare(value.NumberFromFloat64(ln), value.NumberFromFloat64(rn))
	if !ok {
		return value.Bool(false), nil
	}
	switch op {
	case "<":
		return value.Bool(cmp < 0), nil
	case ">":
		return value.Bool(cmp > 0), nil
	case "<=":
		return value.Bool(cmp <= 0), nil
	default:
		return value.Bool(cmp >= 0), nil
	}
}

func (e *Executor) evalInstanceof(left, right value.Value) (value.Value, *value.Thrown) {
	ctor, ok := asObject(right)
	if !ok || !ctor.IsCallable() {
		return value.Undefined, e.typeError("Right-hand side of 'instanceof' is not callable")
	}
	protoVal, _, ok := ctor.Get(object.StringKey("prototype"))
	if !ok {
		return value.Bool(false), nil
	}
	proto, ok := asObject(protoVal)
	if !ok {
		return value.Bool(false), nil
	}
	obj, ok := asObject(left)
	if !ok {
		return value.Bool(false), nil
	}
	for cur := obj.Prototype(); cur != nil; cur = cur.Prototype() {
		if cur == proto {
			return value.Bool(true), nil
		}
	}
	return value.Bool(false), nil
}

func (e *Executor) evalLogical(env *environment.Environment, ex *ast.LogicalExpression) (value.Value, *value.Thrown) {
	left, thrown := e.evalExpr(env, ex.Left)
	if thrown != nil {
		return value.Undefined, thrown
	}
	switch ex.Operator {
	case "&&":
		if !left.ToBoolean() {
			return left, nil
		}
	case "||":
		if left.ToBoolean() {
			return left, nil
		}
	case "??":
		if !left.IsNullish() {
			return left, nil
		}
	}
	return e.evalExpr(env, ex.Right)
}

func (e *Executor) evalAssignment(env *environment.Environment, ex *ast.AssignmentExpression) (value.Value, *value.Thrown) {
	if ex.Operator == "=" {
		v, thrown := e.evalExpr(env, ex.Value)
		if thrown != nil {
			return value.Undefined, thrown
		}
		if thrown := e.assignToTarget(env, ex.Target, v); thrown != nil {
			return value.Undefined, thrown
		}
		return v, nil
	}

	if ex.Operator == "&&=" || ex.Operator == "||=" || ex.Operator == "??=" {
		cur, thrown := e.evalExpr(env, ex.Target)
		if thrown != nil {
			return value.Undefined, thrown
		}
		switch ex.Operator {
		case "&&=":
			if !cur.ToBoolean() {
				return cur, nil
			}
		case "||=":
			if cur.ToBoolean() {
				return cur, nil
			}
		case "??=":
			if !cur.IsNullish() {
				return cur, nil
			}
		}
		v, thrown := e.evalExpr(env, ex.Value)
		if thrown != nil {
			return value.Undefined, thrown
		}
		if thrown := e.assignToTarget(env, ex.Target, v); thrown != nil {
			return value.Undefined, thrown
		}
		return v, nil
	}

	cur, thrown := e.evalExpr(env, ex.Target)
	if thrown != nil {
		return value.Undefined, thrown
	}
	rhs, thrown := e.evalExpr(env, ex.Value)
	if thrown != nil {
		return value.Undefined, thrown
	}
	op := ex.Operator[:len(ex.Operator)-1] // "+=" -> "+"
	result, thrown := e.applyBinary(op, cur, rhs)
	if thrown != nil {
		return value.Undefined, thrown
	}
	if thrown := e.assignToTarget(env, ex.Target, result); thrown != nil {
		return value.Undefined, thrown
	}
	return result, nil
}

// assignToTarget writes v to an assignment target: a plain identifier, a
// member expression, or (for destructuring assignment) an array/object
// literal reinterpreted as a Pattern via exprToPattern.
func (e *Executor) assignToTarget(env *environment.Environment, target ast.Expression, v value.Value) *value.Thrown {
	switch t := target.(type) {
	case *ast.Identifier:
		ok, immutableViolation := env.Assign(t.Name, v)
		if immutableViolation {
			return e.typeError("Assignment to constant variable.")
		}
		if !ok {
			if e.strict {
				return e.referenceError(t.Name + " is not defined")
			}
			e.Realm.GlobalEnv.DeclareMutable(t.Name, v)
		}
		return nil
	case *ast.MemberExpression:
		objVal, thrown := e.evalExpr(env, t.Object)
		if thrown != nil {
			return thrown
		}
		key, thrown := e.memberKey(env, t)
		if thrown != nil {
			return thrown
		}
		return e.setProperty(objVal, key, v)
	default:
		pattern := exprToPattern(target)
		if pattern == nil {
			return e.referenceError("Invalid assignment target")
		}
		return e.bindPattern(env, pattern, v, func(name string, v value.Value) *value.Thrown {
			ok, immutableViolation := env.Assign(name, v)
			if immutableViolation {
				return e.typeError("Assignment to constant variable.")
			}
			if !ok {
				e.Realm.GlobalEnv.DeclareMutable(name, v)
			}
			return nil
		})
	}
}

// setProperty implements PutValue for an object target, invoking a
// setter when the matched property is an accessor.
func (e *Executor) setProperty(objVal value.Value, key object.PropertyKey, v value.Value) *value.Thrown {
	obj, ok := asObject(objVal)
	if !ok {
		return e.typeError("Cannot set properties of " + objVal.Display())
	}
	handledAsData, prop, isAccessor := obj.Set(key, v)
	if isAccessor {
		setter := prop.Setter()
		if !setter.IsObject() {
			return nil
		}
		_, thrown := e.callFunction(setter, objVal, []value.Value{v})
		return thrown
	}
	// A false handledAsData here means obj.Set already refused the write
	// (own property non-writable, inherited property non-writable, or
	// the object is non-extensible and the key doesn't exist anywhere)
	// — Set itself creates the own data property when the key is new
	// and the object is extensible, so there is nothing left to do but
	// honor the refusal: no-op in sloppy mode, TypeError in strict mode,
	// mirroring the delete case above.
	if !handledAsData && e.strict {
		return e.typeError("Cannot assign to read only property '" + key.String() + "' of " + objVal.Display())
	}
	return nil
}

func (e *Executor) memberKey(env *environment.Environment, m *ast.MemberExpression) (object.PropertyKey, *value.Thrown) {
	if priv, ok := m.Property.(*ast.PrivateIdentifier); ok {
		return object.StringKey("#" + priv.Name), nil
	}
	if !m.Computed {
		if ident, ok := m.Property.(*ast.Identifier); ok {
			return object.StringKey(ident.Name), nil
		}
	}
	kv, thrown := e.evalExpr(env, m.Property)
	if thrown != nil {
		return object.PropertyKey{}, thrown
	}
	return e.toPropertyKey(kv)
}

// evalMemberExpression evaluates obj.prop/obj[expr], returning the
// resolved value and the `this` a following call should use (the object
// itself, per spec.md §4.3's method-call `this`-binding rule).
func (e *Executor) evalMemberExpression(env *environment.Environment, m *ast.MemberExpression) (value.Value, value.Value, *value.Thrown) {
	if _, ok := m.Object.(*ast.SuperExpression); ok {
		homeProto := e.currentHomeProto()
		if homeProto == nil {
			return value.Undefined, value.Undefined, e.syntaxError("'super' keyword is only valid inside a class")
		}
		key, thrown := e.memberKey(env, m)
		if thrown != nil {
			return value.Undefined, value.Undefined, thrown
		}
		v, thrown := e.getProperty(value.Object(homeProto), key)
		return v, env.This(), thrown
	}

	objVal, thrown := e.evalExpr(env, m.Object)
	if thrown != nil {
		return value.Undefined, value.Undefined, thrown
	}
	if m.Optional && objVal.IsNullish() {
		return value.Undefined, value.Undefined, nil
	}
	key, thrown := e.memberKey(env, m)
	if thrown != nil {
		return value.Undefined, value.Undefined, thrown
	}
	if objVal.IsString() {
		if v, ok := e.stringProperty(objVal.AsString(), key); ok {
			return v, objVal, nil
		}
		v, thrown := e.getProperty(value.Object(e.Realm.StringProto), key)
		return v, objVal, thrown
	}
	if !objVal.IsObject() {
		if objVal.IsNullish() {
			return value.Undefined, value.Undefined, e.typeError("Cannot read properties of " + objVal.Display() + " (reading '" + key.String() + "')")
		}
		if objVal.IsNumber() {
			v, thrown := e.getProperty(value.Object(e.Realm.NumberProto), key)
			return v, objVal, thrown
		}
		if objVal.IsBoolean() {
			v, thrown := e.getProperty(value.Object(e.Realm.BooleanProto), key)
			return v, objVal, thrown
		}
		return value.Undefined, value.Undefined, nil
	}
	v, thrown := e.getProperty(objVal, key)
	return v, objVal, thrown
}

// evalCallee resolves a call expression's callee, producing both the
// function Value and the `this` Value the call should bind.
func (e *Executor) evalCallee(env *environment.Environment, callee ast.Expression) (value.Value, value.Value, *value.Thrown) {
	if mem, ok := callee.(*ast.MemberExpression); ok {
		return e.evalMemberExpression(env, mem)
	}
	v, thrown := e.evalExpr(env, callee)
	return v, value.Undefined, thrown
}

func (e *Executor) evalCallExpression(env *environment.Environment, ex *ast.CallExpression) (value.Value, *value.Thrown) {
	if _, ok := ex.Callee.(*ast.SuperExpression); ok {
		superCtor := e.currentSuperCtor()
		if superCtor == nil {
			return value.Undefined, e.syntaxError("'super' keyword is only valid inside a class")
		}
		args, thrown := e.evalArguments(env, ex.Arguments)
		if thrown != nil {
			return value.Undefined, thrown
		}
		this := env.This()
		return superCtor.Call(this, args)
	}

	fnVal, thisVal, thrown := e.evalCallee(env, ex.Callee)
	if thrown != nil {
		return value.Undefined, thrown
	}
	if ex.Optional && fnVal.IsNullish() {
		return value.Undefined, nil
	}
	args, thrown := e.evalArguments(env, ex.Arguments)
	if thrown != nil {
		return value.Undefined, thrown
	}
	return e.callFunction(fnVal, thisVal, args)
}

func (e *Executor) evalNewExpression(env *environment.Environment, ex *ast.NewExpression) (value.Value, *value.Thrown) {
	fnVal, thrown := e.evalExpr(env, ex.Callee)
	if thrown != nil {
		return value.Undefined, thrown
	}
	args, thrown := e.evalArguments(env, ex.Arguments)
	if thrown != nil {
		return value.Undefined, thrown
	}
	return e.constructObject(fnVal, args)
}
