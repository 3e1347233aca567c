package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/object"
	"github.com/quill-lang/quill/internal/value"
)

// bindPattern destructures v against pattern, invoking bind for every
// leaf Identifier it introduces. Callers supply bind to get the right
// storage semantics: DeclareMutable for function parameters, Initialize
// for a just-hoisted let/const, Assign for var and for plain assignment
// destructuring.
func (e *Executor) bindPattern(env *environment.Environment, pattern ast.Pattern, v value.Value, bind func(name string, v value.Value) *value.Thrown) *value.Thrown {
	switch p := pattern.(type) {
	case *ast.Identifier:
		return bind(p.Name, v)

	case *ast.AssignmentPattern:
		if v.IsUndefined() {
			dv, thrown := e.evalExpr(env, p.Default)
			if thrown != nil {
				return thrown
			}
			v = dv
		}
		return e.bindPattern(env, p.Target, v, bind)

	case *ast.RestElement:
		return e.bindPattern(env, p.Target, v, bind)

	case *ast.ArrayPattern:
		elems, thrown := e.iterateArrayLike(v)
		if thrown != nil {
			return thrown
		}
		for i, el := range p.Elements {
			if el == nil {
				continue
			}
			if rest, ok := el.(*ast.RestElement); ok {
				var tail []value.Value
				if i < len(elems) {
					tail = elems[i:]
				}
				if thrown := e.bindPattern(env, rest, value.Object(e.newArray(tail)), bind); thrown != nil {
					return thrown
				}
				break
			}
			var ev value.Value
			if i < len(elems) {
				ev = elems[i]
			} else {
				ev = value.Undefined
			}
			if thrown := e.bindPattern(env, el, ev, bind); thrown != nil {
				return thrown
			}
		}
		return nil

	case *ast.ObjectPattern:
		if !v.IsObject() && v.IsNullish() {
			return e.typeError("Cannot destructure " + v.Display())
		}
		seen := map[object.PropertyKey]bool{}
		for _, prop := range p.Properties {
			if prop.Rest != nil {
				rest := e.newPlainObject()
				if obj, ok := asObject(v); ok {
					for _, key := range obj.OwnPropertyKeys() {
						if seen[key] {
							continue
						}
						if owned, ok := obj.GetOwnProperty(key); ok && owned.Enumerable() {
							pv, thrown := e.getProperty(v, key)
							if thrown != nil {
								return thrown
							}
							rest.DefineData(key, pv, object.All)
						}
					}
				}
				if thrown := e.bindPattern(env, prop.Rest, value.Object(rest), bind); thrown != nil {
					return thrown
				}
				continue
			}
			key, thrown := e.objectPatternKey(env, prop)
			if thrown != nil {
				return thrown
			}
			seen[key] = true
			pv, thrown := e.getProperty(v, key)
			if thrown != nil {
				return thrown
			}
			if thrown := e.bindPattern(env, prop.Value, pv, bind); thrown != nil {
				return thrown
			}
		}
		return nil
	}
	return nil
}

func (e *Executor) objectPatternKey(env *environment.Environment, prop ast.ObjectPatternProperty) (object.PropertyKey, *value.Thrown) {
	if prop.Computed {
		kv, thrown := e.evalExpr(env, prop.Key)
		if thrown != nil {
			return object.PropertyKey{}, thrown
		}
		return e.toPropertyKey(kv)
	}
	switch k := prop.Key.(type) {
	case *ast.Identifier:
		return object.StringKey(k.Name), nil
	case *ast.StringLiteral:
		return object.StringKey(k.Value), nil
	case *ast.NumericLiteral:
		return object.StringKey(k.Raw), nil
	}
	return object.PropertyKey{}, nil
}

// getProperty reads key off v, following the prototype chain and
// invoking an accessor getter when present; non-object primitives with
// no boxed form simply return Undefined for any key.
func (e *Executor) getProperty(v value.Value, key object.PropertyKey) (value.Value, *value.Thrown) {
	obj, ok := asObject(v)
	if !ok {
		return value.Undefined, nil
	}
	val, prop, found := obj.Get(key)
	if !found {
		return value.Undefined, nil
	}
	if prop.IsAccessor() {
		getter := prop.Getter()
		if !getter.IsObject() {
			return value.Undefined, nil
		}
		return e.callFunction(getter, v, nil)
	}
	return val, nil
}

// exprToPattern reinterprets an Expression parsed in destructuring
// assignment position (`[a, b] = xs`, `({x} = o)`) as a Pattern. The
// parser keeps these permissive (ArrayLiteral/ObjectLiteral/Identifier/
// MemberExpression), so the executor performs the reinterpretation spec.md
// §6.4 expects of an AssignmentExpression target.
func exprToPattern(expr ast.Expression) ast.Pattern {
	switch ex := expr.(type) {
	case *ast.Identifier:
		return ex
	case *ast.ArrayLiteral:
		elems := make([]ast.Pattern, len(ex.Elements))
		for i, el := range ex.Elements {
			if el == nil {
				continue
			}
			if spread, ok := el.(*ast.Spread); ok {
				elems[i] = &ast.RestElement{Token: spread.Token, Target: exprToPattern(spread.Argument)}
				continue
			}
			elems[i] = exprToPattern(el)
		}
		return &ast.ArrayPattern{Token: ex.Token, Elements: elems}
	case *ast.ObjectLiteral:
		props := make([]ast.ObjectPatternProperty, 0, len(ex.Properties))
		var rest ast.Pattern
		for _, p := range ex.Properties {
			if p.Kind == ast.PropertySpread {
				rest = exprToPattern(p.Value)
				continue
			}
			value := p.Value
			if assign, ok := value.(*ast.AssignmentExpression); ok && assign.Operator == "=" {
				props = append(props, ast.ObjectPatternProperty{
					Key:       p.Key,
					Value:     &ast.AssignmentPattern{Token: assign.Token, Target: exprToPattern(assign.Target), Default: assign.Value},
					Computed:  p.Computed,
					Shorthand: p.Shorthand,
				})
				continue
			}
			props = append(props, ast.ObjectPatternProperty{
				Key:       p.Key,
				Value:     exprToPattern(value),
				Computed:  p.Computed,
				Shorthand: p.Shorthand,
			})
		}
		if rest != nil {
			props = append(props, ast.ObjectPatternProperty{Rest: rest})
		}
		return &ast.ObjectPattern{Token: ex.Token, Properties: props}
	case *ast.AssignmentExpression:
		if ex.Operator == "=" {
			return &ast.AssignmentPattern{Token: ex.Token, Target: exprToPattern(ex.Target), Default: ex.Value}
		}
	}
	// MemberExpression and anything else is not a Pattern and converts to
	// nil, so a member target nested in a destructuring assignment is not
	// assigned (a nil array element is skipped like an elision).
	return nil
}
