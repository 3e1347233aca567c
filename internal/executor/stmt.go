package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/value"
)

// execStatement dispatches one Statement against env, returning its
// completion value (Run keeps it for every top-level statement except
// declarations and empty statements) and a signal describing how it
// terminated.
func (e *Executor) execStatement(env *environment.Environment, stmt ast.Statement) (value.Value, signal) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		v, thrown := e.evalExpr(env, s.Expression)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		return v, normalSignal

	case *ast.VariableDeclaration:
		return value.Undefined, e.execVariableDeclaration(env, s)

	case *ast.FunctionDeclaration:
		// Already bound by hoist.
		return value.Undefined, normalSignal

	case *ast.ClassDeclaration:
		ctor, thrown := e.makeClass(env, s.Class)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		env.Initialize(s.Class.Name, value.Object(ctor))
		return value.Undefined, normalSignal

	case *ast.BlockStatement:
		return e.execBlock(env, s.Body)

	case *ast.IfStatement:
		return e.execIf(env, s)

	case *ast.WhileStatement:
		return e.execWhile(env, s)

	case *ast.DoWhileStatement:
		return e.execDoWhile(env, s)

	case *ast.ForStatement:
		return e.execFor(env, s)

	case *ast.ForInStatement:
		return e.execForIn(env, s)

	case *ast.ForOfStatement:
		return e.execForOf(env, s)

	case *ast.SwitchStatement:
		return e.execSwitch(env, s)

	case *ast.BreakStatement:
		return value.Undefined, breakSignal(s.Label)

	case *ast.ContinueStatement:
		return value.Undefined, continueSignal(s.Label)

	case *ast.ReturnStatement:
		if s.Argument == nil {
			return value.Undefined, returnSignal(value.Undefined)
		}
		v, thrown := e.evalExpr(env, s.Argument)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		return value.Undefined, returnSignal(v)

	case *ast.ThrowStatement:
		v, thrown := e.evalExpr(env, s.Argument)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		return value.Undefined, throwSignal(value.Throw(v))

	case *ast.TryStatement:
		return e.execTry(env, s)

	case *ast.LabelledStatement:
		return e.execLabelled(env, s)

	case *ast.EmptyStatement:
		return value.Undefined, normalSignal
	}
	return value.Undefined, normalSignal
}

// execStatements runs a statement list against env, hoisting its
// var/function/let/const/class bindings first.
func (e *Executor) execStatements(env *environment.Environment, stmts []ast.Statement) (value.Value, signal) {
	e.hoist(env, stmts, false)
	last := value.Undefined
	for _, s := range stmts {
		v, sig := e.execStatement(env, s)
		if sig.kind != Normal {
			return v, sig
		}
		last = v
	}
	return last, normalSignal
}

func (e *Executor) execBlock(parent *environment.Environment, stmts []ast.Statement) (value.Value, signal) {
	return e.execStatements(pushBlockEnv(parent), stmts)
}

func (e *Executor) execVariableDeclaration(env *environment.Environment, decl *ast.VariableDeclaration) signal {
	for _, d := range decl.Declarations {
		v := value.Undefined
		if d.Init != nil {
			var thrown *value.Thrown
			v, thrown = e.evalExpr(env, d.Init)
			if thrown != nil {
				return throwSignal(thrown)
			}
		}
		if decl.Kind == ast.Var {
			if d.Init == nil {
				continue
			}
			thrown := e.bindPattern(env, d.Target, v, func(name string, v value.Value) *value.Thrown {
				env.Assign(name, v)
				return nil
			})
			if thrown != nil {
				return throwSignal(thrown)
			}
			continue
		}
		thrown := e.bindPattern(env, d.Target, v, func(name string, v value.Value) *value.Thrown {
			if !env.Initialize(name, v) {
				env.DeclareMutable(name, v)
			}
			return nil
		})
		if thrown != nil {
			return throwSignal(thrown)
		}
	}
	return normalSignal
}

func (e *Executor) execIf(env *environment.Environment, s *ast.IfStatement) (value.Value, signal) {
	test, thrown := e.evalExpr(env, s.Test)
	if thrown != nil {
		return value.Undefined, throwSignal(thrown)
	}
	if test.ToBoolean() {
		return e.execStatement(env, s.Consequent)
	}
	if s.Alternate != nil {
		return e.execStatement(env, s.Alternate)
	}
	return value.Undefined, normalSignal
}

func (e *Executor) execWhile(env *environment.Environment, s *ast.WhileStatement) (value.Value, signal) {
	for {
		test, thrown := e.evalExpr(env, s.Test)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		if !test.ToBoolean() {
			return value.Undefined, normalSignal
		}
		v, sig := e.execStatement(env, s.Body)
		if sig.kind == Break && e.loopMatches(sig.label) {
			return value.Undefined, normalSignal
		}
		if sig.kind == Continue && e.loopMatches(sig.label) {
			continue
		}
		if sig.kind != Normal {
			return v, sig
		}
	}
}

func (e *Executor) execDoWhile(env *environment.Environment, s *ast.DoWhileStatement) (value.Value, signal) {
	for {
		v, sig := e.execStatement(env, s.Body)
		if sig.kind == Break && e.loopMatches(sig.label) {
			return value.Undefined, normalSignal
		}
		if sig.kind != Normal && !(sig.kind == Continue && e.loopMatches(sig.label)) {
			return v, sig
		}
		test, thrown := e.evalExpr(env, s.Test)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		if !test.ToBoolean() {
			return value.Undefined, normalSignal
		}
	}
}

func (e *Executor) execFor(env *environment.Environment, s *ast.ForStatement) (value.Value, signal) {
	loopEnv := pushBlockEnv(env)
	switch init := s.Init.(type) {
	case *ast.VariableDeclaration:
		if sig := e.execVariableDeclaration(loopEnv, init); sig.kind != Normal {
			return value.Undefined, sig
		}
	case ast.Expression:
		if _, thrown := e.evalExpr(loopEnv, init); thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
	}
	for {
		if s.Test != nil {
			test, thrown := e.evalExpr(loopEnv, s.Test)
			if thrown != nil {
				return value.Undefined, throwSignal(thrown)
			}
			if !test.ToBoolean() {
				return value.Undefined, normalSignal
			}
		}
		v, sig := e.execStatement(loopEnv, s.Body)
		if sig.kind == Break && e.loopMatches(sig.label) {
			return value.Undefined, normalSignal
		}
		if sig.kind != Normal && !(sig.kind == Continue && e.loopMatches(sig.label)) {
			return v, sig
		}
		if s.Update != nil {
			if _, thrown := e.evalExpr(loopEnv, s.Update); thrown != nil {
				return value.Undefined, throwSignal(thrown)
			}
		}
	}
}

func (e *Executor) execForIn(env *environment.Environment, s *ast.ForInStatement) (value.Value, signal) {
	rightVal, thrown := e.evalExpr(env, s.Right)
	if thrown != nil {
		return value.Undefined, throwSignal(thrown)
	}
	obj, ok := asObject(rightVal)
	if !ok {
		return value.Undefined, normalSignal
	}
	seen := map[string]bool{}
	var keys []string
	for cur := obj; cur != nil; cur = cur.Prototype() {
		for _, key := range cur.OwnPropertyKeys() {
			if !key.IsString() && !key.IsIndex() {
				continue
			}
			name := key.String()
			if seen[name] {
				continue
			}
			seen[name] = true
			if owned, ok := cur.GetOwnProperty(key); ok && owned.Enumerable() {
				keys = append(keys, name)
			}
		}
	}
	for _, name := range keys {
		iterEnv := pushBlockEnv(env)
		if sig := e.bindForTarget(iterEnv, s.Left, value.String(name)); sig.kind != Normal {
			return value.Undefined, sig
		}
		v, sig := e.execStatement(iterEnv, s.Body)
		if sig.kind == Break && e.loopMatches(sig.label) {
			return value.Undefined, normalSignal
		}
		if sig.kind != Normal && !(sig.kind == Continue && e.loopMatches(sig.label)) {
			return v, sig
		}
	}
	return value.Undefined, normalSignal
}

func (e *Executor) execForOf(env *environment.Environment, s *ast.ForOfStatement) (value.Value, signal) {
	rightVal, thrown := e.evalExpr(env, s.Right)
	if thrown != nil {
		return value.Undefined, throwSignal(thrown)
	}
	elems, thrown := e.iterateArrayLike(rightVal)
	if thrown != nil {
		return value.Undefined, throwSignal(thrown)
	}
	for _, el := range elems {
		iterEnv := pushBlockEnv(env)
		if sig := e.bindForTarget(iterEnv, s.Left, el); sig.kind != Normal {
			return value.Undefined, sig
		}
		v, sig := e.execStatement(iterEnv, s.Body)
		if sig.kind == Break && e.loopMatches(sig.label) {
			return value.Undefined, normalSignal
		}
		if sig.kind != Normal && !(sig.kind == Continue && e.loopMatches(sig.label)) {
			return v, sig
		}
	}
	return value.Undefined, normalSignal
}

// bindForTarget binds one for-in/for-of iteration value against the
// loop's left-hand side, which is either a fresh `let`/`const`/`var`
// declaration or an existing assignment target.
func (e *Executor) bindForTarget(env *environment.Environment, left ast.Node, v value.Value) signal {
	switch l := left.(type) {
	case *ast.VariableDeclaration:
		target := l.Declarations[0].Target
		bind := func(name string, v value.Value) *value.Thrown {
			env.DeclareMutable(name, v)
			return nil
		}
		if thrown := e.bindPattern(env, target, v, bind); thrown != nil {
			return throwSignal(thrown)
		}
		return normalSignal
	case ast.Expression:
		if thrown := e.assignToTarget(env, l, v); thrown != nil {
			return throwSignal(thrown)
		}
		return normalSignal
	}
	return normalSignal
}

func (e *Executor) execSwitch(env *environment.Environment, s *ast.SwitchStatement) (value.Value, signal) {
	disc, thrown := e.evalExpr(env, s.Discriminant)
	if thrown != nil {
		return value.Undefined, throwSignal(thrown)
	}
	switchEnv := pushBlockEnv(env)
	var all []ast.Statement
	for _, c := range s.Cases {
		all = append(all, c.Consequent...)
	}
	e.hoist(switchEnv, all, false)

	matchIdx := -1
	for i, c := range s.Cases {
		if c.Test == nil {
			continue
		}
		tv, thrown := e.evalExpr(switchEnv, c.Test)
		if thrown != nil {
			return value.Undefined, throwSignal(thrown)
		}
		if value.StrictEquals(disc, tv) {
			matchIdx = i
			break
		}
	}
	if matchIdx == -1 {
		for i, c := range s.Cases {
			if c.Test == nil {
				matchIdx = i
				break
			}
		}
	}
	if matchIdx == -1 {
		return value.Undefined, normalSignal
	}
	last := value.Undefined
	for _, c := range s.Cases[matchIdx:] {
		for _, stmt := range c.Consequent {
			v, sig := e.execStatement(switchEnv, stmt)
			if sig.kind == Break && e.loopMatches(sig.label) {
				return value.Undefined, normalSignal
			}
			if sig.kind != Normal {
				return v, sig
			}
			last = v
		}
	}
	return last, normalSignal
}

func (e *Executor) execTry(env *environment.Environment, s *ast.TryStatement) (value.Value, signal) {
	v, sig := e.execBlock(env, s.Block.Body)
	if sig.kind == Throw && s.Catch != nil {
		catchEnv := pushBlockEnv(env)
		if s.Catch.Param != nil {
			bind := func(name string, v value.Value) *value.Thrown {
				catchEnv.DeclareMutable(name, v)
				return nil
			}
			e.bindPattern(catchEnv, s.Catch.Param, sig.thrown.V, bind)
		}
		v, sig = e.execStatements(catchEnv, s.Catch.Body.Body)
	}
	if s.Finally != nil {
		fv, fsig := e.execBlock(env, s.Finally.Body)
		// An abrupt completion from `finally` overrides whatever the
		// try/catch produced, per spec.md §6.4.
		if fsig.kind != Normal {
			return fv, fsig
		}
	}
	return v, sig
}

func (e *Executor) execLabelled(env *environment.Environment, s *ast.LabelledStatement) (value.Value, signal) {
	e.labelStack = append(e.labelStack, s.Label)
	v, sig := e.execStatement(env, s.Body)
	e.labelStack = e.labelStack[:len(e.labelStack)-1]
	if (sig.kind == Break || sig.kind == Continue) && sig.label == s.Label {
		return value.Undefined, normalSignal
	}
	return v, sig
}

// loopMatches reports whether a Break/Continue signal targets the
// innermost loop: either unlabelled, or labelled with the name the
// immediately enclosing LabelledStatement gave this loop.
func (e *Executor) loopMatches(label string) bool {
	if label == "" {
		return true
	}
	if len(e.labelStack) == 0 {
		return false
	}
	return e.labelStack[len(e.labelStack)-1] == label
}
