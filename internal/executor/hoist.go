package executor

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/value"
)

// hoist implements spec.md §4.4's pre-scan: var and function declarations
// reachable from stmts are created (function declarations initialized to
// their closure) before the first statement runs; let/const/class
// bindings are created but left uninitialized (TDZ) until execution
// reaches them. topLevel is unused by the walk itself (varScopeEnv finds
// the right frame regardless) but documents the call site's intent.
func (e *Executor) hoist(env *environment.Environment, stmts []ast.Statement, topLevel bool) {
	_ = topLevel
	varEnv := varScopeEnv(env)
	for _, s := range stmts {
		e.hoistVars(varEnv, s)
	}
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.VariableDeclaration:
			if d.Kind != ast.Var {
				for _, decl := range d.Declarations {
					for _, name := range bindingNames(decl.Target) {
						env.DeclareUninitialized(name, d.Kind != ast.Const)
					}
				}
			}
		case *ast.FunctionDeclaration:
			fnObj := e.makeFunction(env, d.Function)
			env.DeclareMutable(d.Function.Name, value.Object(fnObj))
		case *ast.ClassDeclaration:
			env.DeclareUninitialized(d.Class.Name, true)
		}
	}
}

// varScopeEnv walks up to the nearest Function or global ObjectRecord
// frame, the scope `var` hoists to regardless of intervening blocks.
func varScopeEnv(env *environment.Environment) *environment.Environment {
	for cur := env; cur != nil; cur = cur.Parent() {
		if cur.Kind() == environment.FunctionRecord || cur.Kind() == environment.ObjectRecord {
			return cur
		}
	}
	return env
}

// hoistVars recursively pre-declares `var` bindings reachable from node
// without crossing into a nested function or arrow body.
func (e *Executor) hoistVars(varEnv *environment.Environment, node ast.Node) {
	switch n := node.(type) {
	case *ast.VariableDeclaration:
		if n.Kind == ast.Var {
			for _, decl := range n.Declarations {
				for _, name := range bindingNames(decl.Target) {
					if _, res := varEnv.GetOwn(name); res == environment.NotFound {
						varEnv.DeclareMutable(name, value.Undefined)
					}
				}
			}
		}
	case *ast.BlockStatement:
		for _, s := range n.Body {
			e.hoistVars(varEnv, s)
		}
	case *ast.IfStatement:
		e.hoistVars(varEnv, n.Consequent)
		if n.Alternate != nil {
			e.hoistVars(varEnv, n.Alternate)
		}
	case *ast.WhileStatement:
		e.hoistVars(varEnv, n.Body)
	case *ast.DoWhileStatement:
		e.hoistVars(varEnv, n.Body)
	case *ast.ForStatement:
		if decl, ok := n.Init.(*ast.VariableDeclaration); ok {
			e.hoistVars(varEnv, decl)
		}
		e.hoistVars(varEnv, n.Body)
	case *ast.ForInStatement:
		if decl, ok := n.Left.(*ast.VariableDeclaration); ok {
			e.hoistVars(varEnv, decl)
		}
		e.hoistVars(varEnv, n.Body)
	case *ast.ForOfStatement:
		if decl, ok := n.Left.(*ast.VariableDeclaration); ok {
			e.hoistVars(varEnv, decl)
		}
		e.hoistVars(varEnv, n.Body)
	case *ast.TryStatement:
		e.hoistVars(varEnv, n.Block)
		if n.Catch != nil {
			e.hoistVars(varEnv, n.Catch.Body)
		}
		if n.Finally != nil {
			e.hoistVars(varEnv, n.Finally)
		}
	case *ast.SwitchStatement:
		for _, c := range n.Cases {
			for _, s := range c.Consequent {
				e.hoistVars(varEnv, s)
			}
		}
	case *ast.LabelledStatement:
		e.hoistVars(varEnv, n.Body)
	}
}

// bindingNames flattens every Identifier a binding Pattern introduces.
func bindingNames(p ast.Pattern) []string {
	switch pt := p.(type) {
	case *ast.Identifier:
		return []string{pt.Name}
	case *ast.ArrayPattern:
		var names []string
		for _, el := range pt.Elements {
			if el == nil {
				continue
			}
			names = append(names, bindingNames(el)...)
		}
		return names
	case *ast.ObjectPattern:
		var names []string
		for _, prop := range pt.Properties {
			if prop.Rest != nil {
				names = append(names, bindingNames(prop.Rest)...)
				continue
			}
			names = append(names, bindingNames(prop.Value)...)
		}
		return names
	case *ast.AssignmentPattern:
		return bindingNames(pt.Target)
	case *ast.RestElement:
		return bindingNames(pt.Target)
	}
	return nil
}
