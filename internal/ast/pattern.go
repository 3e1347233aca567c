package ast

import (
	"strings"

	"github.com/quill-lang/quill/internal/token"
)

// Pattern is a binding target: a plain identifier or a destructuring
// shape, used by declarations, function parameters, and assignment
// targets (spec.md §4.4's "applying destructuring ... in declaration
// order").
type Pattern interface {
	Node
	patternNode()
}

func (*Identifier) patternNode()         {}
func (*ArrayPattern) patternNode()       {}
func (*ObjectPattern) patternNode()      {}
func (*AssignmentPattern) patternNode()  {}
func (*RestElement) patternNode()        {}

// ArrayPattern destructures an iterable/array-like into Elements; a nil
// entry is an elision (`[, , x]`). The last element may be a
// *RestElement.
type ArrayPattern struct {
	Token    token.Token
	Elements []Pattern
}

func (a *ArrayPattern) Pos() token.Position { return a.Token.Pos }
func (a *ArrayPattern) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if e == nil {
			continue
		}
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPatternProperty is one destructured property: `{ key: target }`
// or shorthand `{ key }`. A trailing `...rest` is represented by setting
// Rest instead of populating Key/Value.
type ObjectPatternProperty struct {
	Key      Expression
	Value    Pattern
	Computed bool
	Shorthand bool
	Rest     Pattern // non-nil only for the trailing `...rest` entry
}

type ObjectPattern struct {
	Token      token.Token
	Properties []ObjectPatternProperty
}

func (o *ObjectPattern) Pos() token.Position { return o.Token.Pos }
func (o *ObjectPattern) String() string {
	parts := make([]string, 0, len(o.Properties))
	for _, p := range o.Properties {
		if p.Rest != nil {
			parts = append(parts, "..."+p.Rest.String())
			continue
		}
		parts = append(parts, p.Key.String()+": "+p.Value.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// AssignmentPattern is a destructuring target with a default value:
// `{ x = 1 }` or `[a = 2]`.
type AssignmentPattern struct {
	Token   token.Token
	Target  Pattern
	Default Expression
}

func (a *AssignmentPattern) Pos() token.Position { return a.Token.Pos }
func (a *AssignmentPattern) String() string       { return a.Target.String() + " = " + a.Default.String() }

// RestElement is the trailing `...rest` inside an ArrayPattern or a
// function parameter list's rest parameter.
type RestElement struct {
	Token  token.Token
	Target Pattern
}

func (r *RestElement) Pos() token.Position { return r.Token.Pos }
func (r *RestElement) String() string      { return "..." + r.Target.String() }
