package symbols

import (
	"dsense/internal/ast"
	"dsense/internal/source"
)

// Shape marker tokens. Literals are recorded by lexical class, never by
// value, so later inference can tell `10.x` from `int.x`.
const (
	ShapeInt         = "<int>"
	ShapeFloat       = "<float>"
	ShapeString      = "<string>"
	ShapeChar        = "<char>"
	ShapeBool        = "<bool>"
	ShapeIndex       = "<index>"
	ShapeLoopBinding = "<loop-binding>"
)

// captureShape records the syntactic skeleton of an initializer expression
// for later type inference. Nothing is evaluated: identifiers are appended as
// written, literals as kind markers, indexing as a marker after its operand,
// and call argument lists are never descended into. With loopBinding set, a
// trailing marker denotes that the shape came from a loop binding.
//
// The capturer is a per-call value, so concurrent or nested captures can
// never bleed into each other.
func captureShape(tree *ast.Tree, id ast.ExprID, loopBinding bool) []source.StringID {
	if tree == nil || !id.IsValid() {
		return nil
	}
	c := shapeCapturer{tree: tree}
	c.walk(id)
	if loopBinding {
		c.out = append(c.out, tree.Strings.Intern(ShapeLoopBinding))
	}
	return c.out
}

type shapeCapturer struct {
	tree *ast.Tree
	out  []source.StringID
}

func (c *shapeCapturer) walk(id ast.ExprID) {
	expr := c.tree.Exprs.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		if data, ok := c.tree.Exprs.Ident(id); ok && data != nil {
			c.out = append(c.out, data.Name)
		}
	case ast.ExprLit:
		if data, ok := c.tree.Exprs.Lit(id); ok && data != nil {
			c.out = append(c.out, c.tree.Strings.Intern(litMarker(data.Kind)))
		}
	case ast.ExprMember:
		if data, ok := c.tree.Exprs.Member(id); ok && data != nil {
			c.walk(data.Target)
			c.out = append(c.out, data.Name)
		}
	case ast.ExprIndex:
		if data, ok := c.tree.Exprs.Index(id); ok && data != nil {
			c.walk(data.Target)
			c.out = append(c.out, c.tree.Strings.Intern(ShapeIndex))
		}
	case ast.ExprCall:
		// Call arguments do not contribute to the shape.
		if data, ok := c.tree.Exprs.Call(id); ok && data != nil {
			c.walk(data.Target)
		}
	case ast.ExprUnary:
		if data, ok := c.tree.Exprs.Unary(id); ok && data != nil {
			c.walk(data.Operand)
		}
	case ast.ExprParen:
		if data, ok := c.tree.Exprs.Paren(id); ok && data != nil {
			c.walk(data.Inner)
		}
	case ast.ExprOpaque:
	}
}

func litMarker(kind ast.LitKind) string {
	switch kind {
	case ast.LitFloat:
		return ShapeFloat
	case ast.LitString:
		return ShapeString
	case ast.LitChar:
		return ShapeChar
	case ast.LitBool:
		return ShapeBool
	default:
		return ShapeInt
	}
}
