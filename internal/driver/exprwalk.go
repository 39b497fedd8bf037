package driver

import "github.com/funvibe/funxy/internal/ast"

// transformExpr recursively rewrites e, replacing every generator
// FunctionExpression it finds (an anonymous/named generator in
// expression position — spec §4.5's "function expression" surface) with
// its `rt.mark(function <name>() { return rt.wrap(...) })` form in
// place, and descending into every ordinary (non-generator) function
// literal's own body to find generators nested deeper inside it.
func (p *Pass) transformExpr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case nil:
		return nil

	case *ast.FunctionExpression:
		if n.IsGenerator {
			return p.lowerExpression(n)
		}
		n2 := *n
		n2.Body = ast.CloneShallow(n.Body, p.transformStatementList(n.Body.Body))
		return &n2

	case *ast.ArrowFunctionExpression:
		n2 := *n
		switch body := n.Body.(type) {
		case *ast.BlockStatement:
			n2.Body = ast.CloneShallow(body, p.transformStatementList(body.Body))
		case ast.Expression:
			n2.Body = p.transformExpr(body)
		}
		return &n2

	case *ast.CallExpression:
		n2 := *n
		n2.Callee = p.transformExpr(n.Callee)
		args := make([]ast.Expression, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = p.transformExpr(a)
		}
		n2.Arguments = args
		return &n2

	case *ast.MemberExpression:
		n2 := *n
		n2.Object = p.transformExpr(n.Object)
		if n.Computed {
			n2.Property = p.transformExpr(n.Property)
		}
		return &n2

	case *ast.AssignmentExpression:
		n2 := *n
		n2.Left = p.transformExpr(n.Left)
		n2.Right = p.transformExpr(n.Right)
		return &n2

	case *ast.BinaryExpression:
		n2 := *n
		n2.Left = p.transformExpr(n.Left)
		n2.Right = p.transformExpr(n.Right)
		return &n2

	case *ast.LogicalExpression:
		n2 := *n
		n2.Left = p.transformExpr(n.Left)
		n2.Right = p.transformExpr(n.Right)
		return &n2

	case *ast.ConditionalExpression:
		n2 := *n
		n2.Test = p.transformExpr(n.Test)
		n2.Consequent = p.transformExpr(n.Consequent)
		n2.Alternate = p.transformExpr(n.Alternate)
		return &n2

	case *ast.UnaryExpression:
		n2 := *n
		n2.Argument = p.transformExpr(n.Argument)
		return &n2

	case *ast.SequenceExpression:
		n2 := *n
		exprs := make([]ast.Expression, len(n.Expressions))
		for i, e := range n.Expressions {
			exprs[i] = p.transformExpr(e)
		}
		n2.Expressions = exprs
		return &n2

	case *ast.ArrayExpression:
		n2 := *n
		elems := make([]ast.Expression, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = p.transformExpr(e)
		}
		n2.Elements = elems
		return &n2

	case *ast.ObjectExpression:
		n2 := *n
		props := make([]*ast.Property, len(n.Properties))
		for i, pr := range n.Properties {
			props[i] = p.transformProperty(pr)
		}
		n2.Properties = props
		return &n2

	case *ast.YieldExpression:
		// A yield cannot legally appear outside a generator body, and a
		// generator body is always routed through lowerBody (which never
		// calls back into transformExpr on its own contents) rather than
		// this walk — reaching here means a malformed input (spec §7);
		// left as-is rather than panicking over upstream's mistake.
		return n

	default:
		return e
	}
}

// transformProperty rewrites one ObjectExpression property. Kind=="method"
// with a generator Value is the "shorthand object method" surface from
// spec §4.5 step 3; everything else just has its Key/Value walked.
func (p *Pass) transformProperty(pr *ast.Property) *ast.Property {
	pr2 := *pr
	if pr.Computed {
		pr2.Key = p.transformExpr(pr.Key)
	}
	if pr.Kind == "method" {
		if fn, ok := pr.Value.(*ast.FunctionExpression); ok && fn.IsGenerator {
			pr2.Value = p.lowerObjectMethod(fn)
			return &pr2
		}
	}
	pr2.Value = p.transformExpr(pr.Value)
	return &pr2
}
