// Package sent implements spec §4.3: replacing the meta-property
// `function.sent` anywhere in a generator body with a member access on
// the active context object, before the body reaches the Case Handler.
//
// Shallow walk, same nested-function boundary as package hoist: `function.
// sent` inside a nested ordinary function belongs to *that* function (an
// error if it isn't itself a generator, which is upstream's problem per
// spec §7), not this one.
package sent

import "github.com/funvibe/funxy/internal/ast"

// Rewrite returns a copy of body with every `function.sent` replaced by
// `<ctxIdent>._sent`.
func Rewrite(body *ast.BlockStatement, ctxIdent string) *ast.BlockStatement {
	r := &rewriter{ctxIdent: ctxIdent}
	return r.block(body)
}

type rewriter struct {
	ctxIdent string
}

func (r *rewriter) sentRef() ast.Expression {
	return ast.Dot(ast.Ident(r.ctxIdent), "_sent")
}

func (r *rewriter) block(b *ast.BlockStatement) *ast.BlockStatement {
	if b == nil {
		return nil
	}
	out := make([]ast.Statement, len(b.Body))
	for i, s := range b.Body {
		out[i] = r.statement(s)
	}
	return ast.CloneShallow(b, out)
}

func (r *rewriter) statement(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case *ast.BlockStatement:
		return r.block(n)
	case *ast.ExpressionStatement:
		n2 := *n
		n2.Expression = r.expr(n.Expression)
		return &n2
	case *ast.VariableDeclaration:
		n2 := *n
		decls := make([]*ast.VariableDeclarator, len(n.Declarations))
		for i, d := range n.Declarations {
			d2 := *d
			if d.Init != nil {
				d2.Init = r.expr(d.Init)
			}
			decls[i] = &d2
		}
		n2.Declarations = decls
		return &n2
	case *ast.IfStatement:
		n2 := *n
		n2.Test = r.expr(n.Test)
		n2.Consequent = r.statement(n.Consequent)
		if n.Alternate != nil {
			n2.Alternate = r.statement(n.Alternate)
		}
		return &n2
	case *ast.ForStatement:
		n2 := *n
		if e, ok := n.Init.(ast.Expression); ok {
			n2.Init = r.expr(e)
		}
		if n.Test != nil {
			n2.Test = r.expr(n.Test)
		}
		if n.Update != nil {
			n2.Update = r.expr(n.Update)
		}
		n2.Body = r.statement(n.Body)
		return &n2
	case *ast.ForInStatement:
		n2 := *n
		n2.Right = r.expr(n.Right)
		n2.Body = r.statement(n.Body)
		return &n2
	case *ast.ForOfStatement:
		n2 := *n
		n2.Right = r.expr(n.Right)
		n2.Body = r.statement(n.Body)
		return &n2
	case *ast.WhileStatement:
		n2 := *n
		n2.Test = r.expr(n.Test)
		n2.Body = r.statement(n.Body)
		return &n2
	case *ast.DoWhileStatement:
		n2 := *n
		n2.Body = r.statement(n.Body)
		n2.Test = r.expr(n.Test)
		return &n2
	case *ast.SwitchStatement:
		n2 := *n
		n2.Discriminant = r.expr(n.Discriminant)
		cases := make([]*ast.SwitchCase, len(n.Cases))
		for i, c := range n.Cases {
			c2 := *c
			if c.Test != nil {
				c2.Test = r.expr(c.Test)
			}
			body := make([]ast.Statement, len(c.Consequent))
			for j, cs := range c.Consequent {
				body[j] = r.statement(cs)
			}
			c2.Consequent = body
			cases[i] = &c2
		}
		n2.Cases = cases
		return &n2
	case *ast.TryStatement:
		n2 := *n
		n2.Block = r.block(n.Block)
		if n.Handler != nil {
			handler := *n.Handler
			handler.Body = r.block(n.Handler.Body)
			n2.Handler = &handler
		}
		if n.Finalizer != nil {
			n2.Finalizer = r.block(n.Finalizer)
		}
		return &n2
	case *ast.LabeledStatement:
		n2 := *n
		n2.Body = r.statement(n.Body)
		return &n2
	case *ast.ReturnStatement:
		n2 := *n
		if n.Argument != nil {
			n2.Argument = r.expr(n.Argument)
		}
		return &n2
	case *ast.ThrowStatement:
		n2 := *n
		n2.Argument = r.expr(n.Argument)
		return &n2
	case *ast.FunctionDeclaration:
		// Nested function: its own function.sent (if any) is its own affair.
		return n
	default:
		return s
	}
}

func (r *rewriter) expr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.MetaPropertyExpression:
		if n.IsFunctionSent() {
			return r.sentRef()
		}
		return n
	case *ast.YieldExpression:
		n2 := *n
		if n.Argument != nil {
			n2.Argument = r.expr(n.Argument)
		}
		return &n2
	case *ast.CallExpression:
		n2 := *n
		n2.Callee = r.expr(n.Callee)
		args := make([]ast.Expression, len(n.Arguments))
		for i, a := range n.Arguments {
			args[i] = r.expr(a)
		}
		n2.Arguments = args
		return &n2
	case *ast.MemberExpression:
		n2 := *n
		n2.Object = r.expr(n.Object)
		if n.Computed {
			n2.Property = r.expr(n.Property)
		}
		return &n2
	case *ast.AssignmentExpression:
		n2 := *n
		n2.Left = r.expr(n.Left)
		n2.Right = r.expr(n.Right)
		return &n2
	case *ast.UnaryExpression:
		n2 := *n
		n2.Argument = r.expr(n.Argument)
		return &n2
	case *ast.BinaryExpression:
		n2 := *n
		n2.Left = r.expr(n.Left)
		n2.Right = r.expr(n.Right)
		return &n2
	case *ast.LogicalExpression:
		n2 := *n
		n2.Left = r.expr(n.Left)
		n2.Right = r.expr(n.Right)
		return &n2
	case *ast.ConditionalExpression:
		n2 := *n
		n2.Test = r.expr(n.Test)
		n2.Consequent = r.expr(n.Consequent)
		n2.Alternate = r.expr(n.Alternate)
		return &n2
	case *ast.SequenceExpression:
		n2 := *n
		exprs := make([]ast.Expression, len(n.Expressions))
		for i, e := range n.Expressions {
			exprs[i] = r.expr(e)
		}
		n2.Expressions = exprs
		return &n2
	case *ast.ArrayExpression:
		n2 := *n
		elems := make([]ast.Expression, len(n.Elements))
		for i, e := range n.Elements {
			if e != nil {
				elems[i] = r.expr(e)
			}
		}
		n2.Elements = elems
		return &n2
	case *ast.ObjectExpression:
		n2 := *n
		props := make([]*ast.Property, len(n.Properties))
		for i, p := range n.Properties {
			p2 := *p
			if p.Computed {
				p2.Key = r.expr(p.Key)
			}
			if p.Kind == "init" {
				p2.Value = r.expr(p.Value)
			}
			props[i] = &p2
		}
		n2.Properties = props
		return &n2
	default:
		return e
	}
}
