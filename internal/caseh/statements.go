package caseh

import "github.com/funvibe/funxy/internal/ast"

// ExplodeBlock explodes each statement of a block in order into the
// Builder's current case (spec §4.4: "BlockStatement: explode each child
// in order").
func (b *Builder) ExplodeBlock(block *ast.BlockStatement) {
	if block == nil {
		return
	}
	for _, s := range block.Body {
		b.ExplodeStatement(s)
	}
}

// ExplodeStatement dispatches on statement kind, per spec §4.4's
// "Statement explosion, by kind" table.
func (b *Builder) ExplodeStatement(s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		b.ExplodeBlock(n)

	case *ast.ExpressionStatement:
		result := b.ExplodeExpression(n.Expression)
		b.Emit(ast.ExprStmt(result))

	case *ast.VariableDeclaration:
		// Only let/const reach the Case Handler — the Hoister already
		// stripped every `var` into plain assignments before this stage runs.
		for _, d := range n.Declarations {
			if d.Init == nil {
				continue
			}
			init := b.ExplodeExpression(d.Init)
			b.Emit(&ast.VariableDeclaration{
				Span: ast.Synthetic, Kind: n.Kind,
				Declarations: []*ast.VariableDeclarator{{Span: ast.Synthetic, Id: d.Id, Init: init}},
			})
		}

	case *ast.EmptyStatement:
		// nothing to emit

	case *ast.IfStatement:
		b.explodeIf(n)

	case *ast.WhileStatement:
		b.explodeWhile(n, "")

	case *ast.DoWhileStatement:
		b.explodeDoWhile(n, "")

	case *ast.ForStatement:
		b.explodeFor(n, "")

	case *ast.ForInStatement:
		b.explodeForInOf(forInOf{left: n.Left, right: n.Right, body: n.Body, values: false}, "")

	case *ast.ForOfStatement:
		b.explodeForInOf(forInOf{left: n.Left, right: n.Right, body: n.Body, values: true}, "")

	case *ast.SwitchStatement:
		b.explodeSwitch(n, "")

	case *ast.LabeledStatement:
		b.explodeLabeled(n)

	case *ast.BreakStatement:
		b.explodeBreak(n)

	case *ast.ContinueStatement:
		b.explodeContinue(n)

	case *ast.ReturnStatement:
		b.explodeReturn(n)

	case *ast.ThrowStatement:
		arg := b.ExplodeExpression(n.Argument)
		b.Emit(&ast.ThrowStatement{Span: ast.Synthetic, Argument: arg})

	case *ast.TryStatement:
		b.explodeTry(n)

	case *ast.FunctionDeclaration:
		// A nested ordinary function declaration is left exactly as written
		// — it is not itself being lowered (only the enclosing generator
		// is), so it is emitted verbatim into whichever case it lexically
		// falls in.
		b.Emit(n)

	default:
		b.Emit(s)
	}
}

func (b *Builder) explodeIf(n *ast.IfStatement) {
	test := b.ExplodeExpression(n.Test)
	elseLoc := b.Alloc()
	afterLoc := b.Alloc()

	b.Emit(&ast.IfStatement{
		Span: ast.Synthetic,
		Test: ast.Not(test),
		Consequent: ast.Block(
			ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(elseLoc))),
			&ast.BreakStatement{Span: ast.Synthetic},
		),
	})
	b.ExplodeStatement(n.Consequent)
	b.Jump(afterLoc)
	b.Mark(elseLoc)
	if n.Alternate != nil {
		b.ExplodeStatement(n.Alternate)
	}
	b.Mark(afterLoc)
}

// explodeReturn emits `_ctx.abrupt("return", arg)` — spec §4.4: a return
// always routes through every enclosing finalizer (FinallyEntriesForReturn)
// regardless of whether one is actually in the way, since abrupt() is the
// runtime's job to route correctly; the pass only has to ask for the
// enclosing finalizers to be registered in the try-locs list, which
// happens at PushTry time, not here.
func (b *Builder) explodeReturn(n *ast.ReturnStatement) {
	arg := ast.Expression(ast.Ident("undefined"))
	if n.Argument != nil {
		arg = b.ExplodeExpression(n.Argument)
	}
	b.Emit(ast.Ret(ast.Call(b.CtxField("abrupt"), ast.Str("return"), arg)))
}
