package caseh

import "github.com/funvibe/funxy/internal/ast"

// explodeWhile lowers `while (test) body`, per spec §4.4: allocate
// continueLoc/breakLoc, push a LoopEntry, emit the test and its jump,
// explode the body, jump back to continueLoc, mark breakLoc, pop.
//
// label is "" unless this loop was reached through a LabeledStatement
// immediately wrapping it (`outer: while (...)`), in which case it is
// registered as the loop entry's own label so `continue outer;` resolves
// here directly rather than needing a second LabeledEntry.
func (b *Builder) explodeWhile(n *ast.WhileStatement, label string) {
	continueLoc := b.Alloc()
	breakLoc := b.Alloc()

	b.Jump(continueLoc)
	b.Mark(continueLoc)
	b.Leaps.PushLoop(label, breakLoc, continueLoc)

	test := b.ExplodeExpression(n.Test)
	b.Emit(&ast.IfStatement{
		Span: ast.Synthetic,
		Test: ast.Not(test),
		Consequent: ast.Block(
			ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(breakLoc))),
			&ast.BreakStatement{Span: ast.Synthetic},
		),
	})
	b.ExplodeStatement(n.Body)
	b.Jump(continueLoc)

	b.Leaps.Pop()
	b.Mark(breakLoc)
}

// explodeDoWhile lowers `do body while (test)`: the body always runs at
// least once before the test is reached, so the loop head is the body
// itself rather than the test.
func (b *Builder) explodeDoWhile(n *ast.DoWhileStatement, label string) {
	bodyLoc := b.Alloc()
	continueLoc := b.Alloc()
	breakLoc := b.Alloc()

	b.Jump(bodyLoc)
	b.Mark(bodyLoc)
	b.Leaps.PushLoop(label, breakLoc, continueLoc)
	b.ExplodeStatement(n.Body)

	b.Mark(continueLoc)
	test := b.ExplodeExpression(n.Test)
	b.Emit(&ast.IfStatement{
		Span:       ast.Synthetic,
		Test:       test,
		Consequent: ast.Block(ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(bodyLoc))), &ast.BreakStatement{Span: ast.Synthetic}),
	})
	b.Jump(breakLoc)

	b.Leaps.Pop()
	b.Mark(breakLoc)
}

// explodeFor lowers the C-style `for (init; test; update) body`. init has
// already had any `var` stripped by the Hoister before this stage runs,
// so it is either nil, a plain Expression, or (rarely) a let/const
// VariableDeclaration that never needs spilling because for-loop headers
// with block-scoped declarations containing a yield are vanishingly rare
// and, when they occur, fall through ExplodeStatement's default case.
func (b *Builder) explodeFor(n *ast.ForStatement, label string) {
	if n.Init != nil {
		if initExpr, ok := n.Init.(ast.Expression); ok {
			b.Emit(ast.ExprStmt(b.ExplodeExpression(initExpr)))
		} else if decl, ok := n.Init.(*ast.VariableDeclaration); ok {
			b.ExplodeStatement(decl)
		}
	}

	testLoc := b.Alloc()
	continueLoc := b.Alloc()
	breakLoc := b.Alloc()

	b.Jump(testLoc)
	b.Mark(testLoc)
	b.Leaps.PushLoop(label, breakLoc, continueLoc)

	if n.Test != nil {
		test := b.ExplodeExpression(n.Test)
		b.Emit(&ast.IfStatement{
			Span: ast.Synthetic,
			Test: ast.Not(test),
			Consequent: ast.Block(
				ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(breakLoc))),
				&ast.BreakStatement{Span: ast.Synthetic},
			),
		})
	}
	b.ExplodeStatement(n.Body)
	b.Mark(continueLoc)
	if n.Update != nil {
		b.Emit(ast.ExprStmt(b.ExplodeExpression(n.Update)))
	}
	b.Jump(testLoc)

	b.Leaps.Pop()
	b.Mark(breakLoc)
}

// forInOf bundles the shared shape of `for (left in/of right) body`.
type forInOf struct {
	left   ast.Node
	right  ast.Expression
	body   ast.Statement
	values bool // true for for-of (runtime.values), false for for-in (runtime.keys)
}

// explodeForInOf lowers both for-in and for-of via the runtime's
// enumerator helper, per spec §4.4 ("for-in uses the runtime's keys()
// helper to enumerate keys safely across yields") generalized to for-of
// with runtime.values() — see DESIGN.md's Open Question on this
// extension. The enumerator is itself a plain (non-generator) iterator
// object threaded through a TempVar so resuming after a yield inside the
// body picks up exactly where enumeration left off.
func (b *Builder) explodeForInOf(f forInOf, label string) {
	helper := "keys"
	if f.values {
		helper = "values"
	}
	iterTmp := b.NewTemp()
	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(iterTmp),
		ast.Call(ast.Dot(b.Runtime(), helper), b.ExplodeExpression(f.right)))))

	testLoc := b.Alloc()
	continueLoc := b.Alloc()
	breakLoc := b.Alloc()
	stepTmp := b.NewTemp()

	b.Jump(testLoc)
	b.Mark(testLoc)
	b.Leaps.PushLoop(label, breakLoc, continueLoc)

	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(stepTmp), ast.Call(ast.Dot(ast.Ident(iterTmp), "next")))))
	b.Emit(&ast.IfStatement{
		Span: ast.Synthetic,
		Test: ast.Dot(ast.Ident(stepTmp), "done"),
		Consequent: ast.Block(
			ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(breakLoc))),
			&ast.BreakStatement{Span: ast.Synthetic},
		),
	})
	b.Emit(assignLoopVar(f.left, ast.Dot(ast.Ident(stepTmp), "value")))
	b.ExplodeStatement(f.body)
	b.Jump(continueLoc)
	b.Mark(continueLoc)
	b.Jump(testLoc)

	b.Leaps.Pop()
	b.Mark(breakLoc)
}

// assignLoopVar builds the statement that binds one enumerated value to
// the loop's left-hand target, whether it is a bare identifier (already
// hoisted by the time the Case Handler sees it, since the Hoister strips
// `var` from for-in/for-of headers the same way it does plain `var`) or a
// freshly declared let/const binding scoped to the loop body.
func assignLoopVar(left ast.Node, value ast.Expression) ast.Statement {
	switch l := left.(type) {
	case ast.Expression:
		return ast.ExprStmt(ast.Assign(l, value))
	case *ast.VariableDeclaration:
		if len(l.Declarations) == 1 {
			return &ast.VariableDeclaration{
				Span: ast.Synthetic, Kind: l.Kind,
				Declarations: []*ast.VariableDeclarator{{Span: ast.Synthetic, Id: l.Declarations[0].Id, Init: value}},
			}
		}
	}
	return &ast.EmptyStatement{Span: ast.Synthetic}
}
