package caseh

import "github.com/funvibe/funxy/internal/ast"

// explodeSwitch lowers a switch statement per spec §4.4: allocate a
// Location per case clause plus breakLoc, push a SwitchEntry, emit a
// dispatcher that compares the discriminant against each test in source
// order, then emit each clause's body at its own Location with no
// implicit break between them — fallthrough is inherited for free from
// the underlying dispatch switch's own JS fallthrough semantics, since
// each clause's Location is marked immediately after the previous one's
// body with nothing jumped in between.
func (b *Builder) explodeSwitch(n *ast.SwitchStatement, label string) {
	discriminant := b.ExplodeExpression(n.Discriminant)
	discTmp := b.NewTemp()
	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(discTmp), discriminant)))

	breakLoc := b.Alloc()
	caseLocs := make([]int, len(n.Cases))
	defaultIdx := -1
	for i, c := range n.Cases {
		caseLocs[i] = b.Alloc()
		if c.Test == nil {
			defaultIdx = i
		}
	}

	b.Leaps.PushSwitch(label, breakLoc)

	// Dispatcher: test clauses in source order, falling into default (or
	// breakLoc, if there is none) when nothing matches. A case test is not
	// expected to contain a yield — the discriminant has already been
	// evaluated once into discTmp precisely so each comparison can be
	// re-evaluated safely regardless of what else runs between dispatch
	// and a particular clause's body.
	for i, c := range n.Cases {
		if c.Test == nil {
			continue
		}
		test := b.ExplodeExpression(c.Test)
		cmp := &ast.BinaryExpression{Span: ast.Synthetic, Operator: "===", Left: ast.Ident(discTmp), Right: test}
		b.Emit(&ast.IfStatement{
			Span:       ast.Synthetic,
			Test:       cmp,
			Consequent: jumpStmt(b, caseLocs[i]),
		})
	}
	if defaultIdx >= 0 {
		b.Jump(caseLocs[defaultIdx])
	} else {
		b.Jump(breakLoc)
	}

	for i, c := range n.Cases {
		b.Mark(caseLocs[i])
		for _, s := range c.Consequent {
			b.ExplodeStatement(s)
		}
	}

	b.Leaps.Pop()
	b.Mark(breakLoc)
}
