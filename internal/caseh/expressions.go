package caseh

import "github.com/funvibe/funxy/internal/ast"

// ContainsYield reports whether e transitively contains a YieldExpression,
// without descending into a nested function literal's body (spec §4.4:
// "Any expression that (transitively) contains yield ... is exploded").
// A nested FunctionExpression/ArrowFunctionExpression is its own scope for yield purposes (and, for the arrow case, can't
// legally contain one at all — see package sent's boundary note).
func ContainsYield(e ast.Expression) bool {
	switch n := e.(type) {
	case nil:
		return false
	case *ast.YieldExpression:
		return true
	case *ast.Identifier, *ast.NumericLiteral, *ast.StringLiteral,
		*ast.BooleanLiteral, *ast.NullLiteral, *ast.ThisExpression,
		*ast.MetaPropertyExpression,
		*ast.FunctionExpression, *ast.ArrowFunctionExpression:
		return false
	case *ast.UnaryExpression:
		return ContainsYield(n.Argument)
	case *ast.CallExpression:
		if ContainsYield(n.Callee) {
			return true
		}
		for _, a := range n.Arguments {
			if ContainsYield(a) {
				return true
			}
		}
		return false
	case *ast.MemberExpression:
		return ContainsYield(n.Object) || (n.Computed && ContainsYield(n.Property))
	case *ast.AssignmentExpression:
		return ContainsYield(n.Left) || ContainsYield(n.Right)
	case *ast.BinaryExpression:
		return ContainsYield(n.Left) || ContainsYield(n.Right)
	case *ast.LogicalExpression:
		return ContainsYield(n.Left) || ContainsYield(n.Right)
	case *ast.ConditionalExpression:
		return ContainsYield(n.Test) || ContainsYield(n.Consequent) || ContainsYield(n.Alternate)
	case *ast.SequenceExpression:
		for _, s := range n.Expressions {
			if ContainsYield(s) {
				return true
			}
		}
		return false
	case *ast.ArrayExpression:
		for _, el := range n.Elements {
			if ContainsYield(el) {
				return true
			}
		}
		return false
	case *ast.ObjectExpression:
		for _, p := range n.Properties {
			if p.Computed && ContainsYield(p.Key) {
				return true
			}
			if p.Kind == "init" && ContainsYield(p.Value) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// isAtom reports whether e is cheap/safe enough to reference again after a
// suspension without spilling it into a TempVar first (a bare identifier
// or literal). Anything else that must survive a yield gets spilled.
func isAtom(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.NumericLiteral, *ast.StringLiteral,
		*ast.BooleanLiteral, *ast.NullLiteral, *ast.ThisExpression:
		return true
	default:
		return false
	}
}

// ExplodeExpression is the expression-explosion walk from spec §4.4: it
// returns an equivalent expression with every yield/yield* lowered away,
// emitting whatever case-splitting statements doing so requires into the
// Builder's current case, and spilling any earlier-evaluated operand
// whose value must survive a later sibling's suspension.
func (b *Builder) ExplodeExpression(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	if !ContainsYield(e) {
		return e
	}
	switch n := e.(type) {
	case *ast.YieldExpression:
		return b.explodeYield(n)

	case *ast.UnaryExpression:
		n2 := *n
		n2.Argument = b.ExplodeExpression(n.Argument)
		return &n2

	case *ast.CallExpression:
		operands := append([]ast.Expression{n.Callee}, n.Arguments...)
		results := b.explodeOperandsLeftToRight(operands)
		n2 := *n
		n2.Callee = results[0]
		n2.Arguments = results[1:]
		return &n2

	case *ast.MemberExpression:
		if !n.Computed {
			n2 := *n
			n2.Object = b.ExplodeExpression(n.Object)
			return &n2
		}
		results := b.explodeOperandsLeftToRight([]ast.Expression{n.Object, n.Property})
		n2 := *n
		n2.Object, n2.Property = results[0], results[1]
		return &n2

	case *ast.AssignmentExpression:
		// The left-hand side of a plain identifier/member assignment is
		// always evaluated for its reference, not its value, so only the
		// right-hand side needs exploding in the common case.
		n2 := *n
		n2.Right = b.ExplodeExpression(n.Right)
		return &n2

	case *ast.BinaryExpression:
		results := b.explodeOperandsLeftToRight([]ast.Expression{n.Left, n.Right})
		n2 := *n
		n2.Left, n2.Right = results[0], results[1]
		return &n2

	case *ast.LogicalExpression:
		return b.explodeLogical(n)

	case *ast.ConditionalExpression:
		return b.explodeConditional(n)

	case *ast.SequenceExpression:
		results := b.explodeOperandsLeftToRight(n.Expressions)
		n2 := *n
		n2.Expressions = results
		return &n2

	case *ast.ArrayExpression:
		results := b.explodeOperandsLeftToRight(n.Elements)
		n2 := *n
		n2.Elements = results
		return &n2

	case *ast.ObjectExpression:
		// Spread across properties in source order; only "init" values and
		// computed keys can carry a yield.
		props := make([]*ast.Property, len(n.Properties))
		var pending []int
		for i, p := range n.Properties {
			p2 := *p
			props[i] = &p2
			carries := (p.Computed && ContainsYield(p.Key)) || (p.Kind == "init" && ContainsYield(p.Value))
			if carries {
				b.spillPending(props, pending)
				pending = nil
				if p.Computed {
					p2.Key = b.ExplodeExpression(p.Key)
				}
				if p.Kind == "init" {
					p2.Value = b.ExplodeExpression(p.Value)
				}
			} else {
				pending = append(pending, i)
			}
		}
		n2 := *n
		n2.Properties = props
		return &n2

	default:
		return e
	}
}

// explodeOperandsLeftToRight evaluates operands in order, spilling any
// earlier pure (non-atomic) operand into a TempVar the moment a later
// operand turns out to contain a yield — its value must survive the
// suspension that yield causes. Operands may be nil (ArrayExpression
// elisions); nil stays nil.
func (b *Builder) explodeOperandsLeftToRight(operands []ast.Expression) []ast.Expression {
	results := make([]ast.Expression, len(operands))
	var pending []int
	for i, op := range operands {
		if op == nil {
			continue
		}
		if ContainsYield(op) {
			b.spillPendingExprs(results, pending)
			pending = nil
			results[i] = b.ExplodeExpression(op)
		} else {
			results[i] = op
			pending = append(pending, i)
		}
	}
	return results
}

func (b *Builder) spillPendingExprs(results []ast.Expression, pending []int) {
	for _, j := range pending {
		if isAtom(results[j]) {
			continue
		}
		tmp := b.NewTemp()
		b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(tmp), results[j])))
		results[j] = ast.Ident(tmp)
	}
}

func (b *Builder) spillPending(props []*ast.Property, pending []int) {
	for _, j := range pending {
		p := props[j]
		if p.Kind != "init" || isAtom(p.Value) {
			continue
		}
		tmp := b.NewTemp()
		b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(tmp), p.Value)))
		p.Value = ast.Ident(tmp)
	}
}

// explodeYield lowers `yield x` / `yield* x` per spec §4.4: a plain yield
// becomes a `_ctx.next = resumeLoc; return <value>;` pair followed by a
// new marked case whose value, once resumed, is `_ctx.sent`; a delegating
// yield* becomes a `_ctx.delegateYield(iterable, slot, resumeLoc)` call
// whose value is the named context slot.
func (b *Builder) explodeYield(y *ast.YieldExpression) ast.Expression {
	arg := b.ExplodeExpression(y.Argument)
	if arg == nil {
		arg = ast.Ident("undefined")
	}
	resumeLoc := b.Alloc()
	if y.Delegate {
		slot := b.NewDelegateSlot()
		b.SetNext(resumeLoc)
		b.Emit(ast.Ret(ast.Call(b.CtxField("delegateYield"), arg, ast.Str(slot), ast.NumLoc(resumeLoc))))
		b.Mark(resumeLoc)
		return b.CtxField(slot)
	}
	b.SetNext(resumeLoc)
	b.Emit(ast.Ret(arg))
	b.Mark(resumeLoc)
	return b.CtxField("sent")
}

// explodeLogical lowers `a && b` / `a || b` / `a ?? b` when b contains a
// yield: a is evaluated once into a TempVar, then b is conditionally
// exploded into the same slot, mirroring how explodeConditional handles
// `a ? b : c` — a logical operator with a suspending right-hand side is
// just a conditional in disguise.
func (b *Builder) explodeLogical(n *ast.LogicalExpression) ast.Expression {
	left := b.ExplodeExpression(n.Left)
	resultTmp := b.NewTemp()
	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(resultTmp), left)))

	var skipRight ast.Expression
	switch n.Operator {
	case "&&":
		skipRight = ast.Not(ast.Ident(resultTmp)) // falsy -> short-circuit, keep left
	case "||":
		skipRight = ast.Ident(resultTmp) // truthy -> short-circuit, keep left
	default: // "??"
		skipRight = &ast.BinaryExpression{Span: ast.Synthetic, Operator: "!=", Left: ast.Ident(resultTmp), Right: &ast.NullLiteral{Span: ast.Synthetic}}
	}

	afterLoc := b.Alloc()
	b.Emit(&ast.IfStatement{
		Span: ast.Synthetic,
		Test: skipRight,
		Consequent: &ast.BlockStatement{Span: ast.Synthetic, Body: []ast.Statement{
			jumpStmt(b, afterLoc),
		}},
	})
	right := b.ExplodeExpression(n.Right)
	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(resultTmp), right)))
	b.Mark(afterLoc)
	return ast.Ident(resultTmp)
}

// explodeConditional lowers `test ? cons : alt` when either branch
// contains a yield, since only one branch may execute (spec §4.4's note
// that a conditional containing a yield is exploded like a statement,
// not eagerly evaluated like a pure operand list).
func (b *Builder) explodeConditional(n *ast.ConditionalExpression) ast.Expression {
	test := b.ExplodeExpression(n.Test)
	resultTmp := b.NewTemp()
	elseLoc := b.Alloc()
	afterLoc := b.Alloc()

	b.Emit(&ast.IfStatement{
		Span: ast.Synthetic,
		Test: ast.Not(test),
		Consequent: &ast.BlockStatement{Span: ast.Synthetic, Body: []ast.Statement{
			jumpStmt(b, elseLoc),
		}},
	})
	cons := b.ExplodeExpression(n.Consequent)
	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(resultTmp), cons)))
	b.Emit(jumpStmt(b, afterLoc))
	b.Mark(elseLoc)
	alt := b.ExplodeExpression(n.Alternate)
	b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(resultTmp), alt)))
	b.Mark(afterLoc)
	return ast.Ident(resultTmp)
}

// jumpStmt builds the two-statement `_ctx.next = loc; break;` jump as a
// single ast.Statement list wrapped for use inside a synthesized
// IfStatement consequent (which — like the runtime dispatch switch body —
// needs statements as values, not side effects on the Builder's current
// case).
func jumpStmt(b *Builder, loc int) ast.Statement {
	return ast.Block(
		ast.ExprStmt(ast.Assign(b.CtxField("next"), ast.NumLoc(loc))),
		&ast.BreakStatement{Span: ast.Synthetic},
	)
}
