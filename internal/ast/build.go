package ast

import "strconv"

// The pass synthesizes a lot of small nodes (dispatch tests, _ctx member
// accesses, wrap() calls). These helpers keep call sites to one line each
// and always stamp Synthetic, so a glance at the span tells a later pass
// whether a node came from the original source or from this transform.

func Ident(name string) *Identifier { return &Identifier{Span: Synthetic, Name: name} }

func NumLoc(loc int) *NumericLiteral {
	return &NumericLiteral{Span: Synthetic, Value: float64(loc), Raw: strconv.Itoa(loc)}
}

func Str(s string) *StringLiteral { return &StringLiteral{Span: Synthetic, Value: s} }

// Member builds `object.property` (or `object[property]` when computed).
func Member(object, property Expression, computed bool) *MemberExpression {
	return &MemberExpression{Span: Synthetic, Object: object, Property: property, Computed: computed}
}

// Dot is shorthand for the overwhelmingly common `ident.field` case.
func Dot(object Expression, field string) *MemberExpression {
	return Member(object, Ident(field), false)
}

func Call(callee Expression, args ...Expression) *CallExpression {
	return &CallExpression{Span: Synthetic, Callee: callee, Arguments: args}
}

func Assign(left, right Expression) *AssignmentExpression {
	return &AssignmentExpression{Span: Synthetic, Operator: "=", Left: left, Right: right}
}

func ExprStmt(e Expression) *ExpressionStatement {
	return &ExpressionStatement{Span: Synthetic, Expression: e}
}

func Block(stmts ...Statement) *BlockStatement {
	return &BlockStatement{Span: Synthetic, Body: stmts}
}

func Ret(arg Expression) *ReturnStatement {
	return &ReturnStatement{Span: Synthetic, Argument: arg}
}

func Not(e Expression) *UnaryExpression {
	return &UnaryExpression{Span: Synthetic, Operator: "!", Argument: e}
}

func Num(v int) *NumericLiteral {
	return NumLoc(v)
}

// CloneShallow rebuilds a BlockStatement with a new Body slice, without
// mutating the caller's original node — every pass stage hands back a new
// tree rather than editing in place, matching how the rest of this
// package only ever constructs nodes via struct literals.
func CloneShallow(b *BlockStatement, body []Statement) *BlockStatement {
	return &BlockStatement{Span: b.Span, Body: body}
}
