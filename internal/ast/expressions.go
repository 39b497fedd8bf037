package ast

// Identifier doubles as an Expression and a Pattern, as in real ESTree:
// the same node shape names a variable in `x` and binds one in
// `function f(x)` or `var x`.
type Identifier struct {
	Span Span
	Name string
}

func (n *Identifier) GetSpan() Span    { return n.Span }
func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }
func (n *Identifier) expressionNode()  {}
func (n *Identifier) patternNode()     {}

type NumericLiteral struct {
	Span  Span
	Value float64
	Raw   string // preserved verbatim so re-emission doesn't reformat e.g. hex literals
}

func (n *NumericLiteral) GetSpan() Span    { return n.Span }
func (n *NumericLiteral) Accept(v Visitor) { v.VisitNumericLiteral(n) }
func (n *NumericLiteral) expressionNode()  {}

type StringLiteral struct {
	Span  Span
	Value string
}

func (n *StringLiteral) GetSpan() Span    { return n.Span }
func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }
func (n *StringLiteral) expressionNode()  {}

type BooleanLiteral struct {
	Span  Span
	Value bool
}

func (n *BooleanLiteral) GetSpan() Span    { return n.Span }
func (n *BooleanLiteral) Accept(v Visitor) { v.VisitBooleanLiteral(n) }
func (n *BooleanLiteral) expressionNode()  {}

type NullLiteral struct {
	Span Span
}

func (n *NullLiteral) GetSpan() Span    { return n.Span }
func (n *NullLiteral) Accept(v Visitor) { v.VisitNullLiteral(n) }
func (n *NullLiteral) expressionNode()  {}

type ThisExpression struct {
	Span Span
}

func (n *ThisExpression) GetSpan() Span    { return n.Span }
func (n *ThisExpression) Accept(v Visitor) { v.VisitThisExpression(n) }
func (n *ThisExpression) expressionNode()  {}

// MetaPropertyExpression covers `function.sent` and `new.target`. Only
// Meta=="function", Property=="sent" is rewritten by this pass (§4.3);
// every other combination passes through untouched.
type MetaPropertyExpression struct {
	Span     Span
	Meta     string
	Property string
}

func (n *MetaPropertyExpression) GetSpan() Span    { return n.Span }
func (n *MetaPropertyExpression) Accept(v Visitor) { v.VisitMetaPropertyExpression(n) }
func (n *MetaPropertyExpression) expressionNode()  {}

// IsFunctionSent reports whether this meta-property is the `function.sent`
// form the rewriter targets.
func (n *MetaPropertyExpression) IsFunctionSent() bool {
	return n != nil && n.Meta == "function" && n.Property == "sent"
}

// YieldExpression models both `yield x` (Delegate=false) and `yield* x`
// (Delegate=true). Argument may be nil for a bare `yield`.
type YieldExpression struct {
	Span     Span
	Argument Expression
	Delegate bool
}

func (n *YieldExpression) GetSpan() Span    { return n.Span }
func (n *YieldExpression) Accept(v Visitor) { v.VisitYieldExpression(n) }
func (n *YieldExpression) expressionNode()  {}

type CallExpression struct {
	Span      Span
	Callee    Expression
	Arguments []Expression
}

func (n *CallExpression) GetSpan() Span    { return n.Span }
func (n *CallExpression) Accept(v Visitor) { v.VisitCallExpression(n) }
func (n *CallExpression) expressionNode()  {}

type MemberExpression struct {
	Span     Span
	Object   Expression
	Property Expression
	Computed bool // true for obj[expr], false for obj.ident
}

func (n *MemberExpression) GetSpan() Span    { return n.Span }
func (n *MemberExpression) Accept(v Visitor) { v.VisitMemberExpression(n) }
func (n *MemberExpression) expressionNode()  {}

// UnaryExpression covers prefix operators: `!x`, `-x`, `+x`, `~x`,
// `typeof x`, `void x`, `delete x`. Never itself a yield point, but its
// Argument can contain one (`!(yield x)`).
type UnaryExpression struct {
	Span     Span
	Operator string
	Argument Expression
}

func (n *UnaryExpression) GetSpan() Span    { return n.Span }
func (n *UnaryExpression) Accept(v Visitor) { v.VisitUnaryExpression(n) }
func (n *UnaryExpression) expressionNode()  {}

type AssignmentExpression struct {
	Span     Span
	Operator string // "=", "+=", ...
	Left     Expression
	Right    Expression
}

func (n *AssignmentExpression) GetSpan() Span    { return n.Span }
func (n *AssignmentExpression) Accept(v Visitor) { v.VisitAssignmentExpression(n) }
func (n *AssignmentExpression) expressionNode()  {}

type BinaryExpression struct {
	Span     Span
	Operator string
	Left     Expression
	Right    Expression
}

func (n *BinaryExpression) GetSpan() Span    { return n.Span }
func (n *BinaryExpression) Accept(v Visitor) { v.VisitBinaryExpression(n) }
func (n *BinaryExpression) expressionNode()  {}

// LogicalExpression is split from BinaryExpression, as in ESTree, because
// `&&`/`||`/`??` short-circuit: a yield on the right-hand side only spills
// conditionally, which the Case Handler's expression explosion treats
// like a ConditionalExpression rather than a plain eager binary op.
type LogicalExpression struct {
	Span     Span
	Operator string // "&&", "||", "??"
	Left     Expression
	Right    Expression
}

func (n *LogicalExpression) GetSpan() Span    { return n.Span }
func (n *LogicalExpression) Accept(v Visitor) { v.VisitLogicalExpression(n) }
func (n *LogicalExpression) expressionNode()  {}

type ConditionalExpression struct {
	Span       Span
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (n *ConditionalExpression) GetSpan() Span    { return n.Span }
func (n *ConditionalExpression) Accept(v Visitor) { v.VisitConditionalExpression(n) }
func (n *ConditionalExpression) expressionNode()  {}

type SequenceExpression struct {
	Span        Span
	Expressions []Expression
}

func (n *SequenceExpression) GetSpan() Span    { return n.Span }
func (n *SequenceExpression) Accept(v Visitor) { v.VisitSequenceExpression(n) }
func (n *SequenceExpression) expressionNode()  {}

type ArrayExpression struct {
	Span     Span
	Elements []Expression // a nil element models an elided slot: [1, , 3]
}

func (n *ArrayExpression) GetSpan() Span    { return n.Span }
func (n *ArrayExpression) Accept(v Visitor) { v.VisitArrayExpression(n) }
func (n *ArrayExpression) expressionNode()  {}

type ObjectExpression struct {
	Span       Span
	Properties []*Property
}

func (n *ObjectExpression) GetSpan() Span    { return n.Span }
func (n *ObjectExpression) Accept(v Visitor) { v.VisitObjectExpression(n) }
func (n *ObjectExpression) expressionNode()  {}

// Property is a single `key: value` (or shorthand method) entry of an
// ObjectExpression. Kind=="method" with IsGenerator set true on the
// FunctionExpression value is the "shorthand object method" generator
// surface spec §4.5 names as a transform entry point.
type Property struct {
	Span      Span
	Key       Expression
	Value     Expression
	Computed  bool
	Kind      string // "init", "method", "get", "set"
	Shorthand bool
}

func (n *Property) GetSpan() Span    { return n.Span }
func (n *Property) Accept(v Visitor) { v.VisitProperty(n) }
func (n *Property) expressionNode()  {}
