package ast

// FunctionDeclaration is a named `function f(...) {...}` (or `function* f`)
// at statement position. One of the four syntactic positions the Driver's
// discovery predicate matches (spec §4.5 step: function declaration).
type FunctionDeclaration struct {
	Span        Span
	Id          *Identifier // never nil for a declaration
	Params      []Pattern
	Body        *BlockStatement
	IsGenerator bool
	Async       bool
}

func (n *FunctionDeclaration) GetSpan() Span    { return n.Span }
func (n *FunctionDeclaration) Accept(v Visitor) { v.VisitFunctionDeclaration(n) }
func (n *FunctionDeclaration) statementNode()   {}

// FunctionExpression covers named and anonymous function expressions,
// including the function produced by a shorthand object method (wrapped
// by the enclosing Property) and a class's generator method body (wrapped
// by the enclosing MethodDefinition).
type FunctionExpression struct {
	Span        Span
	Id          *Identifier // nil for an anonymous expression
	Params      []Pattern
	Body        *BlockStatement
	IsGenerator bool
	Async       bool
}

func (n *FunctionExpression) GetSpan() Span    { return n.Span }
func (n *FunctionExpression) Accept(v Visitor) { v.VisitFunctionExpression(n) }
func (n *FunctionExpression) expressionNode()  {}

// ArrowFunctionExpression is never transformed: arrows cannot be
// generators in ECMAScript, so the Driver's discovery predicate does not
// descend looking for is_generator inside one (it still must not skip
// over it when discovering generators in an *enclosing* scope, since an
// arrow body can itself contain statements with nested ordinary functions).
type ArrowFunctionExpression struct {
	Span   Span
	Params []Pattern
	Body   Node // *BlockStatement, or an Expression for concise-body arrows
	Async  bool
}

func (n *ArrowFunctionExpression) GetSpan() Span    { return n.Span }
func (n *ArrowFunctionExpression) Accept(v Visitor) { v.VisitArrowFunctionExpression(n) }
func (n *ArrowFunctionExpression) expressionNode()  {}

// MethodDefinition is a class member: `*m() {...}`, `static *m() {...}`.
// Whether it is a generator is Value.IsGenerator; there is no separate
// flag on this node.
type MethodDefinition struct {
	Span     Span
	Key      Expression
	Value    *FunctionExpression
	Kind     string // "method", "get", "set", "constructor"
	Static   bool
	Computed bool
}

func (n *MethodDefinition) GetSpan() Span    { return n.Span }
func (n *MethodDefinition) Accept(v Visitor) { v.VisitMethodDefinition(n) }
func (n *MethodDefinition) statementNode()   {} // appears in a ClassBody's member list

// ExportDefaultDeclaration wraps `export default <decl-or-expr>`.
// Declaration is either a *FunctionDeclaration/*FunctionExpression (the
// generator-expression export surface spec §4.5 names) or any other
// expression/declaration, passed through untouched.
type ExportDefaultDeclaration struct {
	Span        Span
	Declaration Node
}

func (n *ExportDefaultDeclaration) GetSpan() Span    { return n.Span }
func (n *ExportDefaultDeclaration) Accept(v Visitor) { v.VisitExportDefaultDeclaration(n) }
func (n *ExportDefaultDeclaration) statementNode()   {}
