// Package ast models the subset of the ECMAScript AST this pass consumes
// and produces: Programs, functions (declarations, expressions, methods),
// the full statement surface needed to explode arbitrary control flow, and
// expressions down to the granularity yield/await spilling needs.
//
// Node shapes follow ESTree naming (https://github.com/estree/estree)
// closely enough that a JSON encoding of this tree round-trips through a
// real parser/codegen pair; this package only has to be a faithful,
// walkable tree in between.
package ast

// Node is the base interface every AST node satisfies.
type Node interface {
	GetSpan() Span
	Accept(v Visitor)
}

// Statement is a Node that appears in a statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in an expression position.
type Expression interface {
	Node
	expressionNode()
}

// Pattern is a Node usable as a binding target (identifier, array/object
// destructuring). Only Identifier is modeled in depth; other pattern kinds
// pass through opaquely since the pass never needs to look inside them.
type Pattern interface {
	Node
	patternNode()
}
