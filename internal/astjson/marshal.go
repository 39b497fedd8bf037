// Package astjson encodes and decodes internal/ast trees as JSON, in the
// ESTree-ish shape spec.md's scope boundary assumes an external parser
// produces ("a pre-parsed AST... JSON, ESTree-shaped" per SPEC_FULL.md's
// CLI module). Marshaling walks the tree via ast.Visitor; unmarshaling
// switches on each node's "type" discriminator and recurses.
package astjson

import (
	"encoding/json"

	"github.com/funvibe/funxy/internal/ast"
)

// Marshal renders a Program as the JSON document cmd/regenerate writes
// back out after lowering.
func Marshal(p *ast.Program) ([]byte, error) {
	return json.Marshal(encodeProgram(p))
}

// MarshalIndent is Marshal with indentation, used when the CLI runs with
// -pretty (its default output is the compact Marshal form).
func MarshalIndent(p *ast.Program) ([]byte, error) {
	return json.MarshalIndent(encodeProgram(p), "", "  ")
}

type obj = map[string]any

func encodeProgram(p *ast.Program) obj {
	return obj{
		"type":       "Program",
		"range":      []int{p.Span.Start, p.Span.End},
		"line":       p.Span.Line,
		"sourceType": p.SourceType,
		"body":       encodeStatements(p.Body),
	}
}

func encodeStatements(stmts []ast.Statement) []obj {
	out := make([]obj, len(stmts))
	for i, s := range stmts {
		out[i] = encodeNode(s)
	}
	return out
}

func encodeExpressions(exprs []ast.Expression) []any {
	out := make([]any, len(exprs))
	for i, e := range exprs {
		if e == nil {
			out[i] = nil
			continue
		}
		out[i] = encodeNode(e)
	}
	return out
}

// encodeNode dispatches a single node to its obj encoding. A nil
// interface (an absent optional child, e.g. ForStatement.Test) encodes as
// a Go nil, which json.Marshal renders as `null`.
func encodeNode(n ast.Node) obj {
	e := &encoder{}
	if n == nil {
		return nil
	}
	n.Accept(e)
	return e.result
}

// The three field types below are declared as concrete pointers rather
// than interfaces (FunctionExpression.Id, TryStatement.Handler/
// Finalizer, Break/ContinueStatement.Label): a nil *T boxed straight into
// the ast.Node interface is a non-nil interface holding a nil pointer, so
// encodeNode's `n == nil` check can't catch it. These three helpers check
// nilness on the concrete pointer before it ever reaches encodeNode.
func encodeIdentifier(n *ast.Identifier) obj {
	if n == nil {
		return nil
	}
	return encodeNode(n)
}

func encodeBlock(n *ast.BlockStatement) obj {
	if n == nil {
		return nil
	}
	return encodeNode(n)
}

func encodeCatchClause(n *ast.CatchClause) obj {
	if n == nil {
		return nil
	}
	return encodeNode(n)
}

// encoder implements ast.Visitor, filling in `result` with this node's
// JSON object on each Visit call. One encoder value is used per node
// (encodeNode constructs a fresh one).
type encoder struct {
	result obj
}

func (e *encoder) VisitProgram(n *ast.Program) { e.result = encodeProgram(n) }

func (e *encoder) VisitIdentifier(n *ast.Identifier) {
	e.result = obj{"type": "Identifier", "range": span(n.Span), "line": n.Span.Line, "name": n.Name}
}

func (e *encoder) VisitNumericLiteral(n *ast.NumericLiteral) {
	e.result = obj{"type": "NumericLiteral", "range": span(n.Span), "line": n.Span.Line, "value": n.Value, "raw": n.Raw}
}

func (e *encoder) VisitStringLiteral(n *ast.StringLiteral) {
	e.result = obj{"type": "StringLiteral", "range": span(n.Span), "line": n.Span.Line, "value": n.Value}
}

func (e *encoder) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	e.result = obj{"type": "BooleanLiteral", "range": span(n.Span), "line": n.Span.Line, "value": n.Value}
}

func (e *encoder) VisitNullLiteral(n *ast.NullLiteral) {
	e.result = obj{"type": "NullLiteral", "range": span(n.Span), "line": n.Span.Line}
}

func (e *encoder) VisitThisExpression(n *ast.ThisExpression) {
	e.result = obj{"type": "ThisExpression", "range": span(n.Span), "line": n.Span.Line}
}

func (e *encoder) VisitMetaPropertyExpression(n *ast.MetaPropertyExpression) {
	e.result = obj{
		"type": "MetaPropertyExpression", "range": span(n.Span), "line": n.Span.Line,
		"meta": n.Meta, "property": n.Property,
	}
}

func (e *encoder) VisitYieldExpression(n *ast.YieldExpression) {
	e.result = obj{
		"type": "YieldExpression", "range": span(n.Span), "line": n.Span.Line,
		"argument": encodeNode(n.Argument), "delegate": n.Delegate,
	}
}

func (e *encoder) VisitCallExpression(n *ast.CallExpression) {
	e.result = obj{
		"type": "CallExpression", "range": span(n.Span), "line": n.Span.Line,
		"callee": encodeNode(n.Callee), "arguments": encodeExpressions(n.Arguments),
	}
}

func (e *encoder) VisitMemberExpression(n *ast.MemberExpression) {
	e.result = obj{
		"type": "MemberExpression", "range": span(n.Span), "line": n.Span.Line,
		"object": encodeNode(n.Object), "property": encodeNode(n.Property), "computed": n.Computed,
	}
}

func (e *encoder) VisitUnaryExpression(n *ast.UnaryExpression) {
	e.result = obj{
		"type": "UnaryExpression", "range": span(n.Span), "line": n.Span.Line,
		"operator": n.Operator, "argument": encodeNode(n.Argument),
	}
}

func (e *encoder) VisitAssignmentExpression(n *ast.AssignmentExpression) {
	e.result = obj{
		"type": "AssignmentExpression", "range": span(n.Span), "line": n.Span.Line,
		"operator": n.Operator, "left": encodeNode(n.Left), "right": encodeNode(n.Right),
	}
}

func (e *encoder) VisitBinaryExpression(n *ast.BinaryExpression) {
	e.result = obj{
		"type": "BinaryExpression", "range": span(n.Span), "line": n.Span.Line,
		"operator": n.Operator, "left": encodeNode(n.Left), "right": encodeNode(n.Right),
	}
}

func (e *encoder) VisitLogicalExpression(n *ast.LogicalExpression) {
	e.result = obj{
		"type": "LogicalExpression", "range": span(n.Span), "line": n.Span.Line,
		"operator": n.Operator, "left": encodeNode(n.Left), "right": encodeNode(n.Right),
	}
}

func (e *encoder) VisitConditionalExpression(n *ast.ConditionalExpression) {
	e.result = obj{
		"type": "ConditionalExpression", "range": span(n.Span), "line": n.Span.Line,
		"test": encodeNode(n.Test), "consequent": encodeNode(n.Consequent), "alternate": encodeNode(n.Alternate),
	}
}

func (e *encoder) VisitSequenceExpression(n *ast.SequenceExpression) {
	e.result = obj{
		"type": "SequenceExpression", "range": span(n.Span), "line": n.Span.Line,
		"expressions": encodeExpressions(n.Expressions),
	}
}

func (e *encoder) VisitArrayExpression(n *ast.ArrayExpression) {
	e.result = obj{
		"type": "ArrayExpression", "range": span(n.Span), "line": n.Span.Line,
		"elements": encodeExpressions(n.Elements),
	}
}

func (e *encoder) VisitObjectExpression(n *ast.ObjectExpression) {
	props := make([]obj, len(n.Properties))
	for i, pr := range n.Properties {
		props[i] = encodeNode(pr)
	}
	e.result = obj{"type": "ObjectExpression", "range": span(n.Span), "line": n.Span.Line, "properties": props}
}

func (e *encoder) VisitProperty(n *ast.Property) {
	e.result = obj{
		"type": "Property", "range": span(n.Span), "line": n.Span.Line,
		"key": encodeNode(n.Key), "value": encodeNode(n.Value),
		"computed": n.Computed, "kind": n.Kind, "shorthand": n.Shorthand,
	}
}

func encodePatterns(pats []ast.Pattern) []obj {
	out := make([]obj, len(pats))
	for i, p := range pats {
		out[i] = encodeNode(p)
	}
	return out
}

func (e *encoder) VisitFunctionDeclaration(n *ast.FunctionDeclaration) {
	e.result = obj{
		"type": "FunctionDeclaration", "range": span(n.Span), "line": n.Span.Line,
		"id": encodeIdentifier(n.Id), "params": encodePatterns(n.Params), "body": encodeNode(n.Body),
		"generator": n.IsGenerator, "async": n.Async,
	}
}

func (e *encoder) VisitFunctionExpression(n *ast.FunctionExpression) {
	e.result = obj{
		"type": "FunctionExpression", "range": span(n.Span), "line": n.Span.Line,
		"id": encodeIdentifier(n.Id), "params": encodePatterns(n.Params), "body": encodeNode(n.Body),
		"generator": n.IsGenerator, "async": n.Async,
	}
}

func (e *encoder) VisitArrowFunctionExpression(n *ast.ArrowFunctionExpression) {
	e.result = obj{
		"type": "ArrowFunctionExpression", "range": span(n.Span), "line": n.Span.Line,
		"params": encodePatterns(n.Params), "body": encodeNode(n.Body), "async": n.Async,
	}
}

func (e *encoder) VisitMethodDefinition(n *ast.MethodDefinition) {
	e.result = obj{
		"type": "MethodDefinition", "range": span(n.Span), "line": n.Span.Line,
		"key": encodeNode(n.Key), "value": encodeNode(n.Value),
		"kind": n.Kind, "static": n.Static, "computed": n.Computed,
	}
}

func (e *encoder) VisitExportDefaultDeclaration(n *ast.ExportDefaultDeclaration) {
	e.result = obj{
		"type": "ExportDefaultDeclaration", "range": span(n.Span), "line": n.Span.Line,
		"declaration": encodeNode(n.Declaration),
	}
}

func (e *encoder) VisitBlockStatement(n *ast.BlockStatement) {
	e.result = obj{"type": "BlockStatement", "range": span(n.Span), "line": n.Span.Line, "body": encodeStatements(n.Body)}
}

func (e *encoder) VisitExpressionStatement(n *ast.ExpressionStatement) {
	e.result = obj{"type": "ExpressionStatement", "range": span(n.Span), "line": n.Span.Line, "expression": encodeNode(n.Expression)}
}

func (e *encoder) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	decls := make([]obj, len(n.Declarations))
	for i, d := range n.Declarations {
		decls[i] = encodeNode(d)
	}
	e.result = obj{"type": "VariableDeclaration", "range": span(n.Span), "line": n.Span.Line, "kind": n.Kind, "declarations": decls}
}

func (e *encoder) VisitVariableDeclarator(n *ast.VariableDeclarator) {
	e.result = obj{"type": "VariableDeclarator", "range": span(n.Span), "line": n.Span.Line, "id": encodeNode(n.Id), "init": encodeNode(n.Init)}
}

func (e *encoder) VisitIfStatement(n *ast.IfStatement) {
	e.result = obj{
		"type": "IfStatement", "range": span(n.Span), "line": n.Span.Line,
		"test": encodeNode(n.Test), "consequent": encodeNode(n.Consequent), "alternate": encodeNode(n.Alternate),
	}
}

func (e *encoder) VisitForStatement(n *ast.ForStatement) {
	e.result = obj{
		"type": "ForStatement", "range": span(n.Span), "line": n.Span.Line,
		"init": encodeNode(n.Init), "test": encodeNode(n.Test), "update": encodeNode(n.Update), "body": encodeNode(n.Body),
	}
}

func (e *encoder) VisitForInStatement(n *ast.ForInStatement) {
	e.result = obj{
		"type": "ForInStatement", "range": span(n.Span), "line": n.Span.Line,
		"left": encodeNode(n.Left), "right": encodeNode(n.Right), "body": encodeNode(n.Body),
	}
}

func (e *encoder) VisitForOfStatement(n *ast.ForOfStatement) {
	e.result = obj{
		"type": "ForOfStatement", "range": span(n.Span), "line": n.Span.Line,
		"left": encodeNode(n.Left), "right": encodeNode(n.Right), "body": encodeNode(n.Body), "await": n.Await,
	}
}

func (e *encoder) VisitWhileStatement(n *ast.WhileStatement) {
	e.result = obj{"type": "WhileStatement", "range": span(n.Span), "line": n.Span.Line, "test": encodeNode(n.Test), "body": encodeNode(n.Body)}
}

func (e *encoder) VisitDoWhileStatement(n *ast.DoWhileStatement) {
	e.result = obj{"type": "DoWhileStatement", "range": span(n.Span), "line": n.Span.Line, "test": encodeNode(n.Test), "body": encodeNode(n.Body)}
}

func (e *encoder) VisitSwitchStatement(n *ast.SwitchStatement) {
	cases := make([]obj, len(n.Cases))
	for i, c := range n.Cases {
		cases[i] = encodeNode(c)
	}
	e.result = obj{"type": "SwitchStatement", "range": span(n.Span), "line": n.Span.Line, "discriminant": encodeNode(n.Discriminant), "cases": cases}
}

func (e *encoder) VisitSwitchCase(n *ast.SwitchCase) {
	e.result = obj{"type": "SwitchCase", "range": span(n.Span), "line": n.Span.Line, "test": encodeNode(n.Test), "consequent": encodeStatements(n.Consequent)}
}

func (e *encoder) VisitTryStatement(n *ast.TryStatement) {
	e.result = obj{
		"type": "TryStatement", "range": span(n.Span), "line": n.Span.Line,
		"block": encodeNode(n.Block), "handler": encodeCatchClause(n.Handler), "finalizer": encodeBlock(n.Finalizer),
	}
}

func (e *encoder) VisitCatchClause(n *ast.CatchClause) {
	e.result = obj{"type": "CatchClause", "range": span(n.Span), "line": n.Span.Line, "param": encodeNode(n.Param), "body": encodeNode(n.Body)}
}

func (e *encoder) VisitLabeledStatement(n *ast.LabeledStatement) {
	e.result = obj{"type": "LabeledStatement", "range": span(n.Span), "line": n.Span.Line, "label": encodeIdentifier(n.Label), "body": encodeNode(n.Body)}
}

func (e *encoder) VisitBreakStatement(n *ast.BreakStatement) {
	e.result = obj{"type": "BreakStatement", "range": span(n.Span), "line": n.Span.Line, "label": encodeIdentifier(n.Label)}
}

func (e *encoder) VisitContinueStatement(n *ast.ContinueStatement) {
	e.result = obj{"type": "ContinueStatement", "range": span(n.Span), "line": n.Span.Line, "label": encodeIdentifier(n.Label)}
}

func (e *encoder) VisitReturnStatement(n *ast.ReturnStatement) {
	e.result = obj{"type": "ReturnStatement", "range": span(n.Span), "line": n.Span.Line, "argument": encodeNode(n.Argument)}
}

func (e *encoder) VisitThrowStatement(n *ast.ThrowStatement) {
	e.result = obj{"type": "ThrowStatement", "range": span(n.Span), "line": n.Span.Line, "argument": encodeNode(n.Argument)}
}

func (e *encoder) VisitEmptyStatement(n *ast.EmptyStatement) {
	e.result = obj{"type": "EmptyStatement", "range": span(n.Span), "line": n.Span.Line}
}

func span(s ast.Span) []int { return []int{s.Start, s.End} }
