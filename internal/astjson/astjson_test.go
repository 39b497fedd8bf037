package astjson

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
)

func sampleProgram() *ast.Program {
	// function* f(x) { yield x; try { x; } finally { x; } return; }
	gen := &ast.FunctionDeclaration{
		Span:        ast.Synthetic,
		Id:          ast.Ident("f"),
		Params:      []ast.Pattern{ast.Ident("x")},
		IsGenerator: true,
		Body: ast.Block(
			ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.Ident("x")}),
			&ast.TryStatement{
				Span:  ast.Synthetic,
				Block: ast.Block(ast.ExprStmt(ast.Ident("x"))),
				Finalizer: ast.Block(
					ast.ExprStmt(ast.Ident("x")),
				),
			},
			&ast.ReturnStatement{Span: ast.Synthetic},
		),
	}
	return &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{gen}}
}

func TestMarshalUnmarshalRoundTrips(t *testing.T) {
	prog := sampleProgram()

	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if out.SourceType != "script" {
		t.Fatalf("SourceType = %q, want script", out.SourceType)
	}
	if len(out.Body) != 1 {
		t.Fatalf("Body has %d statements, want 1", len(out.Body))
	}

	fn, ok := out.Body[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("Body[0] = %T, want *ast.FunctionDeclaration", out.Body[0])
	}
	if fn.Id == nil || fn.Id.Name != "f" {
		t.Fatalf("Id = %#v, want identifier f", fn.Id)
	}
	if !fn.IsGenerator {
		t.Fatal("IsGenerator round-tripped as false")
	}
	if len(fn.Params) != 1 {
		t.Fatalf("Params has %d entries, want 1", len(fn.Params))
	}
	if len(fn.Body.Body) != 3 {
		t.Fatalf("function body has %d statements, want 3", len(fn.Body.Body))
	}

	tryStmt, ok := fn.Body.Body[1].(*ast.TryStatement)
	if !ok {
		t.Fatalf("Body[1] = %T, want *ast.TryStatement", fn.Body.Body[1])
	}
	if tryStmt.Handler != nil {
		t.Fatal("Handler round-tripped as non-nil, want nil (no catch clause in the source)")
	}
	if tryStmt.Finalizer == nil || len(tryStmt.Finalizer.Body) != 1 {
		t.Fatalf("Finalizer = %#v, want a one-statement block", tryStmt.Finalizer)
	}
}

func TestMarshalHandlesAnonymousFunctionExpression(t *testing.T) {
	prog := &ast.Program{
		Span:       ast.Synthetic,
		SourceType: "script",
		Body: []ast.Statement{
			ast.ExprStmt(&ast.FunctionExpression{Span: ast.Synthetic, Body: ast.Block()}),
		},
	}

	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	stmt := out.Body[0].(*ast.ExpressionStatement)
	fn, ok := stmt.Expression.(*ast.FunctionExpression)
	if !ok {
		t.Fatalf("expression = %T, want *ast.FunctionExpression", stmt.Expression)
	}
	if fn.Id != nil {
		t.Fatalf("Id = %#v, want nil for an anonymous function expression", fn.Id)
	}
}

func TestMarshalHandlesUnlabeledBreak(t *testing.T) {
	prog := &ast.Program{
		Span:       ast.Synthetic,
		SourceType: "script",
		Body: []ast.Statement{
			&ast.WhileStatement{
				Span: ast.Synthetic,
				Test: &ast.BooleanLiteral{Span: ast.Synthetic, Value: true},
				Body: ast.Block(&ast.BreakStatement{Span: ast.Synthetic}),
			},
		},
	}

	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	ws := out.Body[0].(*ast.WhileStatement)
	brk := ws.Body.(*ast.BlockStatement).Body[0].(*ast.BreakStatement)
	if brk.Label != nil {
		t.Fatalf("Label = %#v, want nil for an unlabeled break", brk.Label)
	}
}

func TestUnmarshalRejectsNonProgramRoot(t *testing.T) {
	if _, err := Unmarshal([]byte(`{"type":"Identifier","name":"x"}`)); err == nil {
		t.Fatal("Unmarshal accepted a document whose root is not a Program")
	}
}
