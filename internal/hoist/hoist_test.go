package hoist

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
)

func TestHoistLiftsVarNamesInSourceOrder(t *testing.T) {
	body := ast.Block(
		&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ast.Ident("a"), Init: ast.NumLoc(1)},
			{Id: ast.Ident("b")},
		}},
		ast.ExprStmt(ast.Assign(ast.Ident("a"), ast.NumLoc(2))),
		&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ast.Ident("a")}, // redeclared; must not duplicate in Result.Vars
		}},
	)

	newBody, res := Hoist(body, nil)

	if got, want := res.Vars, []string{"a", "b"}; len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("Vars = %v, want %v", got, want)
	}

	// The first `var a = 1` declarator becomes a plain assignment; the
	// bare `var b` (no initializer) disappears entirely; the redeclared
	// `var a` (no initializer) also disappears.
	if len(newBody.Body) != 2 {
		t.Fatalf("hoisted body has %d statements, want 2 (got %#v)", len(newBody.Body), newBody.Body)
	}
	if _, ok := newBody.Body[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("first hoisted statement = %T, want *ast.ExpressionStatement", newBody.Body[0])
	}
}

func TestHoistRecognizesArgumentsAlias(t *testing.T) {
	body := ast.Block(
		&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ast.Ident("opts"), Init: ast.Ident("arguments")},
		}},
	)

	_, res := Hoist(body, []string{"opts"})

	if len(res.Arguments) != 1 || res.Arguments[0] != "opts" {
		t.Fatalf("Arguments = %v, want [opts]", res.Arguments)
	}
	if len(res.Vars) != 1 || res.Vars[0] != "opts" {
		t.Fatalf("Vars = %v, want [opts] (bindPattern always calls addVar first)", res.Vars)
	}
}

func TestHoistStopsAtNestedFunctionBoundary(t *testing.T) {
	inner := &ast.FunctionDeclaration{
		Id: ast.Ident("inner"),
		Body: ast.Block(&ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ast.Ident("innerVar")},
		}}),
	}
	body := ast.Block(inner)

	_, res := Hoist(body, nil)

	if len(res.Vars) != 0 {
		t.Fatalf("Vars = %v, want none (nested function's own var belongs to its scope)", res.Vars)
	}
}

func TestHoistBindsCatchParameter(t *testing.T) {
	tryStmt := &ast.TryStatement{
		Block: ast.Block(),
		Handler: &ast.CatchClause{
			Param: ast.Ident("e"),
			Body:  ast.Block(),
		},
	}
	body := ast.Block(tryStmt)

	newBody, res := Hoist(body, nil)

	if len(res.Vars) != 1 || res.Vars[0] != "e" {
		t.Fatalf("Vars = %v, want [e] (the catch parameter needs the same outer-function declaration a var gets)", res.Vars)
	}
	t2, ok := newBody.Body[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("statement = %T, want *ast.TryStatement", newBody.Body[0])
	}
	if t2.Handler.Param.(*ast.Identifier).Name != "e" {
		t.Fatalf("Handler.Param = %#v, want unchanged identifier e", t2.Handler.Param)
	}
}

func TestHoistSkipsParameterlessCatch(t *testing.T) {
	tryStmt := &ast.TryStatement{
		Block:   ast.Block(),
		Handler: &ast.CatchClause{Body: ast.Block()},
	}
	body := ast.Block(tryStmt)

	_, res := Hoist(body, nil)

	if len(res.Vars) != 0 {
		t.Fatalf("Vars = %v, want none (catch {} has no parameter to bind)", res.Vars)
	}
}

func TestHoistForInitRewritesVarToAssignment(t *testing.T) {
	forStmt := &ast.ForStatement{
		Init: &ast.VariableDeclaration{Kind: "var", Declarations: []*ast.VariableDeclarator{
			{Id: ast.Ident("i"), Init: ast.NumLoc(0)},
		}},
		Body: ast.Block(),
	}
	body := ast.Block(forStmt)

	newBody, res := Hoist(body, nil)

	if len(res.Vars) != 1 || res.Vars[0] != "i" {
		t.Fatalf("Vars = %v, want [i]", res.Vars)
	}
	f2, ok := newBody.Body[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement = %T, want *ast.ForStatement", newBody.Body[0])
	}
	if _, ok := f2.Init.(ast.Expression); !ok {
		t.Fatalf("Init = %T, want an Expression (assignment), not a VariableDeclaration", f2.Init)
	}
}
