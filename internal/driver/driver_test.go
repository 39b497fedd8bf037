package driver_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/astjson"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/driver"
)

func simpleGenerator() *ast.Program {
	// function* f(x) { yield x; }
	fn := &ast.FunctionDeclaration{
		Span:        ast.Synthetic,
		Id:          ast.Ident("f"),
		Params:      []ast.Pattern{ast.Ident("x")},
		IsGenerator: true,
		Body: ast.Block(
			ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.Ident("x")}),
		),
	}
	return &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{fn}}
}

func TestRunLowersTopLevelGeneratorDeclaration(t *testing.T) {
	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(simpleGenerator())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if pass.GeneratorCount() != 1 {
		t.Fatalf("GeneratorCount() = %d, want 1", pass.GeneratorCount())
	}
	if !pass.RuntimeUsed() {
		t.Fatal("RuntimeUsed() = false, want true")
	}

	// var regeneratorRuntime = require("regenerator-runtime");
	// var _marked = regeneratorRuntime.mark(f);
	// function f(x) { ... }
	if len(out.Body) != 3 {
		t.Fatalf("top-level body has %d statements, want 3 (got %#v)", len(out.Body), out.Body)
	}

	requireDecl, ok := out.Body[0].(*ast.VariableDeclaration)
	if !ok || len(requireDecl.Declarations) != 1 || requireDecl.Declarations[0].Id.(*ast.Identifier).Name != "regeneratorRuntime" {
		t.Fatalf("Body[0] = %#v, want the require() binding", out.Body[0])
	}

	markerDecl, ok := out.Body[1].(*ast.VariableDeclaration)
	if !ok || len(markerDecl.Declarations) != 1 || markerDecl.Declarations[0].Id.(*ast.Identifier).Name != "_marked" {
		t.Fatalf("Body[1] = %#v, want the _marked binding", out.Body[1])
	}

	fn, ok := out.Body[2].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("Body[2] = %T, want *ast.FunctionDeclaration", out.Body[2])
	}
	if fn.IsGenerator {
		t.Fatal("lowered FunctionDeclaration still has IsGenerator = true")
	}
	if fn.Id.Name != "f" {
		t.Fatalf("Id.Name = %q, want f (declaration keeps its own name)", fn.Id.Name)
	}

	// The lowered body is `return regeneratorRuntime.wrap(f$, _marked);` —
	// no hoisted vars, no try, no `this` reference, so wrapCall's minimal
	// trailing-argument rule keeps it to exactly two arguments.
	if len(fn.Body.Body) != 1 {
		t.Fatalf("lowered body has %d statements, want 1 (just the wrap return)", len(fn.Body.Body))
	}
	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("lowered body statement = %T, want *ast.ReturnStatement", fn.Body.Body[0])
	}
	wrapCall, ok := ret.Argument.(*ast.CallExpression)
	if !ok {
		t.Fatalf("return argument = %T, want *ast.CallExpression", ret.Argument)
	}
	callee, ok := wrapCall.Callee.(*ast.MemberExpression)
	if !ok || callee.Property.(*ast.Identifier).Name != "wrap" {
		t.Fatalf("callee = %#v, want <rt>.wrap", wrapCall.Callee)
	}
	if len(wrapCall.Arguments) != 2 {
		t.Fatalf("wrap() got %d arguments, want 2 (worker, marker)", len(wrapCall.Arguments))
	}
}

func TestRunLeavesNonGeneratorsUntouched(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Span: ast.Synthetic, Id: ast.Ident("plain"),
		Body: ast.Block(ast.Ret(ast.NumLoc(1))),
	}
	prog := &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{fn}}

	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if pass.RuntimeUsed() {
		t.Fatal("RuntimeUsed() = true, want false: no generator in this unit")
	}
	if len(out.Body) != 1 {
		t.Fatalf("body has %d statements, want 1 (no require()/marker prepended)", len(out.Body))
	}
}

func TestRunIsDeterministicAcrossCalls(t *testing.T) {
	pass := driver.New(config.Default(), nil)
	out1, err := pass.Run(simpleGenerator())
	if err != nil {
		t.Fatalf("Run #1: %v", err)
	}
	out2, err := pass.Run(simpleGenerator())
	if err != nil {
		t.Fatalf("Run #2: %v", err)
	}

	data1, err := astjson.Marshal(out1)
	if err != nil {
		t.Fatal(err)
	}
	data2, err := astjson.Marshal(out2)
	if err != nil {
		t.Fatal(err)
	}
	if string(data1) != string(data2) {
		t.Fatalf("two Run calls on the same input produced different output:\n%s\n---\n%s", data1, data2)
	}
}
