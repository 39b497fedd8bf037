package driver_test

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/astjson"
	"github.com/funvibe/funxy/internal/config"
	"github.com/funvibe/funxy/internal/driver"
)

// Scenario 1: two sequential top-level yields. Structural assertions only
// (case Locations are the Case Handler's own allocation scheme, already
// pinned by internal/caseh's tests) — here we check the shape a consumer
// of the lowered AST would actually rely on: two cases before the
// sentinel, each returning its yielded literal.
func TestScenarioTwoSequentialYields(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Span: ast.Synthetic, Id: ast.Ident("f"), IsGenerator: true,
		Body: ast.Block(
			ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.NumLoc(1)}),
			ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.NumLoc(2)}),
		),
	}
	prog := &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{fn}}

	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lowered := out.Body[2].(*ast.FunctionDeclaration)
	ret := lowered.Body.Body[0].(*ast.ReturnStatement)
	wrapCall := ret.Argument.(*ast.CallExpression)
	worker := wrapCall.Arguments[0].(*ast.FunctionExpression)

	loop := worker.Body.Body[0].(*ast.WhileStatement)
	dispatch := loop.Body.(*ast.BlockStatement).Body[0].(*ast.SwitchStatement)

	// sentinel "end" case plus at least two yield-resumption cases.
	if len(dispatch.Cases) < 3 {
		t.Fatalf("dispatch switch has %d cases, want at least 3 (two yields + end)", len(dispatch.Cases))
	}
	last := dispatch.Cases[len(dispatch.Cases)-1]
	if str, ok := last.Test.(*ast.StringLiteral); !ok || str.Value != "end" {
		t.Fatalf("final case Test = %#v, want the \"end\" sentinel", last.Test)
	}

	foundYieldValues := map[float64]bool{}
	for _, c := range dispatch.Cases[:len(dispatch.Cases)-1] {
		for _, s := range c.Consequent {
			if ret, ok := s.(*ast.ReturnStatement); ok {
				if num, ok := ret.Argument.(*ast.NumericLiteral); ok {
					foundYieldValues[num.Value] = true
				}
			}
		}
	}
	if !foundYieldValues[1] || !foundYieldValues[2] {
		t.Fatalf("did not find returns of both yielded literals 1 and 2 across the cases: %v", foundYieldValues)
	}
}

// Scenario 2: a try/finally around a yield produces a non-empty
// try-locs list, which forces wrap()'s tryLocsList trailing argument.
func TestScenarioTryFinallyProducesTryLocsArgument(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Span: ast.Synthetic, Id: ast.Ident("g"), IsGenerator: true,
		Body: ast.Block(&ast.TryStatement{
			Span: ast.Synthetic,
			Block: ast.Block(
				ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.NumLoc(1)}),
			),
			Finalizer: ast.Block(ast.ExprStmt(ast.Call(ast.Ident("cleanup")))),
		}),
	}
	prog := &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{fn}}

	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lowered := out.Body[2].(*ast.FunctionDeclaration)
	ret := lowered.Body.Body[len(lowered.Body.Body)-1].(*ast.ReturnStatement)
	wrapCall := ret.Argument.(*ast.CallExpression)

	if len(wrapCall.Arguments) != 4 {
		t.Fatalf("wrap() got %d arguments, want 4 (worker, marker, thisArg, tryLocsList)", len(wrapCall.Arguments))
	}
	if _, ok := wrapCall.Arguments[2].(*ast.NullLiteral); !ok {
		t.Fatalf("thisArg = %#v, want null (body never references `this`)", wrapCall.Arguments[2])
	}
	tryLocs, ok := wrapCall.Arguments[3].(*ast.ArrayExpression)
	if !ok || len(tryLocs.Elements) != 1 {
		t.Fatalf("tryLocsList = %#v, want a single-entry array", wrapCall.Arguments[3])
	}
	row, ok := tryLocs.Elements[0].(*ast.ArrayExpression)
	if !ok || len(row.Elements) != 4 {
		t.Fatalf("tryLocsList[0] = %#v, want a 4-tuple", tryLocs.Elements[0])
	}
}

// Scenario 4: a generator object-method whose body references `this`
// threads `this` through as wrap()'s third argument.
func TestScenarioObjectMethodThreadsThis(t *testing.T) {
	method := &ast.Property{
		Span: ast.Synthetic, Key: ast.Ident("m"), Kind: "method",
		Value: &ast.FunctionExpression{
			Span: ast.Synthetic, IsGenerator: true,
			Body: ast.Block(ast.ExprStmt(&ast.YieldExpression{
				Span: ast.Synthetic,
				Argument: &ast.MemberExpression{
					Span: ast.Synthetic, Object: &ast.ThisExpression{Span: ast.Synthetic}, Property: ast.Ident("x"),
				},
			})),
		},
	}
	obj := &ast.ObjectExpression{Span: ast.Synthetic, Properties: []*ast.Property{method}}
	prog := &ast.Program{
		Span: ast.Synthetic, SourceType: "script",
		Body: []ast.Statement{ast.ExprStmt(obj)},
	}

	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !pass.RuntimeUsed() {
		t.Fatal("RuntimeUsed() = false for an object method generator")
	}

	// Round-trip through the JSON encoder/decoder to make sure the
	// rewritten object literal is itself well-formed, independent of
	// exactly which internal node types the method body is rebuilt from.
	if _, err := astjson.Marshal(out); err != nil {
		t.Fatalf("Marshal of the lowered object-method program: %v", err)
	}
}

// Scenario 5: a try/catch around a yield hoists the catch parameter into
// the outer function's single var declaration, the same way an ordinary
// `var` would be — the worker's catch case assigns to it via _ctx.catch,
// so it must be declared somewhere the worker's closure reaches.
func TestScenarioTryCatchHoistsCatchParameter(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Span: ast.Synthetic, Id: ast.Ident("g"), IsGenerator: true,
		Body: ast.Block(&ast.TryStatement{
			Span: ast.Synthetic,
			Block: ast.Block(
				ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.NumLoc(1)}),
			),
			Handler: &ast.CatchClause{
				Span:  ast.Synthetic,
				Param: ast.Ident("e"),
				Body:  ast.Block(ast.ExprStmt(ast.Call(ast.Ident("report"), ast.Ident("e")))),
			},
		}),
	}
	prog := &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{fn}}

	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	lowered := out.Body[2].(*ast.FunctionDeclaration)
	varDecl, ok := lowered.Body.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("outer body's first statement = %T, want the hoisted *ast.VariableDeclaration", lowered.Body.Body[0])
	}
	var names []string
	for _, d := range varDecl.Declarations {
		names = append(names, d.Id.(*ast.Identifier).Name)
	}
	found := false
	for _, n := range names {
		if n == "e" {
			found = true
		}
	}
	if !found {
		t.Fatalf("outer var declaration names = %v, want the catch parameter %q among them", names, "e")
	}

	ret := lowered.Body.Body[len(lowered.Body.Body)-1].(*ast.ReturnStatement)
	wrapCall := ret.Argument.(*ast.CallExpression)
	worker := wrapCall.Arguments[0].(*ast.FunctionExpression)
	loop := worker.Body.Body[0].(*ast.WhileStatement)
	dispatch := loop.Body.(*ast.BlockStatement).Body[0].(*ast.SwitchStatement)

	// Exactly one case must assign the caught value through _ctx.catch
	// into the now-hoisted name "e" — that's the bug this scenario guards.
	foundCatchAssign := false
	for _, c := range dispatch.Cases {
		for _, s := range c.Consequent {
			exprStmt, ok := s.(*ast.ExpressionStatement)
			if !ok {
				continue
			}
			assign, ok := exprStmt.Expression.(*ast.AssignmentExpression)
			if !ok {
				continue
			}
			left, ok := assign.Left.(*ast.Identifier)
			if !ok || left.Name != "e" {
				continue
			}
			call, ok := assign.Right.(*ast.CallExpression)
			if !ok {
				continue
			}
			member, ok := call.Callee.(*ast.MemberExpression)
			if !ok || member.Property.(*ast.Identifier).Name != "catch" {
				continue
			}
			foundCatchAssign = true
		}
	}
	if !foundCatchAssign {
		t.Fatal("no case assigns the caught value to the hoisted catch parameter e via _ctx.catch(...)")
	}
}

// Property: a module with no generator function is returned with its
// top-level body length unchanged (no runtime import, no marker decl).
func TestPropertyNoGeneratorLeavesBodyLengthUnchanged(t *testing.T) {
	prog := &ast.Program{
		Span: ast.Synthetic, SourceType: "script",
		Body: []ast.Statement{
			ast.ExprStmt(ast.Call(ast.Ident("plain"))),
			ast.ExprStmt(ast.Call(ast.Ident("alsoPlain"))),
		},
	}
	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out.Body) != 2 {
		t.Fatalf("body has %d statements, want 2 (unchanged)", len(out.Body))
	}
	if pass.RuntimeUsed() {
		t.Fatal("RuntimeUsed() = true for a module with no generator")
	}
}

// Property: no function in the output is still marked as a generator.
func TestPropertyOutputHasNoGeneratorFlagSet(t *testing.T) {
	fn := &ast.FunctionDeclaration{
		Span: ast.Synthetic, Id: ast.Ident("f"), IsGenerator: true,
		Body: ast.Block(ast.ExprStmt(&ast.YieldExpression{Span: ast.Synthetic, Argument: ast.NumLoc(1)})),
	}
	prog := &ast.Program{Span: ast.Synthetic, SourceType: "script", Body: []ast.Statement{fn}}

	pass := driver.New(config.Default(), nil)
	out, err := pass.Run(prog)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var anyGenerator func(ast.Node) bool
	anyGenerator = func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.FunctionDeclaration:
			if v.IsGenerator {
				return true
			}
			return anyGenerator(v.Body)
		case *ast.FunctionExpression:
			if v.IsGenerator {
				return true
			}
			return anyGenerator(v.Body)
		case *ast.BlockStatement:
			for _, s := range v.Body {
				if anyGenerator(s) {
					return true
				}
			}
			return false
		case *ast.ExpressionStatement:
			return anyGenerator(v.Expression)
		case *ast.ReturnStatement:
			return anyGenerator(v.Argument)
		case *ast.CallExpression:
			if anyGenerator(v.Callee) {
				return true
			}
			for _, a := range v.Arguments {
				if anyGenerator(a) {
					return true
				}
			}
			return false
		case *ast.VariableDeclaration:
			for _, d := range v.Declarations {
				if d.Init != nil && anyGenerator(d.Init) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}

	for _, s := range out.Body {
		if anyGenerator(s) {
			t.Fatalf("output still contains a generator-flagged function: %#v", s)
		}
	}
}
