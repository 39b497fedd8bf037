package sent

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
)

func functionSent() *ast.MetaPropertyExpression {
	return &ast.MetaPropertyExpression{Meta: "function", Property: "sent"}
}

func TestRewriteReplacesTopLevelFunctionSent(t *testing.T) {
	body := ast.Block(
		ast.ExprStmt(ast.Assign(ast.Ident("x"), functionSent())),
	)
	out := Rewrite(body, "_ctx")

	stmt := out.Body[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignmentExpression)
	member, ok := assign.Right.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("rewritten right-hand side = %T, want *ast.MemberExpression", assign.Right)
	}
	obj, ok := member.Object.(*ast.Identifier)
	if !ok || obj.Name != "_ctx" {
		t.Fatalf("member object = %#v, want identifier _ctx", member.Object)
	}
	prop, ok := member.Property.(*ast.Identifier)
	if !ok || prop.Name != "_sent" {
		t.Fatalf("member property = %#v, want identifier _sent", member.Property)
	}
}

func TestRewriteLeavesOtherMetaPropertiesAlone(t *testing.T) {
	newTarget := &ast.MetaPropertyExpression{Meta: "new", Property: "target"}
	body := ast.Block(ast.ExprStmt(ast.Assign(ast.Ident("x"), newTarget)))

	out := Rewrite(body, "_ctx")

	stmt := out.Body[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignmentExpression)
	if assign.Right != ast.Expression(newTarget) {
		t.Fatalf("new.target should pass through unchanged, got %#v", assign.Right)
	}
}

func TestRewriteDoesNotDescendIntoNestedFunction(t *testing.T) {
	inner := &ast.FunctionDeclaration{
		Id:   ast.Ident("inner"),
		Body: ast.Block(ast.ExprStmt(ast.Assign(ast.Ident("y"), functionSent()))),
	}
	body := ast.Block(inner)

	out := Rewrite(body, "_ctx")

	got := out.Body[0].(*ast.FunctionDeclaration)
	innerStmt := got.Body.Body[0].(*ast.ExpressionStatement)
	innerAssign := innerStmt.Expression.(*ast.AssignmentExpression)
	if _, stillMeta := innerAssign.Right.(*ast.MetaPropertyExpression); !stillMeta {
		t.Fatalf("nested function's own function.sent should be left untouched, got %T", innerAssign.Right)
	}
}

func TestRewriteReachesInsideYieldArgument(t *testing.T) {
	yield := &ast.YieldExpression{Argument: functionSent()}
	body := ast.Block(ast.ExprStmt(yield))

	out := Rewrite(body, "_ctx")

	stmt := out.Body[0].(*ast.ExpressionStatement)
	y := stmt.Expression.(*ast.YieldExpression)
	if _, ok := y.Argument.(*ast.MemberExpression); !ok {
		t.Fatalf("yield argument = %T, want rewritten *ast.MemberExpression", y.Argument)
	}
}
