package driver

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/caseh"
	"github.com/funvibe/funxy/internal/hoist"
	"github.com/funvibe/funxy/internal/leap"
	"github.com/funvibe/funxy/internal/sent"
)

const ctxIdent = "_ctx"

// lowered is the result of running the five-step procedure (spec §4.5)
// on one generator's params/body: a worker function ready to be passed
// as wrap()'s first argument, plus everything the caller needs to pick
// the minimal trailing-argument form and declare the outer function's
// hoisted names.
type lowered struct {
	worker   *ast.FunctionExpression
	hoisted  []string
	usesThis bool
	tryLocs  []*leap.TryEntry
}

// lowerBody runs Hoister -> function.sent rewrite -> Case Handler explode
// over one generator's body, per spec §4.3/§4.4, and assembles the
// `while (1) switch (_ctx.prev = _ctx.next) { ... }` worker function
// (spec §4.4's dispatch loop). workerName is the synthetic name given to
// the emitted inner function (e.g. "f$").
func (p *Pass) lowerBody(workerName string, params []ast.Pattern, body *ast.BlockStatement) lowered {
	paramNames := paramIdentifierNames(params)
	hoistedBody, hres := hoist.Hoist(body, paramNames)
	sentBody := sent.Rewrite(hoistedBody, ctxIdent)

	builder := caseh.New(ctxIdent, p.ids.Salt(), p.cfg.RuntimeBinding)
	builder.ExplodeBlock(sentBody)
	cases := builder.Finish()

	hoistedNames := dedupAppend(hres.Vars, builder.Temps())

	dispatch := &ast.SwitchStatement{
		Span:         ast.Synthetic,
		Discriminant: ast.Assign(builder.CtxField("prev"), builder.CtxField("next")),
		Cases:        cases,
	}
	loop := &ast.WhileStatement{Span: ast.Synthetic, Test: ast.NumLoc(1), Body: ast.Block(dispatch)}

	worker := &ast.FunctionExpression{
		Span:   ast.Synthetic,
		Id:     ast.Ident(workerName),
		Params: []ast.Pattern{ast.Ident(ctxIdent)},
		Body:   ast.Block(loop),
	}

	return lowered{
		worker:   worker,
		hoisted:  hoistedNames,
		usesThis: containsThis(body),
		tryLocs:  builder.Leaps.TryLocsList(),
	}
}

// wrapCall assembles `<rt>.wrap(worker, markerArg, thisArg, tryLocsList)`
// with the minimal trailing-argument rule from spec §4.5: the marker
// argument is always present (every call site here is a generator by
// construction); thisArg is present iff the body referenced `this`;
// tryLocsList is present iff any try-entry was pushed. A later argument
// that is needed forces every earlier optional slot to be filled, with
// `null` standing in for a skipped one.
func (p *Pass) wrapCall(l lowered, markerArg ast.Expression) *ast.CallExpression {
	args := []ast.Expression{l.worker, markerArg}

	needTryLocs := len(l.tryLocs) > 0
	switch {
	case needTryLocs:
		if l.usesThis {
			args = append(args, &ast.ThisExpression{Span: ast.Synthetic})
		} else {
			args = append(args, &ast.NullLiteral{Span: ast.Synthetic})
		}
		args = append(args, tryLocsListExpr(l.tryLocs))
	case l.usesThis:
		args = append(args, &ast.ThisExpression{Span: ast.Synthetic})
	}

	return ast.Call(p.runtimeDot("wrap"), args...)
}

// tryLocsListExpr renders spec §3's TryEntry list as the nested-array
// literal the runtime's tryLocsList constant argument expects: one
// `[firstLoc, catchLoc, finallyLoc, afterLoc]` 4-tuple per pushed try,
// in declaration order, with leap.NoLoc (-1) standing in for an absent
// catch/finally clause.
func tryLocsListExpr(tries []*leap.TryEntry) *ast.ArrayExpression {
	rows := make([]ast.Expression, len(tries))
	for i, t := range tries {
		rows[i] = &ast.ArrayExpression{Span: ast.Synthetic, Elements: []ast.Expression{
			ast.NumLoc(t.FirstLoc), ast.NumLoc(t.CatchLoc), ast.NumLoc(t.FinallyLoc), ast.NumLoc(t.AfterLoc),
		}}
	}
	return &ast.ArrayExpression{Span: ast.Synthetic, Elements: rows}
}

// outerBody builds the replacement body shared by every generator
// surface: a single `var` of the hoisted names (if any), followed by
// `return <rt>.wrap(...)`.
func outerBody(l lowered, wrap *ast.CallExpression) *ast.BlockStatement {
	var stmts []ast.Statement
	if len(l.hoisted) > 0 {
		stmts = append(stmts, varDeclOf(l.hoisted))
	}
	stmts = append(stmts, ast.Ret(wrap))
	return ast.Block(stmts...)
}

func varDeclOf(names []string) *ast.VariableDeclaration {
	decls := make([]*ast.VariableDeclarator, len(names))
	for i, n := range names {
		decls[i] = &ast.VariableDeclarator{Span: ast.Synthetic, Id: ast.Ident(n)}
	}
	return &ast.VariableDeclaration{Span: ast.Synthetic, Kind: "var", Declarations: decls}
}

func dedupAppend(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, n := range append(append([]string{}, a...), b...) {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

func paramIdentifierNames(params []ast.Pattern) []string {
	var out []string
	for _, p := range params {
		if id, ok := p.(*ast.Identifier); ok {
			out = append(out, id.Name)
		}
	}
	return out
}

// containsThis reports whether body references `this`, without
// descending into a nested function's own body (a nested ordinary or
// generator function has its own `this` binding; only an arrow body
// shares the enclosing one, so arrows are the one nested-function kind
// this walk still descends into).
func containsThis(n ast.Node) bool {
	switch v := n.(type) {
	case nil:
		return false
	case *ast.ThisExpression:
		return true
	case *ast.BlockStatement:
		for _, s := range v.Body {
			if containsThis(s) {
				return true
			}
		}
		return false
	case *ast.ExpressionStatement:
		return containsThis(v.Expression)
	case *ast.VariableDeclaration:
		for _, d := range v.Declarations {
			if d.Init != nil && containsThis(d.Init) {
				return true
			}
		}
		return false
	case *ast.IfStatement:
		return containsThis(v.Test) || containsThis(v.Consequent) || containsThis(v.Alternate)
	case *ast.ForStatement:
		return containsThisNode(v.Init) || containsThis(v.Test) || containsThis(v.Update) || containsThis(v.Body)
	case *ast.ForInStatement:
		return containsThis(v.Right) || containsThis(v.Body)
	case *ast.ForOfStatement:
		return containsThis(v.Right) || containsThis(v.Body)
	case *ast.WhileStatement:
		return containsThis(v.Test) || containsThis(v.Body)
	case *ast.DoWhileStatement:
		return containsThis(v.Test) || containsThis(v.Body)
	case *ast.SwitchStatement:
		if containsThis(v.Discriminant) {
			return true
		}
		for _, c := range v.Cases {
			if containsThis(c.Test) {
				return true
			}
			for _, s := range c.Consequent {
				if containsThis(s) {
					return true
				}
			}
		}
		return false
	case *ast.TryStatement:
		if containsThis(v.Block) {
			return true
		}
		if v.Handler != nil && containsThis(v.Handler.Body) {
			return true
		}
		return v.Finalizer != nil && containsThis(v.Finalizer)
	case *ast.LabeledStatement:
		return containsThis(v.Body)
	case *ast.ReturnStatement:
		return containsThis(v.Argument)
	case *ast.ThrowStatement:
		return containsThis(v.Argument)
	case *ast.YieldExpression:
		return containsThis(v.Argument)
	case *ast.CallExpression:
		if containsThis(v.Callee) {
			return true
		}
		for _, a := range v.Arguments {
			if containsThis(a) {
				return true
			}
		}
		return false
	case *ast.MemberExpression:
		return containsThis(v.Object) || (v.Computed && containsThis(v.Property))
	case *ast.UnaryExpression:
		return containsThis(v.Argument)
	case *ast.AssignmentExpression:
		return containsThis(v.Left) || containsThis(v.Right)
	case *ast.BinaryExpression:
		return containsThis(v.Left) || containsThis(v.Right)
	case *ast.LogicalExpression:
		return containsThis(v.Left) || containsThis(v.Right)
	case *ast.ConditionalExpression:
		return containsThis(v.Test) || containsThis(v.Consequent) || containsThis(v.Alternate)
	case *ast.SequenceExpression:
		for _, e := range v.Expressions {
			if containsThis(e) {
				return true
			}
		}
		return false
	case *ast.ArrayExpression:
		for _, e := range v.Elements {
			if containsThis(e) {
				return true
			}
		}
		return false
	case *ast.ObjectExpression:
		for _, pr := range v.Properties {
			if pr.Computed && containsThis(pr.Key) {
				return true
			}
			if containsThis(pr.Value) {
				return true
			}
		}
		return false
	case *ast.ArrowFunctionExpression:
		return containsThis(v.Body)
	default:
		return false
	}
}

func containsThisNode(n ast.Node) bool {
	if n == nil {
		return false
	}
	if e, ok := n.(ast.Expression); ok {
		return containsThis(e)
	}
	if d, ok := n.(*ast.VariableDeclaration); ok {
		return containsThis(d)
	}
	return false
}
