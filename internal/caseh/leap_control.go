package caseh

import "github.com/funvibe/funxy/internal/ast"

func labelName(id *ast.Identifier) string {
	if id == nil {
		return ""
	}
	return id.Name
}

// explodeBreak resolves the target via the Leap Manager and either jumps
// directly (no intervening finalizer) or routes through `_ctx.abrupt`
// (spec §4.4's Break/Continue rule).
func (b *Builder) explodeBreak(n *ast.BreakStatement) {
	loc, targetDepth, err := b.Leaps.ResolveBreak(labelName(n.Label))
	if err != nil {
		// Spec §7: an unresolved label is a malformed-input condition the
		// parser/validator should have already rejected; reaching here is
		// unspecified behavior, so emit the best-effort direct jump rather
		// than panicking the whole pass over upstream's mistake.
		b.Jump(loc)
		return
	}
	b.emitLeap("break", loc, targetDepth)
}

func (b *Builder) explodeContinue(n *ast.ContinueStatement) {
	loc, targetDepth, err := b.Leaps.ResolveContinue(labelName(n.Label))
	if err != nil {
		b.Jump(loc)
		return
	}
	b.emitLeap("continue", loc, targetDepth)
}

// emitLeap is shared by break/continue: if no finalizer sits between the
// current position and targetDepth, it's a plain jump; otherwise the
// runtime's abrupt() must run those finalizers in order before landing
// on loc.
func (b *Builder) emitLeap(kind string, loc, targetDepth int) {
	finals := b.Leaps.FinallyEntriesAbove(targetDepth)
	if len(finals) == 0 {
		b.Jump(loc)
		return
	}
	b.Emit(ast.Ret(ast.Call(b.CtxField("abrupt"), ast.Str(kind), ast.NumLoc(loc))))
}

// explodeLabeled pushes a LabeledEntry so a `break label;` anywhere inside
// (including inside a nested loop that doesn't itself carry the label)
// resolves to the statement's after-location, then marks that location
// once the body is fully exploded (spec §4.4: "after the labeled body,
// mark its breakLoc").
//
// A label directly in front of a loop/switch is folded into that
// construct's own entry instead of pushing a second one, so `outer: for
// (...)` lets `continue outer;` resolve through the loop's continueLoc —
// see explodeWhile/explodeFor's label parameter.
func (b *Builder) explodeLabeled(n *ast.LabeledStatement) {
	label := n.Label.Name
	switch body := n.Body.(type) {
	case *ast.WhileStatement:
		b.explodeWhile(body, label)
		return
	case *ast.DoWhileStatement:
		b.explodeDoWhile(body, label)
		return
	case *ast.ForStatement:
		b.explodeFor(body, label)
		return
	case *ast.ForInStatement:
		b.explodeForInOf(forInOf{left: body.Left, right: body.Right, body: body.Body, values: false}, label)
		return
	case *ast.ForOfStatement:
		b.explodeForInOf(forInOf{left: body.Left, right: body.Right, body: body.Body, values: true}, label)
		return
	case *ast.SwitchStatement:
		b.explodeSwitch(body, label)
		return
	}

	breakLoc := b.Alloc()
	b.Leaps.PushLabeled(label, breakLoc)
	b.ExplodeStatement(n.Body)
	b.Leaps.Pop()
	b.Jump(breakLoc)
	b.Mark(breakLoc)
}
