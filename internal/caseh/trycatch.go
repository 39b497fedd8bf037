package caseh

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/leap"
)

// explodeTry lowers try/catch/finally per spec §4.4: allocate whichever
// of catchLoc/finallyLoc the clauses actually need plus a shared afterLoc,
// build the leap.TryEntry describing them, push it before exploding the
// try block (so any leap originating inside it can find the entry), then
// emit the catch and finally bodies the same way the runtime consults
// them — via _ctx.catch(firstLoc) and a trailing _ctx.finish(finallyLoc).
func (b *Builder) explodeTry(n *ast.TryStatement) {
	firstLoc := b.Alloc()
	afterLoc := b.Alloc()

	catchLoc := leap.NoLoc
	if n.Handler != nil {
		catchLoc = b.Alloc()
	}
	finallyLoc := leap.NoLoc
	finallyEntry := leap.NoLoc
	if n.Finalizer != nil {
		finallyEntry = b.Alloc()
		finallyLoc = finallyEntry
	}

	tryEntry := &leap.TryEntry{
		FirstLoc:     firstLoc,
		CatchLoc:     catchLoc,
		FinallyLoc:   finallyLoc,
		AfterLoc:     afterLoc,
		FinallyEntry: finallyEntry,
	}
	b.Leaps.PushTry(tryEntry)

	b.Jump(firstLoc)
	b.Mark(firstLoc)
	b.ExplodeStatement(n.Block)
	if n.Finalizer != nil {
		b.Jump(finallyEntry)
	} else {
		b.Jump(afterLoc)
	}

	if n.Handler != nil {
		b.Mark(catchLoc)
		if id, ok := n.Handler.Param.(*ast.Identifier); ok && id != nil {
			b.Emit(ast.ExprStmt(ast.Assign(ast.Ident(id.Name), ast.Call(b.CtxField("catch"), ast.NumLoc(firstLoc)))))
		} else {
			b.Emit(ast.ExprStmt(ast.Call(b.CtxField("catch"), ast.NumLoc(firstLoc))))
		}
		b.ExplodeStatement(n.Handler.Body)
		if n.Finalizer != nil {
			b.Jump(finallyEntry)
		} else {
			b.Jump(afterLoc)
		}
	}

	if n.Finalizer != nil {
		b.Mark(finallyEntry)
		b.ExplodeStatement(n.Finalizer)
		b.Emit(ast.Ret(ast.Call(b.CtxField("finish"), ast.NumLoc(finallyLoc))))
	}

	b.Leaps.Pop()
	b.Mark(afterLoc)
}
