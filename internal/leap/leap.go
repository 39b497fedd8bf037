// Package leap implements the Leap Manager from spec §4.1: a stack of
// active structured-control contexts (loop, labeled statement, switch,
// try) that the Case Handler consults to resolve break/continue/return/
// throw into concrete Locations, routing through any intervening
// finalizers.
//
// Grounded on the teacher's loopStack push/pop/patch discipline in
// compiler_loops.go (compileWhileLoop, compileBreakStatement,
// compileContinueStatement): a construct pushes an entry on entry, every
// abrupt completion inside it walks the stack innermost-first to find
// its target, and the entry is popped (there, after patching all
// collected break jumps; here, after the Case Handler marks breakLoc).
package leap

import "fmt"

// Kind identifies what kind of construct an entry guards.
type Kind int

const (
	KindLoop Kind = iota
	KindLabeled
	KindSwitch
	KindTry
)

// TryEntry is spec §3's TryEntry: the four locations the runtime's
// tryLocsList constant needs, plus FinallyEntry — the location the Case
// Handler jumps to when unwinding *through* this try's finalizer on the
// way to some outer target (as opposed to FinallyLoc, which is where
// control lands after the try block completes normally).
//
// A field holds NoLoc (-1) when the corresponding clause is absent
// (no catch, no finally), matching the runtime's tryLocsList sentinel.
type TryEntry struct {
	FirstLoc     int
	CatchLoc     int
	FinallyLoc   int
	AfterLoc     int
	FinallyEntry int
}

// NoLoc is the sentinel for an absent catch/finally clause.
const NoLoc = -1

func (t *TryEntry) HasCatch() bool   { return t.CatchLoc != NoLoc }
func (t *TryEntry) HasFinally() bool { return t.FinallyLoc != NoLoc }

type entry struct {
	kind        Kind
	label       string // "" unless kind == KindLabeled, or a loop/switch is itself labeled
	breakLoc    int
	continueLoc int // NoLoc unless kind == KindLoop
	try         *TryEntry
}

// Manager is the per-generator leap stack. The zero value is ready to use.
type Manager struct {
	stack []entry
	tries []*TryEntry // all try entries ever pushed, in declaration order
}

// PushLoop registers a loop's break/continue targets. label is the
// loop's own label if one immediately precedes it ("outer: for (...)"),
// so a labeled break/continue targeting the loop directly resolves here
// rather than needing a separate KindLabeled entry.
func (m *Manager) PushLoop(label string, breakLoc, continueLoc int) {
	m.stack = append(m.stack, entry{kind: KindLoop, label: label, breakLoc: breakLoc, continueLoc: continueLoc})
}

// PushLabeled registers a non-loop labeled statement ("outer: { ... }").
// Only break is meaningful for these; continue to a non-loop label is a
// parse-time error the pass never has to handle (spec §7).
func (m *Manager) PushLabeled(label string, breakLoc int) {
	m.stack = append(m.stack, entry{kind: KindLabeled, label: label, breakLoc: breakLoc, continueLoc: NoLoc})
}

// PushSwitch registers a switch statement's break target. label is the
// switch's own label if one immediately precedes it ("outer: switch
// (...)"), same convention as PushLoop.
func (m *Manager) PushSwitch(label string, breakLoc int) {
	m.stack = append(m.stack, entry{kind: KindSwitch, label: label, breakLoc: breakLoc, continueLoc: NoLoc})
}

// PushTry registers a try/catch/finally's locations and records it in
// tryLocsList emission order.
func (m *Manager) PushTry(t *TryEntry) {
	m.stack = append(m.stack, entry{kind: KindTry, breakLoc: NoLoc, continueLoc: NoLoc, try: t})
	m.tries = append(m.tries, t)
}

// Pop removes the innermost entry. Callers must pop exactly what they
// pushed, in LIFO order; a pop on an empty stack is the "dangling leap
// entry" internal invariant violation spec §7 calls out.
func (m *Manager) Pop() {
	if len(m.stack) == 0 {
		panic("leap: pop on empty stack")
	}
	m.stack = m.stack[:len(m.stack)-1]
}

// Depth returns the current stack height, used by the Case Handler to
// remember "where we were" before entering a construct so it can later
// ask FinallyEntriesAbove for exactly the finalizers introduced since.
func (m *Manager) Depth() int { return len(m.stack) }

// ResolveBreak finds the breakLoc of the innermost entry matching label
// (or the innermost loop/switch/labeled entry if label == "").
func (m *Manager) ResolveBreak(label string) (int, int, error) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		e := m.stack[i]
		if e.kind == KindTry {
			continue
		}
		if label == "" || e.label == label {
			return e.breakLoc, i, nil
		}
	}
	return 0, 0, fmt.Errorf("leap: unresolved break label %q", label)
}

// ResolveContinue finds the continueLoc of the innermost loop matching
// label (or the innermost loop if label == "").
func (m *Manager) ResolveContinue(label string) (int, int, error) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		e := m.stack[i]
		if e.kind != KindLoop {
			continue
		}
		if label == "" || e.label == label {
			return e.continueLoc, i, nil
		}
	}
	return 0, 0, fmt.Errorf("leap: unresolved continue label %q", label)
}

// FinallyEntriesAbove returns, innermost to outermost, the TryEntry of
// every KindTry entry currently on the stack above (i.e. more deeply
// nested than) targetDepth. This is what a break/continue/return crossing
// from the current position out to a target at targetDepth must route
// through via _ctx.abrupt, per spec §4.1's finallyEntriesBetween.
func (m *Manager) FinallyEntriesAbove(targetDepth int) []*TryEntry {
	var out []*TryEntry
	for i := len(m.stack) - 1; i >= targetDepth; i-- {
		if m.stack[i].kind == KindTry && m.stack[i].try.HasFinally() {
			out = append(out, m.stack[i].try)
		}
	}
	return out
}

// FinallyEntriesForReturn/Throw is FinallyEntriesAbove(0): a return or an
// uncaught throw leaves the function entirely, so every enclosing
// finalizer on the stack must run.
func (m *Manager) FinallyEntriesForReturn() []*TryEntry {
	return m.FinallyEntriesAbove(0)
}

// TryLocsList snapshots every TryEntry pushed during the walk, in
// declaration (push) order, for the constant array argument to
// runtime.wrap() (spec §3's TryLocsList, §6's "Module-level emission").
func (m *Manager) TryLocsList() []*TryEntry {
	return m.tries
}
