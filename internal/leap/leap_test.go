package leap

import "testing"

func TestPushPopDepth(t *testing.T) {
	m := &Manager{}
	if m.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", m.Depth())
	}
	m.PushLoop("", 1, 2)
	m.PushSwitch("outer", 3)
	if m.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", m.Depth())
	}
	m.Pop()
	if m.Depth() != 1 {
		t.Fatalf("Depth() after Pop = %d, want 1", m.Depth())
	}
}

func TestPopOnEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Pop on empty stack to panic")
		}
	}()
	(&Manager{}).Pop()
}

func TestResolveBreakUnlabeled(t *testing.T) {
	m := &Manager{}
	m.PushLoop("outer", 10, 11)
	m.PushLoop("", 20, 21)
	loc, depth, err := m.ResolveBreak("")
	if err != nil {
		t.Fatalf("ResolveBreak: %v", err)
	}
	if loc != 20 || depth != 1 {
		t.Fatalf("ResolveBreak() = (%d, %d), want (20, 1)", loc, depth)
	}
}

func TestResolveBreakLabeled(t *testing.T) {
	m := &Manager{}
	m.PushLoop("outer", 10, 11)
	m.PushLoop("", 20, 21)
	loc, depth, err := m.ResolveBreak("outer")
	if err != nil {
		t.Fatalf("ResolveBreak: %v", err)
	}
	if loc != 10 || depth != 0 {
		t.Fatalf("ResolveBreak(outer) = (%d, %d), want (10, 0)", loc, depth)
	}
}

func TestResolveBreakSkipsTry(t *testing.T) {
	m := &Manager{}
	m.PushLoop("", 5, 6)
	m.PushTry(&TryEntry{FirstLoc: 0, CatchLoc: NoLoc, FinallyLoc: NoLoc, AfterLoc: 9})
	loc, _, err := m.ResolveBreak("")
	if err != nil {
		t.Fatalf("ResolveBreak: %v", err)
	}
	if loc != 5 {
		t.Fatalf("ResolveBreak() = %d, want 5 (try entries are not break targets)", loc)
	}
}

func TestResolveContinueOnlyMatchesLoops(t *testing.T) {
	m := &Manager{}
	m.PushLabeled("lbl", 100)
	if _, _, err := m.ResolveContinue("lbl"); err == nil {
		t.Fatal("expected ResolveContinue to fail for a non-loop label")
	}
}

func TestFinallyEntriesAboveAndForReturn(t *testing.T) {
	m := &Manager{}
	outer := &TryEntry{FirstLoc: 1, CatchLoc: NoLoc, FinallyLoc: 2, AfterLoc: 3}
	inner := &TryEntry{FirstLoc: 4, CatchLoc: NoLoc, FinallyLoc: 5, AfterLoc: 6}
	m.PushTry(outer)
	target := m.Depth()
	m.PushTry(inner)

	above := m.FinallyEntriesAbove(target)
	if len(above) != 1 || above[0] != inner {
		t.Fatalf("FinallyEntriesAbove(target) = %v, want [inner]", above)
	}

	all := m.FinallyEntriesForReturn()
	if len(all) != 2 || all[0] != inner || all[1] != outer {
		t.Fatalf("FinallyEntriesForReturn() = %v, want [inner, outer]", all)
	}
}

func TestTryLocsListPreservesPushOrder(t *testing.T) {
	m := &Manager{}
	a := &TryEntry{FirstLoc: 0, CatchLoc: NoLoc, FinallyLoc: NoLoc, AfterLoc: 1}
	b := &TryEntry{FirstLoc: 2, CatchLoc: NoLoc, FinallyLoc: NoLoc, AfterLoc: 3}
	m.PushTry(a)
	m.Pop()
	m.PushTry(b)
	list := m.TryLocsList()
	if len(list) != 2 || list[0] != a || list[1] != b {
		t.Fatalf("TryLocsList() = %v, want [a, b]", list)
	}
}

func TestTryEntryHasCatchHasFinally(t *testing.T) {
	both := &TryEntry{CatchLoc: 1, FinallyLoc: 2}
	if !both.HasCatch() || !both.HasFinally() {
		t.Fatal("expected both HasCatch and HasFinally to be true")
	}
	neither := &TryEntry{CatchLoc: NoLoc, FinallyLoc: NoLoc}
	if neither.HasCatch() || neither.HasFinally() {
		t.Fatal("expected neither HasCatch nor HasFinally to be true")
	}
}
