package cache

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transforms.sqlite")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewKeyDeterministicAndSensitiveToEitherInput(t *testing.T) {
	k1 := NewKey("function* f(){}", "fp1")
	k2 := NewKey("function* f(){}", "fp1")
	if k1 != k2 {
		t.Fatal("NewKey is not deterministic for identical inputs")
	}
	if k1 == NewKey("function* f(){}", "fp2") {
		t.Fatal("NewKey did not change when the config fingerprint changed")
	}
	if k1 == NewKey("function* g(){}", "fp1") {
		t.Fatal("NewKey did not change when the body text changed")
	}
}

func TestLookupMissOnEmptyStore(t *testing.T) {
	s := openTestStore(t)
	if _, ok := s.Lookup(context.Background(), NewKey("x", "y")); ok {
		t.Fatal("Lookup on an empty store returned a hit")
	}
}

func TestPutThenLookupRoundTrips(t *testing.T) {
	s := openTestStore(t)
	key := NewKey("function* f(){ yield 1; }", "fp")
	entry := Entry{
		OutputJSON:  `{"type":"Program"}`,
		CaseCount:   2,
		TryLocs:     [][4]int{{0, -1, -1, 5}},
		RuntimeUsed: true,
	}

	if err := s.Put(context.Background(), key, entry); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := s.Lookup(context.Background(), key)
	if !ok {
		t.Fatal("Lookup after Put returned a miss")
	}
	if got.OutputJSON != entry.OutputJSON || got.CaseCount != entry.CaseCount || got.RuntimeUsed != entry.RuntimeUsed {
		t.Fatalf("Lookup() = %+v, want %+v", got, entry)
	}
	if len(got.TryLocs) != 1 || got.TryLocs[0] != [4]int{0, -1, -1, 5} {
		t.Fatalf("TryLocs round-tripped as %v, want [[0 -1 -1 5]]", got.TryLocs)
	}
}

func TestPutOverwritesExistingEntry(t *testing.T) {
	s := openTestStore(t)
	key := NewKey("function* f(){}", "fp")

	if err := s.Put(context.Background(), key, Entry{CaseCount: 1}); err != nil {
		t.Fatalf("Put #1: %v", err)
	}
	if err := s.Put(context.Background(), key, Entry{CaseCount: 9}); err != nil {
		t.Fatalf("Put #2: %v", err)
	}

	got, ok := s.Lookup(context.Background(), key)
	if !ok {
		t.Fatal("Lookup after overwrite returned a miss")
	}
	if got.CaseCount != 9 {
		t.Fatalf("CaseCount = %d, want 9 (second Put should overwrite the first)", got.CaseCount)
	}
}
