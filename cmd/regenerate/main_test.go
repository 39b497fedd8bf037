package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadUnitFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unit.json")
	if err := os.WriteFile(path, []byte(`{"type":"Program"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := readUnit(path)
	if err != nil {
		t.Fatalf("readUnit: %v", err)
	}
	if string(data) != `{"type":"Program"}` {
		t.Fatalf("readUnit returned %q, want the file's contents", data)
	}
}

func TestReadUnitMissingFileErrors(t *testing.T) {
	if _, err := readUnit(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("readUnit on a missing path did not return an error")
	}
}
