package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := st.Set("items", []string{"a", "b"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var items []string
	if err := st.Get("items", &items); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(items) != 2 || items[0] != "a" || items[1] != "b" {
		t.Errorf("Expected [a b], got %v", items)
	}
}

func TestStore_MissingKeyReadsEmpty(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	items := []string{}
	if err := st.Get("nothing", &items); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty slice, got %v", items)
	}
}

func TestStore_CorruptFileReadsEmpty(t *testing.T) {
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "store.json"), []byte("not json {"), 0o644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	items := []string{}
	if err := st.Get("items", &items); err != nil {
		t.Fatalf("Get on corrupt file failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty slice from corrupt file, got %v", items)
	}

	// A write must recover the file.
	if err := st.Set("items", []string{"x"}); err != nil {
		t.Fatalf("Set on corrupt file failed: %v", err)
	}
	if err := st.Get("items", &items); err != nil {
		t.Fatalf("Get after recovery failed: %v", err)
	}
	if len(items) != 1 || items[0] != "x" {
		t.Errorf("Expected [x], got %v", items)
	}
}

func TestStore_CorruptValueReadsEmpty(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// A number where a slice is expected.
	if err := st.Set("items", 42); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	items := []string{}
	if err := st.Get("items", &items); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected untouched empty slice, got %v", items)
	}
}

func TestStore_Delete(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	st.Set("a", 1)
	st.Set("b", 2)
	st.Set("c", 3)

	if err := st.Delete("a", "b"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var n int
	st.Get("a", &n)
	if n != 0 {
		t.Errorf("Expected key 'a' gone, got %d", n)
	}
	st.Get("c", &n)
	if n != 3 {
		t.Errorf("Expected key 'c' to survive, got %d", n)
	}
}

func TestStore_KeysIsolated(t *testing.T) {
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	st.Set("first", []int{1, 2})
	st.Set("second", []int{3})

	var first, second []int
	st.Get("first", &first)
	st.Get("second", &second)

	if len(first) != 2 || len(second) != 1 {
		t.Errorf("Keys interfered: first=%v second=%v", first, second)
	}
}
