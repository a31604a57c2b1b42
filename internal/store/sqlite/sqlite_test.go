package sqlite

import (
	"path/filepath"
	"testing"

	"localstore/internal/store"
	"localstore/internal/store/storetest"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "entries.sqlite"), "https://example.test")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return s
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return openTempStore(t) })
}

func TestOpenRequiresPathAndOrigin(t *testing.T) {
	if _, err := Open("  ", "origin"); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := Open(filepath.Join(t.TempDir(), "x.sqlite"), ""); err == nil {
		t.Fatal("expected error for empty origin")
	}
}

func TestEntriesInsertionOrder(t *testing.T) {
	s := openTempStore(t)
	for _, k := range []string{"c", "a", "b"} {
		if err := s.Set(k, "v"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	// Overwrite keeps the original row position.
	if err := s.Set("c", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	entries, err := s.Entries()
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	want := []store.Entry{{Key: "c", Value: "v2"}, {Key: "a", Value: "v"}, {Key: "b", Value: "v"}}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d = %v, want %v", i, entries[i], want[i])
		}
	}
}

func TestOriginsIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.sqlite")
	a, err := Open(path, "https://a.test")
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	defer a.Close()
	b, err := Open(path, "https://b.test")
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	defer b.Close()

	if err := a.Set("k", "a"); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if _, ok, err := b.Get("k"); err != nil || ok {
		t.Fatalf("origin b should not see a's key (ok=%v, err=%v)", ok, err)
	}
	if err := b.Remove("k"); err != nil {
		t.Fatalf("remove in b: %v", err)
	}
	if v, ok, _ := a.Get("k"); !ok || v != "a" {
		t.Fatalf("remove in b must not touch a, got %q (ok=%v)", v, ok)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.sqlite")
	s, err := Open(path, "origin")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = Open(path, "origin")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	v, ok, err := s.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected dark after reopen, got %q (ok=%v, err=%v)", v, ok, err)
	}
}

func TestCloseNil(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Fatalf("close nil store: %v", err)
	}
}
