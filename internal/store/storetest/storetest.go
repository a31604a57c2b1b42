// Package storetest holds the behaviour every store.Store must share.
// Backend packages call Run from their own tests.
package storetest

import (
	"sort"
	"testing"

	"localstore/internal/store"
)

// Opener returns a fresh, empty store. The test owns cleanup via t.Cleanup.
type Opener func(t *testing.T) store.Store

// Run exercises the store.Store contract against stores built by open.
func Run(t *testing.T, open Opener) {
	t.Run("SetAndGet", func(t *testing.T) { testSetAndGet(t, open(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, open(t)) })
	t.Run("Overwrite", func(t *testing.T) { testOverwrite(t, open(t)) })
	t.Run("Remove", func(t *testing.T) { testRemove(t, open(t)) })
	t.Run("RemoveMissing", func(t *testing.T) { testRemoveMissing(t, open(t)) })
	t.Run("Entries", func(t *testing.T) { testEntries(t, open(t)) })
	t.Run("EntriesEmpty", func(t *testing.T) { testEntriesEmpty(t, open(t)) })
	t.Run("EntriesIsSnapshot", func(t *testing.T) { testEntriesIsSnapshot(t, open(t)) })
	t.Run("EmptyValue", func(t *testing.T) { testEmptyValue(t, open(t)) })
}

func mustSet(t *testing.T, s store.Store, k, v string) {
	t.Helper()
	if err := s.Set(k, v); err != nil {
		t.Fatalf("Set(%q): %v", k, err)
	}
}

func testSetAndGet(t *testing.T, s store.Store) {
	mustSet(t, s, "key1", "val1")
	v, ok, err := s.Get("key1")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "val1" {
		t.Fatalf("expected val1, got %q (ok=%v)", v, ok)
	}
}

func testGetMissing(t *testing.T, s store.Store) {
	mustSet(t, s, "other", "val")
	v, ok, err := s.Get("missing")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Fatalf("expected absence for missing key, got %q (ok=%v)", v, ok)
	}
}

func testOverwrite(t *testing.T, s store.Store) {
	mustSet(t, s, "k", "v1")
	mustSet(t, s, "k", "v2")
	v, _, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if v != "v2" {
		t.Fatalf("expected v2 after overwrite, got %q", v)
	}
	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("overwrite should not add an entry, got %d", len(entries))
	}
}

func testRemove(t *testing.T, s store.Store) {
	mustSet(t, s, "k", "v")
	if err := s.Remove("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := s.Get("k"); err != nil || ok {
		t.Fatalf("expected absence after remove (ok=%v, err=%v)", ok, err)
	}
}

func testRemoveMissing(t *testing.T, s store.Store) {
	mustSet(t, s, "keep", "v")
	if err := s.Remove("missing"); err != nil {
		t.Fatalf("removing a missing key should not fail: %v", err)
	}
	v, ok, err := s.Get("keep")
	if err != nil || !ok || v != "v" {
		t.Fatalf("other entries must be untouched, got %q (ok=%v, err=%v)", v, ok, err)
	}
}

func testEntries(t *testing.T, s store.Store) {
	mustSet(t, s, "a", "1")
	mustSet(t, s, "b", "2")
	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	want := []store.Entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), entries)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d: got %v, want %v", i, entries[i], want[i])
		}
	}
}

func testEntriesEmpty(t *testing.T, s store.Store) {
	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func testEntriesIsSnapshot(t *testing.T, s store.Store) {
	mustSet(t, s, "k", "original")
	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	mustSet(t, s, "k", "changed")
	mustSet(t, s, "later", "x")
	if len(entries) != 1 || entries[0].Value != "original" {
		t.Fatalf("entries should not follow later writes, got %v", entries)
	}
}

func testEmptyValue(t *testing.T, s store.Store) {
	mustSet(t, s, "k", "")
	v, ok, err := s.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "" {
		t.Fatalf("empty value should be present, got %q (ok=%v)", v, ok)
	}
}
