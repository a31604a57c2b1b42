package memory

import (
	"errors"
	"sync"
	"testing"

	"localstore/internal/store"
	"localstore/internal/store/storetest"
)

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return New() })
}

func TestInsertionOrder(t *testing.T) {
	s := New()
	for _, k := range []string{"c", "a", "b"} {
		_ = s.Set(k, "v")
	}
	_ = s.Set("c", "v2") // overwrite keeps position
	_ = s.Remove("a")
	_ = s.Set("a", "v3") // re-insert moves to the end

	entries, _ := s.Entries()
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Key
	}
	want := []string{"c", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestEmptyKey(t *testing.T) {
	s := New()
	if err := s.Set("", "v"); err != nil {
		t.Fatal(err)
	}
	if v, ok, _ := s.Get(""); !ok || v != "v" {
		t.Fatalf("empty key: got %q (ok=%v)", v, ok)
	}
}

func TestClosed(t *testing.T) {
	s := New()
	_ = s.Set("k", "v")
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Entries(); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("Entries after close: got %v", err)
	}
	if _, _, err := s.Get("k"); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("Get after close: got %v", err)
	}
	if err := s.Set("k", "v"); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("Set after close: got %v", err)
	}
	if err := s.Remove("k"); !errors.Is(err, store.ErrClosed) {
		t.Fatalf("Remove after close: got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			k := string(rune('a' + i))
			for j := 0; j < 100; j++ {
				_ = s.Set(k, "v")
				_, _, _ = s.Get(k)
				_, _ = s.Entries()
			}
		}(i)
	}
	wg.Wait()
	entries, _ := s.Entries()
	if len(entries) != 8 {
		t.Fatalf("expected 8 entries, got %d", len(entries))
	}
}
