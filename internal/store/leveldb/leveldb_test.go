package leveldb

import (
	"path/filepath"
	"testing"

	"localstore/internal/store"
	"localstore/internal/store/storetest"
)

func tempStore(t *testing.T, scope string, opts ...Option) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ldb"), scope, opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return tempStore(t, "test-scope") })
}

func TestContractSync(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return tempStore(t, "test-scope", WithSync()) })
}

func TestOpenEmptyScope(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "ldb"), ""); err == nil {
		t.Fatal("opening with an empty scope should fail")
	}
}

func TestOpenScopeWithNUL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ldb")
	a, err := Open(dir, "a")
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Set("b\x00k", "v"); err != nil {
		t.Fatal(err)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	if s, err := Open(dir, "a\x00b"); err == nil {
		entries, _ := s.Entries()
		s.Close()
		t.Fatalf("scope with a NUL byte should be rejected, it sees %v", entries)
	}
}

func TestEmptyKey(t *testing.T) {
	s := tempStore(t, "scope")
	if err := s.Set("", "v"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("")
	if err != nil || !ok || v != "v" {
		t.Fatalf("empty key: got %q (ok=%v, err=%v)", v, ok, err)
	}
}

func TestScopesIsolated(t *testing.T) {
	s := tempStore(t, "a")
	other := &Store{db: s.db, prefix: append([]byte("ab"), 0)}

	if err := s.Set("k", "from-a"); err != nil {
		t.Fatal(err)
	}
	if err := other.Set("k", "from-ab"); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0] != (store.Entry{Key: "k", Value: "from-a"}) {
		t.Fatalf("scope a leaked entries: %v", entries)
	}
	v, _, _ := other.Get("k")
	if v != "from-ab" {
		t.Fatalf("scope ab: got %q", v)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ldb")
	s, err := Open(dir, "scope")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("theme", "dark"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(dir, "scope")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	v, ok, err := s.Get("theme")
	if err != nil || !ok || v != "dark" {
		t.Fatalf("expected dark after reopen, got %q (ok=%v, err=%v)", v, ok, err)
	}
}

func TestClosedStoreFails(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "ldb"), "scope")
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if err := s.Set("k", "v"); err == nil {
		t.Fatal("set on a closed db should fail")
	}
	if _, _, err := s.Get("k"); err == nil {
		t.Fatal("get on a closed db should fail")
	}
}
