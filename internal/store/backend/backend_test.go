package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"localstore/internal/config"
	"localstore/internal/store"
)

func openBackend(t *testing.T, cfg config.StoreConfig, scope string) Backend {
	t.Helper()
	b, err := Open(cfg, scope)
	if err != nil {
		t.Fatalf("Open(%s): %v", cfg.Backend, err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func TestOpenEachBackend(t *testing.T) {
	tests := []struct {
		backend string
		file    string
	}{
		{config.BackendBolt, boltFile},
		{config.BackendLevelDB, levelDBDir},
		{config.BackendSQLite, sqliteFile},
		{config.BackendMemory, ""},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "data")
			b := openBackend(t, config.StoreConfig{Backend: tt.backend, DataDir: dir}, "scope")

			if err := b.Set("theme", "dark"); err != nil {
				t.Fatalf("Set: %v", err)
			}
			v, ok, err := b.Get("theme")
			if err != nil || !ok || v != "dark" {
				t.Fatalf("Get: %q ok=%v err=%v", v, ok, err)
			}
			if tt.file == "" {
				return
			}
			if _, err := os.Stat(filepath.Join(dir, tt.file)); err != nil {
				t.Errorf("expected %s on disk: %v", tt.file, err)
			}
		})
	}
}

func TestOpenDisabled(t *testing.T) {
	b := openBackend(t, config.StoreConfig{Backend: config.BackendDisabled}, "scope")
	if err := b.Set("k", "v"); !errors.Is(err, store.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestOpenUnknown(t *testing.T) {
	if _, err := Open(config.StoreConfig{Backend: "redis"}, "scope"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenBadDataDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0600); err != nil {
		t.Fatal(err)
	}
	cfg := config.StoreConfig{Backend: config.BackendBolt, DataDir: filepath.Join(blocker, "data")}
	if _, err := Open(cfg, "scope"); err == nil {
		t.Fatal("expected error when data dir cannot be created")
	}
}

func TestOpenAppliesQuota(t *testing.T) {
	cfg := config.StoreConfig{Backend: config.BackendBolt, DataDir: t.TempDir(), QuotaBytes: 6}
	b := openBackend(t, cfg, "scope")

	if err := b.Set("k", "12345"); err != nil {
		t.Fatalf("write within quota: %v", err)
	}
	if err := b.Set("k2", "x"); !errors.Is(err, store.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestScopesShareFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.StoreConfig{Backend: config.BackendSQLite, DataDir: dir}
	a := openBackend(t, cfg, "https://a.test")
	b := openBackend(t, cfg, "https://b.test")

	if err := a.Set("k", "a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Get("k"); ok {
		t.Fatal("scope b should not see scope a's entries")
	}
}
