// Package backend opens the host store named in the configuration.
package backend

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"localstore/internal/config"
	"localstore/internal/logging"
	"localstore/internal/store"
	"localstore/internal/store/bolt"
	"localstore/internal/store/leveldb"
	"localstore/internal/store/memory"
	"localstore/internal/store/sqlite"
)

var logger = logging.For("store")

// File names under the data dir, per backend.
const (
	boltFile   = "localstore.db"
	levelDBDir = "leveldb"
	sqliteFile = "localstore.sqlite"
)

// Backend is an opened host store. Close releases the underlying files.
type Backend interface {
	store.Store
	io.Closer
}

type limited struct {
	store.Store
	closer io.Closer
}

func (l limited) Close() error { return l.closer.Close() }

// Open opens the backend described by cfg, bound to scope. cfg.DataDir must
// already be expanded. A positive cfg.QuotaBytes caps the store size.
func Open(cfg config.StoreConfig, scope string) (Backend, error) {
	var b Backend
	switch cfg.Backend {
	case config.BackendMemory:
		b = memory.New()
	case config.BackendDisabled:
		b = store.Disabled{}
	case config.BackendBolt, config.BackendLevelDB, config.BackendSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
			return nil, fmt.Errorf("creating data dir: %w", err)
		}
		var err error
		b, err = openPersistent(cfg, scope)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	logger.Debug("store opened", "backend", cfg.Backend, "scope", scope, "quota_bytes", cfg.QuotaBytes)

	if cfg.QuotaBytes > 0 {
		return limited{Store: store.Limit(b, cfg.QuotaBytes), closer: b}, nil
	}
	return b, nil
}

func openPersistent(cfg config.StoreConfig, scope string) (Backend, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		return bolt.Open(filepath.Join(cfg.DataDir, boltFile), scope)
	case config.BackendLevelDB:
		var opts []leveldb.Option
		if cfg.SyncWrites {
			opts = append(opts, leveldb.WithSync())
		}
		return leveldb.Open(filepath.Join(cfg.DataDir, levelDBDir), scope, opts...)
	default:
		return sqlite.Open(filepath.Join(cfg.DataDir, sqliteFile), scope)
	}
}
