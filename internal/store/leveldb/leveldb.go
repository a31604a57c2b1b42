package leveldb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"localstore/internal/store"
)

// Store implements store.Store on a goleveldb database directory.
// Keys are namespaced as scope + 0x00 + key.
type Store struct {
	db     *leveldb.DB
	prefix []byte
	sync   bool
}

// Option tweaks how a Store writes.
type Option func(*Store)

// WithSync makes every write fsync before returning.
func WithSync() Option {
	return func(s *Store) { s.sync = true }
}

// Open creates or opens a goleveldb database in dir, bound to scope.
// The scope must not contain 0x00, the separator between scope and key.
func Open(dir, scope string, opts ...Option) (*Store, error) {
	if scope == "" {
		return nil, fmt.Errorf("opening leveldb: empty scope")
	}
	if strings.IndexByte(scope, 0) >= 0 {
		return nil, fmt.Errorf("opening leveldb: scope %q contains a NUL byte", scope)
	}
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb: %w", err)
	}
	s := &Store{db: db, prefix: append([]byte(scope), 0)}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

func (s *Store) key(k string) []byte {
	out := make([]byte, 0, len(s.prefix)+len(k))
	out = append(out, s.prefix...)
	return append(out, k...)
}

func (s *Store) Entries() ([]store.Entry, error) {
	iter := s.db.NewIterator(util.BytesPrefix(s.prefix), nil)
	defer iter.Release()

	out := []store.Entry{}
	for iter.Next() {
		out = append(out, store.Entry{
			Key:   string(iter.Key()[len(s.prefix):]),
			Value: string(iter.Value()),
		})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	return out, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	v, err := s.db.Get(s.key(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return string(v), true, nil
}

func (s *Store) Set(key, value string) error {
	if err := s.db.Put(s.key(key), []byte(value), s.writeOptions()); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(key string) error {
	if err := s.db.Delete(s.key(key), s.writeOptions()); err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

func (s *Store) writeOptions() *opt.WriteOptions {
	return &opt.WriteOptions{Sync: s.sync}
}

func (s *Store) Close() error {
	return s.db.Close()
}
