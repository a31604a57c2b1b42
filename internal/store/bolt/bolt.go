package bolt

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"localstore/internal/store"
)

// Store implements store.Store using bbolt (embedded B+ tree).
// Each scope lives in its own bucket, so several origins can share one
// database file without seeing each other's entries.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// lockTimeout bounds how long Open waits for another process holding the
// database file.
var lockTimeout = time.Second

// Open creates or opens a bbolt database at the given path, bound to scope.
// The scope bucket is created lazily on the first write.
func Open(path, scope string) (*Store, error) {
	if scope == "" {
		return nil, fmt.Errorf("opening bolt db: empty scope")
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}
	return &Store{db: db, bucket: []byte(scope)}, nil
}

func (s *Store) Entries() ([]store.Entry, error) {
	var out []store.Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			// string() copies; bolt memory is only valid inside the tx.
			out = append(out, store.Entry{Key: string(k), Value: string(v)})
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	if out == nil {
		out = []store.Entry{}
	}
	return out, nil
}

func (s *Store) Get(key string) (string, bool, error) {
	var (
		val   string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		// Seek rather than Get: a zero-length value must still read as present.
		k, v := b.Cursor().Seek([]byte(key))
		if k != nil && string(k) == key {
			val, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return val, found, nil
}

func (s *Store) Set(key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(s.bucket)
		if err != nil {
			return fmt.Errorf("creating bucket: %w", err)
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
