package store

import "errors"

// Failures reported by host stores. Callers above the store pass them
// through untouched, so errors.Is works all the way up.
var (
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	ErrDisabled      = errors.New("storage is disabled")
	ErrClosed        = errors.New("store is closed")
)

// Entry is a single key/value pair held by a Store.
type Entry struct {
	Key   string
	Value string
}

// Store is the host key-value capability the accessor is built on.
// Keys and values are plain strings. A missing key is reported through
// the ok result of Get, never as an error, and removing a missing key is
// a no-op. Implementations serialize concurrent access themselves.
//
// The in-memory implementation is used in tests; bbolt, goleveldb and
// SQLite back persistent profiles.
type Store interface {
	Entries() ([]Entry, error)
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Disabled is a Store whose host has turned storage off. Every call fails
// with ErrDisabled.
type Disabled struct{}

func (Disabled) Entries() ([]Entry, error) { return nil, ErrDisabled }
func (Disabled) Get(string) (string, bool, error) { return "", false, ErrDisabled }
func (Disabled) Set(string, string) error { return ErrDisabled }
func (Disabled) Remove(string) error { return ErrDisabled }
func (Disabled) Close() error { return nil }
