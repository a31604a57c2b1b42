// Package accessor exposes list/get/set/delete over an injected
// store.Store. It keeps no state of its own: the store is the single source
// of truth and its lifecycle belongs to whoever constructed it.
package accessor

import (
	"localstore/internal/logging"
	"localstore/internal/store"
)

var logger = logging.For("accessor")

// Accessor is a stateless facade over a host key-value store.
// Store failures are returned exactly as the store reported them.
type Accessor struct {
	store store.Store
}

// New returns an Accessor over s.
func New(s store.Store) *Accessor {
	return &Accessor{store: s}
}

// ListAll returns every entry currently in the store. The slice is a
// snapshot; later writes do not show up in it. Order is the store's.
func (a *Accessor) ListAll() ([]store.Entry, error) {
	entries, err := a.store.Entries()
	if err != nil {
		logger.Debug("store failure", "op", "list", "err", err)
		return nil, err
	}
	return entries, nil
}

// Get returns the value stored under key. ok is false when the key is
// absent; that is not an error.
func (a *Accessor) Get(key string) (value string, ok bool, err error) {
	value, ok, err = a.store.Get(key)
	if err != nil {
		logger.Debug("store failure", "op", "get", "key", key, "err", err)
		return "", false, err
	}
	return value, ok, nil
}

// Set writes value under key and returns what the store holds for key
// afterwards. The read-back matters when the store normalizes values on
// write. If the key reads back as absent, Set returns "".
func (a *Accessor) Set(key, value string) (string, error) {
	if err := a.store.Set(key, value); err != nil {
		logger.Debug("store failure", "op", "set", "key", key, "err", err)
		return "", err
	}
	stored, _, err := a.Get(key)
	if err != nil {
		return "", err
	}
	return stored, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (a *Accessor) Delete(key string) error {
	if err := a.store.Remove(key); err != nil {
		logger.Debug("store failure", "op", "delete", "key", key, "err", err)
		return err
	}
	return nil
}
