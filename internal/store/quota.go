package store

import "sync"

// Limit wraps s so that writes fail with ErrQuotaExceeded once the total
// size of keys and values would pass maxBytes. A rejected write leaves the
// store unchanged. maxBytes <= 0 means no limit and returns s as is.
// Writes through the returned store are serialized; writes that bypass it
// are not counted until they are visible in s.
func Limit(s Store, maxBytes int) Store {
	if maxBytes <= 0 {
		return s
	}
	return &limited{Store: s, max: maxBytes}
}

type limited struct {
	Store
	max int

	mu sync.Mutex // held across the usage check and the write
}

func (l *limited) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.Store.Entries()
	if err != nil {
		return err
	}
	used := len(key) + len(value)
	for _, e := range entries {
		if e.Key == key {
			continue
		}
		used += len(e.Key) + len(e.Value)
	}
	if used > l.max {
		return ErrQuotaExceeded
	}
	return l.Store.Set(key, value)
}

// Usage returns the number of bytes held by s, counting keys and values.
func Usage(s Store) (int, error) {
	entries, err := s.Entries()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		n += len(e.Key) + len(e.Value)
	}
	return n, nil
}
