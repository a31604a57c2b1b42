package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const idFile = "profile.id"

// Profile identifies one data directory. Its ID is the default storage
// scope when no origin is configured, so two data dirs never share entries
// by accident even if they point at the same database.
type Profile struct {
	ID  string
	Dir string
}

// Load reads the profile ID from dataDir/profile.id. If the file doesn't
// exist, a new ID is generated and persisted.
func Load(dataDir string) (*Profile, error) {
	path := filepath.Join(dataDir, idFile)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading profile id: %w", err)
		}
		return generate(dataDir, path)
	}

	id, err := uuid.Parse(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parsing profile id: %w", err)
	}
	return &Profile{ID: id.String(), Dir: dataDir}, nil
}

func generate(dataDir, path string) (*Profile, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	id := uuid.New()
	if err := os.WriteFile(path, []byte(id.String()+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("writing profile id: %w", err)
	}
	return &Profile{ID: id.String(), Dir: dataDir}, nil
}

// Scope returns origin if set, otherwise the profile ID.
func (p *Profile) Scope(origin string) string {
	if origin = strings.TrimSpace(origin); origin != "" {
		return origin
	}
	return p.ID
}
