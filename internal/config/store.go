package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
)

// Store holds the current Settings as an atomically swappable snapshot
// (spec §5): readers call Get and never block; writers serialize through
// the single mutex in Set so two concurrent saves don't interleave
// writes to the same file.
type Store struct {
	path string

	current atomic.Pointer[Settings]

	mu sync.Mutex
}

// NewStore wraps an already-loaded Settings value, to be persisted to
// path on Set.
func NewStore(path string, initial Settings) *Store {
	s := &Store{path: path}
	s.current.Store(&initial)
	return s
}

// Load locates the settings file via locator, decodes it if found, and
// returns a ready Store. A missing file is not an error: the Store starts
// from Defaults() and Path() still reports where Set will write to
// (falling back to the default XDG location when locate fails, per spec §6
// "first-run incomplete" implying no file exists yet).
func Load(locator Locator) (*Store, error) {
	path, err := LocateSettingsFile(locator)
	if err != nil {
		home, homeErr := homedirFunc()
		if homeErr != nil {
			return nil, fmt.Errorf("locate settings file: %w", err)
		}
		path = filepath.Join(home, ".config", configDirName, SettingsFilename)
		return NewStore(path, Defaults()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}
	settings, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode settings file %s: %w", path, err)
	}
	return NewStore(path, settings), nil
}

// Path reports the file Set writes to.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current snapshot. Safe for concurrent use without
// locking (spec §5: "Settings are read through an atomically swappable
// snapshot").
func (s *Store) Get() Settings {
	return *s.current.Load()
}

// Set installs next as the current snapshot and persists it to disk,
// serializing concurrent callers through s.mu (spec §5: "writers serialize
// through the settings collaborator").
func (s *Store) Set(next Settings) error {
	next.Clamp()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(next); err != nil {
		return err
	}
	s.current.Store(&next)
	return nil
}

func (s *Store) save(settings Settings) error {
	data, err := Encode(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write settings file %s: %w", s.path, err)
	}
	return nil
}
