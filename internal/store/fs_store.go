package store

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/hack-pad/hackpadfs"
)

// FSStore keeps one file per key in a directory of a hackpadfs filesystem.
// In the browser the filesystem is IndexedDB-backed; natively it is an OS directory.
type FSStore struct {
	mu  sync.RWMutex
	fs  hackpadfs.FS
	dir string
}

// NewFSStore creates a store rooted at dir ("" or "." for the filesystem root).
func NewFSStore(fsys hackpadfs.FS, dir string) (*FSStore, error) {
	if dir == "" {
		dir = "."
	}
	if !fs.ValidPath(dir) {
		return nil, fmt.Errorf("invalid store directory %q", dir)
	}
	if dir != "." {
		if err := hackpadfs.MkdirAll(fsys, dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FSStore{fs: fsys, dir: dir}, nil
}

// Close is a no-op; the filesystem belongs to the caller.
func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) Get(key string) ([]byte, error) {
	name, err := s.path(key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := hackpadfs.ReadFile(s.fs, name)
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (s *FSStore) Put(key string, value []byte) error {
	name, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.WriteFullFile(s.fs, name, value, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *FSStore) Delete(key string) error {
	name, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = hackpadfs.Remove(s.fs, name)
	if err != nil && !errors.Is(err, hackpadfs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *FSStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := hackpadfs.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.dir, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			keys = append(keys, e.Name())
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// path maps a key to a file name inside the store directory.
// Keys must be single path elements.
func (s *FSStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return path.Join(s.dir, key), nil
}

// Compile-time interface check
var _ Storer = (*FSStore)(nil)
