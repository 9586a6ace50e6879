// Package fs provides filesystem-backed adapters: the source store the cache
// filesystem reads through, upward source discovery, and a direct resolver
// used when the module cache is disabled.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.SourceStore against the OS filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// ReadFile returns the contents of the file at path. A missing path maps to
// domain.ErrFileNotFound so callers can cache the negative result.
func (s *Store) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(errors.Join(domain.ErrFileNotFound, err), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read source file"), "path", path)
	}
	return data, nil
}

// FindSource locates name by trying the path as given and then prepending
// up to maxParents "../" segments, returning the path that worked and its
// contents.
func (s *Store) FindSource(name string, maxParents int) (string, []byte, error) {
	path := name
	for parents := 0; parents <= maxParents; parents++ {
		data, err := s.ReadFile(path)
		if err == nil {
			return path, data, nil
		}
		if !errors.Is(err, domain.ErrFileNotFound) {
			return "", nil, err
		}
		path = filepath.Join("..", path)
	}
	err := zerr.Wrap(domain.ErrShaderNotFound, "searched working directory and parents")
	err = zerr.With(err, "name", name)
	err = zerr.With(err, "max_parents", maxParents)
	return "", nil, err
}

// normalize resolves path against root unless it is already absolute, and
// cleans it so equivalent spellings share one cache key.
func normalize(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}
