package fs

import (
	"sync"

	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
)

var _ ports.FileResolver = (*Resolver)(nil)

// Resolver is the direct, non-memoizing file resolver. Every source request
// reads from disk; precompiled-module requests always report not-found,
// which forces the backend onto its raw-source fallback. Used to benchmark
// without the module cache.
type Resolver struct {
	store ports.SourceStore

	mu   sync.RWMutex
	root string
}

// NewResolver creates a direct resolver over the given store.
func NewResolver(store ports.SourceStore) *Resolver {
	return &Resolver{store: store}
}

// SetSearchRoot sets the directory relative requests resolve against.
func (r *Resolver) SetSearchRoot(dir string) {
	r.mu.Lock()
	r.root = dir
	r.mu.Unlock()
}

// LoadFile reads the requested file from disk and wraps it in a fresh blob.
// The returned blob's only reference belongs to the caller.
func (r *Resolver) LoadFile(path string) (*domain.Blob, error) {
	r.mu.RLock()
	root := r.root
	r.mu.RUnlock()

	req := domain.ClassifyRequest(normalize(root, path))
	if req.Kind == domain.RequestPrecompiledModule {
		return nil, domain.ErrFileNotFound
	}

	data, err := r.store.ReadFile(req.SourcePath)
	if err != nil {
		return nil, err
	}
	return domain.NewBlob(data), nil
}
