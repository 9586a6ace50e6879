// Package cachefs implements the lazy compile-and-cache virtual filesystem.
// It answers a compiler session's file requests, compiles and serializes
// each requested precompiled module exactly once, and serves every repeat
// from an in-memory cache that lives as long as the process.
package cachefs

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileResolver = (*FS)(nil)

// FS is the cache filesystem. One instance is shared by every session a
// benchmark run creates, so memoized modules survive across repetitions.
//
// The cache map records three states per normalized path: absent (never
// queried), a blob (resolved), and a nil blob (queried and not found). An
// entry never changes state once written; there is no eviction.
type FS struct {
	store   ports.SourceStore
	backend ports.Backend
	cfg     domain.TargetConfig
	log     ports.Logger

	// group guarantees at most one in-flight resolution per normalized path
	// when sessions run concurrently.
	group singleflight.Group

	mu       sync.Mutex
	root     string
	entries  map[string]*domain.Blob
	inFlight map[string]bool

	hits           atomic.Int64
	negativeHits   atomic.Int64
	storageReads   atomic.Int64
	nestedCompiles atomic.Int64
}

// Stats is a snapshot of the cache's instrumentation counters.
type Stats struct {
	Hits           int64
	NegativeHits   int64
	StorageReads   int64
	NestedCompiles int64
	Entries        int
}

// New creates a cache filesystem that reads sources from store and runs
// nested compiles against backend with the given target configuration.
func New(store ports.SourceStore, backend ports.Backend, cfg domain.TargetConfig, log ports.Logger) *FS {
	return &FS{
		store:    store,
		backend:  backend,
		cfg:      cfg,
		log:      log,
		entries:  make(map[string]*domain.Blob),
		inFlight: make(map[string]bool),
	}
}

// SetSearchRoot sets the directory relative requests resolve against. Called
// once per top-level compile, before the session starts.
func (c *FS) SetSearchRoot(dir string) {
	c.mu.Lock()
	c.root = dir
	c.mu.Unlock()
}

// LoadFile resolves path, memoizing both successes and storage-read
// failures. Returned blobs carry at least two live references: the cache's
// own and the one handed to the caller.
func (c *FS) LoadFile(path string) (*domain.Blob, error) {
	c.mu.Lock()
	req := domain.ClassifyRequest(c.normalizeLocked(path))

	if blob, ok := c.entries[req.Path]; ok {
		c.mu.Unlock()
		if blob == nil {
			c.negativeHits.Add(1)
			return nil, zerr.With(zerr.Wrap(domain.ErrFileNotFound, "negative cache entry"), "path", req.Path)
		}
		c.hits.Add(1)
		return blob.Retain(), nil
	}

	if req.Kind == domain.RequestPrecompiledModule && c.inFlight[req.Path] {
		c.mu.Unlock()
		return nil, zerr.With(zerr.Wrap(domain.ErrCompileFailed, "circular module dependency"), "path", req.Path)
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(req.Path, func() (any, error) {
		return c.resolve(req)
	})
	if err != nil {
		return nil, err
	}

	blob := v.(*domain.Blob).Retain()
	if n := blob.RefCount(); n < 2 {
		// The cache entry and the caller each hold one; anything lower means
		// an ownership bug.
		panic(fmt.Sprintf("cachefs: blob for %s has %d references, want >= 2", req.Path, n))
	}
	return blob, nil
}

// Stats returns a snapshot of the instrumentation counters.
func (c *FS) Stats() Stats {
	c.mu.Lock()
	entries := len(c.entries)
	c.mu.Unlock()
	return Stats{
		Hits:           c.hits.Load(),
		NegativeHits:   c.negativeHits.Load(),
		StorageReads:   c.storageReads.Load(),
		NestedCompiles: c.nestedCompiles.Load(),
		Entries:        entries,
	}
}

// resolve performs the cache-miss path for one classified request. It runs
// inside the singleflight group, so at most one resolution per path is in
// flight.
func (c *FS) resolve(req domain.Request) (*domain.Blob, error) {
	// Double-check under the lock: a concurrent caller may have resolved
	// this path between our fast-path miss and the group call.
	c.mu.Lock()
	if blob, ok := c.entries[req.Path]; ok {
		c.mu.Unlock()
		if blob == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrFileNotFound, "negative cache entry"), "path", req.Path)
		}
		return blob, nil
	}
	if req.Kind == domain.RequestPrecompiledModule {
		c.inFlight[req.Path] = true
		defer func() {
			c.mu.Lock()
			delete(c.inFlight, req.Path)
			c.mu.Unlock()
		}()
	}
	c.mu.Unlock()

	c.storageReads.Add(1)
	data, err := c.store.ReadFile(req.SourcePath)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			// Negative entry: this path is never queried from storage again.
			// The store's error already carries the sentinel and the path.
			c.record(req.Path, nil)
			return nil, err
		}
		return nil, err
	}

	var blob *domain.Blob
	if req.Kind == domain.RequestPrecompiledModule {
		img, err := c.compileModule(req.SourcePath, data)
		if err != nil {
			// A failed nested compile is not cached: a transient compiler
			// failure must not poison the cache for the rest of the process.
			return nil, err
		}
		blob = domain.NewBlob(img)
	} else {
		blob = domain.NewBlob(data)
	}

	c.record(req.Path, blob)
	return blob, nil
}

// compileModule runs a nested compile of srcPath in a disposable session
// that resolves through this same cache filesystem, so transitively imported
// modules land in the cache too, then serializes the result.
func (c *FS) compileModule(srcPath string, source []byte) ([]byte, error) {
	c.nestedCompiles.Add(1)

	start := time.Now()
	session, err := c.backend.NewSession(c.cfg, c)
	if err != nil {
		return nil, err
	}
	module, err := session.LoadModule(srcPath, source)
	if err != nil {
		return nil, err
	}
	c.log.Info(fmt.Sprintf("module compilation time: %s (%s)", time.Since(start), srcPath))

	start = time.Now()
	img, err := module.Serialize()
	if err != nil {
		return nil, err
	}
	c.log.Info(fmt.Sprintf("module serialization time: %s (%d bytes)", time.Since(start), len(img)))

	return img, nil
}

// record writes a cache entry. Entries are written once and never replaced.
func (c *FS) record(path string, blob *domain.Blob) {
	c.mu.Lock()
	if _, ok := c.entries[path]; !ok {
		c.entries[path] = blob
	}
	c.mu.Unlock()
}

// normalizeLocked resolves path against the active search root. Callers hold
// c.mu.
func (c *FS) normalizeLocked(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.root, path)
}
