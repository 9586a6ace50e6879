// Package pipeline implements the compile orchestration the benchmark
// harness drives: one shared resolver, a fresh backend session per compile
// call, and extraction of the final target bytecode.
package pipeline

import (
	"context"
	"path/filepath"

	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline wires a backend and a file resolver into a repeatable compile
// operation. The resolver (and with it the module cache) outlives every
// session; sessions are created fresh per call.
type Pipeline struct {
	backend  ports.Backend
	cfg      domain.TargetConfig
	resolver ports.FileResolver

	output []byte
}

// New creates a pipeline over the given backend, target configuration, and
// resolver.
func New(backend ports.Backend, cfg domain.TargetConfig, resolver ports.FileResolver) *Pipeline {
	return &Pipeline{backend: backend, cfg: cfg, resolver: resolver}
}

// Name returns the backend's name; the harness names output artifacts
// after it.
func (p *Pipeline) Name() string { return p.backend.Name() }

// Compile compiles source as the top-level module at path and holds the
// extracted target bytecode until the next call overwrites it.
func (p *Pipeline) Compile(ctx context.Context, path string, source []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.resolver.SetSearchRoot(filepath.Dir(path))

	session, err := p.backend.NewSession(p.cfg, p.resolver)
	if err != nil {
		return zerr.Wrap(err, "failed to create compile session")
	}

	module, err := session.LoadModule(path, source)
	if err != nil {
		return err
	}

	code, err := module.TargetCode(0)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "target code extraction failed"), "path", path)
	}

	p.output = code
	return nil
}

// Output returns the target bytecode of the most recent successful Compile.
func (p *Pipeline) Output() []byte { return p.output }
