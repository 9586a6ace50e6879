// Package slang implements the shading-language compiler backend: a global
// session that mints cheap per-compile sessions, modules that serialize to a
// canonical CBOR image, and SPIR-V-style word-stream target code.
package slang

import (
	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
	"go.trai.ch/zerr"
)

// SourceSuffix is the file extension of raw shader source.
const SourceSuffix = ".slang"

// Options configures the global session.
type Options struct {
	// EnableGLSL allows gl_-prefixed builtins in source.
	EnableGLSL bool
}

var _ ports.Backend = (*Backend)(nil)

// Backend is the slang global session. Create it once at startup; it is
// immutable afterwards and safe to share.
type Backend struct {
	opts     Options
	profiles map[string]uint32
}

// New creates the global session. Construction failure is fatal and reported
// once at startup, outside the benchmark loop.
func New(opts Options) (*Backend, error) {
	return &Backend{
		opts: opts,
		// Known target profiles and their encoded version words.
		profiles: map[string]uint32{
			"spirv_1_4": 0x0001_0400,
			"spirv_1_5": 0x0001_0500,
			"spirv_1_6": 0x0001_0600,
		},
	}, nil
}

// Name identifies this backend.
func (b *Backend) Name() string { return "slang" }

// NewSession creates a session bound to cfg and resolver. Sessions are
// disposable; all compile state lives for one load only.
func (b *Backend) NewSession(cfg domain.TargetConfig, resolver ports.FileResolver) (ports.Session, error) {
	if cfg.Format != domain.TargetSPIRV {
		return nil, zerr.With(zerr.Wrap(domain.ErrSessionCreateFailed, "unsupported target format"), "format", string(cfg.Format))
	}
	if _, ok := b.profiles[cfg.Profile]; !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProfile, "profile not registered"), "profile", cfg.Profile)
	}
	return &Session{
		backend:  b,
		cfg:      cfg,
		resolver: resolver,
		loading:  make(map[string]bool),
	}, nil
}
