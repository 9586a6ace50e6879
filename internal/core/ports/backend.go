package ports

import "go.trai.ch/shadertime/internal/core/domain"

// Backend is a shading-language compiler's global session: created once at
// startup, it mints cheap per-compile sessions. All backends are structurally
// identical so the benchmark can treat them interchangeably.
//
//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks
type Backend interface {
	// Name identifies the backend; the harness names output artifacts after it.
	Name() string

	// NewSession creates a session bound to the given target configuration
	// and file resolver.
	NewSession(cfg domain.TargetConfig, resolver FileResolver) (Session, error)
}

// Session is a disposable compiler session. It carries no state beyond its
// configuration and resolver.
type Session interface {
	// LoadModule compiles source text as the module at path, resolving
	// imports through the session's resolver. Diagnostics are returned as an
	// error.
	LoadModule(path string, source []byte) (Module, error)
}

// Module is a loaded, compiled unit.
type Module interface {
	// TargetCode extracts the compiled bytecode for the target at the given
	// index.
	TargetCode(target int) ([]byte, error)

	// Serialize encodes the module so another session can load it in
	// precompiled form.
	Serialize() ([]byte, error)
}
