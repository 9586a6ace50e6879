package slang

import (
	"errors"
	"fmt"
	"strings"

	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Session = (*Session)(nil)

// Session is a disposable compile session. It resolves imports through its
// resolver, preferring precompiled module images over raw source.
type Session struct {
	backend  *Backend
	cfg      domain.TargetConfig
	resolver ports.FileResolver

	// loading guards against circular raw-source imports within this
	// session's recursion. Cross-session cycles are caught by the cache
	// filesystem's in-flight tracking.
	loading map[string]bool
}

// LoadModule compiles source text as the module at path. Diagnostics are
// collected and returned as a single compile error.
func (s *Session) LoadModule(path string, source []byte) (ports.Module, error) {
	unit, diags := parse(path, source)
	diags = append(diags, s.checkBuiltins(path, unit)...)
	if len(diags) > 0 {
		return nil, diagError(diags)
	}

	imports := make([]*Module, 0, len(unit.imports))
	for _, name := range unit.imports {
		mod, err := s.resolveImport(name)
		if err != nil {
			return nil, err
		}
		imports = append(imports, mod)
	}

	return &Module{
		name:    path,
		profile: s.cfg.Profile,
		words:   generate(path, unit, imports, s.cfg.Optimization),
	}, nil
}

// resolveImport loads the module with the given import name: first as a
// precompiled image (name + ".slang-module"), falling back to compiling the
// raw source (name + ".slang") through this same session.
func (s *Session) resolveImport(name string) (*Module, error) {
	if s.resolver == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrCompileFailed, "no file system attached"), "import", name)
	}

	blob, err := s.resolver.LoadFile(name + SourceSuffix + domain.ModuleSuffix)
	if err == nil {
		defer blob.Release()
		return Deserialize(blob.Bytes())
	}
	if !errors.Is(err, domain.ErrFileNotFound) {
		// A nested compile failed inside the resolver; propagate rather than
		// mask it as a missing module.
		return nil, err
	}

	srcPath := name + SourceSuffix
	blob, err = s.resolver.LoadFile(srcPath)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, zerr.With(zerr.Wrap(domain.ErrCompileFailed, "module not found"), "import", name)
		}
		return nil, err
	}
	defer blob.Release()

	if s.loading[srcPath] {
		return nil, zerr.With(zerr.Wrap(domain.ErrCompileFailed, "circular import"), "import", name)
	}
	s.loading[srcPath] = true
	defer delete(s.loading, srcPath)

	mod, err := s.LoadModule(srcPath, blob.Bytes())
	if err != nil {
		return nil, err
	}
	return mod.(*Module), nil
}

// checkBuiltins rejects gl_-prefixed builtins unless GLSL mode is enabled on
// the global session.
func (s *Session) checkBuiltins(path string, unit *sourceUnit) []diagnostic {
	if s.backend.opts.EnableGLSL {
		return nil
	}
	var diags []diagnostic
	for _, tok := range unit.tokens {
		if strings.HasPrefix(tok, "gl_") {
			diags = append(diags, diagnostic{
				path: path,
				msg:  fmt.Sprintf("GLSL builtin %q requires GLSL mode", tok),
			})
		}
	}
	return diags
}

// diagError folds diagnostics into one compile error. The rendered text goes
// into the message chain so the harness surfaces it verbatim.
func diagError(diags []diagnostic) error {
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	return zerr.Wrap(domain.ErrCompileFailed, strings.Join(lines, "\n"))
}
