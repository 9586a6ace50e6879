// Package config provides the configuration loader for shadertime.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Filename is the benchmark configuration file name.
const Filename = "shadertime.yaml"

// Defaults mirroring the reference benchmark: 128 repetitions, searching up
// to 3 parent directories for the shader.
const (
	defaultShader      = "shader.slang"
	defaultRepetitions = 128
	defaultSearchDepth = 3
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the default config file name.
func NewLoader() *FileConfigLoader {
	return &FileConfigLoader{Filename: Filename}
}

// Load reads the configuration from the given working directory. A missing
// config file is not an error; defaults apply.
func (l *FileConfigLoader) Load(cwd string) (*domain.BenchConfig, error) {
	cfg := &domain.BenchConfig{
		Shader:      defaultShader,
		Repetitions: defaultRepetitions,
		SearchDepth: defaultSearchDepth,
		Target:      domain.DefaultTargetConfig(),
	}

	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file Benchfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse config file"), "path", path)
	}

	apply(cfg, &file)
	return cfg, nil
}

// apply overlays file values onto the defaults.
func apply(cfg *domain.BenchConfig, file *Benchfile) {
	if file.Shader != "" {
		cfg.Shader = file.Shader
	}
	if file.Repetitions > 0 {
		cfg.Repetitions = file.Repetitions
	}
	cfg.EnableGLSL = file.EnableGLSL
	cfg.NoCache = file.NoCache
	if file.SearchDepth != nil && *file.SearchDepth >= 0 {
		cfg.SearchDepth = *file.SearchDepth
	}
	if file.Target.Format != "" {
		cfg.Target.Format = domain.TargetFormat(file.Target.Format)
	}
	if file.Target.Profile != "" {
		cfg.Target.Profile = file.Target.Profile
	}
	if file.Target.Optimization > 0 {
		cfg.Target.Optimization = file.Target.Optimization
	}
	if file.Target.SkipValidation != nil {
		cfg.Target.SkipValidation = *file.Target.SkipValidation
	}
}
