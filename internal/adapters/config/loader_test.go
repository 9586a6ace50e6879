package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadertime/internal/adapters/config"
	"go.trai.ch/shadertime/internal/core/domain"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	loader := config.NewLoader()

	cfg, err := loader.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "shader.slang", cfg.Shader)
	assert.Equal(t, 128, cfg.Repetitions)
	assert.Equal(t, 3, cfg.SearchDepth)
	assert.False(t, cfg.EnableGLSL)
	assert.False(t, cfg.NoCache)
	assert.Equal(t, domain.DefaultTargetConfig(), cfg.Target)
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `version: "1"
shader: scene.slang
repetitions: 16
enableGlsl: true
searchDepth: 0
target:
  profile: spirv_1_4
  optimization: 2
  skipValidation: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.Filename), []byte(content), 0o644))

	loader := config.NewLoader()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "scene.slang", cfg.Shader)
	assert.Equal(t, 16, cfg.Repetitions)
	assert.True(t, cfg.EnableGLSL)
	assert.Equal(t, 0, cfg.SearchDepth)
	assert.Equal(t, "spirv_1_4", cfg.Target.Profile)
	assert.Equal(t, 2, cfg.Target.Optimization)
	assert.False(t, cfg.Target.SkipValidation)
	// Untouched fields keep their defaults.
	assert.Equal(t, domain.TargetSPIRV, cfg.Target.Format)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.Filename), []byte("shader: [unclosed"), 0o644))

	loader := config.NewLoader()

	_, err := loader.Load(dir)
	assert.ErrorContains(t, err, "failed to parse config file")
}
