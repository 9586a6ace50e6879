package app_test

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadertime/internal/adapters/fs"
	"go.trai.ch/shadertime/internal/adapters/telemetry"
	"go.trai.ch/shadertime/internal/app"
	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func inDir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	require.NoError(t, os.Chdir(dir))
}

func newTestApp(t *testing.T, cfg *domain.BenchConfig) *app.App {
	t.Helper()
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(cfg, nil)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	store := fs.NewStore()
	return app.New(loader, store, store, telemetry.NewNoOp(), log)
}

func benchConfig(shader string, repetitions int) *domain.BenchConfig {
	return &domain.BenchConfig{
		Shader:      shader,
		Repetitions: repetitions,
		SearchDepth: 3,
		Target:      domain.DefaultTargetConfig(),
	}
}

func TestApp_Run(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shader.slang"),
		[]byte("import util;\nfloat4 main() { return tint; }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "util.slang"),
		[]byte("float4 tint;"), 0o644))
	inDir(t, dir)

	a := newTestApp(t, benchConfig("shader.slang", 4))

	require.NoError(t, a.Run(context.Background(), app.RunOptions{}))

	// The warm-up writes the target bytecode next to the shader.
	artifact, err := os.ReadFile(filepath.Join(dir, "slang.bin"))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(artifact), 12)
	assert.Equal(t, uint32(0x53544243), binary.LittleEndian.Uint32(artifact))
}

func TestApp_Run_NoCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shader.slang"),
		[]byte("float4 main() { return pos; }"), 0o644))
	inDir(t, dir)

	a := newTestApp(t, benchConfig("shader.slang", 2))

	require.NoError(t, a.Run(context.Background(), app.RunOptions{NoCache: true}))
}

func TestApp_Run_FlagOverridesShader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.slang"),
		[]byte("float x;"), 0o644))
	inDir(t, dir)

	// The config names a shader that does not exist; the flag wins.
	a := newTestApp(t, benchConfig("shader.slang", 1))

	require.NoError(t, a.Run(context.Background(), app.RunOptions{Shader: "scene.slang"}))
}

func TestApp_Run_ShaderNotFound(t *testing.T) {
	inDir(t, t.TempDir())

	a := newTestApp(t, benchConfig("shader.slang", 1))

	err := a.Run(context.Background(), app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrShaderNotFound)
}

func TestApp_Run_ClosesTelemetryOnFailure(t *testing.T) {
	inDir(t, t.TempDir())

	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(".").Return(benchConfig("shader.slang", 1), nil)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Close().Return(nil).Times(1)

	store := fs.NewStore()
	a := app.New(loader, store, store, tel, log)

	err := a.Run(context.Background(), app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrShaderNotFound)
}

func TestApp_Run_CompileFailureAborts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shader.slang"),
		[]byte("gl_Position = pos;"), 0o644))
	inDir(t, dir)

	a := newTestApp(t, benchConfig("shader.slang", 1))

	err := a.Run(context.Background(), app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
}

func TestApp_Run_GLSLFlagEnablesBuiltins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shader.slang"),
		[]byte("gl_Position = pos;"), 0o644))
	inDir(t, dir)

	a := newTestApp(t, benchConfig("shader.slang", 1))

	require.NoError(t, a.Run(context.Background(), app.RunOptions{EnableGLSL: true}))
}
