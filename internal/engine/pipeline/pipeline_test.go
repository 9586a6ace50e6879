package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports/mocks"
	"go.trai.ch/shadertime/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func TestPipeline_Compile(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	session := mocks.NewMockSession(ctrl)
	module := mocks.NewMockModule(ctrl)
	resolver := mocks.NewMockFileResolver(ctrl)

	cfg := domain.DefaultTargetConfig()
	path := filepath.Join("shaders", "scene.slang")
	source := []byte("float x;")

	resolver.EXPECT().SetSearchRoot("shaders")
	backend.EXPECT().NewSession(cfg, resolver).Return(session, nil)
	session.EXPECT().LoadModule(path, source).Return(module, nil)
	module.EXPECT().TargetCode(0).Return([]byte{0x43, 0x42, 0x54, 0x53}, nil)

	pipe := pipeline.New(backend, cfg, resolver)

	require.NoError(t, pipe.Compile(context.Background(), path, source))
	assert.Equal(t, []byte{0x43, 0x42, 0x54, 0x53}, pipe.Output())
}

func TestPipeline_Compile_SessionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	resolver := mocks.NewMockFileResolver(ctrl)

	cfg := domain.DefaultTargetConfig()
	resolver.EXPECT().SetSearchRoot(gomock.Any())
	backend.EXPECT().NewSession(cfg, resolver).Return(nil, domain.ErrSessionCreateFailed)

	pipe := pipeline.New(backend, cfg, resolver)

	err := pipe.Compile(context.Background(), "scene.slang", nil)
	assert.ErrorIs(t, err, domain.ErrSessionCreateFailed)
}

func TestPipeline_Compile_CompileError(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	session := mocks.NewMockSession(ctrl)
	resolver := mocks.NewMockFileResolver(ctrl)

	cfg := domain.DefaultTargetConfig()
	resolver.EXPECT().SetSearchRoot(gomock.Any())
	backend.EXPECT().NewSession(cfg, resolver).Return(session, nil)
	session.EXPECT().LoadModule(gomock.Any(), gomock.Any()).Return(nil, domain.ErrCompileFailed)

	pipe := pipeline.New(backend, cfg, resolver)

	err := pipe.Compile(context.Background(), "scene.slang", []byte("bad"))
	assert.ErrorIs(t, err, domain.ErrCompileFailed)
	assert.Nil(t, pipe.Output())
}

func TestPipeline_Compile_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	resolver := mocks.NewMockFileResolver(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pipe := pipeline.New(backend, domain.DefaultTargetConfig(), resolver)

	err := pipe.Compile(ctx, "scene.slang", nil)
	assert.ErrorIs(t, err, context.Canceled)
}
