package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadertime/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	log, ok := logger.New().(*logger.Logger)
	require.True(t, ok)

	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Info("compile finished")
	log.Warn("artifact not written")
	log.Error(errors.New("session failed"))

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "compile finished")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "artifact not written")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "session failed")
}
