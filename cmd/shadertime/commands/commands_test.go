package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shadertime/cmd/shadertime/commands"
	"go.trai.ch/shadertime/internal/app"
)

// fakeApp records the options the CLI passed through.
type fakeApp struct {
	opts app.RunOptions
	err  error
	runs int
}

func (f *fakeApp) Run(_ context.Context, opts app.RunOptions) error {
	f.opts = opts
	f.runs++
	return f.err
}

func execute(t *testing.T, a *fakeApp, args ...string) error {
	t.Helper()
	cli := commands.New(a)
	cli.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	cli.SetArgs(args)
	return cli.Execute(context.Background())
}

func TestBenchCmd_PassesFlags(t *testing.T) {
	a := &fakeApp{}

	err := execute(t, a, "bench", "scene.slang", "-r", "16", "--enable-glsl", "--no-cache")
	require.NoError(t, err)

	assert.Equal(t, 1, a.runs)
	assert.Equal(t, app.RunOptions{
		Shader:      "scene.slang",
		Repetitions: 16,
		EnableGLSL:  true,
		NoCache:     true,
	}, a.opts)
}

func TestBenchCmd_DefaultsToConfig(t *testing.T) {
	a := &fakeApp{}

	err := execute(t, a, "bench")
	require.NoError(t, err)

	// Zero values defer to the configuration file.
	assert.Equal(t, app.RunOptions{}, a.opts)
}

func TestBenchCmd_TooManyArgs(t *testing.T) {
	a := &fakeApp{}

	err := execute(t, a, "bench", "a.slang", "b.slang")
	assert.Error(t, err)
	assert.Equal(t, 0, a.runs)
}

func TestBenchCmd_PropagatesRunError(t *testing.T) {
	a := &fakeApp{err: errors.New("boom")}

	err := execute(t, a, "bench")
	assert.ErrorContains(t, err, "boom")
}

func TestVersionFlag(t *testing.T) {
	cli := commands.New(&fakeApp{})
	var out bytes.Buffer
	cli.SetOutput(&out, &bytes.Buffer{})
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, out.String(), "shadertime version")
}
