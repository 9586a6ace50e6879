// Package app implements the benchmark harness for shadertime.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/shadertime/internal/adapters/cachefs" //nolint:depguard // Wired in app layer
	"go.trai.ch/shadertime/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/shadertime/internal/core/domain"
	"go.trai.ch/shadertime/internal/core/ports"
	"go.trai.ch/shadertime/internal/engine/pipeline"
	"go.trai.ch/shadertime/internal/engine/slang"
	"go.trai.ch/zerr"
)

// RunOptions are the CLI overrides for the benchmark configuration. Zero
// values defer to the config file (and its defaults).
type RunOptions struct {
	// Shader is the top-level shader file name.
	Shader string
	// Repetitions is the number of timed compile calls.
	Repetitions int
	// EnableGLSL enables the backend's GLSL compatibility mode.
	EnableGLSL bool
	// NoCache disables the module cache.
	NoCache bool
}

// App represents the benchmark application logic.
type App struct {
	configLoader ports.ConfigLoader
	store        ports.SourceStore
	finder       ports.SourceFinder
	telemetry    ports.Telemetry
	log          ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	store ports.SourceStore,
	finder ports.SourceFinder,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		store:        store,
		finder:       finder,
		telemetry:    telemetry,
		log:          log,
	}
}

// Run executes the benchmark: global-session init, a warm-up compile that
// builds the module cache and writes the output artifact, then the timed
// loop. The loop aborts on the first failed compile.
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	// Flush the progress recorder on every exit path; a close failure is
	// only surfaced when the run itself succeeded.
	defer func() {
		cerr := a.telemetry.Close()
		if err == nil {
			err = cerr
		}
	}()

	cfg, err := a.configLoader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	merge(cfg, opts)
	if cfg.Repetitions < 1 {
		cfg.Repetitions = 1
	}

	shaderPath, source, err := a.finder.FindSource(cfg.Shader, cfg.SearchDepth)
	if err != nil {
		return err
	}
	a.log.Info(fmt.Sprintf("loaded %s; size %d bytes", shaderPath, len(source)))

	pipe, cache, err := a.buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	if err := a.warmUp(ctx, pipe, shaderPath, source); err != nil {
		return err
	}

	if err := a.benchmark(ctx, pipe, shaderPath, source, cfg.Repetitions); err != nil {
		return err
	}

	if cache != nil {
		stats := cache.Stats()
		a.log.Info(fmt.Sprintf(
			"cache: %d entries, %d hits, %d negative hits, %d storage reads, %d nested compiles",
			stats.Entries, stats.Hits, stats.NegativeHits, stats.StorageReads, stats.NestedCompiles,
		))
	}

	return nil
}

// buildPipeline constructs the global session and the resolver the run will
// share across every compile call.
func (a *App) buildPipeline(ctx context.Context, cfg *domain.BenchConfig) (*pipeline.Pipeline, *cachefs.FS, error) {
	_, vtx := a.telemetry.Record(ctx, "compiler initialization")

	start := time.Now()
	backend, err := slang.New(slang.Options{EnableGLSL: cfg.EnableGLSL})
	if err != nil {
		vtx.Complete(err)
		return nil, nil, zerr.Wrap(err, "compiler initialization failed")
	}

	var (
		resolver ports.FileResolver
		cache    *cachefs.FS
	)
	if cfg.NoCache {
		resolver = fs.NewResolver(a.store)
	} else {
		cache = cachefs.New(a.store, backend, cfg.Target, a.log)
		resolver = cache
	}

	vtx.Complete(nil)
	a.log.Info(fmt.Sprintf("compiler initialization time: %s", time.Since(start)))

	return pipeline.New(backend, cfg.Target, resolver), cache, nil
}

// warmUp performs the first compilation, which builds the module cache, and
// writes the output artifact once.
func (a *App) warmUp(ctx context.Context, pipe *pipeline.Pipeline, path string, source []byte) error {
	_, vtx := a.telemetry.Record(ctx, "first compilation (building caches)")

	start := time.Now()
	if err := pipe.Compile(ctx, path, source); err != nil {
		vtx.Complete(err)
		return err
	}
	vtx.Complete(nil)
	a.log.Info(fmt.Sprintf("first compilation (building caches): %s", time.Since(start)))

	out := pipe.Output()
	a.log.Info(fmt.Sprintf("target output is %d bytes long", len(out)))

	artifact := pipe.Name() + ".bin"
	if err := os.WriteFile(artifact, out, 0o644); err != nil { //nolint:gosec // benchmark output artifact
		a.log.Warn(fmt.Sprintf("could not write %s: %v", artifact, err))
	}

	return nil
}

// benchmark runs the timed loop, reporting power-of-two progress and the
// average per-compile latency.
func (a *App) benchmark(ctx context.Context, pipe *pipeline.Pipeline, path string, source []byte, repetitions int) error {
	_, vtx := a.telemetry.Record(ctx, fmt.Sprintf("compiling %d times", repetitions))

	start := time.Now()
	for rep := 1; rep <= repetitions; rep++ {
		if rep&(rep-1) == 0 {
			fmt.Fprintf(vtx.Stdout(), "repetition %d\n", rep)
		}
		if err := pipe.Compile(ctx, path, source); err != nil {
			vtx.Complete(err)
			return zerr.With(zerr.Wrap(err, "benchmark aborted"), "repetition", rep)
		}
	}
	elapsed := time.Since(start)
	vtx.Complete(nil)

	a.log.Info(fmt.Sprintf("average compilation time: %s over %d repetitions",
		elapsed/time.Duration(repetitions), repetitions))
	return nil
}

// merge overlays flag values onto the loaded configuration. Flags win when
// set; boolean flags can only enable.
func merge(cfg *domain.BenchConfig, opts RunOptions) {
	if opts.Shader != "" {
		cfg.Shader = opts.Shader
	}
	if opts.Repetitions > 0 {
		cfg.Repetitions = opts.Repetitions
	}
	if opts.EnableGLSL {
		cfg.EnableGLSL = true
	}
	if opts.NoCache {
		cfg.NoCache = true
	}
}
