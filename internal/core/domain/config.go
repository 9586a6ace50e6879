package domain

// TargetFormat identifies the bytecode format a session emits.
type TargetFormat string

const (
	// TargetSPIRV is the default SPIR-V-style word-stream target.
	TargetSPIRV TargetFormat = "spirv"
)

// TargetConfig is the fixed per-session compiler configuration: target
// format, optimization and validation knobs. Sessions are cheap and carry no
// other state beyond the attached resolver.
type TargetConfig struct {
	Format TargetFormat
	// Profile selects the target profile, e.g. "spirv_1_6".
	Profile string
	// Optimization is the backend optimization level (0 disables).
	Optimization int
	// SkipValidation turns off non-essential validation passes, matching a
	// benchmark configuration that measures raw compile latency.
	SkipValidation bool
}

// DefaultTargetConfig returns the configuration the benchmark uses unless
// overridden: SPIR-V 1.6, no optimization, validation off.
func DefaultTargetConfig() TargetConfig {
	return TargetConfig{
		Format:         TargetSPIRV,
		Profile:        "spirv_1_6",
		Optimization:   0,
		SkipValidation: true,
	}
}

// BenchConfig is the loaded benchmark configuration (shadertime.yaml plus
// CLI flag overrides).
type BenchConfig struct {
	// Shader is the top-level shader file to compile.
	Shader string
	// Repetitions is the number of timed compile calls.
	Repetitions int
	// EnableGLSL enables the backend's GLSL compatibility mode.
	EnableGLSL bool
	// NoCache disables the module cache and resolves every request straight
	// from disk, for measuring the cache's benefit.
	NoCache bool
	// SearchDepth is how many parent directories to search upward when
	// locating the top-level shader.
	SearchDepth int
	// Target is the per-session compiler configuration.
	Target TargetConfig
}
