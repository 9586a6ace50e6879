package config

// Benchfile represents the structure of the shadertime.yaml configuration
// file. All fields are optional; flag values override file values.
type Benchfile struct {
	Version     string    `yaml:"version"`
	Shader      string    `yaml:"shader"`
	Repetitions int       `yaml:"repetitions"`
	EnableGLSL  bool      `yaml:"enableGlsl"`
	NoCache     bool      `yaml:"noCache"`
	SearchDepth *int      `yaml:"searchDepth"`
	Target      TargetDTO `yaml:"target"`
}

// TargetDTO represents the target configuration section.
type TargetDTO struct {
	Format         string `yaml:"format"`
	Profile        string `yaml:"profile"`
	Optimization   int    `yaml:"optimization"`
	SkipValidation *bool  `yaml:"skipValidation"`
}
