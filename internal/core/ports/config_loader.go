package ports

import "go.trai.ch/shadertime/internal/core/domain"

// ConfigLoader loads the benchmark configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given working directory,
	// returning defaults when no config file exists.
	Load(cwd string) (*domain.BenchConfig, error)
}
