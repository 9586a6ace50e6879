// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shadertime/internal/adapters/config"
	_ "go.trai.ch/shadertime/internal/adapters/fs"
	_ "go.trai.ch/shadertime/internal/adapters/logger"
	_ "go.trai.ch/shadertime/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/shadertime/internal/app"
)
