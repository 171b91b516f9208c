// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/freshen/internal/adapters/config"
	_ "go.trai.ch/freshen/internal/adapters/fs"
	_ "go.trai.ch/freshen/internal/adapters/journal"
	_ "go.trai.ch/freshen/internal/adapters/logger"
	_ "go.trai.ch/freshen/internal/adapters/shell"
	_ "go.trai.ch/freshen/internal/adapters/telemetry"
	// Register app nodes.
	_ "go.trai.ch/freshen/internal/app"
)
