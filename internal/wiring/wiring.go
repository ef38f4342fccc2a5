// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/combiner/internal/adapters/cache"
	_ "go.trai.ch/combiner/internal/adapters/cas"
	_ "go.trai.ch/combiner/internal/adapters/config"
	_ "go.trai.ch/combiner/internal/adapters/logger"
	_ "go.trai.ch/combiner/internal/adapters/telemetry"
	_ "go.trai.ch/combiner/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/combiner/internal/app"
)
