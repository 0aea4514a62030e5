package main

import (
	"github.com/OFFIS-RIT/flavor/backend/internal/config"
	"github.com/OFFIS-RIT/flavor/backend/internal/server"
	"github.com/OFFIS-RIT/flavor/backend/internal/util"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger"
	"github.com/OFFIS-RIT/flavor/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	cfg := config.Load()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
	})
	logger.Init(consoleLogger)

	server.Init(cfg)
}
