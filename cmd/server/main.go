package main

import (
	"os"

	_ "issueboard/docs"
	"issueboard/internal/config"
	"issueboard/internal/logging"
	"issueboard/internal/server"
)

// @title           Issue Board API
// @version         1.0
// @description     API for a single-board Kanban issue tracker.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	s, err := server.Init(cfg, logger)
	if err != nil {
		logger.Error("❌ Server initialization failed", "error", err)
		os.Exit(1)
	}

	s.Run()
}
