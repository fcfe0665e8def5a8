package main

import (
	"log"

	_ "taskmanager/docs"
	"taskmanager/internal/config"
	"taskmanager/internal/logger"
	"taskmanager/internal/server"
)

// @title           Task Manager API
// @version         1.0
// @description     Multi-user task tracking API: auth, task CRUD, dashboard.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()

	zapLogger := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer zapLogger.Sync()

	s, err := server.Init(cfg, zapLogger)
	if err != nil {
		log.Fatalf("server initialization failed: %v", err)
	}

	s.Run()
}
