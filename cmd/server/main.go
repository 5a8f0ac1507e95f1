package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nulzo/zoo-api/internal/config"
	"github.com/nulzo/zoo-api/internal/platform/logger"
	"github.com/nulzo/zoo-api/internal/platform/otel"
	"github.com/nulzo/zoo-api/internal/server"
	"github.com/nulzo/zoo-api/internal/store/sqlite"
	"go.uber.org/zap"
)

// AppVersion is overridden at build time with -ldflags "-X main.AppVersion=...".
var AppVersion = "v0.1.0"

func main() {
	// 1. Config
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	// 2. Logger
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logger.Initialize(logCfg)
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting zoo-api",
		zap.String("version", AppVersion),
		zap.String("env", cfg.Server.Env),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Tracing
	if cfg.Tracing.Enabled {
		shutdown, err := otel.InitTracer(ctx, cfg.Tracing.ServiceName, AppVersion, log, os.Stdout)
		if err != nil {
			log.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Error("Failed to flush tracer", zap.Error(err))
			}
		}()
	}

	// 4. Storage
	repo, err := sqlite.NewSQLiteStorage(cfg.Database.DSN, log)
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer repo.Close()

	// 5. Serve until signalled
	srv := server.New(cfg, log, repo, AppVersion)
	if err := srv.Run(ctx); err != nil {
		log.Error("Server failed", zap.Error(err))
		return
	}

	log.Info("Server stopped")
}
