package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"gradation/pkg/api"
	"gradation/pkg/config"
	"gradation/pkg/database"
	"gradation/pkg/logger"
	"gradation/pkg/repository"
	"gradation/pkg/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("Failed to load config")
	}

	log := logger.New(cfg.Log)
	log.Info().Msg("Starting exhibition service...")

	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}

	repo := repository.New(db)
	svc := service.New(repo, log)
	router := api.NewRouter(api.NewHandler(svc, repo, log))

	srv := newServer(cfg.Server, router)

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Exhibition service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down exhibition service...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
	log.Info().Msg("Exhibition service stopped")
}

func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
	}
}
