package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	zlog "github.com/rs/zerolog/log"

	"sisivoy-api/internal/config"
	"sisivoy-api/internal/db"
	"sisivoy-api/internal/logger"
	"sisivoy-api/internal/router"
	"sisivoy-api/internal/services"
	"sisivoy-api/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Invalid configuration")
	}

	log := logger.InitLogger(cfg.LogLevel, !cfg.IsProduction())
	log.Info().Str("environment", cfg.Environment).Msg("Starting SisiVoy API")

	database, err := db.InitDB(cfg.DBUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("Database connection failed")
	}
	defer database.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
	err = db.RunMigrations(migrateCtx, database)
	cancelMigrate()
	if err != nil {
		log.Fatal().Err(err).Msg("Migrations failed")
	}

	st := store.NewMySQLStore(database)
	hasher := services.NewPasswordHasher(cfg.BcryptCost)
	tokens := services.NewTokenService(services.TokenConfig{
		AccessSecret:  cfg.AccessTokenSecret,
		RefreshSecret: cfg.RefreshTokenSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	}, log)

	handler := router.SetupRouter(router.Services{
		Tokens:      tokens,
		Auth:        services.NewAuthService(st, hasher, tokens, log),
		Users:       services.NewUserService(st, hasher, log),
		Memberships: services.NewMembershipService(st, log),
		Brands:      services.NewBrandService(st, log),
		Branches:    services.NewBranchService(st, log),
	}, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}
