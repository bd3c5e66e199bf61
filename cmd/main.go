package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "firing_curve/docs"
	"firing_curve/internal/builder"
	"firing_curve/internal/config"
	"firing_curve/internal/glass"
	"firing_curve/internal/handlers"
	"firing_curve/internal/logger"
	"firing_curve/internal/repository"
	"firing_curve/internal/repository/db"
	"firing_curve/internal/server"
	"firing_curve/internal/service"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title                       Kiln firing curve API
// @version                     1.0
// @description                 Build, edit and run glass-fusing kiln programs.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	configPath := flag.String("config", "", "path to config.yml (default: ./configs/config.yml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	if cfg.Auth.SigningKey == "" {
		log.Fatalw("auth.signing_key is empty; set it in config or KILN_AUTH_SIGNING_KEY")
	}

	tables, err := glass.Load(cfg.Tables.Path)
	if err != nil {
		log.Fatalw("failed to load glass tables", "path", cfg.Tables.Path, "err", err)
	}

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Options{
		Tables: tables,
		Builder: builder.Options{
			MaxHeatingVelocity:   cfg.Builder.MaxHeatingVelocity,
			FinalCoolingVelocity: cfg.Builder.FinalCoolingVelocity,
		},
		SigningKey: cfg.Auth.SigningKey,
		TokenTTL:   cfg.Auth.TokenTTL,
		Speed:      cfg.Simulator.Speed,
	})
	apiHandler := handlers.NewHandler(services, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		services.Simulator.Run(gctx, cfg.Simulator.Tick)
		return nil
	})
	g.Go(func() error {
		log.Infow("http server listening", "port", cfg.Port)
		return srv.Run(cfg.Port, apiHandler.InitRoutes())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Errorw("server stopped with error", "err", err)
		os.Exit(1)
	}
	log.Infow("server stopped")
}
