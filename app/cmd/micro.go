package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/armii/platform-admin/pkg/config"
	"github.com/armii/platform-admin/pkg/database"
	"github.com/armii/platform-admin/pkg/domains/connection"
	"github.com/armii/platform-admin/pkg/domains/platform"
	"github.com/armii/platform-admin/pkg/logger"
	"github.com/armii/platform-admin/pkg/server"
	"github.com/armii/platform-admin/pkg/utils"
	"github.com/jonboulle/clockwork"
)

func StartApp() {
	if err := run(); err != nil {
		slog.Error("app: exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	utils.LoadEnv()
	cfg, err := config.InitConfig()
	if err != nil {
		return err
	}
	logger.New(cfg.Log)

	if err := database.InitDB(cfg.Database); err != nil {
		return err
	}
	defer database.Close()

	clock := clockwork.NewRealClock()
	platforms := platform.NewService(platform.NewStore(platform.WithClock(clock)))
	tracker := connection.NewTracker(
		connection.NewRepo(database.DBClient()),
		connection.NewSimulatedConnector(clock, cfg.Tracker.ConnectDelay, cfg.Tracker.ExtractDelay),
		clock,
	)
	defer tracker.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracker.ShouldRestore() {
		results, err := tracker.Restore(ctx)
		if err != nil {
			return err
		}
		slog.Info("app: restoring connections", "platforms", len(results))
	}

	router, err := server.NewRouter(cfg, platforms, tracker)
	if err != nil {
		return err
	}
	return server.LaunchHttpServer(ctx, cfg.App, router)
}
