package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"myday/internal/app"
	"myday/internal/config"
	"myday/internal/logging"
	"myday/internal/notify"
	"myday/internal/planner"
	"myday/internal/reminder"
	"myday/internal/storage"
	"myday/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the deferred closes always happen.
func run() error {
	// A missing .env is fine; the variables may come from the shell.
	_ = godotenv.Load()

	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := logging.Open(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer logCloser.Close()
	logger.Info("starting", "config", configPath, "db", cfg.DBPath)

	store, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	perm := notify.RequestPermission(cfg.Notifications)
	logger.Info("notifications", "permission", perm)

	fired := make(chan planner.Task, 16)
	sched := reminder.New(
		notify.New(perm, cfg.NotifyIcon),
		reminder.WithLead(cfg.Lead()),
		reminder.WithLogger(logger),
		reminder.OnFire(func(t planner.Task) {
			select {
			case fired <- t:
			default:
			}
		}),
	)

	session, err := app.NewSession(store, sched, logger)
	if err != nil {
		return fmt.Errorf("failed to load planner: %w", err)
	}
	session.Start()
	defer session.Close()

	if err := ui.Run(session, cfg, fired); err != nil {
		logger.Error("ui exited", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info("exiting")
	return nil
}
