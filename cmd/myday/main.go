package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"myday/internal/app"
	"myday/internal/config"
	"myday/internal/logger"
	"myday/internal/storage"
	"myday/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogPath(), cfg.Development); err != nil {
		fmt.Printf("failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store, err := storage.Open(cfg.DataDir, cfg.Backend)
	if err != nil {
		fmt.Printf("failed to open storage: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	tasks, lists, err := store.LoadAll()
	if err != nil {
		logger.Error("load failed", err)
		fmt.Printf("failed to load data: %v\n", err)
		os.Exit(1)
	}
	logger.Info("startup",
		zap.String("data_dir", cfg.DataDir),
		zap.String("backend", cfg.Backend),
		zap.Int("tasks", len(tasks)),
		zap.Int("lists", len(lists)))

	a, err := app.New(store, tasks, lists, cfg.DefaultList)
	if err != nil {
		fmt.Printf("failed to create default list: %v\n", err)
		os.Exit(1)
	}

	if err := ui.Run(a, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Info("shutdown")
}
