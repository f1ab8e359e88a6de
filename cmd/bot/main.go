package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/app"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/config"
	"github.com/rayrohit999/LeetCode-Streak-Checker/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; exit immediately.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Ensure logger flush; ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Error("init failed", zap.Error(err))
		os.Exit(1)
	}
	if err := a.Run(context.Background()); err != nil {
		log.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}
