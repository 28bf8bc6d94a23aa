package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lawndlwd/ai-code-reviewer/internal/ai"
	"github.com/lawndlwd/ai-code-reviewer/internal/config"
	"github.com/lawndlwd/ai-code-reviewer/internal/review"
	"github.com/lawndlwd/ai-code-reviewer/internal/server"
	"github.com/lawndlwd/ai-code-reviewer/internal/stats"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application failed to run", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	aiClient, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		return fmt.Errorf("initialize model client: %w", err)
	}
	defer func() { _ = aiClient.Close() }()

	analyzer, err := stats.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("initialize analyzer: %w", err)
	}
	defer analyzer.Close()

	reviewer := review.NewReviewer(aiClient, logger)

	srv, err := server.New(cfg, analyzer, reviewer, logger)
	if err != nil {
		return err
	}

	logger.Info("starting AI code reviewer", "model", cfg.Model, "port", cfg.Port)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			cancel()
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	return srv.Stop()
}
