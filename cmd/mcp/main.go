package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/doctype-classifier/internal/adapters/mcp"
	"github.com/kirillkom/doctype-classifier/internal/bootstrap"
	"github.com/kirillkom/doctype-classifier/internal/config"
	"github.com/kirillkom/doctype-classifier/internal/observability/logging"
)

const (
	serviceName = "doctype-mcp"
	version     = "1.0.0"
)

// stdout carries JSON-RPC, so logs go to stderr.
func main() {
	cfg, err := config.Load()
	logger := logging.NewJSONLoggerTo(os.Stderr, serviceName, cfg.LogLevel)
	slog.SetDefault(logger)
	if err != nil {
		logger.Error("config_error", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	classifier, err := bootstrap.NewClassifier(ctx, cfg, logger, nil)
	if err != nil {
		logger.Error("bootstrap_error", "error", err)
		os.Exit(1)
	}
	defer classifier.Close()

	registry := bootstrap.NewExtractorRegistry(nil, cfg)
	mcpServer := mcpadapter.NewServer(version, classifier, registry, logger)

	stdio := server.NewStdioServer(mcpServer)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		logger.Error("mcp_server_error", "error", err)
		os.Exit(1)
	}
}
