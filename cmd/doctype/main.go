package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kirillkom/doctype-classifier/internal/bootstrap"
	"github.com/kirillkom/doctype-classifier/internal/config"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
	"github.com/kirillkom/doctype-classifier/internal/observability/logging"
)

const serviceName = "doctype-cli"

// classifierFactory builds the pipeline lazily so that "categories" needs no model.
type classifierFactory func(ctx context.Context, cfg config.Config) (ports.DocumentClassifier, func(), error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(defaultFactory).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func defaultFactory(ctx context.Context, cfg config.Config) (ports.DocumentClassifier, func(), error) {
	logger := logging.NewJSONLoggerTo(os.Stderr, serviceName, cfg.LogLevel)
	slog.SetDefault(logger)
	classifier, err := bootstrap.NewClassifier(ctx, cfg, logger, nil)
	if err != nil {
		return nil, nil, err
	}
	return classifier, classifier.Close, nil
}

func newRootCmd(factory classifierFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "doctype",
		Short:         "Classify documents into a fixed set of document types",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newClassifyCmd(factory), newCategoriesCmd())
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
