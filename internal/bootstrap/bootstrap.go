package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kirillkom/doctype-classifier/internal/config"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
	"github.com/kirillkom/doctype-classifier/internal/core/usecase"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/queue/nats"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/doctype-classifier/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Queue      ports.MessageQueue
	Repo       ports.DocumentRepository
	Classifier ports.DocumentClassifier
	IngestUC   ports.DocumentIngestor
	ProcessUC  ports.DocumentProcessor

	closeFn func()
}

// New wires the full ingestion stack. Classification metrics are registered on registerer.
func New(ctx context.Context, cfg config.Config, service string, logger *slog.Logger, registerer prometheus.Registerer) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resiliencePolicy(cfg), logger),
		Logger:             logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	var recorder *metrics.ClassificationMetrics
	if registerer != nil {
		recorder = metrics.NewClassificationMetrics(service, registerer)
	}
	classifier, err := NewClassifier(ctx, cfg, logger, recorder)
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, err
	}

	extractor := NewExtractorRegistry(storage, cfg)
	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	processUC := usecase.NewProcessDocumentUseCase(repo, extractor, classifier)

	return &App{
		Config:     cfg,
		Queue:      queue,
		Repo:       repo,
		Classifier: classifier,
		IngestUC:   ingestUC,
		ProcessUC:  processUC,

		closeFn: func() {
			classifier.Close()
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
