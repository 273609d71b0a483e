package usecase

import (
	"context"
	"log/slog"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
)

// CachedClassifier memoizes another classifier by (file name, content). Cache failures are
// logged and bypassed; only successful results are stored.
type CachedClassifier struct {
	next     ports.DocumentClassifier
	cache    ports.ClassificationCache
	recorder ports.ClassificationRecorder
	logger   *slog.Logger
}

// NewCachedClassifier accepts a nil recorder and a nil logger (slog.Default).
func NewCachedClassifier(
	next ports.DocumentClassifier,
	cache ports.ClassificationCache,
	recorder ports.ClassificationRecorder,
	logger *slog.Logger,
) *CachedClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedClassifier{
		next:     next,
		cache:    cache,
		recorder: recorder,
		logger:   logger,
	}
}

func (c *CachedClassifier) Classify(ctx context.Context, fileName, content string) (domain.Category, error) {
	key := domain.DocumentIdentity{FileName: fileName, Content: content}.CacheKey()

	cached, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("classification_cache_error", "operation", "get", "file_name", fileName, "error", err)
	case ok && cached.Valid():
		if c.recorder != nil {
			c.recorder.RecordClassification(cached, SourceCache)
		}
		return cached, nil
	}

	category, err := c.next.Classify(ctx, fileName, content)
	if err != nil {
		return "", err
	}

	if err := c.cache.Put(ctx, key, category); err != nil {
		c.logger.Warn("classification_cache_error", "operation", "put", "file_name", fileName, "error", err)
	}
	return category, nil
}
