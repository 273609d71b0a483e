package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/kirillkom/doctype-classifier/internal/config"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
	"github.com/kirillkom/doctype-classifier/internal/core/usecase"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/cache/memory"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/cache/redis"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/llm/gemini"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/llm/openai"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
	"github.com/kirillkom/doctype-classifier/internal/observability/metrics"
)

const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Classifier is the classification pipeline shared by every surface.
type Classifier struct {
	ports.DocumentClassifier
	closeFn func()
}

func (c *Classifier) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// NewClassifier selects the model provider and cache backend from cfg. recorder may be nil.
func NewClassifier(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.ClassificationMetrics) (*Classifier, error) {
	policy := resiliencePolicy(cfg)
	var rec ports.ClassificationRecorder
	if recorder != nil {
		policy.OnStateChange = recorder.RecordBreakerTransition
		rec = recorder
	}
	executor := resilience.NewExecutor(policy, logger)

	generator, err := newGenerator(ctx, cfg, executor)
	if err != nil {
		return nil, err
	}

	var classifier ports.DocumentClassifier = usecase.NewClassifyUseCase(generator, usecase.ClassifyOptions{
		MaxTokens: cfg.ModelMaxTokens,
		Recorder:  rec,
	})

	cache, closeCache, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		classifier = usecase.NewCachedClassifier(classifier, cache, rec, logger)
	}

	logger.Info("classifier_ready", "provider", cfg.LLMProvider, "cache", cfg.CacheBackend, "max_tokens", cfg.ModelMaxTokens)
	return &Classifier{DocumentClassifier: classifier, closeFn: closeCache}, nil
}

func resiliencePolicy(cfg config.Config) resilience.Config {
	policy := resilience.DefaultConfig()
	policy.RetryMaxAttempts = cfg.RetryMaxAttempts
	policy.RetryInitialBackoff = cfg.RetryInitialBackoff
	policy.RetryMaxBackoff = cfg.RetryMaxBackoff
	policy.BreakerEnabled = cfg.BreakerEnabled
	if cfg.BreakerMinRequests > 0 {
		policy.BreakerMinRequests = uint32(cfg.BreakerMinRequests)
	}
	policy.BreakerFailureRatio = cfg.BreakerFailureRatio
	policy.BreakerOpenTimeout = cfg.BreakerOpenTimeout
	return policy
}

func newGenerator(ctx context.Context, cfg config.Config, executor *resilience.Executor) (ports.TextGenerator, error) {
	switch cfg.LLMProvider {
	case ProviderOllama, "":
		client := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, ollama.Options{
			Timeout:            cfg.ModelTimeout,
			ResilienceExecutor: executor,
		})
		return ollama.NewGenerator(client), nil
	case ProviderOpenAI:
		generator, err := openai.NewGenerator(openai.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.ModelTimeout,
		}, executor)
		if err != nil {
			return nil, fmt.Errorf("init openai generator: %w", err)
		}
		return generator, nil
	case ProviderGemini:
		generator, err := gemini.NewGenerator(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
		}, executor)
		if err != nil {
			return nil, fmt.Errorf("init gemini generator: %w", err)
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// redisTLSConfig is nil unless REDIS_TLS is set; the server name comes from REDIS_ADDR.
func redisTLSConfig(cfg config.Config) *tls.Config {
	if !cfg.RedisTLS {
		return nil
	}
	host, _, err := net.SplitHostPort(cfg.RedisAddr)
	if err != nil {
		host = cfg.RedisAddr
	}
	return &tls.Config{MinVersion: tls.VersionTLS12, ServerName: host}
}

// newCache returns a nil cache for the none backend.
func newCache(ctx context.Context, cfg config.Config) (ports.ClassificationCache, func(), error) {
	switch cfg.CacheBackend {
	case CacheMemory, "":
		return memory.New(cfg.CacheTTL), func() {}, nil
	case CacheNone:
		return nil, func() {}, nil
	case CacheRedis:
		cache := redis.New(redis.Options{
			Address:   cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			TTL:       cfg.CacheTTL,
			TLSConfig: redisTLSConfig(cfg),
		})
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			_ = cache.Close()
			return nil, nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return cache, func() { _ = cache.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown CACHE_BACKEND %q", cfg.CacheBackend)
	}
}
