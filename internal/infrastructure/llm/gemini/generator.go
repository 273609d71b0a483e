// Package gemini answers classification prompts through the Google Gemini API.
package gemini

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
)

const DefaultModel = "gemini-2.0-flash"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

type Generator struct {
	client   *genai.Client
	model    string
	executor *resilience.Executor
}

func NewGenerator(ctx context.Context, cfg Config, executor *resilience.Executor) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "gemini generator", errors.New("api key is required"))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "gemini generator", err)
	}

	return &Generator{
		client:   client,
		model:    model,
		executor: executor,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	var genCfg *genai.GenerateContentConfig
	if maxTokens > 0 {
		genCfg = &genai.GenerateContentConfig{MaxOutputTokens: int32(maxTokens)}
	}

	resp, err := resilience.Call(ctx, g.executor, "gemini.generate_content", func(callCtx context.Context) (*genai.GenerateContentResponse, error) {
		return g.client.Models.GenerateContent(callCtx, g.model, genai.Text(prompt), genCfg)
	}, classifyGeminiError)
	if err != nil {
		return "", wrapError(err)
	}
	if resp == nil {
		return "", domain.WrapError(domain.ErrModelResponse, "gemini generate content", errors.New("nil response"))
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", domain.WrapError(domain.ErrModelResponse, "gemini generate content", errors.New("empty candidate text"))
	}
	return answer, nil
}

func classifyGeminiError(err error) resilience.ErrorClassification {
	if err == nil || resilience.IsContextError(err) {
		return resilience.ErrorClassification{}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if resilience.IsRetryableHTTPStatus(apiErr.Code) {
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		}
		return resilience.ErrorClassification{}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func wrapError(err error) error {
	const op = "gemini generate content"

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return domain.WrapError(domain.ErrUnauthorized, op, err)
	}
	if classifyGeminiError(err).Retryable {
		return domain.WrapError(domain.ErrTemporary, op, err)
	}
	return err
}
