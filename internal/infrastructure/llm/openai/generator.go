// Package openai answers classification prompts through the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
)

const DefaultModel = "gpt-4o-mini"

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Generator struct {
	client   openai.Client
	model    string
	executor *resilience.Executor
}

func NewGenerator(cfg Config, executor *resilience.Executor) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "openai generator", errors.New("api key is required"))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Retries are owned by the resilience executor, not the SDK.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Generator{
		client:   openai.NewClient(opts...),
		model:    model,
		executor: executor,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	resp, err := resilience.Call(ctx, g.executor, "openai.chat_completion", func(callCtx context.Context) (*openai.ChatCompletion, error) {
		return g.client.Chat.Completions.New(callCtx, params)
	}, classifyOpenAIError)
	if err != nil {
		return "", wrapError(err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.WrapError(domain.ErrModelResponse, "openai chat completion", errors.New("no choices returned"))
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.WrapError(domain.ErrModelResponse, "openai chat completion", errors.New("empty message content"))
	}
	return answer, nil
}

func classifyOpenAIError(err error) resilience.ErrorClassification {
	if err == nil || resilience.IsContextError(err) {
		return resilience.ErrorClassification{}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if resilience.IsRetryableHTTPStatus(apiErr.StatusCode) {
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
	const op = "openai chat completion"

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.WrapError(domain.ErrUnauthorized, op, err)
		}
	}
	if classifyOpenAIError(err).Retryable {
		return domain.WrapError(domain.ErrTemporary, op, err)
	}
	return err
}
