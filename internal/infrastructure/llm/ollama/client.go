package ollama

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
)

type Options struct {
	Timeout            time.Duration
	ResilienceExecutor *resilience.Executor
}

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, model string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.ResilienceExecutor,
	}
}

// Generator answers classification prompts with an Ollama model.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := map[string]any{
		"model":  g.client.model,
		"prompt": prompt,
		"stream": false,
	}
	if maxTokens > 0 {
		reqBody["options"] = map[string]any{"num_predict": maxTokens}
	}

	answer, err := resilience.Call(ctx, g.client.executor, "ollama.generate", func(callCtx context.Context) (string, error) {
		return g.client.generate(callCtx, reqBody)
	}, classifyOllamaError)
	if err != nil {
		return "", wrapTemporaryIfNeeded("ollama generate", err)
	}
	if answer == "" {
		return "", domain.WrapError(domain.ErrModelResponse, "ollama generate", errors.New("empty response"))
	}
	return answer, nil
}

func (c *Client) generate(ctx context.Context, reqBody map[string]any) (string, error) {
	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}
