package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
)

func TestGeneratorSendsPromptAndTokenLimit(t *testing.T) {
	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"response":"  Ata  "}`))
	}))
	defer server.Close()

	gen := NewGenerator(New(server.URL+"/", "llama3.1:8b", Options{}))
	answer, err := gen.Generate(context.Background(), "classifique", 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if answer != "Ata" {
		t.Fatalf("expected trimmed answer, got %q", answer)
	}
	if payload["model"] != "llama3.1:8b" || payload["prompt"] != "classifique" || payload["stream"] != false {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	options, _ := payload["options"].(map[string]any)
	if options["num_predict"] != float64(20) {
		t.Fatalf("expected num_predict=20, got %+v", payload["options"])
	}
}

func TestGeneratorIncludesHTTPBodyInError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewGenerator(New(server.URL, "gen", Options{})).Generate(context.Background(), "p", 20)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Fatalf("expected response body in error, got %v", err)
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("404 must not be temporary: %v", err)
	}
}

func TestGeneratorUnwrapsOllamaErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"model 'gen' not found, try pulling it first"}`))
	}))
	defer server.Close()

	_, err := NewGenerator(New(server.URL, "gen", Options{})).Generate(context.Background(), "p", 20)
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected HTTPStatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusBadRequest || statusErr.Body != "model 'gen' not found, try pulling it first" {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestGeneratorWrapsRetryableStatusAsTemporary(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
	}, nil)
	gen := NewGenerator(New(server.URL, "gen", Options{ResilienceExecutor: exec}))

	_, err := gen.Generate(context.Background(), "p", 20)
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestGeneratorRejectsEmptyAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"   "}`))
	}))
	defer server.Close()

	_, err := NewGenerator(New(server.URL, "gen", Options{})).Generate(context.Background(), "p", 20)
	if !domain.IsKind(err, domain.ErrModelResponse) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}
