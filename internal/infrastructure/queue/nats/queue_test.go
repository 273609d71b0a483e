package nats

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newLoggedQueue(logs *bytes.Buffer) *Queue {
	return &Queue{logger: slog.New(slog.NewJSONHandler(logs, nil))}
}

func TestDeliverLogsDocumentsSkippedAfterShutdown(t *testing.T) {
	var logs bytes.Buffer
	q := newLoggedQueue(&logs)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	q.deliver(ctx, func(context.Context, string) error {
		called = true
		return nil
	}, "doc-42")

	if called {
		t.Fatalf("handler must not run after shutdown")
	}
	if !strings.Contains(logs.String(), `"msg":"document_skipped_on_shutdown"`) || !strings.Contains(logs.String(), `"document_id":"doc-42"`) {
		t.Fatalf("expected skipped document id in logs, got %s", logs.String())
	}
}

func TestDeliverLogsHandlerFailure(t *testing.T) {
	var logs bytes.Buffer
	q := newLoggedQueue(&logs)

	var got string
	q.deliver(context.Background(), func(_ context.Context, id string) error {
		got = id
		return errors.New("classify failed")
	}, "doc-7")

	if got != "doc-7" {
		t.Fatalf("expected handler to receive doc-7, got %q", got)
	}
	if !strings.Contains(logs.String(), `"msg":"document_handler_failed"`) {
		t.Fatalf("expected handler failure in logs, got %s", logs.String())
	}
}
