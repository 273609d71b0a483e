package nats

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestClassifyNATSError(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
		record    bool
	}{
		{"no servers", fmt.Errorf("nats publish: %w", nats.ErrNoServers), true, true},
		{"timeout", nats.ErrTimeout, true, true},
		{"reconnect buffer", nats.ErrReconnectBufExceeded, true, true},
		{"canceled", context.Canceled, false, false},
		{"bad subject", nats.ErrBadSubject, false, false},
		{"max payload", nats.ErrMaxPayload, false, false},
		{"unknown", errors.New("boom"), false, true},
	}
	for _, tc := range cases {
		got := classifyNATSError(tc.err)
		if got.Retryable != tc.retryable || got.RecordFailure != tc.record {
			t.Fatalf("%s: got %+v", tc.name, got)
		}
	}
}

func TestWrapPublishError(t *testing.T) {
	if err := wrapPublishError(nats.ErrConnectionClosed); !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	if err := wrapPublishError(fmt.Errorf("nats publish: %w", nats.ErrMaxPayload)); !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for oversize payload, got %v", err)
	}
	plain := errors.New("boom")
	if err := wrapPublishError(plain); err != plain {
		t.Fatalf("expected error passthrough, got %v", err)
	}
	if wrapPublishError(nil) != nil {
		t.Fatalf("expected nil")
	}
}
