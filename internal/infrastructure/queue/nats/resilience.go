package nats

import (
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/resilience"
)

// Connection-level failures clear up on reconnect.
var transientNATSErrors = []error{
	nats.ErrNoServers,
	nats.ErrTimeout,
	nats.ErrConnectionClosed,
	nats.ErrDisconnected,
	nats.ErrConnectionReconnecting,
	nats.ErrConnectionDraining,
	nats.ErrStaleConnection,
	nats.ErrReconnectBufExceeded,
}

// A rejected message fails the same way on every attempt.
var rejectedNATSErrors = []error{
	nats.ErrBadSubject,
	nats.ErrMaxPayload,
	nats.ErrInvalidMsg,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func classifyNATSError(err error) resilience.ErrorClassification {
	switch {
	case err == nil, resilience.IsContextError(err):
		return resilience.ErrorClassification{}
	case resilience.IsCircuitOpen(err), isAny(err, transientNATSErrors):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	case isAny(err, rejectedNATSErrors):
		return resilience.ErrorClassification{}
	default:
		return resilience.ErrorClassification{RecordFailure: true}
	}
}

// wrapPublishError tags a failed ingestion event so the upload endpoint can answer 503 or 400.
func wrapPublishError(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsKind(err, domain.ErrTemporary):
		return err
	case isAny(err, rejectedNATSErrors):
		return domain.WrapError(domain.ErrInvalidInput, "publish document ingested", err)
	case classifyNATSError(err).Retryable:
		return domain.WrapError(domain.ErrTemporary, "publish document ingested", err)
	default:
		return err
	}
}
