package ports

import (
	"context"
	"io"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

// DocumentClassifier is the inbound contract for document-type classification.
type DocumentClassifier interface {
	Classify(ctx context.Context, fileName, content string) (domain.Category, error)
}

// DocumentIngestor is the inbound contract for document upload orchestration.
type DocumentIngestor interface {
	Upload(ctx context.Context, filename, mimeType string, body io.Reader) (*domain.Document, error)
}

// DocumentReader is the inbound read model for document metadata/state.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*domain.Document, error)
}

// DocumentProcessor is the inbound contract for asynchronous document processing.
type DocumentProcessor interface {
	ProcessByID(ctx context.Context, documentID string) error
}
