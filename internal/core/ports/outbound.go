package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

// TextGenerator sends one prompt to a generative model and returns its free-text answer.
// maxTokens bounds the answer length.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ClassificationCache memoizes classification results by DocumentIdentity.CacheKey.
type ClassificationCache interface {
	Get(ctx context.Context, key string) (domain.Category, bool, error)
	Put(ctx context.Context, key string, category domain.Category) error
}

// DocumentRepository persists document metadata and processing state.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id string) (*domain.Document, error)
	UpdateStatus(ctx context.Context, id string, status domain.DocumentStatus, errMessage string) error
	SaveCategory(ctx context.Context, id string, category domain.Category) error
}

// ObjectStorage stores raw uploaded files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// MessageQueue transports document ingestion events.
type MessageQueue interface {
	PublishDocumentIngested(ctx context.Context, documentID string) error
	SubscribeDocumentIngested(ctx context.Context, handler func(context.Context, string) error) error
}

// TextExtractor extracts plain text from a stored document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// ClassificationRecorder observes classification outcomes. Implementations must be safe for
// concurrent use.
type ClassificationRecorder interface {
	RecordClassification(category domain.Category, source string)
	RecordModelCall(duration time.Duration, err error)
}
