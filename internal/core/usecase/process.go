package usecase

import (
	"context"
	"fmt"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
)

type ProcessDocumentUseCase struct {
	repo       ports.DocumentRepository
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
}

func NewProcessDocumentUseCase(
	repo ports.DocumentRepository,
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
) *ProcessDocumentUseCase {
	return &ProcessDocumentUseCase{
		repo:       repo,
		extractor:  extractor,
		classifier: classifier,
	}
}

func (uc *ProcessDocumentUseCase) ProcessByID(ctx context.Context, documentID string) error {
	if err := uc.markStatus(ctx, documentID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	doc, category, err := uc.processPipeline(ctx, documentID)
	if err == nil {
		err = uc.persistCategory(ctx, doc.ID, category)
	}
	if err != nil {
		if failErr := uc.markFailed(ctx, documentID, err); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.markStatus(ctx, documentID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) processPipeline(ctx context.Context, documentID string) (*domain.Document, domain.Category, error) {
	doc, err := uc.loadDocument(ctx, documentID)
	if err != nil {
		return nil, "", err
	}

	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return nil, "", err
	}

	category, err := uc.classify(ctx, doc.Filename, text)
	if err != nil {
		return nil, "", err
	}
	doc.Category = category
	return doc, category, nil
}

func (uc *ProcessDocumentUseCase) loadDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document by id: %w", err)
	}
	return doc, nil
}

// extractText returns an empty snippet for formats without an extractor so the document is
// still classified by its name.
func (uc *ProcessDocumentUseCase) extractText(ctx context.Context, doc *domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, doc)
	if err != nil {
		if domain.IsKind(err, domain.ErrUnsupportedFormat) {
			return "", nil
		}
		return "", fmt.Errorf("extract text: %w", err)
	}
	return text, nil
}

func (uc *ProcessDocumentUseCase) classify(ctx context.Context, fileName, text string) (domain.Category, error) {
	category, err := uc.classifier.Classify(ctx, fileName, text)
	if err != nil {
		return "", fmt.Errorf("classify document: %w", err)
	}
	return category, nil
}

func (uc *ProcessDocumentUseCase) persistCategory(ctx context.Context, documentID string, category domain.Category) error {
	if err := uc.repo.SaveCategory(ctx, documentID, category); err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func (uc *ProcessDocumentUseCase) markStatus(ctx context.Context, documentID string, status domain.DocumentStatus, errMessage string) error {
	return uc.repo.UpdateStatus(ctx, documentID, status, errMessage)
}

func (uc *ProcessDocumentUseCase) markFailed(ctx context.Context, documentID string, processErr error) error {
	if processErr == nil {
		return nil
	}
	return uc.markStatus(ctx, documentID, domain.StatusFailed, processErr.Error())
}
