package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kirillkom/doctype-classifier/internal/core/doctype"
	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
)

const DefaultMaxAnswerTokens = 20

// Classification sources reported to a ports.ClassificationRecorder.
const (
	SourceFragment = "fragment"
	SourceModel    = "model"
	SourceCache    = "cache"
	SourceEmpty    = "empty"
)

type ClassifyOptions struct {
	MaxTokens int
	Recorder  ports.ClassificationRecorder
}

type ClassifyUseCase struct {
	generator ports.TextGenerator
	maxTokens int
	recorder  ports.ClassificationRecorder
}

func NewClassifyUseCase(generator ports.TextGenerator, options ClassifyOptions) *ClassifyUseCase {
	maxTokens := options.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxAnswerTokens
	}
	return &ClassifyUseCase{
		generator: generator,
		maxTokens: maxTokens,
		recorder:  options.Recorder,
	}
}

// Classify resolves the document type of fileName, using content when it is not blank.
// Bidding-notice fragments are recognised from the name alone without calling the model.
// A failed model call is returned as an error, never replaced by a default category.
func (uc *ClassifyUseCase) Classify(ctx context.Context, fileName, content string) (domain.Category, error) {
	if doctype.IsBiddingFragment(fileName) {
		uc.record(domain.CategoryBiddingNotice, SourceFragment)
		return domain.CategoryBiddingNotice, nil
	}
	if strings.TrimSpace(fileName) == "" && strings.TrimSpace(content) == "" {
		uc.record(domain.CategoryOther, SourceEmpty)
		return domain.CategoryOther, nil
	}

	answer, err := uc.generate(ctx, buildClassificationPrompt(fileName, content))
	if err != nil {
		return "", fmt.Errorf("generate classification: %w", err)
	}

	category := doctype.Canonicalize(doctype.ExtractCategory(answer).String(), fileName)
	uc.record(category, SourceModel)
	return category, nil
}

func (uc *ClassifyUseCase) generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	answer, err := uc.generator.Generate(ctx, prompt, uc.maxTokens)
	if uc.recorder != nil {
		uc.recorder.RecordModelCall(time.Since(start), err)
	}
	return answer, err
}

func (uc *ClassifyUseCase) record(category domain.Category, source string) {
	if uc.recorder != nil {
		uc.recorder.RecordClassification(category, source)
	}
}
