package bootstrap

import (
	"github.com/kirillkom/doctype-classifier/internal/config"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/extractor"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/extractor/htmltext"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/doctype-classifier/internal/infrastructure/extractor/sheettext"
)

// NewExtractorRegistry registers every supported format; anything else is read as plain text.
func NewExtractorRegistry(storage ports.ObjectStorage, cfg config.Config) *extractor.Registry {
	registry := extractor.NewRegistry(storage, plaintext.Decoder{}, extractor.Options{
		MaxBytes:     cfg.ExtractMaxBytes,
		SnippetRunes: cfg.ExtractSnippetRunes,
	})
	registry.Register(pdftext.Decoder{}, []string{".pdf"}, []string{"application/pdf"})
	registry.Register(sheettext.Decoder{}, []string{".xlsx", ".xlsm"}, []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel.sheet.macroenabled.12",
	})
	registry.Register(htmltext.Decoder{}, []string{".html", ".htm", ".xhtml"}, []string{"text/html", "application/xhtml+xml"})
	return registry
}
