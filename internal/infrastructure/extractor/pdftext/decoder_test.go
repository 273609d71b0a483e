package pdftext

import (
	"testing"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestDecodeRejectsNonPDF(t *testing.T) {
	_, err := Decoder{}.Decode([]byte("definitely not a pdf"))
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeRejectsTruncatedPDF(t *testing.T) {
	_, err := Decoder{}.Decode([]byte("%PDF-1.4\n1 0 obj\n<<>>\n"))
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
