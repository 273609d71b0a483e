package localfs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestSaveAndOpen(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "doc-1_ata.txt", strings.NewReader("Ata da reunião")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	rc, err := s.Open(ctx, "doc-1_ata.txt")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	body, _ := io.ReadAll(rc)
	if string(body) != "Ata da reunião" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	s, _ := New(t.TempDir())
	_, err := s.Open(context.Background(), "missing.txt")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRejectsKeysEscapingBasePath(t *testing.T) {
	s, _ := New(t.TempDir())
	for _, key := range []string{"", "..", "../etc/passwd", `a\b`} {
		if err := s.Save(context.Background(), key, strings.NewReader("x")); !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("key %q: expected ErrInvalidInput, got %v", key, err)
		}
	}
}
