package extractor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

type storageFake struct {
	files map[string][]byte
}

func (s *storageFake) Save(_ context.Context, key string, data io.Reader) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.files[key] = raw
	return nil
}

func (s *storageFake) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := s.files[key]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func tagDecoder(tag string) Decoder {
	return DecoderFunc(func(raw []byte) (string, error) {
		return tag + ":" + string(raw), nil
	})
}

func TestRegistryPrefersExtensionOverMIME(t *testing.T) {
	r := NewRegistry(nil, tagDecoder("text"), Options{})
	r.Register(tagDecoder("pdf"), []string{".pdf"}, []string{"application/pdf"})
	r.Register(tagDecoder("html"), []string{".html", ".htm"}, []string{"text/html"})

	cases := []struct {
		fileName string
		mimeType string
		want     string
	}{
		{"Edital.PDF", "text/plain", "pdf:x"},
		{"pagina", "text/html; charset=utf-8", "html:x"},
		{"notas.txt", "application/octet-stream", "text:x"},
	}
	for _, tc := range cases {
		got, err := r.ExtractBytes(tc.fileName, tc.mimeType, []byte("x"))
		if err != nil {
			t.Fatalf("%s: ExtractBytes() error = %v", tc.fileName, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.fileName, got, tc.want)
		}
	}
}

func TestRegistryWithoutFallbackReportsUnsupported(t *testing.T) {
	r := NewRegistry(nil, nil, Options{})
	_, err := r.ExtractBytes("foto.jpg", "image/jpeg", []byte{1, 2, 3})
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRegistryTruncatesToSnippetRunes(t *testing.T) {
	r := NewRegistry(nil, DecoderFunc(func(raw []byte) (string, error) { return string(raw), nil }), Options{SnippetRunes: 3})
	got, err := r.ExtractBytes("a.txt", "", []byte("  ççççç  "))
	if err != nil {
		t.Fatalf("ExtractBytes() error = %v", err)
	}
	if got != "ççç" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}

func TestRegistryTreatsOversizedDocumentsAsUnsupported(t *testing.T) {
	store := &storageFake{files: map[string][]byte{"k": []byte(strings.Repeat("a", 11))}}
	r := NewRegistry(store, tagDecoder("text"), Options{MaxBytes: 10})

	_, err := r.Extract(context.Background(), &domain.Document{ID: "d", Filename: "a.txt", StoragePath: "k"})
	if !domain.IsKind(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "exceeds 10 bytes") {
		t.Fatalf("expected size in error, got %v", err)
	}

	if _, err := r.ExtractBytes("a.txt", "", []byte(strings.Repeat("a", 10))); err != nil {
		t.Fatalf("document at the limit must be decoded, got %v", err)
	}
}

func TestRegistryExtractReadsFromStorage(t *testing.T) {
	store := &storageFake{files: map[string][]byte{}}
	_ = store.Save(context.Background(), "k", strings.NewReader("Relatório"))
	r := NewRegistry(store, tagDecoder("text"), Options{})

	got, err := r.Extract(context.Background(), &domain.Document{ID: "d", Filename: "a.txt", StoragePath: "k"})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "text:Relatório" {
		t.Fatalf("unexpected text %q", got)
	}

	_, err = r.Extract(context.Background(), &domain.Document{ID: "d", StoragePath: "missing"})
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
