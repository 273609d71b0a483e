// Package extractor turns stored documents into plain-text snippets for classification.
package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
	"github.com/kirillkom/doctype-classifier/internal/core/ports"
)

const (
	DefaultMaxBytes     int64 = 32 << 20
	DefaultSnippetRunes       = 4000
)

// Decoder converts the raw bytes of one file format to text.
type Decoder interface {
	Decode(raw []byte) (string, error)
}

type DecoderFunc func(raw []byte) (string, error)

func (f DecoderFunc) Decode(raw []byte) (string, error) { return f(raw) }

type Options struct {
	MaxBytes     int64
	SnippetRunes int
}

type Registry struct {
	storage  ports.ObjectStorage
	fallback Decoder
	byExt    map[string]Decoder
	byMIME   map[string]Decoder
	maxBytes int64
	snippet  int
}

// NewRegistry builds a registry that decodes unknown formats with fallback. storage may be
// nil when only ExtractBytes is used.
func NewRegistry(storage ports.ObjectStorage, fallback Decoder, options Options) *Registry {
	if options.MaxBytes <= 0 {
		options.MaxBytes = DefaultMaxBytes
	}
	if options.SnippetRunes <= 0 {
		options.SnippetRunes = DefaultSnippetRunes
	}
	return &Registry{
		storage:  storage,
		fallback: fallback,
		byExt:    make(map[string]Decoder),
		byMIME:   make(map[string]Decoder),
		maxBytes: options.MaxBytes,
		snippet:  options.SnippetRunes,
	}
}

// Register binds decoder to file extensions (with leading dot) and MIME types.
func (r *Registry) Register(decoder Decoder, extensions []string, mimeTypes []string) {
	for _, ext := range extensions {
		r.byExt[strings.ToLower(ext)] = decoder
	}
	for _, mt := range mimeTypes {
		r.byMIME[strings.ToLower(mt)] = decoder
	}
}

func (r *Registry) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	if r.storage == nil {
		return "", fmt.Errorf("extract %s: no object storage configured", doc.ID)
	}
	reader, err := r.storage.Open(ctx, doc.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open source document: %w", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(io.LimitReader(reader, r.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read source document: %w", err)
	}
	return r.ExtractBytes(doc.Filename, doc.MimeType, raw)
}

// ExtractBytes decodes raw, preferring the extension of fileName over mimeType. Documents
// larger than MaxBytes are reported as ErrUnsupportedFormat so callers classify them by name.
func (r *Registry) ExtractBytes(fileName, mimeType string, raw []byte) (string, error) {
	if int64(len(raw)) > r.maxBytes {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text", fmt.Errorf("document exceeds %d bytes", r.maxBytes))
	}
	decoder := r.lookup(fileName, mimeType)
	if decoder == nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "extract text", fmt.Errorf("no decoder for %q", fileName))
	}
	text, err := decoder.Decode(raw)
	if err != nil {
		return "", err
	}
	return truncate(strings.TrimSpace(text), r.snippet), nil
}

func (r *Registry) lookup(fileName, mimeType string) Decoder {
	if d, ok := r.byExt[strings.ToLower(filepath.Ext(fileName))]; ok {
		return d
	}
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if d, ok := r.byMIME[mt]; ok {
		return d
	}
	return r.fallback
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	var b bytes.Buffer
	n := 0
	for _, r := range s {
		if n == limit {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
