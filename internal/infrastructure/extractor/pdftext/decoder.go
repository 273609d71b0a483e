package pdftext

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

type Decoder struct{}

// Decode maps malformed input, including parser panics, to ErrUnsupportedFormat.
func (Decoder) Decode(raw []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = domain.WrapError(domain.ErrUnsupportedFormat, "decode pdf", fmt.Errorf("parser panic: %v", rec))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "decode pdf", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "decode pdf", err)
	}
	body, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return string(body), nil
}
