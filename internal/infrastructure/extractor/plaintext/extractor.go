package plaintext

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type Decoder struct{}

func (Decoder) Decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if !utf8.Valid(raw) || bytes.IndexByte(raw, 0) >= 0 {
		return "", domain.WrapError(domain.ErrUnsupportedFormat, "decode plain text", errors.New("binary content"))
	}
	return string(bytes.TrimSpace(raw)), nil
}
