package plaintext

import (
	"testing"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestDecodeStripsBOMAndWhitespace(t *testing.T) {
	got, err := Decoder{}.Decode([]byte("\xEF\xBB\xBF  Ofício nº 12 \n"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "Ofício nº 12" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestDecodeRejectsBinary(t *testing.T) {
	for _, raw := range [][]byte{{0xff, 0xfe, 0x00}, []byte("abc\x00def")} {
		if _, err := (Decoder{}).Decode(raw); !domain.IsKind(err, domain.ErrUnsupportedFormat) {
			t.Fatalf("expected ErrUnsupportedFormat for %v, got %v", raw, err)
		}
	}
}
