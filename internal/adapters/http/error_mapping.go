package httpadapter

import (
	"net/http"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

// errorKind is the HTTP rendering of a domain error kind. code is stable for API clients;
// the message text is not.
type errorKind struct {
	kind   error
	status int
	code   string
}

var errorKinds = []errorKind{
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrDocumentNotFound, http.StatusNotFound, "document_not_found"},
	{domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType, "unsupported_format"},
	{domain.ErrTemporary, http.StatusServiceUnavailable, "temporarily_unavailable"},
	{domain.ErrModelResponse, http.StatusBadGateway, "model_response"},
}

func mapError(err error) (int, string) {
	for _, k := range errorKinds {
		if domain.IsKind(err, k.kind) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, "internal"
}
