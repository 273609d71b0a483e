package doctype

import (
	"strings"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

type keywordLabel struct {
	keyword string
	label   domain.Category
}

// responseKeywords is walked in order and the first keyword contained in the answer wins.
// The bidding-notice phrase goes first: an answer naming it is a bidding notice whatever
// else it mentions, the same precedence Canonicalize and the file-name check apply.
var responseKeywords = []keywordLabel{
	{"edital de licitacao", domain.CategoryBiddingNotice},
	{"contrato", domain.CategoryContract},
	{"termo aditivo", domain.CategoryAmendment},
	{"relatorio", domain.CategoryReport},
	{"oficio", domain.CategoryOfficialLetter},
	{"ata", domain.CategoryMinutes},
	{"proposta", domain.CategoryProposal},
	{"minuta", domain.CategoryDraft},
	{"termo de apostilamento", domain.CategoryAcknowledgmentTerm},
	{"termo de referencia", domain.CategoryTermsOfReference},
	{"outro", domain.CategoryOther},
}

// ExtractCategory parses a free-text model answer into a category. Answers that name no
// known category yield CategoryOther.
func ExtractCategory(answer string) domain.Category {
	normalized := Normalize(answer)
	for _, entry := range responseKeywords {
		if strings.Contains(normalized, entry.keyword) {
			return entry.label
		}
	}
	return domain.CategoryOther
}
