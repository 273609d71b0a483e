package doctype

import (
	"strings"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

const biddingNoticePhrase = "edital de licitacao"

// labelTable maps already-extracted labels to the vocabulary. It is deliberately not the
// same list as responseKeywords: the bidding notice is handled by the override in
// Canonicalize and there is no explicit "outro" entry.
var labelTable = []keywordLabel{
	{"contrato", domain.CategoryContract},
	{"termo aditivo", domain.CategoryAmendment},
	{"relatório", domain.CategoryReport},
	{"ofício", domain.CategoryOfficialLetter},
	{"ata", domain.CategoryMinutes},
	{"proposta", domain.CategoryProposal},
	{"minuta", domain.CategoryDraft},
	{"termo de apostilamento", domain.CategoryAcknowledgmentTerm},
	{"termo de referência", domain.CategoryTermsOfReference},
}

// normalizedLabelTable holds labelTable with keys run through Normalize, so accented keys
// can match normalized candidates.
var normalizedLabelTable = func() []keywordLabel {
	out := make([]keywordLabel, len(labelTable))
	for i, entry := range labelTable {
		out[i] = keywordLabel{keyword: Normalize(entry.keyword), label: entry.label}
	}
	return out
}()

// Canonicalize maps a raw candidate label to the vocabulary. fileName is optional; an empty
// string means it was not supplied. A bidding-notice signal in either the label or the file
// name overrides everything else.
func Canonicalize(label, fileName string) domain.Category {
	normalized := Normalize(label)

	if strings.Contains(normalized, biddingNoticePhrase) || (fileName != "" && IsBiddingFragment(fileName)) {
		return domain.CategoryBiddingNotice
	}

	for _, entry := range normalizedLabelTable {
		if strings.Contains(normalized, entry.keyword) {
			return entry.label
		}
	}
	return domain.CategoryOther
}
