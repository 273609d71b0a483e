package domain

// Category is one label of the closed document-type vocabulary.
type Category string

const (
	CategoryContract           Category = "Contrato"
	CategoryAmendment          Category = "Termo Aditivo"
	CategoryReport             Category = "Relatório"
	CategoryOfficialLetter     Category = "Ofício"
	CategoryMinutes            Category = "Ata"
	CategoryProposal           Category = "Proposta"
	CategoryDraft              Category = "Minuta"
	CategoryAcknowledgmentTerm Category = "Termo de Apostilamento"
	CategoryBiddingNotice      Category = "Edital de Licitação"
	CategoryTermsOfReference   Category = "Termo de Referência"
	CategoryOther              Category = "Outro"
)

var categories = []Category{
	CategoryContract,
	CategoryAmendment,
	CategoryReport,
	CategoryOfficialLetter,
	CategoryMinutes,
	CategoryProposal,
	CategoryDraft,
	CategoryAcknowledgmentTerm,
	CategoryBiddingNotice,
	CategoryTermsOfReference,
	CategoryOther,
}

// Categories returns the vocabulary in prompt order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

func (c Category) Valid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

func (c Category) String() string {
	return string(c)
}
