package doctype

import (
	"testing"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestExtractCategoryMapsDisplayForms(t *testing.T) {
	cases := []struct {
		answer string
		want   domain.Category
	}{
		{"Contrato", domain.CategoryContract},
		{"termo aditivo", domain.CategoryAmendment},
		{"RELATORIO", domain.CategoryReport},
		{"Ofício.", domain.CategoryOfficialLetter},
		{"Ata", domain.CategoryMinutes},
		{"Proposta comercial", domain.CategoryProposal},
		{"Este é um documento do tipo: Minuta", domain.CategoryDraft},
		{"Termo de Apostilamento", domain.CategoryAcknowledgmentTerm},
		{"Edital de Licitação", domain.CategoryBiddingNotice},
		{"Termo de Referência", domain.CategoryTermsOfReference},
		{"Outro", domain.CategoryOther},
	}
	for _, tc := range cases {
		if got := ExtractCategory(tc.answer); got != tc.want {
			t.Fatalf("ExtractCategory(%q) = %q, want %q", tc.answer, got, tc.want)
		}
	}
}

func TestExtractCategoryUsesListOrderNotTextPosition(t *testing.T) {
	got := ExtractCategory("Este documento é um Edital de Licitação e também um Contrato")
	if got != domain.CategoryBiddingNotice {
		t.Fatalf("expected %q, got %q", domain.CategoryBiddingNotice, got)
	}

	// "proposta" appears first in the text but "contrato" is earlier in the list.
	got = ExtractCategory("proposta de contrato")
	if got != domain.CategoryContract {
		t.Fatalf("expected %q, got %q", domain.CategoryContract, got)
	}
}

func TestExtractCategoryKeepsListOrderAfterBiddingNotice(t *testing.T) {
	cases := []struct {
		answer string
		want   domain.Category
	}{
		{"Termo de Referência da Ata", domain.CategoryMinutes},
		{"Termo Aditivo ao Contrato", domain.CategoryContract},
		{"Minuta de Proposta", domain.CategoryProposal},
		{"Termo de Apostilamento da Minuta", domain.CategoryDraft},
	}
	for _, tc := range cases {
		if got := ExtractCategory(tc.answer); got != tc.want {
			t.Fatalf("ExtractCategory(%q) = %q, want %q", tc.answer, got, tc.want)
		}
	}
}

func TestExtractCategoryFallsBackToOther(t *testing.T) {
	for _, answer := range []string{"resposta sem categoria reconhecida", "", "   ", "memorando"} {
		if got := ExtractCategory(answer); got != domain.CategoryOther {
			t.Fatalf("ExtractCategory(%q) = %q, want %q", answer, got, domain.CategoryOther)
		}
	}
}

func TestExtractCategoryAlwaysReturnsVocabularyMember(t *testing.T) {
	for _, answer := range []string{"ata", "x", "Termo De Apostilamento", "🤖", "data base"} {
		if got := ExtractCategory(answer); !got.Valid() {
			t.Fatalf("ExtractCategory(%q) returned out-of-vocabulary %q", answer, got)
		}
	}
}
