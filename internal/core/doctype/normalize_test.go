package doctype

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Relatório", "relatorio"},
		{"  Termo   de\tReferência \n", "termo de referencia"},
		{"EDITAL DE LICITAÇÃO", "edital de licitacao"},
		{"Ofício nº 12", "oficio nº 12"},
		{"Seção_3 – Condições Gerais.pdf", "secao_3 – condicoes gerais.pdf"},
		{"  questionário ", "questionario"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeStripsAccents(t *testing.T) {
	if Normalize("Relatório") != Normalize("relatorio") {
		t.Fatalf("expected accent-insensitive keys, got %q vs %q", Normalize("Relatório"), Normalize("relatorio"))
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Relatório Mensal",
		"İstanbul ÇÃÕ",
		"  multiple\t\twhite \r\n space ",
		"Ação—Minuta_final (v2).docx",
		"日本語 テキスト",
		"é decomposta",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
