package doctype

// Normalized substrings that mark a file as one piece of a bidding-notice package.
var biddingFragmentKeywords = []string{
	"edital",
	"licit",
	"instrucoes",
	"instruc",
	"lista de requerimentos",
	"criterio",
	"formulario",
	"modelo de acordo",
	"secao",
	"condicoes gerais",
	"questionario",
}

// IsBiddingFragment reports whether fileName alone identifies the file as part of a
// bidding-notice (edital) package. Path segments and extensions are matched too.
func IsBiddingFragment(fileName string) bool {
	return containsAny(Normalize(fileName), biddingFragmentKeywords)
}
