package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

func TestBuildClassificationPromptListsEveryCategory(t *testing.T) {
	for _, prompt := range []string{
		buildClassificationPrompt("a.pdf", ""),
		buildClassificationPrompt("a.pdf", "conteúdo"),
	} {
		for _, c := range domain.Categories() {
			if !strings.Contains(prompt, c.String()) {
				t.Fatalf("prompt is missing %q:\n%s", c, prompt)
			}
		}
		if !strings.Contains(prompt, "apenas UMA") {
			t.Fatalf("prompt must ask for exactly one option:\n%s", prompt)
		}
	}
}

func TestBuildClassificationPromptTruncatesContentByRunes(t *testing.T) {
	content := strings.Repeat("ç", maxPromptSnippetRunes) + "TAIL"
	prompt := buildClassificationPrompt("a.pdf", content)
	if strings.Contains(prompt, "TAIL") {
		t.Fatalf("expected content beyond %d runes to be dropped", maxPromptSnippetRunes)
	}
	if !strings.Contains(prompt, strings.Repeat("ç", maxPromptSnippetRunes)) {
		t.Fatalf("expected full %d-rune prefix in prompt", maxPromptSnippetRunes)
	}
	if !utf8.ValidString(prompt) {
		t.Fatalf("truncation split a rune")
	}
}

func TestBuildClassificationPromptFallsBackToNameForBlankContent(t *testing.T) {
	prompt := buildClassificationPrompt("ata_reuniao.txt", " \n\t ")
	if !strings.Contains(prompt, `"ata_reuniao.txt"`) {
		t.Fatalf("expected quoted file name in prompt:\n%s", prompt)
	}
}

func TestBuildClassificationPromptKeepsFileNameVerbatim(t *testing.T) {
	prompt := buildClassificationPrompt(`C:\docs\Ata "final".pdf`, "")
	if !strings.Contains(prompt, `"C:\docs\Ata "final".pdf"`) {
		t.Fatalf("expected unescaped file name in prompt:\n%s", prompt)
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("ação", 2); got != "aç" {
		t.Fatalf("truncateRunes() = %q", got)
	}
	if got := truncateRunes("abc", 10); got != "abc" {
		t.Fatalf("truncateRunes() = %q", got)
	}
	if got := truncateRunes("abc", 0); got != "" {
		t.Fatalf("truncateRunes() = %q", got)
	}
}
