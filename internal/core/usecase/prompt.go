package usecase

import (
	"fmt"
	"strings"

	"github.com/kirillkom/doctype-classifier/internal/core/domain"
)

const maxPromptSnippetRunes = 4000

func buildClassificationPrompt(fileName, content string) string {
	options := categoryOptions()

	if strings.TrimSpace(content) != "" {
		return fmt.Sprintf(`Classifique o tipo do documento com base no conteúdo abaixo:

%s

Escolha apenas UMA destas opções:
%s.
`, truncateRunes(content, maxPromptSnippetRunes), options)
	}

	return fmt.Sprintf(`Classifique o tipo do documento com base no nome abaixo:

"%s"

Escolha apenas UMA destas opções:
%s.
`, fileName, options)
}

func categoryOptions() string {
	cats := domain.Categories()
	labels := make([]string, len(cats))
	for i, c := range cats {
		labels[i] = c.String()
	}
	return strings.Join(labels, ", ")
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	count := 0
	for idx := range s {
		if count == limit {
			return s[:idx]
		}
		count++
	}
	return s
}
