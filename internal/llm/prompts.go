package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/fiche_system_v1.txt
	ficheSystemPromptV1 string
)

// FicheSystemPrompt returns the fixed system instruction for fiche generation.
func FicheSystemPrompt() string {
	return strings.TrimSpace(ficheSystemPromptV1)
}
