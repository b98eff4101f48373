package fiches

import (
	"strings"
)

const (
	promptHeader  = "Informations pour le nouveau poste :\n\n"
	promptClosing = "\nGénère maintenant la fiche de poste complète :"
)

// NormalizeList splits a free-text field into trimmed non-empty items.
// Newlines and commas both act as separators alongside semicolons.
func NormalizeList(raw string) []string {
	if raw == "" {
		return nil
	}
	raw = strings.ReplaceAll(raw, "\n", "; ")
	raw = strings.ReplaceAll(raw, ",", ";")
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// BuildUserPrompt renders the request as the user message sent with the
// fiche system prompt. Optional lines are omitted when empty.
func BuildUserPrompt(req JobPostingRequest) string {
	var b strings.Builder
	b.WriteString(promptHeader)

	writeLine(&b, "Titre du poste", strings.TrimSpace(req.Title))
	writeLine(&b, "Entreprise", strings.TrimSpace(req.Company))
	writeLine(&b, "Secteur d'activité", strings.TrimSpace(req.Sector))
	writeLine(&b, "Missions principales", strings.Join(NormalizeList(req.Missions), "; "))

	if items := NormalizeList(req.TechnicalSkills); len(items) > 0 {
		writeLine(&b, "Compétences techniques", strings.Join(items, ", "))
	}
	if items := NormalizeList(req.SoftSkills); len(items) > 0 {
		writeLine(&b, "Compétences comportementales", strings.Join(items, ", "))
	}
	if level := strings.TrimSpace(req.ExperienceLevel); level != "" {
		writeLine(&b, "Niveau d'expérience", level)
	}
	if items := NormalizeList(req.Benefits); len(items) > 0 {
		writeLine(&b, "Avantages", strings.Join(items, ", "))
	}

	b.WriteString(promptClosing)
	return b.String()
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString("- ")
	b.WriteString(label)
	b.WriteString(" : ")
	b.WriteString(value)
	b.WriteString("\n")
}
