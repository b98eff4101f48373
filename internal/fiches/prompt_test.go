package fiches

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "mixed separators", raw: "a, b;\nc", want: []string{"a", "b", "c"}},
		{name: "empty", raw: "", want: nil},
		{name: "only separators", raw: " ,;\n ; ", want: []string{}},
		{name: "keeps duplicates and order", raw: "Go\nSQL, Go", want: []string{"Go", "SQL", "Go"}},
		{name: "windows newlines", raw: "un\r\ndeux", want: []string{"un", "deux"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeList(tt.raw)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeList(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestBuildUserPromptRequiredOnly(t *testing.T) {
	prompt := BuildUserPrompt(JobPostingRequest{
		Title:    "Chef de Projet",
		Company:  "Acme",
		Sector:   "Tech",
		Missions: "Piloter des projets, Gérer le budget",
	})

	want := "Informations pour le nouveau poste :\n\n" +
		"- Titre du poste : Chef de Projet\n" +
		"- Entreprise : Acme\n" +
		"- Secteur d'activité : Tech\n" +
		"- Missions principales : Piloter des projets; Gérer le budget\n" +
		"\nGénère maintenant la fiche de poste complète :"
	if prompt != want {
		t.Fatalf("unexpected prompt:\n%s\nwant:\n%s", prompt, want)
	}
}

func TestBuildUserPromptOptionalLines(t *testing.T) {
	req := JobPostingRequest{
		Title:           "Développeur Go",
		Company:         "Acme",
		Sector:          "Logiciel",
		Missions:        "Concevoir\nLivrer",
		TechnicalSkills: "Go; PostgreSQL\nKubernetes",
		SoftSkills:      "Rigueur, Autonomie",
		ExperienceLevel: "  Senior  ",
		Benefits:        "Télétravail",
	}
	prompt := BuildUserPrompt(req)

	for _, want := range []string{
		"- Missions principales : Concevoir; Livrer\n",
		"- Compétences techniques : Go, PostgreSQL, Kubernetes\n",
		"- Compétences comportementales : Rigueur, Autonomie\n",
		"- Niveau d'expérience : Senior\n",
		"- Avantages : Télétravail\n",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, prompt)
		}
	}
	if BuildUserPrompt(req) != prompt {
		t.Fatalf("prompt is not deterministic")
	}
}

func TestBuildUserPromptOmitsEmptyOptionalFields(t *testing.T) {
	prompt := BuildUserPrompt(JobPostingRequest{
		Title:           "T",
		Company:         "C",
		Sector:          "S",
		Missions:        "M",
		TechnicalSkills: " , ;",
		SoftSkills:      "\n",
		ExperienceLevel: "   ",
		Benefits:        "",
	})
	for _, label := range []string{"Compétences techniques", "Compétences comportementales", "Niveau d'expérience", "Avantages"} {
		if strings.Contains(prompt, label) {
			t.Fatalf("did not expect %q line in prompt:\n%s", label, prompt)
		}
	}
}

func TestValidateListsMissingFields(t *testing.T) {
	err := JobPostingRequest{Title: "T", Sector: "  "}.Validate()
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"entreprise", "secteur", "missions"}
	if !reflect.DeepEqual(validationErr.Fields, want) {
		t.Fatalf("missing = %v, want %v", validationErr.Fields, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput")
	}

	ok := JobPostingRequest{Title: "T", Company: "C", Sector: "S", Missions: "M"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
