package fiches

import (
	"strings"
	"time"

	"fiche-backend/fiche/render"
)

// JobPostingRequest is the form submitted by the client. Missions and the
// skill and benefit fields are free text using commas, semicolons or
// newlines as item separators.
type JobPostingRequest struct {
	Title           string `json:"titre"`
	Company         string `json:"entreprise"`
	Sector          string `json:"secteur"`
	Missions        string `json:"missions"`
	TechnicalSkills string `json:"competences_tech"`
	SoftSkills      string `json:"competences_soft"`
	ExperienceLevel string `json:"experience"`
	Benefits        string `json:"avantages"`
}

// Validate reports every required field that is empty after trimming.
func (r JobPostingRequest) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"titre", r.Title},
		{"entreprise", r.Company},
		{"secteur", r.Sector},
		{"missions", r.Missions},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// DocumentKind is the encoding of a generated document.
type DocumentKind string

const (
	KindDOCX      DocumentKind = "docx"
	KindPlainText DocumentKind = "txt"
)

// GeneratedDocument is a rendered fiche before persistence.
type GeneratedDocument struct {
	Data        []byte
	Kind        DocumentKind
	SourceTitle string
	CreatedAt   time.Time
	RenderPath  render.Source
}

// StoredFileRecord describes a persisted fiche at listing time.
type StoredFileRecord struct {
	Filename string    `json:"filename"`
	Path     string    `json:"filepath"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	Type     string    `json:"type"`
}

// SavedFile is returned by Store.Save.
type SavedFile struct {
	Filename string
	Path     string
	Size     int64
}

// RetrievedFile is a stored fiche read back in full.
type RetrievedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// GenerateResult is the outcome of a successful generation.
type GenerateResult struct {
	Filename    string
	DownloadURL string
	Preview     string
	RenderPath  render.Source
	Size        int64
}
