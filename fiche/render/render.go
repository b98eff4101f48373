package render

import (
	"errors"
	"time"
)

// Source tells which path produced a document.
type Source string

const (
	SourceTemplate Source = "template"
	SourceFallback Source = "fallback"
)

// Extension is the file extension of every rendered document.
const Extension = "docx"

// Meta carries the request fields bound into the document.
type Meta struct {
	Title   string
	Company string
	Sector  string
	Date    time.Time
}

// Result is the tagged outcome of Render. TemplateErr is set when a template
// existed but could not be used and the fallback took over.
type Result struct {
	Data        []byte
	Source      Source
	TemplateErr error
}

// Renderer renders fiches, preferring the template at TemplatePath.
type Renderer struct {
	TemplatePath string
}

// New returns a Renderer using the template at templatePath.
func New(templatePath string) *Renderer {
	return &Renderer{TemplatePath: templatePath}
}

// Render tries the template first and falls back to the minimal encoder when
// the template is absent or fails. It never returns an empty document.
func (r *Renderer) Render(content string, meta Meta) Result {
	if r != nil && r.TemplatePath != "" {
		data, err := RenderTemplate(r.TemplatePath, content, meta)
		if err == nil {
			return Result{Data: data, Source: SourceTemplate}
		}
		if !errors.Is(err, ErrTemplateMissing) {
			return Result{Data: RenderFallback(content, meta), Source: SourceFallback, TemplateErr: err}
		}
	}
	return Result{Data: RenderFallback(content, meta), Source: SourceFallback}
}

// FormatDate formats t the way fr-FR short dates read: dd/mm/yyyy.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
