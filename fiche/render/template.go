package render

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

const contentPlaceholder = "{content}"

var errNoContentPlaceholder = errors.New("template has no {content} placeholder")

// RenderTemplate fills {titre}, {entreprise}, {secteur}, {date} and {content}
// in the DOCX template at path. The four text fields are also bound in page
// headers and footers. Failures other than ErrTemplateMissing are
// *EncodingError.
func RenderTemplate(path, content string, meta Meta) ([]byte, error) {
	path = filepath.Clean(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTemplateMissing
		}
		return nil, &EncodingError{Op: "stat", Err: err}
	}

	reader, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, &EncodingError{Op: "open", Err: err}
	}
	defer reader.Close()

	doc := reader.Editable()
	if !strings.Contains(doc.GetContent(), contentPlaceholder) {
		return nil, &EncodingError{Op: "bind", Err: errNoContentPlaceholder}
	}

	fields := []struct {
		placeholder string
		value       string
	}{
		{"{titre}", meta.Title},
		{"{entreprise}", meta.Company},
		{"{secteur}", meta.Sector},
		{"{date}", FormatDate(meta.Date)},
	}
	for _, f := range fields {
		if err := doc.Replace(f.placeholder, f.value, -1); err != nil {
			return nil, &EncodingError{Op: "bind " + f.placeholder, Err: err}
		}
		if err := doc.ReplaceHeader(f.placeholder, f.value); err != nil {
			return nil, &EncodingError{Op: "bind header " + f.placeholder, Err: err}
		}
		if err := doc.ReplaceFooter(f.placeholder, f.value); err != nil {
			return nil, &EncodingError{Op: "bind footer " + f.placeholder, Err: err}
		}
	}

	body, err := contentRuns(content)
	if err != nil {
		return nil, &EncodingError{Op: "bind {content}", Err: err}
	}
	doc.ReplaceRaw(contentPlaceholder, body, -1)

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, &EncodingError{Op: "write", Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodingError{Op: "write", Err: errors.New("empty output")}
	}
	return buf.Bytes(), nil
}

// contentRuns escapes content and turns each newline into a line break inside
// the placeholder's run.
func contentRuns(content string) (string, error) {
	lines := splitLines(content)
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString(`</w:t><w:br/><w:t xml:space="preserve">`)
		}
		if err := xml.EscapeText(&b, []byte(line)); err != nil {
			return "", fmt.Errorf("escape line %d: %w", i+1, err)
		}
	}
	return b.String(), nil
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.Split(content, "\n")
}
