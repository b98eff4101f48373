package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
)

const (
	contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

	packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

	documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	wordMLNamespace     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	wordML2003Namespace = "http://schemas.microsoft.com/office/word/2003/wordml"
)

// RenderFallback builds a minimal DOCX: the company, a "FICHE DE POSTE : <title>"
// line, then one paragraph per content line. If the package cannot be
// assembled it returns the flat WordprocessingML 2003 form of the same body.
func RenderFallback(content string, meta Meta) []byte {
	body := fallbackBody(content, meta)
	data, err := buildPackage(body)
	if err != nil || len(data) == 0 {
		return flatDocument(body)
	}
	return data
}

type paragraph struct {
	text string
	bold bool
}

func fallbackParagraphs(content string, meta Meta) []paragraph {
	paragraphs := []paragraph{
		{text: meta.Company, bold: true},
		{text: "FICHE DE POSTE : " + meta.Title, bold: true},
	}
	for _, line := range splitLines(content) {
		paragraphs = append(paragraphs, paragraph{text: line})
	}
	return paragraphs
}

func fallbackBody(content string, meta Meta) string {
	var b strings.Builder
	for _, p := range fallbackParagraphs(content, meta) {
		writeParagraph(&b, p)
	}
	return b.String()
}

func writeParagraph(b *strings.Builder, p paragraph) {
	if p.text == "" {
		b.WriteString("<w:p/>")
		return
	}
	b.WriteString("<w:p><w:r>")
	if p.bold {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	// EscapeText only fails on writer errors; strings.Builder never returns one.
	_ = xml.EscapeText(b, []byte(p.text))
	b.WriteString("</w:t></w:r></w:p>")
}

func buildPackage(body string) ([]byte, error) {
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<w:document xmlns:w="` + wordMLNamespace + `"><w:body>` + body +
		`<w:sectPr/></w:body></w:document>`

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(part.data)); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flatDocument(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<?mso-application progid="Word.Document"?>` + "\n" +
		`<w:wordDocument xmlns:w="` + wordML2003Namespace + `"><w:body>` + body +
		`</w:body></w:wordDocument>`)
}
