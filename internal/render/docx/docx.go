// Package docx renders documents as Office Open XML wordprocessing files.
// A DOCX is a ZIP archive of XML parts; the archive is assembled in memory
// with only the parts Word requires.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Tehillim119/core/encoding"
	"github.com/FocuswithJustin/Tehillim119/internal/render"
)

// MIME is the DOCX content type.
const MIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

func init() {
	render.Register("docx", func(opts render.Options) (render.Renderer, error) {
		return &Renderer{}, nil
	})
}

// Renderer writes DOCX documents. It is stateless and safe for concurrent
// use.
type Renderer struct{}

// Ext implements render.Renderer.
func (r *Renderer) Ext() string { return "docx" }

// MIME implements render.Renderer.
func (r *Renderer) MIME() string { return MIME }

// Render implements render.Renderer.
func (r *Renderer) Render(doc render.Document) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", documentXML(doc)},
	}

	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", part.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}

	return buf.Bytes(), nil
}

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// documentXML builds word/document.xml. Every paragraph is marked bidi and
// right-aligned; runs carry the rtl property so Word shapes Hebrew
// correctly.
func documentXML(doc render.Document) string {
	var body strings.Builder

	for _, text := range render.Paragraphs(doc) {
		body.WriteString(paragraphXML(text))
	}

	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
` + body.String() + `    <w:sectPr>
      <w:pgSz w:w="11906" w:h="16838"/>
      <w:bidi/>
    </w:sectPr>
  </w:body>
</w:document>`
}

func paragraphXML(text string) string {
	if text == "" {
		return "    <w:p><w:pPr><w:bidi/><w:jc w:val=\"right\"/></w:pPr></w:p>\n"
	}
	return fmt.Sprintf("    <w:p><w:pPr><w:bidi/><w:jc w:val=\"right\"/></w:pPr>"+
		"<w:r><w:rPr><w:rtl/></w:rPr><w:t xml:space=\"preserve\">%s</w:t></w:r></w:p>\n",
		encoding.EscapeXML(text))
}
