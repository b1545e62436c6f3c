// Package pdf renders documents as PDF files using go-pdf/fpdf.
//
// fpdf lays text out left-to-right, so Hebrew is converted to visual order
// before writing: grapheme clusters are reversed while combining marks
// (niqqud, cantillation) stay attached to their base letter.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"unicode"

	"github.com/go-pdf/fpdf"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/internal/render"
)

// MIME is the PDF content type.
const MIME = "application/pdf"

const (
	fontFamily = "unicode"
	titleSize  = 16.0
	bodySize   = 13.0
	lineHeight = 7.5
)

// defaultFontPaths are scanned when no font path is configured.
var defaultFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/local/share/fonts/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
}

func init() {
	render.Register("pdf", func(opts render.Options) (render.Renderer, error) {
		return New(opts.FontPath)
	})
}

// Renderer writes PDF documents with an embedded Unicode TTF font.
type Renderer struct {
	fontPath string
}

// New creates a PDF renderer. fontPath may be empty, in which case
// well-known DejaVu install locations are scanned. The font must exist at
// construction time so a misconfiguration surfaces before any batch work.
func New(fontPath string) (*Renderer, error) {
	if fontPath != "" {
		if _, err := os.Stat(fontPath); err != nil {
			return nil, errors.Wrapf(errors.ErrFontNotFound, "font %s not readable", fontPath)
		}
		return &Renderer{fontPath: fontPath}, nil
	}

	for _, candidate := range defaultFontPaths {
		if _, err := os.Stat(candidate); err == nil {
			return &Renderer{fontPath: candidate}, nil
		}
	}
	return nil, errors.Wrap(errors.ErrFontNotFound,
		"no Unicode TTF font found; set a font path explicitly")
}

// FontPath returns the font the renderer will embed.
func (r *Renderer) FontPath() string { return r.fontPath }

// Ext implements render.Renderer.
func (r *Renderer) Ext() string { return "pdf" }

// MIME implements render.Renderer.
func (r *Renderer) MIME() string { return MIME }

// Render implements render.Renderer.
func (r *Renderer) Render(doc render.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddUTF8Font(fontFamily, "", r.fontPath)
	pdf.AddPage()

	for i, text := range render.Paragraphs(doc) {
		size := bodySize
		if i == 0 {
			size = titleSize
		}
		pdf.SetFont(fontFamily, "", size)

		if text == "" {
			pdf.Ln(lineHeight)
			continue
		}
		pdf.CellFormat(0, lineHeight, visualOrder(text), "", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// visualOrder converts logical-order RTL text to visual order for fpdf's
// left-to-right text placement. Combining marks stay after their base rune
// within a cluster; the cluster sequence is reversed.
func visualOrder(s string) string {
	var clusters [][]rune
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) && len(clusters) > 0 {
			last := len(clusters) - 1
			clusters[last] = append(clusters[last], r)
			continue
		}
		clusters = append(clusters, []rune{r})
	}

	out := make([]rune, 0, len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		out = append(out, clusters[i]...)
	}
	return string(out)
}
