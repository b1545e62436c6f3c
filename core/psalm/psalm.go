// Package psalm models the text of Psalm 119: 176 verses grouped into 22
// stanzas of 8, one stanza per Hebrew letter in canonical order.
package psalm

import (
	"html"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/hebrew"
)

const (
	// VerseCount is the fixed number of verses in Psalm 119.
	VerseCount = 176
	// StanzaCount is the number of stanzas, one per Hebrew letter.
	StanzaCount = 22
	// StanzaSize is the number of verses in each stanza.
	StanzaSize = 8
)

// tagRE matches flat HTML tags. The source corpus never nests tags, so a
// non-greedy single-level pattern is sufficient.
var tagRE = regexp.MustCompile(`<[^>]+>`)

// parshaMarkers are the section-break annotations the source corpus embeds
// in verse text. They carry no verse content and are stripped.
var parshaMarkers = []string{"{פ}", "{ס}"}

// CleanVerse strips markup artifacts from one raw verse: HTML entities are
// decoded, HTML tags and parsha markers removed, and surrounding whitespace
// trimmed. It is total and never fails.
func CleanVerse(raw string) string {
	text := html.UnescapeString(raw)
	text = tagRE.ReplaceAllString(text, "")
	for _, marker := range parshaMarkers {
		text = strings.ReplaceAll(text, marker, "")
	}
	return strings.TrimSpace(text)
}

// Stanza is a fixed block of 8 consecutive verses associated with one
// letter of the alphabet.
type Stanza struct {
	Letter rune     // The Hebrew letter this stanza belongs to
	Index  int      // Position 0-21 in the alphabet
	Verses []string // Exactly StanzaSize cleaned verses
}

// Psalm holds the 22 stanzas. It is immutable once built and safe for
// concurrent readers.
type Psalm struct {
	stanzas []Stanza
}

// New builds a Psalm from 176 cleaned verses in canonical order. Stanza i
// covers verses 8i through 8i+7. Any other verse count is rejected.
func New(verses []string) (*Psalm, error) {
	if len(verses) != VerseCount {
		return nil, errors.NewVerseCount(len(verses), VerseCount)
	}

	stanzas := make([]Stanza, 0, StanzaCount)
	for i := 0; i < StanzaCount; i++ {
		block := make([]string, StanzaSize)
		copy(block, verses[i*StanzaSize:(i+1)*StanzaSize])
		stanzas = append(stanzas, Stanza{
			Letter: hebrew.Alphabet[i],
			Index:  i,
			Verses: block,
		})
	}

	return &Psalm{stanzas: stanzas}, nil
}

// NewFromRaw cleans each raw verse and builds a Psalm from the result.
func NewFromRaw(raw []string) (*Psalm, error) {
	cleaned := make([]string, len(raw))
	for i, v := range raw {
		cleaned[i] = CleanVerse(v)
	}
	return New(cleaned)
}

// Stanza returns the stanza at alphabet position i (0-21).
func (p *Psalm) Stanza(i int) Stanza {
	return p.stanzas[i]
}

// Stanzas returns all 22 stanzas in alphabet order. The returned slice is
// shared; callers must not modify it.
func (p *Psalm) Stanzas() []Stanza {
	return p.stanzas
}
