// Package resolve maps the letters of a Hebrew name to their Psalm 119
// stanzas.
package resolve

import (
	"strings"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/hebrew"
	"github.com/FocuswithJustin/Tehillim119/core/psalm"
)

// Section pairs one recognized letter occurrence with its stanza. Repeated
// letters in a name produce repeated sections.
type Section struct {
	Letter rune         // Normalized (base-form) letter
	Stanza psalm.Stanza // The stanza at the letter's alphabet position
}

// Result is the ordered outcome of resolving one name.
type Result struct {
	Name     string    // The trimmed input name
	Sections []Section // One section per recognized letter, in name order
}

// Resolve maps each recognized letter of name to its stanza, in order.
// Spaces separate name components and contribute nothing; final-letter
// forms fold to their base form; any character outside the alphabet
// (Latin letters, digits, punctuation, niqqud) is silently skipped.
// A name that yields no sections at all is an error: a document with zero
// content sections must never be produced.
func Resolve(name string, p *psalm.Psalm) (Result, error) {
	trimmed := strings.TrimSpace(name)

	var sections []Section
	for _, ch := range trimmed {
		if ch == ' ' {
			continue
		}

		letter := hebrew.Normalize(ch)
		idx, ok := hebrew.IndexOf(letter)
		if !ok {
			continue
		}

		sections = append(sections, Section{
			Letter: letter,
			Stanza: p.Stanza(idx),
		})
	}

	if len(sections) == 0 {
		return Result{}, errors.NewNoHebrewLetters(trimmed)
	}

	return Result{Name: trimmed, Sections: sections}, nil
}
