package render

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/psalm"
	"github.com/FocuswithJustin/Tehillim119/core/resolve"
)

type nopRenderer struct{}

func (nopRenderer) Render(doc Document) ([]byte, error) { return []byte("ok"), nil }
func (nopRenderer) Ext() string                         { return "nop" }
func (nopRenderer) MIME() string                        { return "application/x-nop" }

func TestRegistry(t *testing.T) {
	Register("nop", func(opts Options) (Renderer, error) {
		return nopRenderer{}, nil
	})

	r, err := New("nop", Options{})
	if err != nil {
		t.Fatalf("New(nop) failed: %v", err)
	}
	if r.Ext() != "nop" {
		t.Errorf("Ext() = %q", r.Ext())
	}

	found := false
	for _, f := range Formats() {
		if f == "nop" {
			found = true
		}
	}
	if !found {
		t.Errorf("Formats() = %v, missing nop", Formats())
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := New("wordperfect", Options{})
	if err == nil {
		t.Fatalf("New accepted unknown format")
	}
	if !errors.Is(err, errors.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParagraphs(t *testing.T) {
	verses := make([]string, psalm.VerseCount)
	for i := range verses {
		verses[i] = fmt.Sprintf("פסוק %d", i)
	}
	p, err := psalm.New(verses)
	if err != nil {
		t.Fatalf("building psalm: %v", err)
	}

	res, err := resolve.Resolve("דוד", p)
	if err != nil {
		t.Fatalf("resolving: %v", err)
	}

	paras := Paragraphs(Document{Name: res.Name, Sections: res.Sections})

	// Title, blank, then 3 sections of (1 letter + 8 verses + 1 blank).
	wantLen := 2 + 3*(1+psalm.StanzaSize+1)
	if len(paras) != wantLen {
		t.Fatalf("got %d paragraphs, want %d", len(paras), wantLen)
	}

	if paras[0] != "תהילים פרק קיט עבור השם: דוד" {
		t.Errorf("title = %q", paras[0])
	}
	if paras[1] != "" {
		t.Errorf("paragraph 1 should be blank, got %q", paras[1])
	}
	if paras[2] != "ד" {
		t.Errorf("first heading = %q, want ד", paras[2])
	}
	// First verse of stanza ד (index 3) is verse 24.
	if paras[3] != "פסוק 24" {
		t.Errorf("first verse = %q, want פסוק 24", paras[3])
	}

	// Second section heads with ו and starts at verse 40.
	second := 2 + (1 + psalm.StanzaSize + 1)
	if paras[second] != "ו" {
		t.Errorf("second heading = %q, want ו", paras[second])
	}
	if paras[second+1] != "פסוק 40" {
		t.Errorf("second section first verse = %q, want פסוק 40", paras[second+1])
	}

	// Repeated letter: third section repeats stanza ד.
	third := second + (1 + psalm.StanzaSize + 1)
	if paras[third] != "ד" {
		t.Errorf("third heading = %q, want ד", paras[third])
	}
	if !reflect.DeepEqual(paras[third+1:third+9], paras[3:11]) {
		t.Errorf("repeated letter should repeat stanza content")
	}
}
