// Package render defines the document renderer contract and the registry
// the concrete format packages register into.
package render

import (
	"sort"
	"strings"
	"sync"

	"github.com/FocuswithJustin/Tehillim119/core/errors"
	"github.com/FocuswithJustin/Tehillim119/core/resolve"
)

// Document is the renderer input: a resolved name and its stanza sections.
type Document struct {
	Name     string
	Sections []resolve.Section
}

// Options configures renderer construction.
type Options struct {
	// FontPath points to a Unicode TTF font for renderers that embed
	// fonts (PDF). Empty means scan well-known locations.
	FontPath string
}

// Renderer produces one output document format.
type Renderer interface {
	// Render renders the document to a byte buffer.
	Render(doc Document) ([]byte, error)
	// Ext returns the output file extension without the dot.
	Ext() string
	// MIME returns the output content type.
	MIME() string
}

// Factory constructs a renderer from options.
type Factory func(opts Options) (Renderer, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register adds a renderer factory under a format name. Format packages
// call this from init.
func Register(format string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[format] = factory
}

// Formats returns the registered format names in sorted order.
func Formats() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New constructs the renderer registered under format.
func New(format string, opts Options) (Renderer, error) {
	registryMu.RLock()
	factory, ok := registry[format]
	registryMu.RUnlock()

	if !ok {
		return nil, errors.NewUnsupportedFormat(format, strings.Join(Formats(), ", "))
	}
	return factory(opts)
}

// Title returns the document title line for a name.
func Title(name string) string {
	return "תהילים פרק קיט עבור השם: " + name
}

// Paragraphs flattens a document into its ordered paragraph sequence:
// title, blank line, then for each section the single-letter heading, its
// verses, and a blank separator. An empty string is a blank paragraph.
// Both renderers consume this one sequence so their layout cannot drift.
func Paragraphs(doc Document) []string {
	paras := []string{Title(doc.Name), ""}
	for _, section := range doc.Sections {
		paras = append(paras, string(section.Letter))
		paras = append(paras, section.Stanza.Verses...)
		paras = append(paras, "")
	}
	return paras
}
