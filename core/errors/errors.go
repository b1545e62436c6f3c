// Package errors provides standardized error types and helpers for the
// Tehillim119 codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNoHebrewLetters indicates a name contains no recognized Hebrew letters
	ErrNoHebrewLetters = errors.New("no hebrew letters")
	// ErrBadVerseCount indicates the verse corpus does not contain exactly 176 verses
	ErrBadVerseCount = errors.New("bad verse count")
	// ErrFetch indicates the remote text source could not be fetched
	ErrFetch = errors.New("fetch failed")
	// ErrSpreadsheet indicates a spreadsheet could not be read or is malformed
	ErrSpreadsheet = errors.New("bad spreadsheet")
	// ErrUnsupportedFormat indicates an unknown output format was requested
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrFontNotFound indicates no usable Unicode font was located
	ErrFontNotFound = errors.New("font not found")
)

// NoHebrewLettersError reports a name whose characters all fell outside the
// Hebrew alphabet. It is recoverable per name: batch processing skips the
// name, single-name processing surfaces the message.
type NoHebrewLettersError struct {
	Name string // The offending name, trimmed
}

func (e *NoHebrewLettersError) Error() string {
	return fmt.Sprintf("no valid Hebrew letters found in name %q", e.Name)
}

func (e *NoHebrewLettersError) Unwrap() error {
	return ErrNoHebrewLetters
}

// FetchError reports a failure to obtain the verse corpus from the remote
// source. It is fatal: no resolution can proceed without the corpus.
type FetchError struct {
	URL     string // Resource that was requested
	Message string // Human-readable error detail
	Err     error  // Underlying error, if any
}

func (e *FetchError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("failed to fetch %s: %s", e.URL, e.Message)
	}
	return fmt.Sprintf("fetch failed: %s", e.Message)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFetch, e.Err}
	}
	return []error{ErrFetch}
}

// VerseCountError reports a corpus with the wrong number of verses.
type VerseCountError struct {
	Got  int // Number of verses received
	Want int // Number of verses required
}

func (e *VerseCountError) Error() string {
	return fmt.Sprintf("expected %d verses, got %d", e.Want, e.Got)
}

func (e *VerseCountError) Unwrap() error {
	return ErrBadVerseCount
}

// SpreadsheetError reports an unreadable spreadsheet or one missing the
// required Name column. It is fatal to the batch as a whole and is raised
// before any per-name processing begins.
type SpreadsheetError struct {
	Path    string // File path or upload name, if known
	Message string // Human-readable error detail
	Err     error  // Underlying error, if any
}

func (e *SpreadsheetError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("spreadsheet %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("spreadsheet: %s", e.Message)
}

func (e *SpreadsheetError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSpreadsheet, e.Err}
	}
	return []error{ErrSpreadsheet}
}

// UnsupportedFormatError reports a render format with no registered renderer.
type UnsupportedFormatError struct {
	Format string // The requested format name
	Known  string // Comma-separated list of known formats
}

func (e *UnsupportedFormatError) Error() string {
	if e.Known != "" {
		return fmt.Sprintf("unsupported format %q (known: %s)", e.Format, e.Known)
	}
	return fmt.Sprintf("unsupported format %q", e.Format)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// Helper functions for creating common errors

// NewNoHebrewLetters creates a NoHebrewLettersError
func NewNoHebrewLetters(name string) *NoHebrewLettersError {
	return &NoHebrewLettersError{Name: name}
}

// NewFetch creates a FetchError
func NewFetch(url, message string, err error) *FetchError {
	return &FetchError{URL: url, Message: message, Err: err}
}

// NewVerseCount creates a VerseCountError
func NewVerseCount(got, want int) *VerseCountError {
	return &VerseCountError{Got: got, Want: want}
}

// NewSpreadsheet creates a SpreadsheetError
func NewSpreadsheet(path, message string, err error) *SpreadsheetError {
	return &SpreadsheetError{Path: path, Message: message, Err: err}
}

// NewUnsupportedFormat creates an UnsupportedFormatError
func NewUnsupportedFormat(format, known string) *UnsupportedFormatError {
	return &UnsupportedFormatError{Format: format, Known: known}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
