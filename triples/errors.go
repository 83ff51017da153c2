package triples

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is matched by every statement grammar error.
	ErrSyntax = errors.New("malformed statement")

	// ErrUnexpectedURL is matched by IRIs that claim the vocabulary host but
	// name nothing, or cannot be parsed at all.
	ErrUnexpectedURL = errors.New("unexpected URL")
)

// maxErrorText bounds how much of the offending input an error quotes.
const maxErrorText = 120

// SyntaxError reports a statement that does not match the grammar.
type SyntaxError struct {
	Line int
	Msg  string
	Text string
}

func (e *SyntaxError) Error() string {
	text := e.Text
	if len(text) > maxErrorText {
		text = text[:maxErrorText] + "..."
	}
	if e.Line > 0 {
		return fmt.Sprintf("Unexpected %s at line %d: %q", e.Msg, e.Line, text)
	}
	if text == "" {
		return "Unexpected " + e.Msg
	}
	return fmt.Sprintf("Unexpected %s: %q", e.Msg, text)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// URLError reports an IRI that cannot be accepted or silently dropped.
type URLError struct {
	IRI    string
	Reason string
	Line   int
}

func (e *URLError) Error() string {
	msg := "Unexpected URL " + e.IRI
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	return msg
}

func (e *URLError) Unwrap() error { return ErrUnexpectedURL }
