package triples

import (
	"bytes"
	"fmt"
	"strings"
)

// RawStatement is one grammatical statement whose tokens have not been
// classified yet. IRI tokens keep their angle brackets and literals their
// quotes.
type RawStatement struct {
	Subject   string
	Predicate string
	Object    string
	Line      int
}

// Tokenizer splits an N-Triples byte stream into statements. Chunks may be
// split anywhere, including inside a token or a multi-byte character; the
// unfinished line is kept until its line break arrives.
type Tokenizer struct {
	pending []byte
	line    int
	err     error
}

// NewTokenizer creates an empty tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Feed consumes chunk and returns the statements it completed, in order.
// On a grammar error the statements preceding the bad line are returned
// together with the error, and the tokenizer stays failed.
func (t *Tokenizer) Feed(chunk []byte) ([]RawStatement, error) {
	if t.err != nil {
		return nil, t.err
	}
	t.pending = append(t.pending, chunk...)

	var out []RawStatement
	start := 0
	for {
		nl := bytes.IndexByte(t.pending[start:], '\n')
		if nl < 0 {
			break
		}
		end := start + nl
		t.line++
		stmt, ok, err := parseLine(string(bytes.TrimSuffix(t.pending[start:end], []byte{'\r'})), t.line)
		start = end + 1
		if err != nil {
			t.err = err
			t.pending = nil
			return out, err
		}
		if ok {
			out = append(out, stmt)
		}
	}

	n := copy(t.pending, t.pending[start:])
	t.pending = t.pending[:n]
	return out, nil
}

// Finish reports whether the input ended cleanly. Anything other than
// whitespace left in the pending buffer is an unterminated statement.
func (t *Tokenizer) Finish() error {
	if t.err != nil {
		return t.err
	}
	if rest := strings.TrimSpace(string(t.pending)); rest != "" {
		t.err = &SyntaxError{Line: t.line + 1, Msg: "end of input", Text: rest}
		return t.err
	}
	return nil
}

// parseLine matches one line against the statement grammar. Blank lines and
// comment lines report ok=false without error.
func parseLine(text string, line int) (RawStatement, bool, error) {
	c := &cursor{input: text, line: line}
	c.skipWS()
	if c.eof() || c.peek() == '#' {
		return RawStatement{}, false, nil
	}

	subject, err := c.iri("subject")
	if err != nil {
		return RawStatement{}, false, err
	}
	if err := c.separator(); err != nil {
		return RawStatement{}, false, err
	}
	predicate, err := c.iri("predicate")
	if err != nil {
		return RawStatement{}, false, err
	}
	if err := c.separator(); err != nil {
		return RawStatement{}, false, err
	}
	object, err := c.object()
	if err != nil {
		return RawStatement{}, false, err
	}

	c.skipWS()
	if c.eof() || c.peek() != '.' {
		return RawStatement{}, false, c.errorf("missing terminating '.'")
	}
	c.pos++
	c.skipWS()
	if !c.eof() && c.peek() != '#' {
		return RawStatement{}, false, c.errorf("trailing content %q", c.input[c.pos:])
	}

	return RawStatement{Subject: subject, Predicate: predicate, Object: object, Line: line}, true, nil
}

type cursor struct {
	input string
	pos   int
	line  int
}

func (c *cursor) eof() bool  { return c.pos >= len(c.input) }
func (c *cursor) peek() byte { return c.input[c.pos] }

func (c *cursor) skipWS() {
	for c.pos < len(c.input) && (c.input[c.pos] == ' ' || c.input[c.pos] == '\t') {
		c.pos++
	}
}

func (c *cursor) errorf(format string, args ...any) error {
	return &SyntaxError{Line: c.line, Msg: fmt.Sprintf(format, args...), Text: c.input}
}

// separator requires at least one blank between terms.
func (c *cursor) separator() error {
	if c.eof() || (c.peek() != ' ' && c.peek() != '\t') {
		if c.eof() {
			return c.errorf("end of statement")
		}
		return c.errorf("character %q at column %d", c.peek(), c.pos+1)
	}
	c.skipWS()
	return nil
}

// iri reads an <...> token for a position that only allows IRIs.
func (c *cursor) iri(position string) (string, error) {
	if c.eof() {
		return "", c.errorf("end of statement, expected %s IRI", position)
	}
	switch c.peek() {
	case '<':
	case '"':
		return "", c.errorf("literal in %s position", position)
	default:
		return "", c.errorf("character %q in %s position, expected '<'", c.peek(), position)
	}

	start := c.pos
	for c.pos++; c.pos < len(c.input); c.pos++ {
		switch c.input[c.pos] {
		case '>':
			c.pos++
			return c.input[start:c.pos], nil
		case '<', '"', ' ', '\t':
			return "", c.errorf("character %q inside %s IRI", c.input[c.pos], position)
		}
	}
	return "", c.errorf("unterminated %s IRI, missing '>'", position)
}

// object reads an IRI or a literal with its optional suffix.
func (c *cursor) object() (string, error) {
	if c.eof() {
		return "", c.errorf("end of statement, expected object")
	}
	if c.peek() != '"' {
		return c.iri("object")
	}

	start := c.pos
	end := closingQuote(c.input[start:])
	if end < 0 {
		return "", c.errorf("unterminated literal, missing closing quote")
	}
	c.pos = start + end + 1
	for !c.eof() && c.peek() != ' ' && c.peek() != '\t' && c.peek() != '.' {
		c.pos++
	}
	// A datatype IRI may legitimately contain dots.
	if strings.HasPrefix(c.input[start+end+1:], "^^<") {
		if gt := strings.IndexByte(c.input[start+end+1:], '>'); gt >= 0 {
			c.pos = start + end + 1 + gt + 1
		}
	}

	token := c.input[start:c.pos]
	if _, ok := ParseLiteral(token); !ok {
		return "", c.errorf("malformed literal %s", token)
	}
	return token, nil
}
