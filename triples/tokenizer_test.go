package triples

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerFeed(t *testing.T) {
	tok := NewTokenizer()
	stmts, err := tok.Feed([]byte("<https://schema.org/Person> <https://schema.org/knowsAbout> \"math\" .\n"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, RawStatement{
		Subject:   "<https://schema.org/Person>",
		Predicate: "<https://schema.org/knowsAbout>",
		Object:    `"math"`,
		Line:      1,
	}, stmts[0])
	require.NoError(t, tok.Finish())
}

func TestTokenizerKeepsPartialLine(t *testing.T) {
	tok := NewTokenizer()

	stmts, err := tok.Feed([]byte("<https://schema.org/Person> <https://sch"))
	require.NoError(t, err)
	assert.Empty(t, stmts)

	stmts, err = tok.Feed([]byte("ema.org/knowsAbout> \"math\" ."))
	require.NoError(t, err)
	assert.Empty(t, stmts, "no statement before the line break")

	stmts, err = tok.Feed([]byte("\n"))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, "<https://schema.org/knowsAbout>", stmts[0].Predicate)
	require.NoError(t, tok.Finish())
}

func TestTokenizerSkipsBlankAndCommentLines(t *testing.T) {
	input := "\n# generated\n   \n<https://schema.org/A> <https://schema.org/b> <https://schema.org/C> . # trailing\r\n"
	tok := NewTokenizer()
	stmts, err := tok.Feed([]byte(input))
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Equal(t, 4, stmts[0].Line)
	assert.Equal(t, "<https://schema.org/C>", stmts[0].Object)
}

func TestTokenizerGrammarErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		message string
	}{
		{
			name:    "missing opening bracket",
			line:    `https://schema.org/A> <https://schema.org/b> <https://schema.org/C> .`,
			message: "expected '<'",
		},
		{
			name:    "missing closing bracket",
			line:    `<https://schema.org/A <https://schema.org/b> <https://schema.org/C> .`,
			message: "inside subject IRI",
		},
		{
			name:    "unterminated object IRI",
			line:    `<https://schema.org/A> <https://schema.org/b> <https://schema.org/C .`,
			message: "object IRI",
		},
		{
			name:    "missing closing quote",
			line:    `<https://schema.org/A> <https://schema.org/b> "unterminated .`,
			message: "unterminated literal",
		},
		{
			name:    "missing terminator",
			line:    `<https://schema.org/A> <https://schema.org/b> <https://schema.org/C>`,
			message: "missing terminating '.'",
		},
		{
			name:    "literal subject",
			line:    `"A" <https://schema.org/b> <https://schema.org/C> .`,
			message: "literal in subject position",
		},
		{
			name:    "literal predicate",
			line:    `<https://schema.org/A> "b" <https://schema.org/C> .`,
			message: "literal in predicate position",
		},
		{
			name:    "missing object",
			line:    `<https://schema.org/A> <https://schema.org/b> .`,
			message: "expected '<'",
		},
		{
			name:    "trailing garbage",
			line:    `<https://schema.org/A> <https://schema.org/b> <https://schema.org/C> . extra`,
			message: "trailing content",
		},
		{
			name:    "terms not separated",
			line:    `<https://schema.org/A><https://schema.org/b> <https://schema.org/C> .`,
			message: "column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTokenizer().Feed([]byte(tt.line + "\n"))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrSyntax)
			assert.True(t, strings.HasPrefix(err.Error(), "Unexpected"), err.Error())
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestTokenizerReturnsStatementsBeforeError(t *testing.T) {
	input := "<https://schema.org/A> <https://schema.org/b> <https://schema.org/C> .\n" +
		"<https://schema.org/A> <https://schema.org/b>\n"

	tok := NewTokenizer()
	stmts, err := tok.Feed([]byte(input))
	require.Error(t, err)
	assert.Len(t, stmts, 1)

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, 2, syntaxErr.Line)

	_, again := tok.Feed([]byte("<https://schema.org/A> <https://schema.org/b> <https://schema.org/C> .\n"))
	assert.Equal(t, err, again, "tokenizer stays failed")
	assert.Equal(t, err, tok.Finish())
}

func TestTokenizerFinish(t *testing.T) {
	t.Run("unterminated trailing statement", func(t *testing.T) {
		tok := NewTokenizer()
		_, err := tok.Feed([]byte(`<https://schema.org/A> <https://schema.org/b> <https://schema.org/C> .`))
		require.NoError(t, err)

		err = tok.Finish()
		require.ErrorIs(t, err, ErrSyntax)
		assert.Contains(t, err.Error(), "Unexpected end of input")
	})

	t.Run("trailing whitespace is fine", func(t *testing.T) {
		tok := NewTokenizer()
		_, err := tok.Feed([]byte("<https://schema.org/A> <https://schema.org/b> <https://schema.org/C> .\n  \t"))
		require.NoError(t, err)
		assert.NoError(t, tok.Finish())
	})

	t.Run("empty input", func(t *testing.T) {
		assert.NoError(t, NewTokenizer().Finish())
	})
}

func TestTokenizerLiteralSuffixes(t *testing.T) {
	input := `<https://schema.org/A> <https://schema.org/b> "x.y"@en-US .` + "\n" +
		`<https://schema.org/A> <https://schema.org/b> "1.5"^^<http://www.w3.org/2001/XMLSchema#decimal> .` + "\n" +
		`<https://schema.org/A> <https://schema.org/b> "dots. and \"quotes\"".` + "\n"

	stmts, err := NewTokenizer().Feed([]byte(input))
	require.NoError(t, err)
	require.Len(t, stmts, 3)
	assert.Equal(t, `"x.y"@en-US`, stmts[0].Object)
	assert.Equal(t, `"1.5"^^<http://www.w3.org/2001/XMLSchema#decimal>`, stmts[1].Object)
	assert.Equal(t, `"dots. and \"quotes\""`, stmts[2].Object)
}
