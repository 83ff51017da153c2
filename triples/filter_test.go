package triples

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

func TestFilterClassify(t *testing.T) {
	f := NewFilter(schemaorg.Default())

	tests := []struct {
		iri     string
		want    Verdict
		wantErr bool
	}{
		{"https://schema.org/Person", Accept, false},
		{"http://schema.org/Person", Accept, false},
		{"https://SCHEMA.org/Person", Accept, false},
		{schemaorg.RDFType, Accept, false},
		{schemaorg.RDFSComment, Accept, false},
		{"https://example.org/Person", Drop, false},
		{"https://www.schema.org/Person", Drop, false},
		{"file:///usr/Person", Drop, false},
		{"urn:schema.org:Person", Drop, false},
		{"http://www.w3.org/2002/07/owl#equivalentClass", Drop, false},
		{"https://schema.org/", Drop, true},
		{"https://schema.org", Drop, true},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			got, err := f.Classify(MustParseIRI(tt.iri))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnexpectedURL)
				assert.Contains(t, err.Error(), "Unexpected URL")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterApply(t *testing.T) {
	f := NewFilter(schemaorg.Default())

	t.Run("accepts in-vocabulary statement", func(t *testing.T) {
		tr, ok, err := f.Apply(RawStatement{
			Subject:   "<https://schema.org/Person>",
			Predicate: "<https://schema.org/knowsAbout>",
			Object:    `"math"`,
		})
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "Person", tr.Subject.Name())
		assert.Equal(t, "knowsAbout", tr.Predicate.Name())
		assert.Equal(t, NewLiteral("math"), tr.Object)
	})

	for _, pos := range []string{"subject", "predicate", "object"} {
		t.Run("drops foreign "+pos, func(t *testing.T) {
			raw := RawStatement{
				Subject:   "<https://schema.org/Person>",
				Predicate: "<https://schema.org/knows>",
				Object:    "<https://schema.org/Person>",
			}
			setPosition(&raw, pos, "<file:///usr/Person>")
			_, ok, err := f.Apply(raw)
			require.NoError(t, err)
			assert.False(t, ok)
		})

		t.Run("rejects domain root "+pos, func(t *testing.T) {
			raw := RawStatement{
				Subject:   "<https://schema.org/Person>",
				Predicate: "<https://schema.org/knows>",
				Object:    "<https://schema.org/Person>",
				Line:      7,
			}
			setPosition(&raw, pos, "<https://schema.org/>")
			_, ok, err := f.Apply(raw)
			require.ErrorIs(t, err, ErrUnexpectedURL)
			assert.False(t, ok)
			assert.Contains(t, err.Error(), "Unexpected URL")
			assert.Contains(t, err.Error(), "line 7")
		})
	}

	for _, malformed := range []string{"<http://example.com/a%zz>", "<http://[::1/x>"} {
		for _, pos := range []string{"subject", "predicate", "object"} {
			t.Run("drops unparseable foreign "+pos+" "+malformed, func(t *testing.T) {
				raw := RawStatement{
					Subject:   "<https://schema.org/Person>",
					Predicate: "<https://schema.org/knows>",
					Object:    "<https://schema.org/Person>",
				}
				setPosition(&raw, pos, malformed)
				_, ok, err := f.Apply(raw)
				require.NoError(t, err)
				assert.False(t, ok)
			})
		}
	}

	for _, pos := range []string{"subject", "predicate", "object"} {
		t.Run("rejects unparseable vocabulary "+pos, func(t *testing.T) {
			raw := RawStatement{
				Subject:   "<https://schema.org/Person>",
				Predicate: "<https://schema.org/knows>",
				Object:    "<https://schema.org/Person>",
				Line:      3,
			}
			setPosition(&raw, pos, "<HTTPS://Schema.org/a%zz>")
			_, ok, err := f.Apply(raw)
			require.ErrorIs(t, err, ErrUnexpectedURL)
			assert.False(t, ok)
			assert.Contains(t, err.Error(), "line 3")
		})
	}

	t.Run("unparseable vocabulary wins over earlier drop", func(t *testing.T) {
		_, _, err := f.Apply(RawStatement{
			Subject:   "<http://example.com/a%zz>",
			Predicate: "<https://schema.org/knows>",
			Object:    "<https://schema.org/a%zz>",
		})
		require.ErrorIs(t, err, ErrUnexpectedURL)
	})

	t.Run("fatal wins over drop", func(t *testing.T) {
		_, _, err := f.Apply(RawStatement{
			Subject:   "<file:///usr/Person>",
			Predicate: "<https://schema.org/knows>",
			Object:    "<https://schema.org/>",
		})
		require.ErrorIs(t, err, ErrUnexpectedURL)
	})

	t.Run("literal object is never classified", func(t *testing.T) {
		_, ok, err := f.Apply(RawStatement{
			Subject:   "<https://schema.org/Person>",
			Predicate: "<" + schemaorg.RDFSComment + ">",
			Object:    `"https://schema.org/"`,
		})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestFilterCustomHost(t *testing.T) {
	vocab, err := schemaorg.New("vocab.example.com")
	require.NoError(t, err)
	f := NewFilter(vocab)

	verdict, err := f.Classify(MustParseIRI("https://vocab.example.com/Widget"))
	require.NoError(t, err)
	assert.Equal(t, Accept, verdict)

	verdict, err = f.Classify(MustParseIRI("https://schema.org/Person"))
	require.NoError(t, err)
	assert.Equal(t, Drop, verdict)
}

func setPosition(raw *RawStatement, pos, value string) {
	switch pos {
	case "subject":
		raw.Subject = value
	case "predicate":
		raw.Predicate = value
	case "object":
		raw.Object = value
	}
}
