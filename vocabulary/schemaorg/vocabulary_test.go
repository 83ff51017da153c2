package schemaorg

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("canonicalizes host", func(t *testing.T) {
		v, err := New("Schema.ORG.")
		require.NoError(t, err)
		assert.Equal(t, "schema.org", v.Host())
		assert.Equal(t, "https://schema.org/", v.Namespace())
	})

	t.Run("empty host rejected", func(t *testing.T) {
		_, err := New("")
		require.Error(t, err)
	})
}

func TestPredicate(t *testing.T) {
	v := Default()

	tests := []struct {
		iri  string
		want PredicateKind
	}{
		{RDFType, PredicateType},
		{RDFSComment, PredicateComment},
		{RDFSLabel, PredicateLabel},
		{RDFSSubClassOf, PredicateSubClassOf},
		{"https://schema.org/domainIncludes", PredicateDomainIncludes},
		{"http://schema.org/domainIncludes", PredicateDomainIncludes},
		{"https://schema.org/rangeIncludes", PredicateRangeIncludes},
		{"https://schema.org/supersededBy", PredicateSupersededBy},
		{"https://schema.org/isPartOf", PredicateOther},
		{"https://example.org/domainIncludes", PredicateOther},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			assert.Equal(t, tt.want, v.Predicate(tt.iri))
		})
	}
}

func TestPredicateKindRequiresIRI(t *testing.T) {
	assert.True(t, PredicateRangeIncludes.RequiresIRI())
	assert.True(t, PredicateType.RequiresIRI())
	assert.False(t, PredicateComment.RequiresIRI())
	assert.False(t, PredicateOther.RequiresIRI())
	assert.Equal(t, "domainIncludes", PredicateDomainIncludes.String())
	assert.Equal(t, "PredicateKind(42)", PredicateKind(42).String())
}

func TestTypeOf(t *testing.T) {
	v := Default()

	assert.Equal(t, TypeClass, v.TypeOf(RDFSClass))
	assert.Equal(t, TypeDataType, v.TypeOf("https://schema.org/DataType"))
	assert.Equal(t, TypeProperty, v.TypeOf(RDFProperty))
	assert.Equal(t, TypeOther, v.TypeOf("https://schema.org/DayOfWeek"))

	assert.True(t, v.IsClassType(RDFSClass))
	assert.True(t, v.IsDataType("http://schema.org/DataType"))
	assert.False(t, v.IsDataType("https://schema.org/Text"))
}

func TestCapabilities(t *testing.T) {
	v := Default()

	assert.True(t, v.IsTypeAssertion(RDFType))
	assert.True(t, v.IsDomainIncludes("https://schema.org/domainIncludes"))
	assert.True(t, v.IsRangeIncludes("https://schema.org/rangeIncludes"))
	assert.True(t, v.IsSupersededBy("https://schema.org/supersededBy"))
	assert.False(t, v.IsSupersededBy(RDFSComment))
}

func TestNamespaceMembership(t *testing.T) {
	v := Default()

	assert.True(t, v.InNamespace("https://schema.org/Person"))
	assert.True(t, v.InNamespace("http://schema.org/Person"))
	assert.False(t, v.InNamespace("https://schema.org/"))
	assert.False(t, v.InNamespace("https://example.org/Person"))

	assert.True(t, v.IsWellKnown(RDFType))
	assert.True(t, v.IsWellKnown(RDFSSubClassOf))
	assert.False(t, v.IsWellKnown("http://www.w3.org/2002/07/owl#equivalentClass"))
}

func TestComment(t *testing.T) {
	v := Default()

	text, ok := v.Comment(RDFSComment, quad.String("A person."))
	require.True(t, ok)
	assert.Equal(t, "A person.", text)

	text, ok = v.Comment(RDFSComment, quad.LangString{Value: "Eine Person.", Lang: "de"})
	require.True(t, ok)
	assert.Equal(t, "Eine Person.", text)

	_, ok = v.Comment(RDFSComment, quad.IRI("https://schema.org/Person"))
	assert.False(t, ok)

	_, ok = v.Comment(RDFSLabel, quad.String("Person"))
	assert.False(t, ok)
}

func TestPrefixRegistered(t *testing.T) {
	assert.Equal(t, quad.IRI("schema:Person"), quad.IRI(Namespace+"Person").Short())
}

func TestOnHost(t *testing.T) {
	v := Default()

	tests := []struct {
		iri  string
		want bool
	}{
		{"https://schema.org/a%zz", true},
		{"HTTP://Schema.ORG/Person", true},
		{"https://schema.org", true},
		{"https://schema.org./Person", true},
		{"https://schema.org:443/Person", true},
		{"https://schema.org?q=%zz", true},
		{"https://schema.organization/Person", false},
		{"https://schema.org.evil.example/Person", false},
		{"http://example.com/a%zz", false},
		{"http://[::1/x", false},
		{"file:///schema.org/Person", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.iri, func(t *testing.T) {
			assert.Equal(t, tt.want, v.OnHost(tt.iri))
		})
	}
}
