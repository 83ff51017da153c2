package schemaorg

import (
	"fmt"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/schemagraph/source/weburl"
)

// PredicateKind classifies a predicate IRI once so the resolver can switch on
// it instead of comparing IRIs.
type PredicateKind int

const (
	// PredicateOther is any predicate the resolver does not interpret.
	PredicateOther PredicateKind = iota

	// PredicateType is the reserved type-assertion predicate (rdf:type).
	PredicateType

	// PredicateComment is rdfs:comment.
	PredicateComment

	// PredicateLabel is rdfs:label. Accepted and ignored.
	PredicateLabel

	// PredicateSubClassOf is rdfs:subClassOf.
	PredicateSubClassOf

	// PredicateDomainIncludes is schema:domainIncludes.
	PredicateDomainIncludes

	// PredicateRangeIncludes is schema:rangeIncludes.
	PredicateRangeIncludes

	// PredicateSupersededBy is schema:supersededBy.
	PredicateSupersededBy
)

var predicateKindNames = [...]string{
	PredicateOther:          "other",
	PredicateType:           "type",
	PredicateComment:        "comment",
	PredicateLabel:          "label",
	PredicateSubClassOf:     "subClassOf",
	PredicateDomainIncludes: "domainIncludes",
	PredicateRangeIncludes:  "rangeIncludes",
	PredicateSupersededBy:   "supersededBy",
}

func (k PredicateKind) String() string {
	if k < 0 || int(k) >= len(predicateKindNames) {
		return fmt.Sprintf("PredicateKind(%d)", int(k))
	}
	return predicateKindNames[k]
}

// RequiresIRI reports whether the predicate only accepts IRI objects.
func (k PredicateKind) RequiresIRI() bool {
	switch k {
	case PredicateType, PredicateSubClassOf, PredicateDomainIncludes,
		PredicateRangeIncludes, PredicateSupersededBy:
		return true
	}
	return false
}

// TypeKind classifies a declared type (the object of a type assertion).
type TypeKind int

const (
	// TypeOther is an ordinary class; subjects declared with it are enum values.
	TypeOther TypeKind = iota

	// TypeClass is the class of classes (rdfs:Class).
	TypeClass

	// TypeDataType is the class of data types (schema:DataType).
	TypeDataType

	// TypeProperty is the class of properties (rdf:Property).
	TypeProperty
)

func (k TypeKind) String() string {
	switch k {
	case TypeClass:
		return "class"
	case TypeDataType:
		return "datatype"
	case TypeProperty:
		return "property"
	default:
		return "other"
	}
}

// Vocabulary answers well-known lookups for one vocabulary host.
type Vocabulary struct {
	host     string
	prefixes [2]string
}

// New creates a Vocabulary for host. The host is canonicalized, so
// "Schema.ORG" and "schema.org" are the same vocabulary.
func New(host string) (*Vocabulary, error) {
	canonical, err := weburl.CanonicalHost(host)
	if err != nil {
		return nil, err
	}
	if canonical == "" {
		return nil, fmt.Errorf("vocabulary host is required")
	}
	return &Vocabulary{
		host:     canonical,
		prefixes: [2]string{"https://" + canonical + "/", "http://" + canonical + "/"},
	}, nil
}

// Default returns the schema.org vocabulary.
func Default() *Vocabulary {
	v, err := New(Host)
	if err != nil {
		panic("invalid default vocabulary host: " + err.Error())
	}
	return v
}

// Host returns the canonical vocabulary host.
func (v *Vocabulary) Host() string {
	return v.host
}

// Namespace returns the https base IRI of the vocabulary.
func (v *Vocabulary) Namespace() string {
	return v.prefixes[0]
}

// local returns the name of iri within the vocabulary namespace.
func (v *Vocabulary) local(iri string) (string, bool) {
	for _, prefix := range v.prefixes {
		if name, ok := strings.CutPrefix(iri, prefix); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// InNamespace reports whether iri names a term on the vocabulary host.
func (v *Vocabulary) InNamespace(iri string) bool {
	_, ok := v.local(iri)
	return ok
}

// OnHost reports whether the IRI text, as written, addresses the vocabulary
// host over http or https. Scheme and host are compared case-insensitively.
// It is meant for IRIs too malformed to parse.
func (v *Vocabulary) OnHost(iri string) bool {
	lower := strings.ToLower(iri)
	for _, scheme := range []string{"https://", "http://"} {
		rest, ok := strings.CutPrefix(lower, scheme+v.host)
		if !ok {
			continue
		}
		// root-dot spelling: "schema.org./Person"
		rest = strings.TrimPrefix(rest, ".")
		if rest == "" || strings.ContainsRune("/?#:", rune(rest[0])) {
			return true
		}
	}
	return false
}

// IsWellKnown reports whether iri is one of the RDF/RDFS terms the pipeline
// accepts from outside the vocabulary host.
func (v *Vocabulary) IsWellKnown(iri string) bool {
	_, ok := wellKnownTerms[iri]
	return ok
}

// Predicate classifies a predicate IRI.
func (v *Vocabulary) Predicate(iri string) PredicateKind {
	switch iri {
	case RDFType:
		return PredicateType
	case RDFSComment:
		return PredicateComment
	case RDFSLabel:
		return PredicateLabel
	case RDFSSubClassOf:
		return PredicateSubClassOf
	}
	name, ok := v.local(iri)
	if !ok {
		return PredicateOther
	}
	switch name {
	case NameDomainIncludes:
		return PredicateDomainIncludes
	case NameRangeIncludes:
		return PredicateRangeIncludes
	case NameSupersededBy:
		return PredicateSupersededBy
	}
	return PredicateOther
}

// TypeOf classifies a declared type IRI.
func (v *Vocabulary) TypeOf(iri string) TypeKind {
	switch {
	case v.IsClassType(iri):
		return TypeClass
	case v.IsDataType(iri):
		return TypeDataType
	case iri == RDFProperty:
		return TypeProperty
	}
	return TypeOther
}

// IsClassType reports whether iri is the class of classes.
func (v *Vocabulary) IsClassType(iri string) bool {
	return iri == RDFSClass
}

// IsDataType reports whether iri is the class of data types.
func (v *Vocabulary) IsDataType(iri string) bool {
	name, ok := v.local(iri)
	return ok && name == NameDataType
}

// IsTypeAssertion reports whether iri is the type-assertion predicate.
func (v *Vocabulary) IsTypeAssertion(iri string) bool {
	return v.Predicate(iri) == PredicateType
}

// IsDomainIncludes reports whether iri is schema:domainIncludes.
func (v *Vocabulary) IsDomainIncludes(iri string) bool {
	return v.Predicate(iri) == PredicateDomainIncludes
}

// IsRangeIncludes reports whether iri is schema:rangeIncludes.
func (v *Vocabulary) IsRangeIncludes(iri string) bool {
	return v.Predicate(iri) == PredicateRangeIncludes
}

// IsSupersededBy reports whether iri is schema:supersededBy.
func (v *Vocabulary) IsSupersededBy(iri string) bool {
	return v.Predicate(iri) == PredicateSupersededBy
}

// Comment extracts documentation text from a predicate/object pair. It
// returns false unless the predicate is rdfs:comment and the object is a
// string literal.
func (v *Vocabulary) Comment(predicate string, object quad.Value) (string, bool) {
	if v.Predicate(predicate) != PredicateComment {
		return "", false
	}
	switch o := object.(type) {
	case quad.String:
		return string(o), true
	case quad.LangString:
		return string(o.Value), true
	case quad.TypedString:
		return string(o.Value), true
	}
	return "", false
}
