package schemaorg

import (
	"github.com/cayleygraph/quad/voc"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

func init() {
	voc.RegisterPrefix(Prefix, Namespace)
}

const (
	// Host is the canonical vocabulary host in-scope IRIs must belong to.
	Host = "schema.org"

	// Namespace is the base IRI for schema.org terms.
	Namespace = "https://" + Host + "/"

	// Prefix is the compact prefix registered for Namespace.
	Prefix = "schema:"

	// DefaultSource is the published N-Triples file for the current release.
	DefaultSource = "https://schema.org/version/latest/schemaorg-current-https.nt"
)

// Vocabulary-local names. They are matched against the name segment of IRIs
// on the vocabulary host, independent of scheme.
const (
	// NameDataType is the class of primitive data types (Text, Number, ...).
	NameDataType = "DataType"

	// NameDomainIncludes links a property to a class that may carry it.
	NameDomainIncludes = "domainIncludes"

	// NameRangeIncludes links a property to a permitted value type.
	NameRangeIncludes = "rangeIncludes"

	// NameSupersededBy marks a term as deprecated in favour of another.
	NameSupersededBy = "supersededBy"
)

// Well-known RDF and RDFS terms, expanded to full IRIs.
const (
	// RDFType is the reserved type-assertion predicate.
	RDFType = rdf.NS + "type"

	// RDFProperty is the class of properties.
	RDFProperty = rdf.NS + "Property"

	// RDFSClass is the class of classes.
	RDFSClass = rdfs.NS + "Class"

	// RDFSComment carries human readable documentation.
	RDFSComment = rdfs.NS + "comment"

	// RDFSLabel carries a display label.
	RDFSLabel = rdfs.NS + "label"

	// RDFSSubClassOf links a class to a direct parent.
	RDFSSubClassOf = rdfs.NS + "subClassOf"
)

// wellKnownTerms are accepted by the vocabulary filter even though they live
// outside the vocabulary host.
var wellKnownTerms = map[string]struct{}{
	RDFType:        {},
	RDFProperty:    {},
	RDFSClass:      {},
	RDFSComment:    {},
	RDFSLabel:      {},
	RDFSSubClassOf: {},
}
