// Package export serializes a resolved vocabulary graph as Turtle,
// N-Triples, JSON or YAML.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/schemagraph/graph"
	"github.com/c360studio/schemagraph/triples"
	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

var (
	rdfType        = triples.MustParseIRI(schemaorg.RDFType)
	rdfProperty    = triples.MustParseIRI(schemaorg.RDFProperty)
	rdfsClass      = triples.MustParseIRI(schemaorg.RDFSClass)
	rdfsComment    = triples.MustParseIRI(schemaorg.RDFSComment)
	rdfsSubClassOf = triples.MustParseIRI(schemaorg.RDFSSubClassOf)
)

// Exporter serializes graphs with a fixed profile and vocabulary.
type Exporter struct {
	profile ProfileConfig
	vocab   *schemaorg.Vocabulary

	dataType       triples.IRI
	domainIncludes triples.IRI
	rangeIncludes  triples.IRI
	supersededBy   triples.IRI
}

// NewExporter creates an exporter. A nil vocab means schemaorg.Default().
func NewExporter(profile Profile, vocab *schemaorg.Vocabulary) (*Exporter, error) {
	config, err := GetProfileConfig(profile)
	if err != nil {
		return nil, err
	}
	if vocab == nil {
		vocab = schemaorg.Default()
	}
	term := func(name string) triples.IRI { return triples.MustParseIRI(vocab.Namespace() + name) }

	return &Exporter{
		profile:        config,
		vocab:          vocab,
		dataType:       term(schemaorg.NameDataType),
		domainIncludes: term(schemaorg.NameDomainIncludes),
		rangeIncludes:  term(schemaorg.NameRangeIncludes),
		supersededBy:   term(schemaorg.NameSupersededBy),
	}, nil
}

// Write serializes g with the full profile and the default vocabulary.
func Write(w io.Writer, g *graph.Graph, format Format) error {
	e, err := NewExporter(ProfileFull, nil)
	if err != nil {
		return err
	}
	return e.Export(w, g, format)
}

// Export serializes g to w in the given format.
func (e *Exporter) Export(w io.Writer, g *graph.Graph, format Format) error {
	switch format {
	case FormatTurtle:
		return e.writeTurtle(w, g)
	case FormatNTriples:
		return e.writeNTriples(w, g)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(e.Document(g)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(e.Document(g)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Triples returns the statements describing g: classes first, then
// properties, then enumeration members, each sorted by IRI. Comments are
// written as they appeared in the source, without deprecation notices.
func (e *Exporter) Triples(g *graph.Graph) []triples.Triple {
	var out []triples.Triple
	seen := make(map[string]bool)
	add := func(s, p triples.IRI, o triples.Object) {
		t := triples.Triple{Subject: s, Predicate: p, Object: o}
		key := t.String()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, t)
	}
	comment := func(s triples.IRI, text string) {
		if e.profile.IncludeComments && text != "" {
			add(s, rdfsComment, triples.NewLiteral(text))
		}
	}
	deprecation := func(s triples.IRI, replacements []triples.IRI) {
		if !e.profile.IncludeDeprecation {
			return
		}
		for _, r := range replacements {
			add(s, e.supersededBy, r)
		}
	}

	for _, c := range g.Classes() {
		add(c.IRI, rdfType, rdfsClass)
		if c.IsDataType {
			add(c.IRI, rdfType, e.dataType)
		}
		for _, p := range c.Parents() {
			add(c.IRI, rdfsSubClassOf, p.IRI)
		}
		comment(c.IRI, c.RawComment())
		deprecation(c.IRI, c.SupersededBy())
	}

	for _, p := range g.Properties() {
		add(p.IRI, rdfType, rdfProperty)
		for _, c := range p.Classes() {
			add(p.IRI, e.domainIncludes, c.IRI)
		}
		for _, r := range p.Ranges() {
			add(p.IRI, e.rangeIncludes, r)
		}
		comment(p.IRI, p.RawComment())
		deprecation(p.IRI, p.SupersededBy())
	}

	if e.profile.IncludeEnumValues {
		for _, v := range g.EnumValues() {
			for _, c := range v.Classes() {
				add(v.IRI, rdfType, c.IRI)
			}
			comment(v.IRI, v.RawComment())
			deprecation(v.IRI, v.SupersededBy())
		}
	}
	return out
}

func (e *Exporter) writeNTriples(w io.Writer, g *graph.Graph) error {
	nw := NewNTriplesWriter(w)
	for _, t := range e.Triples(g) {
		nw.WriteTriple(t)
	}
	if err := nw.Err(); err != nil {
		return fmt.Errorf("write n-triples: %w", err)
	}
	return nil
}

func (e *Exporter) writeTurtle(w io.Writer, g *graph.Graph) error {
	tw := NewTurtleWriter(w, e.prefixes())
	tw.WritePrefixes()
	for _, t := range e.Triples(g) {
		tw.WriteTriple(t)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("write turtle: %w", err)
	}
	return nil
}

// prefixes returns the Turtle prefix table for the exporter's vocabulary.
func (e *Exporter) prefixes() map[string]string {
	return map[string]string{
		"rdf":    rdf.NS,
		"rdfs":   rdfs.NS,
		"schema": e.vocab.Namespace(),
	}
}
