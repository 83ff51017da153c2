package graph

import (
	"iter"
	"log/slog"

	"github.com/c360studio/schemagraph/metrics"
	"github.com/c360studio/schemagraph/triples"
	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

// Warning is a non-fatal finding produced while resolving.
type Warning struct {
	Subject string
	Message string
}

// fact is one accumulated statement about a topic.
type fact struct {
	kind      schemaorg.PredicateKind
	predicate triples.IRI
	object    triples.Object
}

// topic holds everything said about one subject, in arrival order.
type topic struct {
	subject triples.IRI
	types   []triples.IRI
	facts   []fact

	comment     string
	commentDone bool
	comments    int
}

func (t *topic) has(kind schemaorg.PredicateKind) bool {
	for _, f := range t.facts {
		if f.kind == kind {
			return true
		}
	}
	return false
}

// objects returns the IRI objects of facts of the given kind.
func (t *topic) objects(kind schemaorg.PredicateKind) []triples.IRI {
	var out []triples.IRI
	for _, f := range t.facts {
		if f.kind != kind {
			continue
		}
		if iri, ok := f.object.(triples.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

// Resolver accumulates triples and resolves them into a Graph. It is not
// safe for concurrent use; parallel loads each need their own Resolver.
type Resolver struct {
	vocab   *schemaorg.Vocabulary
	logger  *slog.Logger
	metrics *metrics.Metrics

	topics   map[string]*topic
	order    []*topic
	warnings []Warning
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics counts duplicate-comment warnings on m.
func WithMetrics(m *metrics.Metrics) ResolverOption {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver creates an empty resolver for vocab. A nil vocab means
// schemaorg.Default().
func NewResolver(vocab *schemaorg.Vocabulary, opts ...ResolverOption) *Resolver {
	if vocab == nil {
		vocab = schemaorg.Default()
	}
	r := &Resolver{
		vocab:  vocab,
		logger: slog.Default(),
		topics: make(map[string]*topic),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add records one triple. Literal objects on predicates that require an
// IRI are rejected here; all other consistency checks happen in Resolve.
func (r *Resolver) Add(t triples.Triple) error {
	kind := r.vocab.Predicate(t.Predicate.Value())

	if kind.RequiresIRI() {
		if _, ok := t.Object.(triples.IRI); !ok {
			return &SchemaError{
				Subject:   t.Subject.Value(),
				Predicate: kind.String(),
				Msg:       "object must be an IRI, got literal " + t.Object.String(),
			}
		}
	}

	switch kind {
	case schemaorg.PredicateOther:
		r.logger.Debug("Ignoring predicate", "subject", t.Subject.Value(), "predicate", t.Predicate.Value())
		return nil
	case schemaorg.PredicateLabel:
		return nil
	}

	tp := r.topic(t.Subject)
	if kind == schemaorg.PredicateType {
		tp.types = appendUnique(tp.types, t.Object.(triples.IRI))
		return nil
	}
	if kind == schemaorg.PredicateComment {
		if _, ok := r.vocab.Comment(t.Predicate.Value(), t.Object.Quad()); ok {
			if tp.comments > 0 {
				r.metrics.IncCommentWarning()
			}
			tp.comments++
		}
	}
	tp.facts = append(tp.facts, fact{kind: kind, predicate: t.Predicate, object: t.Object})
	return nil
}

// Consume adds every triple of seq, stopping at the first error from the
// sequence or from Add.
func (r *Resolver) Consume(seq iter.Seq2[triples.Triple, error]) error {
	for t, err := range seq {
		if err != nil {
			return err
		}
		if err := r.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Warnings returns the warnings of the last Resolve call.
func (r *Resolver) Warnings() []Warning {
	return append([]Warning(nil), r.warnings...)
}

// Resolve builds a graph from everything added so far. It may be called
// again after more triples are added; each call produces a fresh Graph.
func (r *Resolver) Resolve() (*Graph, error) {
	r.warnings = nil
	for _, tp := range r.order {
		tp.commentDone = false
	}

	g := newGraph()
	r.registerClasses(g)
	if err := r.resolveClasses(g); err != nil {
		return nil, err
	}
	if err := r.resolveProperties(g); err != nil {
		return nil, err
	}
	if err := r.resolveEnumValues(g); err != nil {
		return nil, err
	}
	if err := checkCycles(g); err != nil {
		return nil, err
	}

	r.logger.Debug("Resolved vocabulary graph",
		"classes", len(g.classes),
		"properties", len(g.properties),
		"enum_values", len(g.enums),
		"warnings", len(r.warnings))
	return g, nil
}

func (r *Resolver) topic(subject triples.IRI) *topic {
	key := subject.Value()
	if tp, ok := r.topics[key]; ok {
		return tp
	}
	tp := &topic{subject: subject}
	r.topics[key] = tp
	r.order = append(r.order, tp)
	return tp
}

// registerClasses creates a Class for every subject declared as a class or
// data type.
func (r *Resolver) registerClasses(g *Graph) {
	for _, tp := range r.order {
		for _, t := range tp.types {
			switch r.vocab.TypeOf(t.Value()) {
			case schemaorg.TypeClass:
				classFor(g, tp.subject)
			case schemaorg.TypeDataType:
				classFor(g, tp.subject).IsDataType = true
				classFor(g, t)
			}
		}
	}
}

func (r *Resolver) resolveClasses(g *Graph) error {
	for _, tp := range r.order {
		c, ok := g.classes[tp.subject.Value()]
		if !ok {
			continue
		}
		c.comment = r.comment(tp)

		for _, parent := range tp.objects(schemaorg.PredicateSubClassOf) {
			if !r.vocab.InNamespace(parent.Value()) {
				continue
			}
			p, ok := g.classes[parent.Value()]
			if !ok {
				return &ClassNotFoundError{
					IRI:      parent.Value(),
					Referrer: tp.subject.Value(),
					Relation: schemaorg.PredicateSubClassOf,
				}
			}
			c.parents[parent.Value()] = p
		}

		for _, next := range tp.objects(schemaorg.PredicateSupersededBy) {
			c.supersededBy = appendUnique(c.supersededBy, next)
		}
	}
	return nil
}

func (r *Resolver) isProperty(tp *topic) bool {
	for _, t := range tp.types {
		if r.vocab.TypeOf(t.Value()) == schemaorg.TypeProperty {
			return true
		}
	}
	return tp.has(schemaorg.PredicateDomainIncludes) || tp.has(schemaorg.PredicateRangeIncludes)
}

func (r *Resolver) resolveProperties(g *Graph) error {
	for _, tp := range r.order {
		if !r.isProperty(tp) {
			continue
		}
		p := newPropertyType(tp.subject)
		g.properties[tp.subject.Value()] = p
		p.comment = r.comment(tp)

		for _, f := range tp.facts {
			iri, _ := f.object.(triples.IRI)
			switch f.kind {
			case schemaorg.PredicateRangeIncludes:
				p.ranges[iri.Value()] = iri

			case schemaorg.PredicateDomainIncludes:
				c, ok := g.classes[iri.Value()]
				if !ok {
					return &ClassNotFoundError{
						IRI:      iri.Value(),
						Referrer: tp.subject.Value(),
						Relation: schemaorg.PredicateDomainIncludes,
					}
				}
				c.properties[p.IRI.Value()] = &Property{Owner: c, Type: p}
				p.classes[c.IRI.Value()] = c

			case schemaorg.PredicateSupersededBy:
				p.supersededBy = appendUnique(p.supersededBy, iri)
			}
		}
	}
	return nil
}

// resolveEnumValues registers a subject as a member of every declared type
// that is not one of the reserved kinds. A subject may be a Class and an
// EnumValue at the same time.
func (r *Resolver) resolveEnumValues(g *Graph) error {
	for _, tp := range r.order {
		for _, t := range tp.types {
			if r.vocab.TypeOf(t.Value()) != schemaorg.TypeOther {
				continue
			}
			c, ok := g.classes[t.Value()]
			if !ok {
				return &ClassNotFoundError{
					IRI:      t.Value(),
					Referrer: tp.subject.Value(),
					Relation: schemaorg.PredicateType,
				}
			}

			e, ok := g.enums[tp.subject.Value()]
			if !ok {
				e = newEnumValue(tp.subject)
				e.comment = r.comment(tp)
				for _, next := range tp.objects(schemaorg.PredicateSupersededBy) {
					e.supersededBy = appendUnique(e.supersededBy, next)
				}
				g.enums[tp.subject.Value()] = e
			}
			e.classes[c.IRI.Value()] = c
			c.enumValues[e.IRI.Value()] = e
		}
	}
	return nil
}

// comment returns the last comment of tp. Every comment after the first
// replaces the previous one and records a warning. The result is cached so
// a subject resolved in several roles warns once.
func (r *Resolver) comment(tp *topic) string {
	if tp.commentDone {
		return tp.comment
	}
	tp.commentDone = true
	tp.comment = ""

	seen := false
	for _, f := range tp.facts {
		text, ok := r.vocab.Comment(f.predicate.Value(), f.object.Quad())
		if !ok {
			continue
		}
		if seen {
			r.warn(tp.subject.Value(), "duplicate comment, keeping the later one",
				"previous", tp.comment, "current", text)
		}
		tp.comment = text
		seen = true
	}
	return tp.comment
}

func (r *Resolver) warn(subject, msg string, args ...any) {
	r.warnings = append(r.warnings, Warning{Subject: subject, Message: msg})
	r.logger.Warn(msg, append([]any{"subject", subject}, args...)...)
}

func classFor(g *Graph, iri triples.IRI) *Class {
	if c, ok := g.classes[iri.Value()]; ok {
		return c
	}
	c := newClass(iri)
	g.classes[iri.Value()] = c
	return c
}
