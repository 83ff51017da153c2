package triples

import (
	"errors"

	"github.com/c360studio/schemagraph/source/weburl"
	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

// Verdict is the outcome of classifying one IRI position.
type Verdict int

const (
	// Accept keeps the IRI.
	Accept Verdict = iota
	// Drop silently discards the whole statement.
	Drop
)

func (v Verdict) String() string {
	if v == Accept {
		return "accept"
	}
	return "drop"
}

// Filter decides which statements belong to the vocabulary.
type Filter struct {
	vocab *schemaorg.Vocabulary
}

// NewFilter creates a filter for vocab's host.
func NewFilter(vocab *schemaorg.Vocabulary) *Filter {
	return &Filter{vocab: vocab}
}

// Classify decides a single IRI. A reference to the vocabulary host root is
// fatal; other hosts and non-network schemes are dropped.
func (f *Filter) Classify(iri IRI) (Verdict, error) {
	if f.vocab.IsWellKnown(iri.Value()) {
		return Accept, nil
	}
	if !weburl.IsNetworkScheme(iri.Scheme()) || iri.Host() != f.vocab.Host() {
		return Drop, nil
	}
	if iri.Name() == "" {
		return Drop, &URLError{IRI: iri.Value(), Reason: "no term name under vocabulary host"}
	}
	return Accept, nil
}

// Apply turns a raw statement into a Triple. It returns ok=false when any
// IRI position is out of vocabulary. A fatal position wins over a dropped one.
// An IRI too malformed to parse is fatal only when its text names the
// vocabulary host; elsewhere it is dropped like any foreign IRI.
func (f *Filter) Apply(raw RawStatement) (Triple, bool, error) {
	keep := true
	parse := func(token string) (IRI, error) {
		iri, err := ParseIRI(token)
		if err != nil {
			var urlErr *URLError
			if errors.As(err, &urlErr) && !f.vocab.OnHost(urlErr.IRI) {
				keep = false
				return IRI{}, nil
			}
			return IRI{}, withLine(err, raw)
		}
		verdict, err := f.Classify(iri)
		if err != nil {
			return IRI{}, withLine(err, raw)
		}
		if verdict == Drop {
			keep = false
		}
		return iri, nil
	}

	subject, err := parse(raw.Subject)
	if err != nil {
		return Triple{}, false, err
	}
	predicate, err := parse(raw.Predicate)
	if err != nil {
		return Triple{}, false, err
	}

	var object Object
	if lit, ok := ParseLiteral(raw.Object); ok {
		object = lit
	} else {
		iri, err := parse(raw.Object)
		if err != nil {
			return Triple{}, false, err
		}
		object = iri
	}

	if !keep {
		return Triple{}, false, nil
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, true, nil
}

// withLine adds the statement position to errors raised after tokenizing.
func withLine(err error, raw RawStatement) error {
	switch e := err.(type) {
	case *SyntaxError:
		if e.Line == 0 {
			e.Line = raw.Line
		}
	case *URLError:
		if e.Line == 0 {
			e.Line = raw.Line
		}
	}
	return err
}
