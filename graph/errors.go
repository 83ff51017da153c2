package graph

import (
	"errors"
	"fmt"

	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

var (
	// ErrClassNotFound matches every reference to an unregistered class.
	ErrClassNotFound = errors.New("class not found")

	// ErrSchema matches schema-consistency failures: IRI-only predicates
	// with literal objects and class hierarchy cycles.
	ErrSchema = errors.New("schema inconsistency")
)

// ClassNotFoundError reports a reference to a class that was never
// declared. Relation names the predicate that made the reference.
type ClassNotFoundError struct {
	IRI      string
	Referrer string
	Relation schemaorg.PredicateKind
}

func (e *ClassNotFoundError) Error() string {
	switch e.Relation {
	case schemaorg.PredicateDomainIncludes:
		return fmt.Sprintf("could not find class <%s> for domainIncludes of <%s>", e.IRI, e.Referrer)
	case schemaorg.PredicateSubClassOf:
		return fmt.Sprintf("couldn't find parent class <%s> of <%s>", e.IRI, e.Referrer)
	default:
		return fmt.Sprintf("couldn't find <%s> in classes (declared type of <%s>)", e.IRI, e.Referrer)
	}
}

func (e *ClassNotFoundError) Unwrap() error { return ErrClassNotFound }

// SchemaError reports a triple whose shape contradicts its predicate.
type SchemaError struct {
	Subject   string
	Predicate string
	Msg       string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s statement on <%s>: %s", e.Predicate, e.Subject, e.Msg)
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

// CycleError reports a class that is its own ancestor.
type CycleError struct {
	IRI string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("class hierarchy cycle at <%s>", e.IRI)
}

func (e *CycleError) Unwrap() error { return ErrSchema }
