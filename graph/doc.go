// Package graph resolves a stream of vocabulary triples into classes,
// properties and enumeration members.
//
// A Resolver accumulates triples per subject in arrival order. Resolve then
// builds the Graph in fixed phases:
//
//  1. subjects typed rdfs:Class or schema:DataType become classes
//  2. class comments, subClassOf parents and supersededBy
//  3. property types, their ranges and their domainIncludes bindings
//  4. enumeration members, one registration per ordinary declared type
//  5. a depth-first cycle check over subClassOf
//
// Forward references inside one load are therefore fine, but a class that
// is referenced and never declared is fatal. When a subject carries more
// than one comment the last one wins and a Warning is recorded.
//
// Class.Fields flattens multiple inheritance: the result holds one Field
// per property IRI reachable from the class or any ancestor.
package graph
