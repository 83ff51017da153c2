// Package schemaorg provides the well-known vocabulary capability used while
// ingesting and resolving the schema.org vocabulary.
//
// It answers three questions about IRIs:
//
//   - Is this predicate one the resolver understands? (Vocabulary.Predicate)
//   - Is this declared type a Class, a DataType, a Property or something
//     else? (Vocabulary.TypeOf)
//   - Is this IRI inside the vocabulary namespace or a registered well-known
//     term? (Vocabulary.InNamespace, Vocabulary.IsWellKnown)
//
// The RDF and RDFS terms come from github.com/cayleygraph/quad/voc. The
// schema.org namespace is registered with the same prefix registry in init()
// so that quad.IRI values can be shortened to "schema:Name" form:
//
//	quad.IRI(schemaorg.Namespace + "Person").Short() // schema:Person
package schemaorg
