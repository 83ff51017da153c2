// Package triples turns an N-Triples byte stream into validated triples.
//
// The package has three layers:
//
//   - Term model: IRI, Literal and Triple. IRIs wrap a canonical quad.IRI
//     and expose host and local name; literals decode N-Triples escapes.
//   - Tokenizer: a chunk-tolerant line scanner that keeps the unfinished
//     line between Feed calls and rejects anything outside the statement
//     grammar with a *SyntaxError ("Unexpected ...").
//   - Filter: classifies every IRI position against the vocabulary host.
//     Out-of-vocabulary statements are dropped silently; a bare reference
//     to the vocabulary host root is a fatal *URLError ("Unexpected URL").
//
// Decoder ties the layers together and exposes the result as an
// iter.Seq2[Triple, error]:
//
//	filter := triples.NewFilter(schemaorg.Default())
//	for t, err := range triples.Decode(ctx, r, filter) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(t)
//	}
package triples
