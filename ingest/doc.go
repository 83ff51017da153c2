// Package ingest retrieves N-Triples vocabularies over HTTP and streams the
// statements that pass the vocabulary filter.
//
// A Loader issues one request at a time. Redirect responses are followed
// by the Loader itself, not by the HTTP client, so that every hop is
// validated, logged and counted. The body is decoded incrementally and
// exposed as a lazy iter.Seq2:
//
//	loader := ingest.NewLoader(
//		ingest.NewHTTPTransport(30*time.Second, "schemagraph", true),
//		triples.NewFilter(schemaorg.Default()),
//	)
//	for t, err := range loader.Load(ctx, schemaorg.DefaultSource) {
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// No retries are attempted. The first transport, status or statement error
// ends the sequence.
package ingest
