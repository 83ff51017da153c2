package export

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/schemagraph/triples"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatNTriples produces N-Triples (.nt) output that can be loaded again.
	FormatNTriples Format = "ntriples"

	// FormatJSON produces the document model as JSON.
	FormatJSON Format = "json"

	// FormatYAML produces the document model as YAML.
	FormatYAML Format = "yaml"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
	FormatJSON: {
		Name:        FormatJSON,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "JSON - resolved classes, properties and enumeration members",
	},
	FormatYAML: {
		Name:        FormatYAML,
		MIMEType:    "application/yaml",
		Extension:   ".yaml",
		Description: "YAML - resolved classes, properties and enumeration members",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat resolves a format name or file extension.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for format, info := range FormatRegistry {
		if name == string(format) || name == info.Extension || "."+name == info.Extension {
			return format, nil
		}
	}
	switch name {
	case "ttl":
		return FormatTurtle, nil
	case "nt":
		return FormatNTriples, nil
	case "yml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported format: %s", name)
}

// Formats returns the supported format names sorted alphabetically.
func Formats() []string {
	out := make([]string, 0, len(FormatRegistry))
	for format := range FormatRegistry {
		out = append(out, string(format))
	}
	slices.Sort(out)
	return out
}

// NTriplesWriter writes statements one per line in the form the triples
// tokenizer reads.
type NTriplesWriter struct {
	w   io.Writer
	err error
}

// NewNTriplesWriter creates a new N-Triples writer.
func NewNTriplesWriter(w io.Writer) *NTriplesWriter {
	return &NTriplesWriter{w: w}
}

// WriteTriple writes a single triple.
func (w *NTriplesWriter) WriteTriple(t triples.Triple) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, t.String()+"\n")
}

// Err returns the first write error.
func (w *NTriplesWriter) Err() error {
	return w.err
}

// localName matches local parts that may be written as a prefixed name.
var localName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// TurtleWriter writes subject blocks with prefixed names for every IRI
// covered by a registered quad/voc prefix.
type TurtleWriter struct {
	w        io.Writer
	prefixes map[string]string
	subject  string
	err      error
}

// NewTurtleWriter creates a Turtle writer with the given prefix table
// (prefix without colon -> namespace).
func NewTurtleWriter(w io.Writer, prefixes map[string]string) *TurtleWriter {
	return &TurtleWriter{w: w, prefixes: prefixes}
}

// WritePrefixes writes prefix declarations sorted by prefix.
func (w *TurtleWriter) WritePrefixes() {
	keys := make([]string, 0, len(w.prefixes))
	for k := range w.prefixes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, prefix := range keys {
		w.printf("@prefix %s: <%s> .\n", prefix, w.prefixes[prefix])
	}
	w.printf("\n")
}

// WriteTriple appends t to the current subject block, starting a new block
// when the subject changes.
func (w *TurtleWriter) WriteTriple(t triples.Triple) {
	subject := w.term(t.Subject.Quad())
	if subject != w.subject {
		w.closeSubject()
		w.printf("%s\n", subject)
		w.subject = subject
	} else {
		w.printf(" ;\n")
	}

	predicate := w.term(t.Predicate.Quad())
	if t.Predicate.Value() == rdfType.Value() {
		predicate = "a"
	}
	w.printf("    %s %s", predicate, w.term(t.Object.Quad()))
}

// Close terminates the last subject block.
func (w *TurtleWriter) Close() error {
	w.closeSubject()
	return w.err
}

func (w *TurtleWriter) closeSubject() {
	if w.subject != "" {
		w.printf(" .\n\n")
		w.subject = ""
	}
}

func (w *TurtleWriter) term(v quad.Value) string {
	iri, ok := v.(quad.IRI)
	if !ok {
		return formatLiteral(v)
	}
	short := iri.Short()
	if short == iri {
		return iri.String()
	}
	prefix, local, found := strings.Cut(string(short), ":")
	if !found || !localName.MatchString(local) {
		return iri.String()
	}
	if w.prefixes[prefix]+local != string(iri) {
		return iri.String()
	}
	return string(short)
}

func (w *TurtleWriter) printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// formatLiteral renders a literal value using the triples canonical form.
func formatLiteral(v quad.Value) string {
	switch o := v.(type) {
	case quad.String:
		return triples.NewLiteral(string(o)).String()
	case quad.LangString:
		return triples.NewLiteral(string(o.Value)).String() + "@" + o.Lang
	case quad.TypedString:
		return triples.NewLiteral(string(o.Value)).String() + "^^" + o.Type.String()
	}
	return v.String()
}
