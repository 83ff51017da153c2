package triples

import (
	"net/url"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/c360studio/schemagraph/source/weburl"
)

// Object is either an IRI or a Literal.
type Object interface {
	// String returns the N-Triples form of the term.
	String() string
	// Quad returns the term as a quad value.
	Quad() quad.Value

	isObject()
}

// IRI is an absolute-URI-identified vocabulary node. The zero value is not a
// valid IRI.
type IRI struct {
	iri    quad.IRI
	scheme string
	host   string
	name   string
}

// ParseIRI parses an IRI token. The token may carry its angle brackets.
// Only structural problems are errors; whether the IRI is in scope is the
// Filter's decision. The scheme and host are stored in canonical form.
func ParseIRI(raw string) (IRI, error) {
	value := raw
	if strings.HasPrefix(value, "<") {
		if !strings.HasSuffix(value, ">") || len(value) < 2 {
			return IRI{}, &SyntaxError{Msg: "IRI token", Text: raw}
		}
		value = value[1 : len(value)-1]
	}
	if value == "" {
		return IRI{}, &URLError{IRI: value, Reason: "empty IRI"}
	}

	u, err := url.Parse(value)
	if err != nil {
		return IRI{}, &URLError{IRI: value, Reason: err.Error()}
	}

	host := u.Hostname()
	if canonical, err := weburl.CanonicalHost(host); err == nil {
		host = canonical
	} else {
		host = strings.ToLower(host)
	}

	return IRI{
		iri:    quad.IRI(canonicalText(value, u, host)),
		scheme: strings.ToLower(u.Scheme),
		host:   host,
		name:   nameOf(u),
	}, nil
}

// MustParseIRI is like ParseIRI but panics on error. Intended for constants
// and tests.
func MustParseIRI(raw string) IRI {
	iri, err := ParseIRI(raw)
	if err != nil {
		panic(err)
	}
	return iri
}

// canonicalText lowercases the scheme of a hierarchical IRI and replaces the
// host as written with host, so differently cased spellings of one term
// compare equal. Everything after the authority is kept byte for byte.
func canonicalText(value string, u *url.URL, host string) string {
	sep := strings.Index(value, "://")
	if sep < 0 || u.Host == "" {
		return value
	}
	start := sep + len("://")
	end := len(value)
	if i := strings.IndexAny(value[start:], "/?#"); i >= 0 {
		end = start + i
	}

	authority := value[start:end]
	userinfo := ""
	if at := strings.LastIndexByte(authority, '@'); at >= 0 {
		userinfo = authority[:at+1]
	}
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	return strings.ToLower(value[:sep]) + "://" + userinfo + host + value[end:]
}

// nameOf returns the fragment if present, otherwise the last path segment.
// A host-root reference yields an empty name.
func nameOf(u *url.URL) string {
	if u.Fragment != "" {
		return u.Fragment
	}
	path := u.Path
	if path == "" {
		path = u.Opaque
	}
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

func (i IRI) isObject() {}

// String returns the IRI in N-Triples form, with angle brackets.
func (i IRI) String() string { return i.iri.String() }

// Value returns the bare IRI text.
func (i IRI) Value() string { return string(i.iri) }

// Quad returns the IRI as a quad value.
func (i IRI) Quad() quad.Value { return i.iri }

// Scheme returns the lowercased scheme.
func (i IRI) Scheme() string { return i.scheme }

// Host returns the canonical host, empty for non-network IRIs.
func (i IRI) Host() string { return i.host }

// Name returns the local name segment.
func (i IRI) Name() string { return i.name }

// IsZero reports whether i is the zero IRI.
func (i IRI) IsZero() bool { return i.iri == "" }

// Equal reports whether both IRIs have the same canonical string.
func (i IRI) Equal(other IRI) bool { return i.iri == other.iri }

// Compare orders IRIs by canonical string.
func (i IRI) Compare(other IRI) int { return strings.Compare(string(i.iri), string(other.iri)) }

// Literal is a quoted string value with an optional language tag or
// datatype IRI.
type Literal struct {
	value    string
	lang     string
	datatype string
}

// NewLiteral creates a plain string literal.
func NewLiteral(value string) Literal {
	return Literal{value: value}
}

// ParseLiteral parses a literal token such as "math", "Mathe"@de or
// "1"^^<http://www.w3.org/2001/XMLSchema#integer>. It returns false if raw
// is not a well-formed literal.
func ParseLiteral(raw string) (Literal, bool) {
	if len(raw) < 2 || raw[0] != '"' {
		return Literal{}, false
	}
	end := closingQuote(raw)
	if end < 0 {
		return Literal{}, false
	}
	value, ok := unescape(raw[1:end])
	if !ok {
		return Literal{}, false
	}
	lit := Literal{value: value}

	rest := raw[end+1:]
	switch {
	case rest == "":
	case strings.HasPrefix(rest, "@"):
		if !validLangTag(rest[1:]) {
			return Literal{}, false
		}
		lit.lang = rest[1:]
	case strings.HasPrefix(rest, "^^<") && strings.HasSuffix(rest, ">"):
		dt := rest[3 : len(rest)-1]
		if dt == "" || strings.ContainsAny(dt, "<> \t\"") {
			return Literal{}, false
		}
		lit.datatype = dt
	default:
		return Literal{}, false
	}
	return lit, true
}

func (l Literal) isObject() {}

// Value returns the unescaped text.
func (l Literal) Value() string { return l.value }

// Lang returns the language tag, if any.
func (l Literal) Lang() string { return l.lang }

// Datatype returns the datatype IRI, if any.
func (l Literal) Datatype() string { return l.datatype }

// Quad returns the literal as a quad value.
func (l Literal) Quad() quad.Value {
	switch {
	case l.lang != "":
		return quad.LangString{Value: quad.String(l.value), Lang: l.lang}
	case l.datatype != "":
		return quad.TypedString{Value: quad.String(l.value), Type: quad.IRI(l.datatype)}
	default:
		return quad.String(l.value)
	}
}

// String returns the canonical N-Triples form.
func (l Literal) String() string {
	s := `"` + escape(l.value) + `"`
	switch {
	case l.lang != "":
		s += "@" + l.lang
	case l.datatype != "":
		s += "^^<" + l.datatype + ">"
	}
	return s
}

// Triple is a validated (Subject, Predicate, Object) statement.
type Triple struct {
	Subject   IRI
	Predicate IRI
	Object    Object
}

// Quad converts the triple to a quad without label.
func (t Triple) Quad() quad.Quad {
	return quad.Quad{Subject: t.Subject.Quad(), Predicate: t.Predicate.Quad(), Object: t.Object.Quad()}
}

// String returns the triple as one N-Triples statement with its terminator.
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}

// Equal reports structural equality.
func (t Triple) Equal(other Triple) bool {
	if !t.Subject.Equal(other.Subject) || !t.Predicate.Equal(other.Predicate) {
		return false
	}
	if t.Object == nil || other.Object == nil {
		return t.Object == nil && other.Object == nil
	}
	return t.Object.String() == other.Object.String()
}

func validLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, part := range strings.Split(tag, "-") {
		if part == "" {
			return false
		}
		for _, r := range part {
			alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			digit := r >= '0' && r <= '9'
			if !alpha && !(digit && i > 0) {
				return false
			}
		}
	}
	return true
}
