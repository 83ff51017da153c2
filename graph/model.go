package graph

import (
	"cmp"
	"maps"
	"slices"
	"strings"

	"github.com/c360studio/schemagraph/triples"
)

// TypePropertyName is the name of the synthetic discriminant field every
// class carries.
const TypePropertyName = "@type"

// Graph is a resolved vocabulary. It is read-only once returned by
// Resolver.Resolve.
type Graph struct {
	classes    map[string]*Class
	properties map[string]*PropertyType
	enums      map[string]*EnumValue
}

func newGraph() *Graph {
	return &Graph{
		classes:    make(map[string]*Class),
		properties: make(map[string]*PropertyType),
		enums:      make(map[string]*EnumValue),
	}
}

// Classes returns all classes sorted by IRI.
func (g *Graph) Classes() []*Class {
	return sortedByIRI(g.classes, func(c *Class) triples.IRI { return c.IRI })
}

// Class looks up a class by IRI.
func (g *Graph) Class(iri string) (*Class, bool) {
	c, ok := g.classes[iri]
	return c, ok
}

// Properties returns all property types sorted by IRI.
func (g *Graph) Properties() []*PropertyType {
	return sortedByIRI(g.properties, func(p *PropertyType) triples.IRI { return p.IRI })
}

// Property looks up a property type by IRI.
func (g *Graph) Property(iri string) (*PropertyType, bool) {
	p, ok := g.properties[iri]
	return p, ok
}

// EnumValues returns all enumeration members sorted by IRI.
func (g *Graph) EnumValues() []*EnumValue {
	return sortedByIRI(g.enums, func(e *EnumValue) triples.IRI { return e.IRI })
}

// EnumValue looks up an enumeration member by IRI.
func (g *Graph) EnumValue(iri string) (*EnumValue, bool) {
	e, ok := g.enums[iri]
	return e, ok
}

// Class is a vocabulary class. Parents form a DAG; a class may have several.
type Class struct {
	IRI        triples.IRI
	Name       string
	IsDataType bool

	comment      string
	parents      map[string]*Class
	properties   map[string]*Property
	enumValues   map[string]*EnumValue
	supersededBy []triples.IRI
}

func newClass(iri triples.IRI) *Class {
	return &Class{
		IRI:        iri,
		Name:       iri.Name(),
		parents:    make(map[string]*Class),
		properties: make(map[string]*Property),
		enumValues: make(map[string]*EnumValue),
	}
}

// Comment returns the documentation text including any deprecation notice.
func (c *Class) Comment() string { return withDeprecation(c.comment, c.supersededBy) }

// RawComment returns the documentation text as it appeared in the source.
func (c *Class) RawComment() string { return c.comment }

// Parents returns the direct parent classes sorted by IRI.
func (c *Class) Parents() []*Class {
	return sortedByIRI(c.parents, func(p *Class) triples.IRI { return p.IRI })
}

// OwnProperties returns the properties declared directly on c, sorted by
// property name.
func (c *Class) OwnProperties() []*Property {
	props := slices.Collect(maps.Values(c.properties))
	slices.SortFunc(props, func(a, b *Property) int {
		return compareNamed(a.Type.Name, a.Type.IRI, b.Type.Name, b.Type.IRI)
	})
	return props
}

// EnumValues returns the registered members sorted by IRI.
func (c *Class) EnumValues() []*EnumValue {
	return sortedByIRI(c.enumValues, func(e *EnumValue) triples.IRI { return e.IRI })
}

// IsEnumeration reports whether any members are registered.
func (c *Class) IsEnumeration() bool { return len(c.enumValues) > 0 }

// Deprecated reports whether c has been superseded.
func (c *Class) Deprecated() bool { return len(c.supersededBy) > 0 }

// SupersededBy returns the replacements in the order they were declared.
func (c *Class) SupersededBy() []triples.IRI { return slices.Clone(c.supersededBy) }

// Ancestors returns every transitive parent of c, nearest first. Each class
// appears once even when reachable along several paths.
func (c *Class) Ancestors() []*Class {
	var out []*Class
	seen := map[string]bool{c.IRI.Value(): true}
	queue := c.Parents()
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if seen[next.IRI.Value()] {
			continue
		}
		seen[next.IRI.Value()] = true
		out = append(out, next)
		queue = append(queue, next.Parents()...)
	}
	return out
}

// Fields returns the effective fields of c: its own properties plus those
// of every ancestor, one per property IRI, sorted by name.
func (c *Class) Fields() []Field {
	byIRI := make(map[string]Field)
	for _, owner := range append([]*Class{c}, c.Ancestors()...) {
		for key, prop := range owner.properties {
			if _, ok := byIRI[key]; ok {
				continue
			}
			byIRI[key] = Field{
				Name:     prop.Type.Name,
				Type:     prop.Type,
				Owner:    owner,
				Value:    prop.Type.ValueType(),
				Optional: true,
				Multiple: true,
			}
		}
	}

	fields := slices.Collect(maps.Values(byIRI))
	slices.SortFunc(fields, func(a, b Field) int {
		return compareNamed(a.Name, a.Type.IRI, b.Name, b.Type.IRI)
	})
	return fields
}

// TypeProperty returns the discriminant field of c.
func (c *Class) TypeProperty() TypeProperty {
	return TypeProperty{Name: TypePropertyName, Value: c.Name}
}

// PropertyType is a vocabulary property, shared by every class it is bound to.
type PropertyType struct {
	IRI  triples.IRI
	Name string

	comment      string
	ranges       map[string]triples.IRI
	classes      map[string]*Class
	supersededBy []triples.IRI
}

func newPropertyType(iri triples.IRI) *PropertyType {
	return &PropertyType{
		IRI:     iri,
		Name:    iri.Name(),
		ranges:  make(map[string]triples.IRI),
		classes: make(map[string]*Class),
	}
}

// Comment returns the documentation text including any deprecation notice.
func (p *PropertyType) Comment() string { return withDeprecation(p.comment, p.supersededBy) }

// RawComment returns the documentation text as it appeared in the source.
func (p *PropertyType) RawComment() string { return p.comment }

// Ranges returns the permitted value types sorted by display name.
func (p *PropertyType) Ranges() []triples.IRI {
	out := slices.Collect(maps.Values(p.ranges))
	slices.SortFunc(out, func(a, b triples.IRI) int {
		return compareNamed(a.Name(), a, b.Name(), b)
	})
	return out
}

// ValueType returns the union of the range names.
func (p *PropertyType) ValueType() ValueType {
	ranges := p.Ranges()
	members := make([]string, 0, len(ranges))
	for _, r := range ranges {
		if len(members) > 0 && members[len(members)-1] == r.Name() {
			continue
		}
		members = append(members, r.Name())
	}
	return ValueType{Members: members}
}

// Classes returns the classes p is bound to, sorted by IRI.
func (p *PropertyType) Classes() []*Class {
	return sortedByIRI(p.classes, func(c *Class) triples.IRI { return c.IRI })
}

// Deprecated reports whether p has been superseded.
func (p *PropertyType) Deprecated() bool { return len(p.supersededBy) > 0 }

// SupersededBy returns the replacements in the order they were declared.
func (p *PropertyType) SupersededBy() []triples.IRI { return slices.Clone(p.supersededBy) }

// Property binds a property type to one owning class.
type Property struct {
	Owner *Class
	Type  *PropertyType
}

// EnumValue is a named individual belonging to one or more classes.
type EnumValue struct {
	IRI  triples.IRI
	Name string

	comment      string
	classes      map[string]*Class
	supersededBy []triples.IRI
}

func newEnumValue(iri triples.IRI) *EnumValue {
	return &EnumValue{
		IRI:     iri,
		Name:    iri.Name(),
		classes: make(map[string]*Class),
	}
}

// Comment returns the documentation text including any deprecation notice.
func (e *EnumValue) Comment() string { return withDeprecation(e.comment, e.supersededBy) }

// RawComment returns the documentation text as it appeared in the source.
func (e *EnumValue) RawComment() string { return e.comment }

// SupersededBy returns the replacements in the order they were declared.
func (e *EnumValue) SupersededBy() []triples.IRI { return slices.Clone(e.supersededBy) }

// Classes returns the enclosing classes sorted by IRI.
func (e *EnumValue) Classes() []*Class {
	return sortedByIRI(e.classes, func(c *Class) triples.IRI { return c.IRI })
}

// Deprecated reports whether e has been superseded.
func (e *EnumValue) Deprecated() bool { return len(e.supersededBy) > 0 }

// Field is one effective field of a class. Every field is optional and
// accepts one value or a list of values.
type Field struct {
	Name     string
	Type     *PropertyType
	Owner    *Class
	Value    ValueType
	Optional bool
	Multiple bool
}

// Inherited reports whether the field comes from an ancestor.
func (f Field) Inherited(of *Class) bool { return f.Owner != of }

// ValueType is a union of type names. No members means no value is
// permitted.
type ValueType struct {
	Members []string
}

// IsNever reports whether the union is empty.
func (v ValueType) IsNever() bool { return len(v.Members) == 0 }

func (v ValueType) String() string {
	if v.IsNever() {
		return "never"
	}
	return strings.Join(v.Members, " | ")
}

// TypeProperty is the synthetic discriminant whose value is fixed to the
// class name.
type TypeProperty struct {
	Name  string
	Value string
}

// DeprecationNotice formats the notice appended to superseded terms.
func DeprecationNotice(replacements []triples.IRI) string {
	names := make([]string, len(replacements))
	for i, r := range replacements {
		names[i] = r.Name()
	}
	return "@deprecated Consider using " + strings.Join(names, " or ") + " instead."
}

func withDeprecation(comment string, supersededBy []triples.IRI) string {
	if len(supersededBy) == 0 {
		return comment
	}
	notice := DeprecationNotice(supersededBy)
	if comment == "" {
		return notice
	}
	return comment + "\n" + notice
}

func compareNamed(aName string, aIRI triples.IRI, bName string, bIRI triples.IRI) int {
	return cmp.Or(strings.Compare(aName, bName), aIRI.Compare(bIRI))
}

func sortedByIRI[T any](m map[string]T, iri func(T) triples.IRI) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b T) int { return iri(a).Compare(iri(b)) })
	return out
}

func appendUnique(list []triples.IRI, iri triples.IRI) []triples.IRI {
	if slices.ContainsFunc(list, iri.Equal) {
		return list
	}
	return append(list, iri)
}
