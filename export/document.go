package export

import (
	"github.com/c360studio/schemagraph/graph"
	"github.com/c360studio/schemagraph/triples"
)

// Document is the JSON and YAML view of a resolved graph.
type Document struct {
	Namespace  string         `json:"namespace" yaml:"namespace"`
	Classes    []ClassDoc     `json:"classes" yaml:"classes"`
	Properties []PropertyDoc  `json:"properties" yaml:"properties"`
	EnumValues []EnumValueDoc `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
}

// ClassDoc describes one class with its flattened fields.
type ClassDoc struct {
	IRI          string     `json:"iri" yaml:"iri"`
	Name         string     `json:"name" yaml:"name"`
	Type         string     `json:"@type" yaml:"@type"`
	Comment      string     `json:"comment,omitempty" yaml:"comment,omitempty"`
	DataType     bool       `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Deprecated   bool       `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	SupersededBy []string   `json:"supersededBy,omitempty" yaml:"supersededBy,omitempty"`
	Parents      []string   `json:"parents,omitempty" yaml:"parents,omitempty"`
	Fields       []FieldDoc `json:"fields,omitempty" yaml:"fields,omitempty"`
	EnumValues   []string   `json:"enumValues,omitempty" yaml:"enumValues,omitempty"`
}

// FieldDoc describes one effective field of a class.
type FieldDoc struct {
	Name          string   `json:"name" yaml:"name"`
	Property      string   `json:"property" yaml:"property"`
	InheritedFrom string   `json:"inheritedFrom,omitempty" yaml:"inheritedFrom,omitempty"`
	Type          string   `json:"type" yaml:"type"`
	Members       []string `json:"members" yaml:"members"`
	Optional      bool     `json:"optional" yaml:"optional"`
	Multiple      bool     `json:"multiple" yaml:"multiple"`
}

// PropertyDoc describes one property type.
type PropertyDoc struct {
	IRI          string   `json:"iri" yaml:"iri"`
	Name         string   `json:"name" yaml:"name"`
	Comment      string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Deprecated   bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	SupersededBy []string `json:"supersededBy,omitempty" yaml:"supersededBy,omitempty"`
	Domains      []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	Ranges       []string `json:"ranges,omitempty" yaml:"ranges,omitempty"`
}

// EnumValueDoc describes one enumeration member.
type EnumValueDoc struct {
	IRI     string   `json:"iri" yaml:"iri"`
	Name    string   `json:"name" yaml:"name"`
	Comment string   `json:"comment,omitempty" yaml:"comment,omitempty"`
	Classes []string `json:"classes" yaml:"classes"`
}

// Document builds the document view of g. Comments include deprecation
// notices when the profile includes comments.
func (e *Exporter) Document(g *graph.Graph) Document {
	doc := Document{
		Namespace:  e.vocab.Namespace(),
		Classes:    make([]ClassDoc, 0),
		Properties: make([]PropertyDoc, 0),
	}

	for _, c := range g.Classes() {
		cd := ClassDoc{
			IRI:        c.IRI.Value(),
			Name:       c.Name,
			Type:       c.TypeProperty().Value,
			DataType:   c.IsDataType,
			Deprecated: c.Deprecated(),
			Parents:    classNames(c.Parents()),
		}
		if e.profile.IncludeComments {
			cd.Comment = c.Comment()
		}
		if e.profile.IncludeDeprecation {
			cd.SupersededBy = iriNames(c.SupersededBy())
		}
		for _, f := range c.Fields() {
			fd := FieldDoc{
				Name:     f.Name,
				Property: f.Type.IRI.Value(),
				Type:     f.Value.String(),
				Members:  append([]string{}, f.Value.Members...),
				Optional: f.Optional,
				Multiple: f.Multiple,
			}
			if f.Inherited(c) {
				fd.InheritedFrom = f.Owner.Name
			}
			cd.Fields = append(cd.Fields, fd)
		}
		if e.profile.IncludeEnumValues {
			for _, v := range c.EnumValues() {
				cd.EnumValues = append(cd.EnumValues, v.Name)
			}
		}
		doc.Classes = append(doc.Classes, cd)
	}

	for _, p := range g.Properties() {
		pd := PropertyDoc{
			IRI:        p.IRI.Value(),
			Name:       p.Name,
			Deprecated: p.Deprecated(),
			Domains:    classNames(p.Classes()),
			Ranges:     iriNames(p.Ranges()),
		}
		if e.profile.IncludeComments {
			pd.Comment = p.Comment()
		}
		if e.profile.IncludeDeprecation {
			pd.SupersededBy = iriNames(p.SupersededBy())
		}
		doc.Properties = append(doc.Properties, pd)
	}

	if e.profile.IncludeEnumValues {
		for _, v := range g.EnumValues() {
			vd := EnumValueDoc{
				IRI:     v.IRI.Value(),
				Name:    v.Name,
				Classes: classNames(v.Classes()),
			}
			if e.profile.IncludeComments {
				vd.Comment = v.Comment()
			}
			doc.EnumValues = append(doc.EnumValues, vd)
		}
	}
	return doc
}

func classNames(classes []*graph.Class) []string {
	if len(classes) == 0 {
		return nil
	}
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

func iriNames(iris []triples.IRI) []string {
	if len(iris) == 0 {
		return nil
	}
	out := make([]string, len(iris))
	for i, iri := range iris {
		out[i] = iri.Name()
	}
	return out
}
