package export_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/schemagraph/export"
	"github.com/c360studio/schemagraph/graph"
	"github.com/c360studio/schemagraph/triples"
	"github.com/c360studio/schemagraph/vocabulary/schemaorg"
)

const sampleVocabulary = `<https://schema.org/Thing> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/Thing> <http://www.w3.org/2000/01/rdf-schema#comment> "The most generic type of item." .
<https://schema.org/Person> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/Person> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <https://schema.org/Thing> .
<https://schema.org/Person> <http://www.w3.org/2000/01/rdf-schema#comment> "A person (alive, dead, undead, or fictional).\nSee \"Agent\"." .
<https://schema.org/Text> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <https://schema.org/DataType> .
<https://schema.org/Text> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/DayOfWeek> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2000/01/rdf-schema#Class> .
<https://schema.org/Monday> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <https://schema.org/DayOfWeek> .
<https://schema.org/Monday> <http://www.w3.org/2000/01/rdf-schema#comment> "Café ☕ day" .
<https://schema.org/name> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/1999/02/22-rdf-syntax-ns#Property> .
<https://schema.org/name> <https://schema.org/domainIncludes> <https://schema.org/Thing> .
<https://schema.org/name> <https://schema.org/rangeIncludes> <https://schema.org/Text> .
<https://schema.org/knows> <https://schema.org/domainIncludes> <https://schema.org/Person> .
<https://schema.org/knows> <https://schema.org/rangeIncludes> <https://schema.org/Person> .
<https://schema.org/knows> <https://schema.org/supersededBy> <https://schema.org/knowsAbout> .
<https://schema.org/knowsAbout> <https://schema.org/domainIncludes> <https://schema.org/Person> .
`

func resolve(t *testing.T, nt string) *graph.Graph {
	t.Helper()
	r := graph.NewResolver(schemaorg.Default(), graph.WithLogger(slog.New(slog.DiscardHandler)))
	filter := triples.NewFilter(schemaorg.Default())
	require.NoError(t, r.Consume(triples.Decode(context.Background(), strings.NewReader(nt), filter)))
	g, err := r.Resolve()
	require.NoError(t, err)
	return g
}

func exportString(t *testing.T, g *graph.Graph, format export.Format) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, export.Write(&buf, g, format))
	return buf.String()
}

func TestNTriplesRoundTrip(t *testing.T) {
	g := resolve(t, sampleVocabulary)
	first := exportString(t, g, export.FormatNTriples)
	require.NotEmpty(t, first)

	again := resolve(t, first)
	second := exportString(t, again, export.FormatNTriples)
	assert.Equal(t, first, second)

	person, ok := again.Class("https://schema.org/Person")
	require.True(t, ok)
	assert.Equal(t, "A person (alive, dead, undead, or fictional).\nSee \"Agent\".", person.Comment())

	monday, ok := again.EnumValue("https://schema.org/Monday")
	require.True(t, ok)
	assert.Equal(t, "Café ☕ day", monday.Comment())
}

func TestNTriplesOutputShape(t *testing.T) {
	out := exportString(t, resolve(t, sampleVocabulary), export.FormatNTriples)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		assert.True(t, strings.HasSuffix(line, " ."), line)
	}
	assert.Contains(t, out, `<https://schema.org/Person> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <https://schema.org/Thing> .`)
	assert.Contains(t, out, `<https://schema.org/knows> <https://schema.org/supersededBy> <https://schema.org/knowsAbout> .`)
	assert.Equal(t, 1, strings.Count(out, `<https://schema.org/Monday> <http://www.w3.org/2000/01/rdf-schema#comment>`))
}

func TestExportTurtle(t *testing.T) {
	out := exportString(t, resolve(t, sampleVocabulary), export.FormatTurtle)

	assert.Contains(t, out, "@prefix schema: <https://schema.org/> .")
	assert.Contains(t, out, "@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .")
	assert.Contains(t, out, "\nschema:Person\n")
	assert.Contains(t, out, "    a ")
	assert.Contains(t, out, `"A person (alive, dead, undead, or fictional).\nSee \"Agent\"."`)
	assert.True(t, strings.HasSuffix(out, " .\n\n"))
}

func TestExportJSON(t *testing.T) {
	out := exportString(t, resolve(t, sampleVocabulary), export.FormatJSON)

	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, schemaorg.Namespace, doc.Namespace)

	person := findClass(t, doc, "Person")
	assert.Equal(t, "Person", person.Type)
	assert.Equal(t, []string{"Thing"}, person.Parents)
	require.Len(t, person.Fields, 3)

	byName := map[string]export.FieldDoc{}
	for _, f := range person.Fields {
		byName[f.Name] = f
		assert.True(t, f.Optional)
		assert.True(t, f.Multiple)
	}
	assert.Equal(t, "Thing", byName["name"].InheritedFrom)
	assert.Equal(t, "Text", byName["name"].Type)
	assert.Equal(t, "never", byName["knowsAbout"].Type)
	assert.Empty(t, byName["knows"].InheritedFrom)

	day := findClass(t, doc, "DayOfWeek")
	assert.Equal(t, []string{"Monday"}, day.EnumValues)

	var knows export.PropertyDoc
	for _, p := range doc.Properties {
		if p.Name == "knows" {
			knows = p
		}
	}
	assert.True(t, knows.Deprecated)
	assert.Equal(t, []string{"knowsAbout"}, knows.SupersededBy)
	assert.Equal(t, "@deprecated Consider using knowsAbout instead.", knows.Comment)
}

func TestExportYAML(t *testing.T) {
	out := exportString(t, resolve(t, sampleVocabulary), export.FormatYAML)
	assert.Regexp(t, `['"]@type['"]: Person`, out)

	var doc export.Document
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	text := findClass(t, doc, "Text")
	assert.True(t, text.DataType)
	require.Len(t, doc.EnumValues, 1)
	assert.Equal(t, []string{"DayOfWeek"}, doc.EnumValues[0].Classes)
}

func TestMinimalProfile(t *testing.T) {
	exporter, err := export.NewExporter(export.ProfileMinimal, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, resolve(t, sampleVocabulary), export.FormatNTriples))
	assert.NotContains(t, buf.String(), "rdf-schema#comment")
	assert.NotContains(t, buf.String(), "supersededBy")
	assert.Contains(t, buf.String(), "<https://schema.org/Monday>")
}

func TestExportUnsupportedFormat(t *testing.T) {
	err := export.Write(&bytes.Buffer{}, resolve(t, sampleVocabulary), export.Format("rdfxml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  export.Format
	}{
		{"turtle", export.FormatTurtle},
		{"ttl", export.FormatTurtle},
		{".nt", export.FormatNTriples},
		{"NTriples", export.FormatNTriples},
		{"json", export.FormatJSON},
		{"yml", export.FormatYAML},
		{".yaml", export.FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := export.ParseFormat("rdfxml")
	assert.Error(t, err)
}

func TestFormatRegistry(t *testing.T) {
	assert.Equal(t, []string{"json", "ntriples", "turtle", "yaml"}, export.Formats())

	info, ok := export.GetFormatInfo(export.FormatNTriples)
	require.True(t, ok)
	assert.Equal(t, "application/n-triples", info.MIMEType)
	assert.Equal(t, ".nt", info.Extension)

	_, ok = export.GetFormatInfo(export.Format("rdfxml"))
	assert.False(t, ok)
}

func TestProfiles(t *testing.T) {
	assert.Equal(t, []export.Profile{export.ProfileFull, export.ProfileMinimal}, export.ListProfiles())

	cfg, err := export.GetProfileConfig(export.ProfileFull)
	require.NoError(t, err)
	assert.True(t, cfg.IncludeComments)

	_, err = export.GetProfileConfig(export.Profile("bfo"))
	assert.Error(t, err)
}

func findClass(t *testing.T, doc export.Document, name string) export.ClassDoc {
	t.Helper()
	for _, c := range doc.Classes {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("class %s not in document", name)
	return export.ClassDoc{}
}
