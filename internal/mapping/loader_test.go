package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmapper/internal/convert"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

func TestParse(t *testing.T) {
	yaml := `
version: "1"
source:
  format: xml
  namespaces:
    s: urn:src
    x: urn:ext
target:
  format: json
  strict_namespaces: true
121:
  /s:Order/s:id: /SourceOrderList/orders[0]/id
fields:
  - source: /s:Order/s:item[]/@sku
    target: /SourceOrderList/orders[0]/items[]/sku
  - source: /s:Order/s:total
    target: [/SourceOrderList/total, /SourceOrderList/summary/total]
    source_type: decimal
    target_type: double
  - target: /SourceOrderList/status
    default: "pending"
options:
  stop_on_error: true
  conversions: [text_number, datetime]
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)
	assert.Equal(t, FormatXML, mf.Source.Format)
	assert.Equal(t, FormatJSON, mf.Target.Format)
	assert.True(t, mf.Target.StrictNamespaces)

	// declaration order survives
	assert.Equal(t, Namespaces{
		{Alias: "s", URI: "urn:src"},
		{Alias: "x", URI: "urn:ext"},
	}, mf.Source.Namespaces)

	assert.Equal(t, "/SourceOrderList/orders[0]/id", mf.OneToOne["/s:Order/s:id"])

	require.Len(t, mf.Fields, 3)

	// untyped field
	assert.Equal(t, fieldtype.TypeAny, mf.Fields[0].SourceType)
	assert.True(t, mf.Fields[0].Target.IsSingle())

	// 1:many with types
	assert.Len(t, mf.Fields[1].Target, 2)
	assert.Equal(t, "/SourceOrderList/total", mf.Fields[1].Target.First())
	assert.Equal(t, fieldtype.TypeDecimal, mf.Fields[1].SourceType)
	assert.Equal(t, fieldtype.TypeDouble, mf.Fields[1].TargetType)

	// constant
	assert.Empty(t, mf.Fields[2].Source)
	require.True(t, mf.Fields[2].HasDefault())
	assert.Equal(t, "pending", *mf.Fields[2].Default)

	assert.True(t, mf.Options.StopOnError)

	cats, err := mf.Options.Categories()
	require.NoError(t, err)
	assert.Equal(t, convert.CategoryTextNumber|convert.CategoryDatetime, cats)
}

func TestParseMinimal(t *testing.T) {
	yaml := `
fields:
  - source: /A/b
    target: /B/b
    source_type: integer
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "1", mf.Version) // Default version
	assert.Empty(t, mf.Source.Format)
	require.Len(t, mf.Fields, 1)

	// target type follows source type
	assert.Equal(t, fieldtype.TypeInteger, mf.Fields[0].TargetType)
	assert.False(t, mf.Fields[0].HasDefault())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad type", "fields:\n  - source: /a\n    target: /b\n    source_type: quaternion\n", `unknown field type "quaternion"`},
		{"namespaces list", "source:\n  namespaces: [a, b]\n", "namespaces must be a mapping"},
		{"target map", "fields:\n  - target: {a: b}\n", "expected string or array"},
		{"not yaml", "fields: [", "failed to parse mapping YAML"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNormalize(t *testing.T) {
	mf, err := Parse([]byte(`
121:
  /A/z: /B/z
  /A/a: /B/a
fields:
  - source: /A/m
    target: /B/m
`))
	require.NoError(t, err)

	Normalize(mf)

	require.Len(t, mf.Fields, 3)
	assert.Equal(t, "/A/a", mf.Fields[0].Source)
	assert.Equal(t, "/A/z", mf.Fields[1].Source)
	assert.Equal(t, "/A/m", mf.Fields[2].Source)
	assert.Nil(t, mf.OneToOne)
}

func TestRoundTripFile(t *testing.T) {
	def := "n/a"
	mf := &File{
		Version: "1",
		Source: DocumentSpec{
			Format:     FormatXML,
			Namespaces: Namespaces{{Alias: "z", URI: "urn:z"}, {Alias: "a", URI: "urn:a"}},
		},
		Target: DocumentSpec{Format: FormatYAML},
		Fields: []FieldMapping{
			{Source: "/z:R/z:v", Target: StringOrArray{"/T/v"}, SourceType: fieldtype.TypeLong, TargetType: fieldtype.TypeLong},
			{Target: StringOrArray{"/T/a", "/T/b"}, Default: &def},
		},
	}

	path := filepath.Join(t.TempDir(), "mapping.yaml")
	require.NoError(t, WriteFile(mf, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "source_type: long")
	assert.Contains(t, string(data), "target: /T/v")
	assert.Contains(t, string(data), "- /T/a\n")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		configured Format
		path       string
		want       Format
	}{
		{"", "in.json", FormatJSON},
		{"", "in.YML", FormatYAML},
		{"", "in.xml", FormatXML},
		{"", "-", FormatXML},
		{FormatJSON, "in.xml", FormatJSON},
	}

	for _, tt := range tests {
		spec := DocumentSpec{Format: tt.configured}
		assert.Equal(t, tt.want, spec.FormatFor(tt.path), tt.path)
	}
}

func TestDocumentSpecRegistry(t *testing.T) {
	spec := DocumentSpec{Namespaces: Namespaces{{Alias: "o", URI: "urn:orders"}}}

	reg := spec.Registry()
	assert.Equal(t, []namespace.Binding{{Alias: "o", URI: "urn:orders"}}, reg.Bindings())
}
