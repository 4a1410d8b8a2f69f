package match

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmapper/internal/convert"
	"docmapper/internal/document/tree"
	"docmapper/internal/document/xmldoc"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/mapping"
	"docmapper/internal/namespace"
	"docmapper/internal/session"
)

const sourceXML = `<s:Order xmlns:s="urn:src" id="A-1">
  <s:customer><s:firstName>Ozzie</s:firstName><s:lastName>Osborne</s:lastName></s:customer>
  <s:line sku="X1"><s:qty>2</s:qty><s:price>9.50</s:price></s:line>
  <s:line sku="Y2"><s:qty>1</s:qty><s:price>20</s:price></s:line>
  <s:created>2024-03-01T10:00:00Z</s:created>
  <s:note/>
</s:Order>`

const targetJSON = `{"OrderOut": {
  "id": "x",
  "customer": {"first_name": "", "last_name": ""},
  "items": [{"sku": "", "quantity": 0, "price": 0.0}],
  "createdAt": "2020-01-01T00:00:00Z",
  "warehouse": ""
}}`

func sourceLeaves(t *testing.T) (*xmldoc.Document, []Leaf) {
	t.Helper()

	doc, err := xmldoc.Parse([]byte(sourceXML))
	require.NoError(t, err)

	leaves, err := Leaves(doc)
	require.NoError(t, err)

	return doc, leaves
}

func targetLeaves(t *testing.T) (*tree.Document, []Leaf) {
	t.Helper()

	doc, err := tree.ParseJSON([]byte(targetJSON))
	require.NoError(t, err)

	leaves, err := Leaves(doc)
	require.NoError(t, err)

	return doc, leaves
}

type leafView struct {
	Path string
	Type fieldtype.Type
}

func view(leaves []Leaf) []leafView {
	out := make([]leafView, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, leafView{Path: l.Path.String(), Type: l.Type})
	}

	return out
}

func leaf(path, sample string) Leaf {
	return Leaf{Path: fieldpath.MustParse(path), Sample: sample, Type: InferType(sample)}
}

func TestLeavesMarkup(t *testing.T) {
	_, leaves := sourceLeaves(t)

	want := []leafView{
		{"/s:Order/@id", fieldtype.TypeString},
		{"/s:Order/s:customer/s:firstName", fieldtype.TypeString},
		{"/s:Order/s:customer/s:lastName", fieldtype.TypeString},
		{"/s:Order/s:line[]/@sku", fieldtype.TypeString},
		{"/s:Order/s:line[]/s:qty", fieldtype.TypeLong},
		{"/s:Order/s:line[]/s:price", fieldtype.TypeDouble},
		{"/s:Order/s:created", fieldtype.TypeDateTime},
		{"/s:Order/s:note", fieldtype.TypeAny},
	}

	if diff := cmp.Diff(want, view(leaves)); diff != "" {
		t.Errorf("unexpected leaves (-want +got):\n%s", diff)
	}

	assert.Equal(t, "X1", leaves[3].Sample, "first member wins")
}

func TestLeavesTree(t *testing.T) {
	_, leaves := targetLeaves(t)

	want := []leafView{
		{"/OrderOut/id", fieldtype.TypeString},
		{"/OrderOut/customer/first_name", fieldtype.TypeAny},
		{"/OrderOut/customer/last_name", fieldtype.TypeAny},
		{"/OrderOut/items[]/sku", fieldtype.TypeAny},
		{"/OrderOut/items[]/quantity", fieldtype.TypeLong},
		{"/OrderOut/items[]/price", fieldtype.TypeDouble},
		{"/OrderOut/createdAt", fieldtype.TypeDateTime},
		{"/OrderOut/warehouse", fieldtype.TypeAny},
	}

	if diff := cmp.Diff(want, view(leaves)); diff != "" {
		t.Errorf("unexpected leaves (-want +got):\n%s", diff)
	}
}

func TestLeavesAnonymousRootAndScalarLists(t *testing.T) {
	doc, err := tree.ParseYAML([]byte("a: 1\ntags: [x, y]\n\"odd[key\": z\n"))
	require.NoError(t, err)

	leaves, err := Leaves(doc)
	require.NoError(t, err)

	assert.Equal(t, []leafView{
		{"/root/a", fieldtype.TypeLong},
		{"/root/tags[]", fieldtype.TypeString},
	}, view(leaves))
}

func TestLeavesEmptyDocument(t *testing.T) {
	leaves, err := Leaves(tree.New())
	require.NoError(t, err)
	assert.Empty(t, leaves)
}

func TestRankCandidates(t *testing.T) {
	target := leaf("/Out/customer/customer_id", "7")
	sources := []Leaf{
		leaf("/In/customer/name", "Ozzie"),
		leaf("/In/customer/CustomerID", "7"),
		leaf("/In/order/id", "12"),
		leaf("/In/customerNo", "7"),
	}

	ranked := RankCandidates(target, sources, convert.CategoryAll)
	require.Len(t, ranked, 4)

	best := ranked.Best()
	require.NotNil(t, best)
	assert.Equal(t, "/In/customer/CustomerID", best.Source.Path.String())
	assert.InDelta(t, 1.0, best.NameScore, 1e-9)
	assert.Equal(t, TypeIdentical, best.TypeCompat.Compatibility)
	assert.InDelta(t, 1.0, best.CombinedScore, 1e-9)

	assert.Equal(t, "/In/customer/name", ranked[len(ranked)-1].Source.Path.String())
	assert.Len(t, ranked.Top(2), 2)
	assert.Len(t, ranked.Top(10), 4)
	assert.NotEmpty(t, ranked.AboveThreshold(0.9))
}

func TestRankCandidatesSkipsUnboundWildcards(t *testing.T) {
	target := leaf("/Out/items[]/sku", "")
	sources := []Leaf{
		leaf("/In/sku", "A"),
		leaf("/In/lines[]/sku", "A"),
	}

	ranked := RankCandidates(target, sources, convert.CategoryAll)
	require.Len(t, ranked, 1)
	assert.Equal(t, "/In/lines[]/sku", ranked[0].Source.Path.String())
}

func TestHighConfidence(t *testing.T) {
	list := CandidateList{
		{CombinedScore: 0.9, TypeCompat: TypeCompatibilityResult{Compatibility: TypeIdentical}},
		{CombinedScore: 0.88, TypeCompat: TypeCompatibilityResult{Compatibility: TypeIdentical}},
	}

	assert.Nil(t, list.HighConfidence(0.7, 0.05), "gap too small")
	assert.True(t, list.IsAmbiguous(DefaultAmbiguityThreshold))
	assert.NotNil(t, list[:1].HighConfidence(0.7, 0.05))
	assert.Nil(t, list[:1].HighConfidence(0.95, 0.05), "score too low")

	incompatible := CandidateList{{CombinedScore: 0.9}}
	assert.Nil(t, incompatible.HighConfidence(0.7, 0.05))
	assert.Nil(t, CandidateList(nil).HighConfidence(0, 0))
}

func TestSuggest(t *testing.T) {
	src, sources := sourceLeaves(t)
	_, targets := targetLeaves(t)

	res := Suggest(sources, targets, DefaultConfig())
	require.Len(t, res.Suggestions, len(targets))

	var unresolved []string
	for _, s := range res.Unresolved() {
		unresolved = append(unresolved, s.Target.Path.String())
	}

	assert.Equal(t, []string{"/OrderOut/items[]/quantity", "/OrderOut/warehouse"}, unresolved)

	quantity := res.Unresolved()[0]
	assert.Equal(t, "/s:Order/s:line[]/s:qty", quantity.Candidates.Best().Source.Path.String())

	mf := res.Mapping(DocumentSpec(src, mapping.FormatXML), mapping.DocumentSpec{Format: mapping.FormatJSON})

	want := []mapping.FieldMapping{
		{Source: "/s:Order/@id", Target: mapping.StringOrArray{"/OrderOut/id"}},
		{Source: "/s:Order/s:customer/s:firstName", Target: mapping.StringOrArray{"/OrderOut/customer/first_name"}},
		{Source: "/s:Order/s:customer/s:lastName", Target: mapping.StringOrArray{"/OrderOut/customer/last_name"}},
		{Source: "/s:Order/s:line[]/@sku", Target: mapping.StringOrArray{"/OrderOut/items[]/sku"}},
		{
			Source: "/s:Order/s:line[]/s:price", Target: mapping.StringOrArray{"/OrderOut/items[]/price"},
			SourceType: fieldtype.TypeDouble, TargetType: fieldtype.TypeDouble,
		},
		{
			Source: "/s:Order/s:created", Target: mapping.StringOrArray{"/OrderOut/createdAt"},
			SourceType: fieldtype.TypeDateTime, TargetType: fieldtype.TypeDateTime,
		},
	}

	if diff := cmp.Diff(want, mf.Fields); diff != "" {
		t.Errorf("unexpected fields (-want +got):\n%s", diff)
	}

	assert.Equal(t, mapping.Namespaces{{Alias: "s", URI: "urn:src"}}, mf.Source.Namespaces)
	assert.True(t, mapping.Validate(mf).IsValid(), mapping.Validate(mf).Error())

	// the suggested mapping runs as is
	dst := tree.New()
	diags, err := session.New(mf, session.DefaultConfig()).Process(src, nil, dst, nil)
	require.NoError(t, err)
	assert.True(t, diags.IsValid(), diags.Error())

	var got any
	require.NoError(t, dst.Decode(&got))

	wantDoc := map[string]any{
		"OrderOut": map[string]any{
			"id":       "A-1",
			"customer": map[string]any{"first_name": "Ozzie", "last_name": "Osborne"},
			"items": []any{
				map[string]any{"sku": "X1", "price": 9.5},
				map[string]any{"sku": "Y2", "price": 20.0},
			},
			"createdAt": "2024-03-01T10:00:00Z",
		},
	}

	if diff := cmp.Diff(wantDoc, got); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func TestMappingMergesTargetsOfOneSource(t *testing.T) {
	c := Candidate{
		Source:     leaf("/In/name", "bolt"),
		TypeCompat: TypeCompatibilityResult{Compatibility: TypeIdentical},
	}

	first, second := c, c
	first.Target = leaf("/Out/label", "x")
	second.Target = leaf("/Out/title", "y")

	res := &Result{Suggestions: []Suggestion{
		{Target: first.Target, Accepted: &first},
		{Target: second.Target, Accepted: &second},
		{Target: leaf("/Out/other", "")},
	}}

	mf := res.Mapping(mapping.DocumentSpec{}, mapping.DocumentSpec{})
	require.Len(t, mf.Fields, 1)
	assert.Equal(t, mapping.StringOrArray{"/Out/label", "/Out/title"}, mf.Fields[0].Target)
	assert.Equal(t, mapping.SupportedVersion, mf.Version)
	assert.Len(t, res.Accepted(), 2)
	assert.Len(t, res.Unresolved(), 1)
}

func TestDocumentSpecSkipsDefaultNamespace(t *testing.T) {
	doc, err := xmldoc.Parse([]byte(`<a xmlns="urn:d" xmlns:p="urn:p"/>`))
	require.NoError(t, err)

	spec := DocumentSpec(doc, mapping.FormatXML)
	assert.Equal(t, mapping.Namespaces{namespace.Binding{Alias: "p", URI: "urn:p"}}, spec.Namespaces)
	assert.Equal(t, mapping.FormatXML, spec.Format)
}
