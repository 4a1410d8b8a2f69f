package tree

import (
	"errors"
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"docmapper/internal/document"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

const (
	nullTag = "!!null"
	strTag  = "!!str"
)

var errInvalidJSON = errors.New("failed to parse JSON: invalid document")

// Document is a nested map/array tree.
type Document struct {
	doc      *yaml.Node
	root     *yaml.Node
	rootName string
}

var (
	_ document.Adapter = (*Document)(nil)
	_ document.Lister  = (*Document)(nil)
)

// New creates an empty document.
func New() *Document {
	return &Document{doc: &yaml.Node{Kind: yaml.DocumentNode}}
}

// Wrap adapts a decoded yaml.v3 document node.
func Wrap(doc *yaml.Node) (*Document, error) {
	if doc.Kind == 0 {
		return New(), nil
	}

	if doc.Kind != yaml.DocumentNode {
		doc = &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}
	}

	d := &Document{doc: doc}
	if len(doc.Content) == 0 {
		return d, nil
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top-level value must be a mapping, got %s",
			document.ErrShapeConflict, kindName(top))
	}

	if len(top.Content) == 2 && top.Content[1].Kind == yaml.MappingNode {
		d.rootName = top.Content[0].Value
		d.root = top.Content[1]
	} else {
		d.root = top
	}

	return d, nil
}

// ParseYAML reads a document from YAML bytes.
func ParseYAML(data []byte) (*Document, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return Wrap(&n)
}

// ParseJSON reads a document from JSON bytes.
func ParseJSON(data []byte) (*Document, error) {
	if !gojson.Valid(data) {
		return nil, errInvalidJSON
	}

	return ParseYAML(data)
}

// ParseFile reads a document from a file, picking JSON for ".json" files
// and YAML otherwise.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return ParseJSON(data)
	}

	return ParseYAML(data)
}

// Node returns the underlying yaml.v3 document node.
func (d *Document) Node() *yaml.Node {
	return d.doc
}

// Decode decodes the whole document into v.
func (d *Document) Decode(v any) error {
	if len(d.doc.Content) == 0 {
		return nil
	}

	return d.doc.Decode(v)
}

// Root implements document.Adapter.
func (d *Document) Root() document.Node {
	if d.root == nil {
		return nil
	}

	return d.root
}

// Name implements document.Adapter. Only the root carries a name; other
// nodes are identified by the key that holds them.
func (d *Document) Name(n document.Node) document.QName {
	if node(n) == nil || node(n) != d.root {
		return document.QName{}
	}

	if space, local, ok := strings.Cut(d.rootName, ":"); ok {
		return document.QName{Space: space, Local: local}
	}

	return document.QName{Local: d.rootName}
}

// CreateRoot implements document.Adapter.
func (d *Document) CreateRoot(seg fieldpath.Segment, ns namespace.Binding) (document.Node, error) {
	if d.root != nil {
		return nil, document.ErrRootExists
	}

	name := ns.Qualify(seg.Name())
	root := &yaml.Node{Kind: yaml.MappingNode}
	top := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{keyNode(name), root}}

	d.doc.Content = []*yaml.Node{top}
	d.root = root
	d.rootName = name

	return root, nil
}

// Declarations implements document.Adapter. Nested documents carry no
// namespace declarations.
func (d *Document) Declarations(document.Node) []namespace.Binding {
	return nil
}

// Declare implements document.Adapter as a no-op.
func (d *Document) Declare(document.Node, namespace.Binding) error {
	return nil
}

// ChildrenByName implements document.Adapter. A non-sequence value under a
// key addressed as an array or list counts as a one-member collection.
func (d *Document) ChildrenByName(parent document.Node, seg fieldpath.Segment, ns namespace.Binding) ([]document.Entry, error) {
	p := node(parent)
	if p == nil || p.Kind != yaml.MappingNode {
		return nil, nil
	}

	values := lookup(p, ns.Qualify(seg.Name()))
	if len(values) == 0 {
		return nil, nil
	}

	var out []document.Entry

	switch seg.Collection() {
	case fieldpath.CollectionNone:
		for _, v := range values {
			out = append(out, document.Entry{Node: v})
		}
	case fieldpath.CollectionArray, fieldpath.CollectionList:
		v := deref(values[0])

		switch {
		case v.Kind == yaml.SequenceNode:
			for _, member := range v.Content {
				out = append(out, document.Entry{Node: member})
			}
		case !isNull(v):
			out = append(out, document.Entry{Node: v})
		}
	case fieldpath.CollectionMap:
		v := deref(values[0])
		if v.Kind != yaml.MappingNode {
			return nil, nil
		}

		for i := 0; i+1 < len(v.Content); i += 2 {
			out = append(out, document.Entry{Node: v.Content[i+1], Key: v.Content[i].Value})
		}
	}

	return out, nil
}

// CreateChild implements document.Adapter.
func (d *Document) CreateChild(parent document.Node, seg fieldpath.Segment, ns namespace.Binding) (document.Node, error) {
	p := node(parent)
	if p == nil {
		return nil, document.ErrNoRoot
	}

	if err := promote(p, yaml.MappingNode); err != nil {
		return nil, err
	}

	key := ns.Qualify(seg.Name())
	member := nullNode()

	switch seg.Collection() {
	case fieldpath.CollectionArray, fieldpath.CollectionList:
		seq, err := container(p, key, yaml.SequenceNode)
		if err != nil {
			return nil, err
		}

		seq.Content = append(seq.Content, member)
	case fieldpath.CollectionMap:
		entryKey, ok := seg.Key()
		if !ok {
			return nil, fmt.Errorf("%w: map member %q without key", document.ErrShapeConflict, key)
		}

		m, err := container(p, key, yaml.MappingNode)
		if err != nil {
			return nil, err
		}

		m.Content = append(m.Content, keyNode(entryKey), member)
	default:
		p.Content = append(p.Content, keyNode(key), member)
	}

	return member, nil
}

// Children implements document.Lister. Every key is reported as an
// element; sequence members share one array segment.
func (d *Document) Children(n document.Node) []document.Child {
	p := node(n)
	if p == nil {
		return nil
	}

	p = deref(p)
	if p.Kind != yaml.MappingNode {
		return nil
	}

	var out []document.Child

	for i := 0; i+1 < len(p.Content); i += 2 {
		seg := keySegment(p.Content[i].Value)
		v := deref(p.Content[i+1])

		if v.Kind != yaml.SequenceNode {
			out = append(out, document.Child{Segment: seg, Node: v})
			continue
		}

		seg = seg.WithCollection(fieldpath.CollectionArray)
		for _, member := range v.Content {
			out = append(out, document.Child{Segment: seg, Node: member})
		}
	}

	return out
}

func keySegment(key string) fieldpath.Segment {
	if space, local, ok := strings.Cut(key, ":"); ok {
		return fieldpath.Element(local).WithNamespace(space)
	}

	return fieldpath.Element(key)
}

// Attr implements document.Adapter. A null value counts as absent.
func (d *Document) Attr(n document.Node, name string, ns namespace.Binding) (string, bool) {
	p := node(n)
	if p == nil || p.Kind != yaml.MappingNode {
		return "", false
	}

	values := lookup(p, ns.Qualify(name))
	if len(values) == 0 {
		return "", false
	}

	return scalarText(deref(values[0]))
}

// SetAttr implements document.Adapter. Attribute values are stored as
// strings.
func (d *Document) SetAttr(n document.Node, name string, ns namespace.Binding, value string) error {
	p := node(n)
	if p == nil {
		return document.ErrNoRoot
	}

	if err := promote(p, yaml.MappingNode); err != nil {
		return err
	}

	key := ns.Qualify(name)
	if values := lookup(p, key); len(values) > 0 {
		return setScalar(values[0], value, strTag)
	}

	v := nullNode()
	p.Content = append(p.Content, keyNode(key), v)

	return setScalar(v, value, strTag)
}

// Text implements document.Adapter.
func (d *Document) Text(n document.Node) (string, bool) {
	v := node(n)
	if v == nil {
		return "", false
	}

	return scalarText(deref(v))
}

// SetText implements document.Adapter. The scalar is tagged from typ so
// numbers and booleans are emitted unquoted.
func (d *Document) SetText(n document.Node, value string, typ fieldtype.Type) error {
	v := node(n)
	if v == nil {
		return document.ErrNoRoot
	}

	return setScalar(v, value, typ.YAMLTag())
}

func node(n document.Node) *yaml.Node {
	v, _ := n.(*yaml.Node)
	return v
}

func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == nullTag
}

func scalarText(n *yaml.Node) (string, bool) {
	if n.Kind != yaml.ScalarNode || isNull(n) {
		return "", false
	}

	return n.Value, true
}

// lookup returns every value stored under key, in document order.
func lookup(m *yaml.Node, key string) []*yaml.Node {
	var out []*yaml.Node

	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			out = append(out, m.Content[i+1])
		}
	}

	return out
}

// container returns the collection stored under key, creating it when
// missing and promoting a null placeholder.
func container(m *yaml.Node, key string, kind yaml.Kind) (*yaml.Node, error) {
	if values := lookup(m, key); len(values) > 0 {
		c := deref(values[0])
		if err := promote(c, kind); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}

		return c, nil
	}

	c := &yaml.Node{Kind: kind}
	m.Content = append(m.Content, keyNode(key), c)

	return c, nil
}

// promote turns a null placeholder into an empty node of kind.
func promote(n *yaml.Node, kind yaml.Kind) error {
	if n.Kind == kind {
		return nil
	}

	if !isNull(n) {
		return fmt.Errorf("%w: cannot use %s as %s", document.ErrShapeConflict, kindName(n), kindLabel(kind))
	}

	*n = yaml.Node{Kind: kind, Line: n.Line, Column: n.Column}

	return nil
}

func setScalar(n *yaml.Node, value, tag string) error {
	if (n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode) && len(n.Content) > 0 {
		return fmt.Errorf("%w: cannot replace %s with text", document.ErrShapeConflict, kindName(n))
	}

	*n = yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: n.Line, Column: n.Column}

	return nil
}

func kindName(n *yaml.Node) string {
	if isNull(n) {
		return "null"
	}

	return kindLabel(n.Kind)
}

func kindLabel(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
