// Package xmldoc adapts github.com/beevik/etree documents to the
// document.Adapter interface.
//
// Collections are runs of same-named sibling elements: "/a/item[2]" is the
// third <item> child of <a>. Map collections have no markup
// representation and are rejected with document.ErrUnsupportedCollection.
package xmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"

	"docmapper/internal/document"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

const xmlnsPrefix = "xmlns"

// Document is a markup tree.
type Document struct {
	doc *etree.Document
}

var (
	_ document.Adapter = (*Document)(nil)
	_ document.Lister  = (*Document)(nil)
)

// New creates an empty document.
func New() *Document {
	return &Document{doc: etree.NewDocument()}
}

// Wrap adapts an existing etree document.
func Wrap(doc *etree.Document) *Document {
	return &Document{doc: doc}
}

// Parse reads a document from XML bytes.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	return Wrap(doc), nil
}

// ParseFile reads a document from an XML file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read XML file %s: %w", path, err)
	}

	return Parse(data)
}

// Etree returns the underlying etree document.
func (d *Document) Etree() *etree.Document {
	return d.doc
}

// WriteTo serializes the document with two-space indentation.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// Root implements document.Adapter.
func (d *Document) Root() document.Node {
	if root := d.doc.Root(); root != nil {
		return root
	}

	return nil
}

// Name implements document.Adapter.
func (d *Document) Name(n document.Node) document.QName {
	el := element(n)
	if el == nil {
		return document.QName{}
	}

	return document.QName{Space: el.Space, Local: el.Tag}
}

// CreateRoot implements document.Adapter.
func (d *Document) CreateRoot(seg fieldpath.Segment, ns namespace.Binding) (document.Node, error) {
	if d.doc.Root() != nil {
		return nil, document.ErrRootExists
	}

	root := d.doc.CreateElement(ns.Qualify(seg.Name()))
	if ns.URI != "" {
		root.CreateAttr(xmlnsPrefix+":"+ns.Alias, ns.URI)
	}

	return root, nil
}

// Declarations implements document.Adapter. A default namespace
// declaration is reported with an empty alias.
func (d *Document) Declarations(n document.Node) []namespace.Binding {
	el := element(n)
	if el == nil {
		return nil
	}

	var out []namespace.Binding

	for _, a := range el.Attr {
		switch {
		case a.Space == xmlnsPrefix:
			out = append(out, namespace.Binding{Alias: a.Key, URI: a.Value})
		case a.Space == "" && a.Key == xmlnsPrefix:
			out = append(out, namespace.Binding{URI: a.Value})
		}
	}

	return out
}

// Declare implements document.Adapter.
func (d *Document) Declare(n document.Node, b namespace.Binding) error {
	el := element(n)
	if el == nil {
		return document.ErrNoRoot
	}

	if b.URI == "" {
		return nil
	}

	key := declarationKey(b.Alias)
	if el.SelectAttr(key) != nil {
		return nil
	}

	el.CreateAttr(key, b.URI)

	return nil
}

// ChildrenByName implements document.Adapter.
func (d *Document) ChildrenByName(parent document.Node, seg fieldpath.Segment, ns namespace.Binding) ([]document.Entry, error) {
	if seg.Collection() == fieldpath.CollectionMap {
		return nil, document.ErrUnsupportedCollection
	}

	el := element(parent)
	if el == nil {
		return nil, nil
	}

	var out []document.Entry

	for _, child := range el.ChildElements() {
		if matchesElement(child, seg.Name(), ns) {
			out = append(out, document.Entry{Node: child})
		}
	}

	return out, nil
}

// CreateChild implements document.Adapter. New collection members are
// placed right after the last existing member.
func (d *Document) CreateChild(parent document.Node, seg fieldpath.Segment, ns namespace.Binding) (document.Node, error) {
	if seg.Collection() == fieldpath.CollectionMap {
		return nil, document.ErrUnsupportedCollection
	}

	el := element(parent)
	if el == nil {
		return nil, document.ErrNoRoot
	}

	child := etree.NewElement(ns.Qualify(seg.Name()))

	var last *etree.Element

	if seg.IsCollection() {
		for _, sibling := range el.ChildElements() {
			if matchesElement(sibling, seg.Name(), ns) {
				last = sibling
			}
		}
	}

	if last != nil {
		el.InsertChildAt(last.Index()+1, child)
	} else {
		el.AddChild(child)
	}

	d.ensureDeclared(child, ns)

	return child, nil
}

// Children implements document.Lister. Attributes come first, namespace
// declarations are skipped, and element names seen more than once under the
// same parent become array segments.
func (d *Document) Children(n document.Node) []document.Child {
	el := element(n)
	if el == nil {
		return nil
	}

	var out []document.Child

	for _, a := range el.Attr {
		if a.Space == xmlnsPrefix || (a.Space == "" && a.Key == xmlnsPrefix) {
			continue
		}

		out = append(out, document.Child{Segment: fieldpath.Attribute(a.Key).WithNamespace(a.Space)})
	}

	children := el.ChildElements()

	seen := make(map[string]int, len(children))
	for _, child := range children {
		seen[child.FullTag()]++
	}

	for _, child := range children {
		seg := fieldpath.Element(child.Tag).WithNamespace(child.Space)
		if seen[child.FullTag()] > 1 {
			seg = seg.WithCollection(fieldpath.CollectionArray)
		}

		out = append(out, document.Child{Segment: seg, Node: child})
	}

	return out
}

// Attr implements document.Adapter.
func (d *Document) Attr(n document.Node, name string, ns namespace.Binding) (string, bool) {
	el := element(n)
	if el == nil {
		return "", false
	}

	if i := findAttr(el, name, ns); i >= 0 {
		return el.Attr[i].Value, true
	}

	return "", false
}

// SetAttr implements document.Adapter.
func (d *Document) SetAttr(n document.Node, name string, ns namespace.Binding, value string) error {
	el := element(n)
	if el == nil {
		return document.ErrNoRoot
	}

	if i := findAttr(el, name, ns); i >= 0 {
		el.Attr[i].Value = value
		return nil
	}

	el.CreateAttr(ns.Qualify(name), value)
	d.ensureDeclared(el, ns)

	return nil
}

// Text implements document.Adapter. Whitespace between child elements is
// not text content.
func (d *Document) Text(n document.Node) (string, bool) {
	el := element(n)
	if el == nil {
		return "", false
	}

	found := false

	for _, tok := range el.Child {
		if _, ok := tok.(*etree.CharData); ok {
			found = true
			break
		}
	}

	if !found {
		return "", false
	}

	text := el.Text()
	if len(el.ChildElements()) > 0 && strings.TrimSpace(text) == "" {
		return "", false
	}

	return text, true
}

// SetText implements document.Adapter. Markup text is untyped, so typ is
// ignored.
func (d *Document) SetText(n document.Node, value string, _ fieldtype.Type) error {
	el := element(n)
	if el == nil {
		return document.ErrNoRoot
	}

	el.SetText(value)

	return nil
}

// ensureDeclared makes ns.Alias resolvable from el. The declaration goes on
// the root unless the root already binds the alias to another URI.
func (d *Document) ensureDeclared(el *etree.Element, ns namespace.Binding) {
	if ns.URI == "" || ns.Alias == "" {
		return
	}

	if lookupURI(el, ns.Alias) == ns.URI {
		return
	}

	target := el

	if root := d.doc.Root(); root != nil && root.SelectAttr(declarationKey(ns.Alias)) == nil {
		target = root
	}

	target.CreateAttr(declarationKey(ns.Alias), ns.URI)
}

func element(n document.Node) *etree.Element {
	el, _ := n.(*etree.Element)
	return el
}

func declarationKey(alias string) string {
	if alias == "" {
		return xmlnsPrefix
	}

	return xmlnsPrefix + ":" + alias
}

// lookupURI resolves prefix against the declarations in scope at el.
func lookupURI(el *etree.Element, prefix string) string {
	key := declarationKey(prefix)

	for e := el; e != nil; e = e.Parent() {
		if a := e.SelectAttr(key); a != nil {
			return a.Value
		}
	}

	return ""
}

func matchesElement(el *etree.Element, name string, ns namespace.Binding) bool {
	if el.Tag != name {
		return false
	}

	switch {
	case ns.IsZero():
		return el.Space == ""
	case ns.URI != "":
		return lookupURI(el, el.Space) == ns.URI
	default:
		return el.Space == ns.Alias
	}
}

func findAttr(el *etree.Element, name string, ns namespace.Binding) int {
	for i, a := range el.Attr {
		if a.Key != name || a.Space == xmlnsPrefix {
			continue
		}

		switch {
		case ns.IsZero():
			if a.Space == "" {
				return i
			}
		case ns.URI != "":
			if a.Space != "" && lookupURI(el, a.Space) == ns.URI {
				return i
			}
		default:
			if a.Space == ns.Alias {
				return i
			}
		}
	}

	return -1
}
