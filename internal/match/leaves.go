package match

import (
	"errors"
	"fmt"

	"docmapper/internal/document"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

// anonymousRoot names the root of documents whose root carries no name.
// Writers adopt an anonymous root for any root name.
const anonymousRoot = "root"

// ErrNotListable reports an adapter that cannot enumerate children.
var ErrNotListable = errors.New("document adapter cannot list children")

// Leaf is one scalar position of a document.
type Leaf struct {
	// Path addresses the leaf; repeated nodes are wildcard segments.
	Path fieldpath.Path
	// Sample is the first non-blank text seen at Path.
	Sample string
	// Type is inferred from Sample.
	Type fieldtype.Type
}

// Name returns the name of the last path segment.
func (l Leaf) Name() string {
	seg, _ := l.Path.LastSegment()
	return seg.Name()
}

// Parent returns the name of the segment above the leaf.
func (l Leaf) Parent() string {
	parent, ok := l.Path.ParentPath()
	if !ok {
		return ""
	}

	seg, _ := parent.LastSegment()

	return seg.Name()
}

// Leaves lists the distinct scalar positions of doc in document order.
// Names that are not valid path names are skipped.
func Leaves(doc document.Adapter) ([]Leaf, error) {
	lister, ok := doc.(document.Lister)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotListable, doc)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil
	}

	name := doc.Name(root)
	if name.Local == "" {
		name.Local = anonymousRoot
	}

	w := &walker{doc: doc, lister: lister, index: make(map[string]int)}
	w.walk(fieldpath.New(fieldpath.Element(name.Local).WithNamespace(name.Space)), root)

	return w.leaves, nil
}

type walker struct {
	doc    document.Adapter
	lister document.Lister
	leaves []Leaf
	index  map[string]int
}

func (w *walker) walk(p fieldpath.Path, n document.Node) {
	children := w.lister.Children(n)
	text, hasText := w.doc.Text(n)

	elements := 0

	for _, c := range children {
		cp := p.Append(c.Segment)

		if c.Segment.IsAttribute() {
			v, _ := w.doc.Attr(n, c.Segment.Name(), namespace.Binding{Alias: c.Segment.Namespace()})
			w.add(cp, v)

			continue
		}

		elements++
		w.walk(cp, c.Node)
	}

	// attribute-only nodes are containers, bare nodes are empty leaves
	if elements == 0 && (hasText || len(children) == 0) {
		w.add(p, text)
	}
}

func (w *walker) add(p fieldpath.Path, sample string) {
	key := p.String()

	if i, ok := w.index[key]; ok {
		if w.leaves[i].Type == fieldtype.TypeAny {
			w.leaves[i].Sample = sample
			w.leaves[i].Type = InferType(sample)
		}

		return
	}

	if _, err := fieldpath.Parse(key); err != nil {
		return
	}

	w.index[key] = len(w.leaves)
	w.leaves = append(w.leaves, Leaf{Path: p, Sample: sample, Type: InferType(sample)})
}
