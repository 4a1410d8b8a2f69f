package field

import (
	"fmt"

	"docmapper/internal/document"
	"docmapper/internal/fieldpath"
	"docmapper/internal/namespace"
)

// DefaultMaxIndex is the largest collection index a Writer accepts unless
// configured otherwise.
const DefaultMaxIndex = 1 << 16

// WriterConfig controls how a Writer treats namespaces and indices.
type WriterConfig struct {
	// StrictNamespaces rejects aliases the registry cannot resolve. When
	// false such names are written unqualified.
	StrictNamespaces bool

	// MaxIndex bounds the collection indices a path may use, since every
	// missing entry before the index is filled with a placeholder. Zero
	// means DefaultMaxIndex.
	MaxIndex int
}

// DefaultWriterConfig returns the lenient configuration.
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{MaxIndex: DefaultMaxIndex}
}

func (c WriterConfig) maxIndex() int {
	if c.MaxIndex <= 0 {
		return DefaultMaxIndex
	}

	return c.MaxIndex
}

// Writer builds one output document field by field.
//
// A Writer is not safe for concurrent use. It caches the nodes it located
// by path, so the document must not be restructured behind its back.
type Writer struct {
	adapter  document.Adapter
	registry *namespace.Registry
	hook     ConversionHook
	config   WriterConfig
	nodes    map[string]document.Node
}

// NewWriter creates a writer for the document behind adapter. When the
// document already has a root, its namespace declarations are added to reg.
func NewWriter(adapter document.Adapter, reg *namespace.Registry, hook ConversionHook, cfg WriterConfig) *Writer {
	if reg == nil {
		reg = namespace.NewRegistry()
	}

	if root := adapter.Root(); root != nil {
		reg.Seed(adapter.Declarations(root))
	}

	return &Writer{
		adapter:  adapter,
		registry: reg,
		hook:     hook,
		config:   cfg,
		nodes:    make(map[string]document.Node),
	}
}

// Registry returns the registry the writer resolves aliases with.
func (w *Writer) Registry() *namespace.Registry {
	return w.registry
}

// Write stores f.Value at p, creating whatever structure is missing.
//
// A nil value is a no-op. Namespaces and index bounds are checked and the
// value converted before any node is created, so those failures leave the
// document untouched.
func (w *Writer) Write(p fieldpath.Path, f Field) error {
	if p.IsEmpty() {
		return fieldpath.ErrEmptyPath
	}

	if p.HasWildcard() {
		return fmt.Errorf("%w: %s", ErrWildcardWrite, p)
	}

	if f.Value == nil {
		return nil
	}

	for _, seg := range p.Segments() {
		if _, err := w.binding(p, seg); err != nil {
			return err
		}

		if i, ok := seg.Index(); ok && i > w.config.maxIndex() {
			return fmt.Errorf("%w: %s index %d exceeds %d", ErrIndexTooLarge, p, i, w.config.maxIndex())
		}
	}

	text, err := toText(w.hook, p.String(), f.Value, f.Type)
	if err != nil {
		return err
	}

	n, err := w.root(p)
	if err != nil {
		return err
	}

	last := p.Len() - 1
	for depth := 1; depth < last; depth++ {
		if n, err = w.locate(n, p, depth); err != nil {
			return err
		}
	}

	if last == 0 {
		return w.adapter.SetText(n, text, f.Type)
	}

	seg := p.Segment(last)
	if seg.IsAttribute() {
		ns, err := w.binding(p, seg)
		if err != nil {
			return err
		}

		return w.adapter.SetAttr(n, seg.Name(), ns, text)
	}

	if n, err = w.locate(n, p, last); err != nil {
		return err
	}

	return w.adapter.SetText(n, text, f.Type)
}

// root returns the document root, creating it from the first segment of p
// when the document is empty. A new root declares every binding the
// registry holds.
func (w *Writer) root(p fieldpath.Path) (document.Node, error) {
	seg := p.Segment(0)

	ns, err := w.binding(p, seg)
	if err != nil {
		return nil, err
	}

	want := ns.Qualify(seg.Name())

	root := w.adapter.Root()
	if root == nil {
		if root, err = w.adapter.CreateRoot(seg, ns); err != nil {
			return nil, err
		}

		for _, b := range w.registry.Bindings() {
			if err := w.adapter.Declare(root, b); err != nil {
				return nil, err
			}
		}

		w.registry.Seed(w.adapter.Declarations(root))

		return root, nil
	}

	// An anonymous root adopts whatever name the paths use.
	got := w.adapter.Name(root)
	if got.Local != "" && !w.sameName(got, seg, ns) {
		return nil, &RootMismatchError{Path: p.String(), Want: want, Got: got.String()}
	}

	return root, nil
}

// sameName compares by namespace URI when both sides resolve to one, and by
// literal prefix otherwise.
func (w *Writer) sameName(got document.QName, seg fieldpath.Segment, ns namespace.Binding) bool {
	if got.Local != seg.Name() {
		return false
	}

	if got.Space == ns.Alias {
		return true
	}

	if ns.URI == "" {
		return false
	}

	uri, ok := w.registry.Resolve(got.Space)

	return ok && uri == ns.URI
}

// locate returns the node for segment depth of p below parent, creating it
// (and any collection placeholders before it) when missing.
func (w *Writer) locate(parent document.Node, p fieldpath.Path, depth int) (document.Node, error) {
	cacheKey := p.Prefix(depth + 1).String()
	if n, ok := w.nodes[cacheKey]; ok {
		return n, nil
	}

	seg := p.Segment(depth)

	ns, err := w.binding(p, seg)
	if err != nil {
		return nil, err
	}

	entries, err := w.adapter.ChildrenByName(parent, seg, ns)
	if err != nil {
		return nil, fmt.Errorf("path %s: %w", p, err)
	}

	var n document.Node

	switch {
	case seg.Collection() == fieldpath.CollectionMap:
		key, _ := seg.Key()
		for _, e := range entries {
			if e.Key == key {
				n = e.Node
				break
			}
		}
	case seg.IsCollection():
		idx, _ := seg.Index()
		for len(entries) <= idx {
			child, err := w.adapter.CreateChild(parent, seg, ns)
			if err != nil {
				return nil, fmt.Errorf("path %s: %w", p, err)
			}

			entries = append(entries, document.Entry{Node: child})
		}

		n = entries[idx].Node
	case len(entries) > 0:
		n = entries[0].Node
	}

	if n == nil {
		if n, err = w.adapter.CreateChild(parent, seg, ns); err != nil {
			return nil, fmt.Errorf("path %s: %w", p, err)
		}
	}

	w.nodes[cacheKey] = n

	return n, nil
}

func (w *Writer) binding(p fieldpath.Path, seg fieldpath.Segment) (namespace.Binding, error) {
	alias := seg.Namespace()
	if alias == "" {
		return namespace.Binding{}, nil
	}

	if b, ok := w.registry.Binding(alias); ok {
		return b, nil
	}

	if w.config.StrictNamespaces {
		return namespace.Binding{}, &UnresolvedNamespaceError{Path: p.String(), Alias: alias}
	}

	return namespace.Binding{}, nil
}
