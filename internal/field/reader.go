package field

import (
	"errors"

	"docmapper/internal/document"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

// Reader extracts field values from documents.
type Reader struct {
	hook ConversionHook
}

// NewReader creates a reader converting text through hook. With a nil hook
// only textual types can be read.
func NewReader(hook ConversionHook) *Reader {
	return &Reader{hook: hook}
}

// Read resolves p against the document behind adapter.
//
// Paths without wildcards yield a Field; StatusNotFound when nothing is
// there. Wildcard paths yield a *Group with one member per matched node in
// document order, each with a concrete path; members whose value could not
// be converted are kept with StatusFailed and their errors are joined into
// the returned error.
func (r *Reader) Read(p fieldpath.Path, typ fieldtype.Type, adapter document.Adapter, reg *namespace.Registry) (Result, error) {
	pass := &readPass{
		hook:     r.hook,
		path:     p,
		typ:      typ,
		adapter:  adapter,
		registry: reg,
	}

	var (
		fields []Field
		err    error
	)

	if root := adapter.Root(); root != nil && !p.IsEmpty() {
		fields, err = pass.enterRoot(root)
	}

	if p.HasWildcard() {
		return &Group{Path: p, Members: fields}, err
	}

	if len(fields) == 0 {
		return Field{Path: p, Type: typ, Status: StatusNotFound}, err
	}

	return fields[0], err
}

// ReadValue reads a path without wildcards and returns its value, or nil
// when absent.
func (r *Reader) ReadValue(p fieldpath.Path, typ fieldtype.Type, adapter document.Adapter, reg *namespace.Registry) (any, error) {
	res, err := r.Read(p, typ, adapter, reg)
	if err != nil {
		return nil, err
	}

	fields := res.Fields()
	if len(fields) == 0 {
		return nil, nil
	}

	return fields[0].Value, nil
}

type readPass struct {
	hook     ConversionHook
	path     fieldpath.Path
	typ      fieldtype.Type
	adapter  document.Adapter
	registry *namespace.Registry
}

// enterRoot starts the walk. The root is entered whatever its name: a path
// written for one root name still reads a document that uses another.
func (rp *readPass) enterRoot(root document.Node) ([]Field, error) {
	if rp.path.Len() == 1 {
		return rp.text(root, rp.path)
	}

	return rp.visit(root, 1, rp.path)
}

// visit resolves segment depth below n. cur is the path with every
// wildcard above depth already made concrete.
func (rp *readPass) visit(n document.Node, depth int, cur fieldpath.Path) ([]Field, error) {
	seg := rp.path.Segment(depth)
	ns := rp.binding(seg)

	if seg.IsAttribute() {
		return rp.attr(n, seg, ns, cur)
	}

	entries, err := rp.adapter.ChildrenByName(n, seg, ns)
	if errors.Is(err, document.ErrUnsupportedCollection) {
		return []Field{{Path: cur, Type: rp.typ, Status: StatusUnsupported}}, nil
	}

	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, nil
	}

	switch {
	case seg.IsWildcard():
		var (
			out  []Field
			errs []error
		)

		for i, e := range entries {
			next := cur.WithIndex(depth, i)
			if seg.Collection() == fieldpath.CollectionMap {
				next = cur.WithKey(depth, e.Key)
			}

			fields, err := rp.descend(e.Node, depth, next)
			if err != nil {
				errs = append(errs, err)
			}

			out = append(out, fields...)
		}

		return out, errors.Join(errs...)
	case seg.Collection() == fieldpath.CollectionMap:
		key, _ := seg.Key()
		for _, e := range entries {
			if e.Key == key {
				return rp.descend(e.Node, depth, cur)
			}
		}

		return nil, nil
	case seg.IsCollection():
		idx, _ := seg.Index()
		if idx >= len(entries) {
			return nil, nil
		}

		return rp.descend(entries[idx].Node, depth, cur)
	default:
		return rp.descend(entries[0].Node, depth, cur)
	}
}

func (rp *readPass) descend(n document.Node, depth int, cur fieldpath.Path) ([]Field, error) {
	if depth == rp.path.Len()-1 {
		return rp.text(n, cur)
	}

	return rp.visit(n, depth+1, cur)
}

func (rp *readPass) text(n document.Node, cur fieldpath.Path) ([]Field, error) {
	text, ok := rp.adapter.Text(n)
	if !ok {
		return []Field{{Path: cur, Type: rp.typ, Status: StatusNotFound}}, nil
	}

	return rp.convert(text, cur)
}

func (rp *readPass) attr(n document.Node, seg fieldpath.Segment, ns namespace.Binding, cur fieldpath.Path) ([]Field, error) {
	text, ok := rp.adapter.Attr(n, seg.Name(), ns)
	if !ok {
		return []Field{{Path: cur, Type: rp.typ, Status: StatusNotFound}}, nil
	}

	return rp.convert(text, cur)
}

// convert keeps a failed field in the result so wildcard groups stay
// aligned with the document.
func (rp *readPass) convert(text string, cur fieldpath.Path) ([]Field, error) {
	v, err := fromText(rp.hook, cur.String(), text, rp.typ)
	if err != nil {
		return []Field{{Path: cur, Type: rp.typ, Status: StatusFailed}}, err
	}

	return []Field{{Path: cur, Type: rp.typ, Value: v, Status: StatusSupported}}, nil
}

func (rp *readPass) binding(seg fieldpath.Segment) namespace.Binding {
	if rp.registry == nil {
		return namespace.Binding{Alias: seg.Namespace()}
	}

	b, _ := rp.registry.Binding(seg.Namespace())

	return b
}
