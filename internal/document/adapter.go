// Package document defines the format-neutral view of a document tree that
// field readers and writers operate on.
//
// Each format family (namespaced markup, nested maps and arrays) provides
// an Adapter. Nodes are opaque handles that only mean something to the
// adapter that produced them; they must never be passed to another adapter.
package document

import (
	"errors"

	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

var (
	// ErrShapeConflict reports a node that cannot hold what is asked of it,
	// such as a child under a scalar value.
	ErrShapeConflict = errors.New("node shape conflict")
	// ErrUnsupportedCollection reports a collection kind the format cannot represent.
	ErrUnsupportedCollection = errors.New("collection kind not supported by this format")
	// ErrNoRoot reports an operation that needs a root on an empty document.
	ErrNoRoot = errors.New("document has no root")
	// ErrRootExists reports an attempt to create a second root.
	ErrRootExists = errors.New("document already has a root")
)

// Node is an adapter-owned handle to one tree node.
type Node any

// QName is a namespace-qualified node name.
type QName struct {
	Space string
	Local string
}

// String returns "space:local", or local when unqualified.
func (q QName) String() string {
	if q.Space == "" {
		return q.Local
	}

	return q.Space + ":" + q.Local
}

// Entry is one child returned by Adapter.ChildrenByName. Key is set only for
// members of a map collection.
type Entry struct {
	Node Node
	Key  string
}

// Adapter exposes the tree operations needed to read and write fields.
//
// ChildrenByName and CreateChild honor the segment's collection kind: for a
// collection segment they address the members of the backing collection
// named by the segment, ignoring the segment's index or key, and
// CreateChild appends one placeholder member (creating the backing
// collection when it does not exist yet). Existing members are never
// removed or reordered.
type Adapter interface {
	// Root returns the root node, or nil for an empty document.
	Root() Node
	// Name returns the qualified name of n.
	Name(n Node) QName
	// CreateRoot creates the root of an empty document.
	CreateRoot(seg fieldpath.Segment, ns namespace.Binding) (Node, error)
	// Declarations lists the namespace declarations made on n.
	Declarations(n Node) []namespace.Binding
	// Declare adds a namespace declaration on n unless it is already present.
	Declare(n Node, b namespace.Binding) error

	ChildrenByName(parent Node, seg fieldpath.Segment, ns namespace.Binding) ([]Entry, error)
	CreateChild(parent Node, seg fieldpath.Segment, ns namespace.Binding) (Node, error)

	Attr(n Node, name string, ns namespace.Binding) (string, bool)
	SetAttr(n Node, name string, ns namespace.Binding, value string) error

	// Text returns the text content of n; false when n has none.
	Text(n Node) (string, bool)
	// SetText replaces the text content of n. typ is the declared type of
	// the value and lets typed formats pick a scalar representation.
	SetText(n Node, value string, typ fieldtype.Type) error
}

// Child is one child reported by a Lister. Node is nil for attributes.
type Child struct {
	Segment fieldpath.Segment
	Node    Node
}

// Lister is implemented by adapters that can enumerate the children of a
// node without being given their names. Repeated children carry a wildcard
// collection segment, once per member.
type Lister interface {
	Children(n Node) []Child
}
