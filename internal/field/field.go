package field

import (
	"docmapper/internal/common"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
)

// Status describes the outcome of resolving a field.
type Status int

const (
	// StatusSupported means the path resolved; Value may still be nil for
	// fields that were written without a value.
	StatusSupported Status = iota
	// StatusNotFound means nothing exists at the path.
	StatusNotFound
	// StatusUnsupported means the document format cannot represent the path.
	StatusUnsupported
	// StatusFailed means the value exists but could not be converted.
	StatusFailed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusSupported:
		return "supported"
	case StatusNotFound:
		return "not_found"
	case StatusUnsupported:
		return "unsupported"
	case StatusFailed:
		return "failed"
	default:
		return common.UnknownStr
	}
}

// Result is what a read produces: a single Field or a Group.
type Result interface {
	// Fields returns the concrete fields of the result.
	Fields() []Field

	isResult()
}

// Field is one value at a concrete path.
type Field struct {
	Path   fieldpath.Path
	Type   fieldtype.Type
	Value  any
	Status Status
}

// HasValue reports whether the field carries a value.
func (f Field) HasValue() bool {
	return f.Value != nil
}

// Fields implements Result.
func (f Field) Fields() []Field {
	return []Field{f}
}

func (Field) isResult() {}

// Group is the expansion of a wildcard read. Path keeps the wildcard form;
// every member has it made concrete.
type Group struct {
	Path    fieldpath.Path
	Members []Field
}

// Fields implements Result.
func (g *Group) Fields() []Field {
	return g.Members
}

// Len returns the number of members.
func (g *Group) Len() int {
	return len(g.Members)
}

func (*Group) isResult() {}
