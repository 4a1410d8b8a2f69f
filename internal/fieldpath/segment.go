package fieldpath

import (
	"strconv"
	"strings"

	"docmapper/internal/common"
)

// CollectionKind tells how repeated same-named children are represented.
type CollectionKind int

const (
	CollectionNone CollectionKind = iota
	CollectionArray
	CollectionList
	CollectionMap
)

// String returns a human-readable collection kind name.
func (k CollectionKind) String() string {
	switch k {
	case CollectionNone:
		return "none"
	case CollectionArray:
		return "array"
	case CollectionList:
		return "list"
	case CollectionMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

func (k CollectionKind) delimiters() (open, closing byte) {
	switch k {
	case CollectionArray:
		return '[', ']'
	case CollectionList:
		return '<', '>'
	case CollectionMap:
		return '{', '}'
	default:
		return 0, 0
	}
}

// Segment is one step of a Path.
//
// A collection segment is concrete when it carries an index (array, list)
// or a key (map), and a wildcard otherwise.
type Segment struct {
	name       string
	namespace  string
	attribute  bool
	collection CollectionKind
	index      int
	hasIndex   bool
	key        string
	hasKey     bool
}

// Element returns a plain element segment.
func Element(name string) Segment {
	return Segment{name: name}
}

// Attribute returns an attribute segment.
func Attribute(name string) Segment {
	return Segment{name: name, attribute: true}
}

// Name returns the local name.
func (s Segment) Name() string { return s.name }

// Namespace returns the namespace alias, or "" when unqualified.
func (s Segment) Namespace() string { return s.namespace }

// IsAttribute reports whether the segment addresses an attribute.
func (s Segment) IsAttribute() bool { return s.attribute }

// Collection returns the collection kind.
func (s Segment) Collection() CollectionKind { return s.collection }

// IsCollection reports whether the segment has a collection suffix.
func (s Segment) IsCollection() bool { return s.collection != CollectionNone }

// Index returns the member index of an array or list segment.
func (s Segment) Index() (int, bool) { return s.index, s.hasIndex }

// Key returns the entry key of a map segment.
func (s Segment) Key() (string, bool) { return s.key, s.hasKey }

// IsWildcard reports whether the segment is a collection segment with
// neither index nor key.
func (s Segment) IsWildcard() bool {
	return s.IsCollection() && !s.hasIndex && !s.hasKey
}

// QualifiedName returns "alias:name", or just the name when unqualified.
func (s Segment) QualifiedName() string {
	if s.namespace == "" {
		return s.name
	}

	return s.namespace + ":" + s.name
}

// WithNamespace returns a copy qualified by alias.
func (s Segment) WithNamespace(alias string) Segment {
	s.namespace = alias
	return s
}

// WithCollection returns a wildcard copy of the given collection kind.
func (s Segment) WithCollection(kind CollectionKind) Segment {
	s.collection = kind
	s.index, s.hasIndex = 0, false
	s.key, s.hasKey = "", false

	return s
}

// WithIndex returns a copy addressing member i. A segment without a
// collection suffix becomes an array segment; a map segment gets the
// decimal form of i as its key.
func (s Segment) WithIndex(i int) Segment {
	if s.collection == CollectionMap {
		return s.WithKey(strconv.Itoa(i))
	}

	if s.collection == CollectionNone {
		s.collection = CollectionArray
	}

	s.index, s.hasIndex = i, true
	s.key, s.hasKey = "", false

	return s
}

// WithKey returns a map segment copy addressing entry key.
func (s Segment) WithKey(key string) Segment {
	s.collection = CollectionMap
	s.key, s.hasKey = key, true
	s.index, s.hasIndex = 0, false

	return s
}

// Wildcard returns a copy with its index or key dropped.
func (s Segment) Wildcard() Segment {
	return s.WithCollection(s.collection)
}

// Equal compares two segments by their canonical text, so segments that
// differ only by index are different.
func (s Segment) Equal(other Segment) bool {
	return s.String() == other.String()
}

// String returns the canonical text of the segment.
func (s Segment) String() string {
	var sb strings.Builder

	if s.attribute {
		sb.WriteByte('@')
	}

	sb.WriteString(s.QualifiedName())

	if open, closing := s.collection.delimiters(); open != 0 {
		sb.WriteByte(open)

		switch {
		case s.hasIndex:
			sb.WriteString(strconv.Itoa(s.index))
		case s.hasKey:
			sb.WriteString(s.key)
		}

		sb.WriteByte(closing)
	}

	return sb.String()
}
