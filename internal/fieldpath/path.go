package fieldpath

import "strings"

// Separator joins path segments.
const Separator = "/"

// Path is an immutable, ordered sequence of segments. Segment 0 addresses
// the document root.
type Path struct {
	segments []Segment
}

// New builds a path from segments. The slice is copied.
func New(segments ...Segment) Path {
	return Path{segments: append([]Segment(nil), segments...)}
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsEmpty returns true if the path has no segments.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// Segment returns the segment at depth i.
func (p Path) Segment(i int) Segment { return p.segments[i] }

// Segments returns a copy of all segments.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Root returns the first segment.
func (p Path) Root() (Segment, bool) {
	if len(p.segments) == 0 {
		return Segment{}, false
	}

	return p.segments[0], true
}

// LastSegment returns the final segment.
func (p Path) LastSegment() (Segment, bool) {
	if len(p.segments) == 0 {
		return Segment{}, false
	}

	return p.segments[len(p.segments)-1], true
}

// ParentPath drops the last segment. Paths of length one or less have no
// parent.
func (p Path) ParentPath() (Path, bool) {
	if len(p.segments) <= 1 {
		return Path{}, false
	}

	return p.Prefix(len(p.segments) - 1), true
}

// Prefix returns the first n segments.
func (p Path) Prefix(n int) Path {
	n = min(max(n, 0), len(p.segments))
	return Path{segments: append([]Segment(nil), p.segments[:n]...)}
}

// Append returns a copy with seg added at the end.
func (p Path) Append(seg Segment) Path {
	out := make([]Segment, len(p.segments), len(p.segments)+1)
	copy(out, p.segments)

	return Path{segments: append(out, seg)}
}

// WithSegment returns a copy with the segment at depth replaced.
func (p Path) WithSegment(depth int, seg Segment) Path {
	out := p.Segments()
	out[depth] = seg

	return Path{segments: out}
}

// WithIndex returns a copy with the index of the segment at depth set to i.
func (p Path) WithIndex(depth, i int) Path {
	return p.WithSegment(depth, p.segments[depth].WithIndex(i))
}

// WithKey returns a copy with the key of the segment at depth set to key.
func (p Path) WithKey(depth int, key string) Path {
	return p.WithSegment(depth, p.segments[depth].WithKey(key))
}

// HasWildcard reports whether any segment is a wildcard.
func (p Path) HasWildcard() bool {
	for _, seg := range p.segments {
		if seg.IsWildcard() {
			return true
		}
	}

	return false
}

// Wildcards returns the depths of all wildcard segments, shallowest first.
func (p Path) Wildcards() []int {
	var depths []int

	for i, seg := range p.segments {
		if seg.IsWildcard() {
			depths = append(depths, i)
		}
	}

	return depths
}

// Equal compares paths by canonical text.
func (p Path) Equal(other Path) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}

	for i, seg := range p.segments {
		if !seg.Equal(other.segments[i]) {
			return false
		}
	}

	return true
}

// String returns the canonical text of the path, e.g. "/Order/items[2]/sku".
func (p Path) String() string {
	var sb strings.Builder

	for _, seg := range p.segments {
		sb.WriteString(Separator)
		sb.WriteString(seg.String())
	}

	return sb.String()
}
