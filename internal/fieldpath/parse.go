package fieldpath

import (
	"strconv"
	"strings"
)

// Parse parses path text into a Path.
//
// A leading "/" is optional. Map keys may contain "/" but not "}".
// Failures are reported as *PathSyntaxError.
func Parse(raw string) (Path, error) {
	body := strings.TrimPrefix(raw, Separator)
	offset := len(raw) - len(body)

	if body == "" {
		return Path{}, &PathSyntaxError{Path: raw, Pos: 0, Err: ErrEmptyPath}
	}

	parts, starts := splitSegments(body)
	segments := make([]Segment, 0, len(parts))

	for i, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			err.Path = raw
			err.Pos += offset + starts[i]

			return Path{}, err
		}

		if i == 0 && (seg.attribute || seg.IsCollection()) {
			return Path{}, &PathSyntaxError{Path: raw, Pos: offset, Err: ErrInvalidRoot}
		}

		if seg.attribute && i != len(parts)-1 {
			return Path{}, &PathSyntaxError{Path: raw, Pos: offset + starts[i], Err: ErrAttributeNotLast}
		}

		segments = append(segments, seg)
	}

	return Path{segments: segments}, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// splitSegments splits on "/" outside of map key braces and returns each
// part with its byte offset in body.
func splitSegments(body string) ([]string, []int) {
	var (
		parts  []string
		starts []int
	)

	start := 0
	inKey := false

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			inKey = true
		case '}':
			inKey = false
		case '/':
			if inKey {
				continue
			}

			parts = append(parts, body[start:i])
			starts = append(starts, start)
			start = i + 1
		}
	}

	parts = append(parts, body[start:])
	starts = append(starts, start)

	return parts, starts
}

func parseSegment(text string) (Segment, *PathSyntaxError) {
	if text == "" {
		return Segment{}, &PathSyntaxError{Err: ErrEmptySegment}
	}

	var seg Segment

	pos := 0
	if text[0] == '@' {
		seg.attribute = true
		pos = 1
	}

	rest := text[pos:]
	qualified := rest
	suffix := ""

	if i := strings.IndexAny(rest, "[<{"); i >= 0 {
		qualified, suffix = rest[:i], rest[i:]
	}

	if i := strings.IndexByte(qualified, '@'); i >= 0 {
		return Segment{}, &PathSyntaxError{Pos: pos + i, Err: ErrMisplacedAttribute}
	}

	name := qualified

	if i := strings.IndexByte(qualified, ':'); i >= 0 {
		alias := qualified[:i]
		name = qualified[i+1:]

		if alias == "" || strings.ContainsRune(name, ':') {
			return Segment{}, &PathSyntaxError{Pos: pos, Err: ErrInvalidNamespace}
		}

		seg.namespace = alias
	}

	if name == "" {
		return Segment{}, &PathSyntaxError{Pos: pos, Err: ErrEmptyName}
	}

	if i := strings.IndexAny(qualified, "]>}"); i >= 0 {
		return Segment{}, &PathSyntaxError{Pos: pos + i, Err: ErrInvalidName}
	}

	seg.name = name

	if suffix == "" {
		return seg, nil
	}

	suffixPos := pos + len(qualified)

	if err := parseCollection(&seg, suffix); err != nil {
		err.Pos += suffixPos
		return Segment{}, err
	}

	return seg, nil
}

func parseCollection(seg *Segment, suffix string) *PathSyntaxError {
	switch suffix[0] {
	case '[':
		seg.collection = CollectionArray
	case '<':
		seg.collection = CollectionList
	default:
		seg.collection = CollectionMap
	}

	_, closing := seg.collection.delimiters()

	end := strings.IndexByte(suffix, closing)
	if end < 0 {
		return &PathSyntaxError{Err: ErrUnterminatedCollection}
	}

	if end != len(suffix)-1 {
		return &PathSyntaxError{Pos: end + 1, Err: ErrTrailingCharacters}
	}

	content := suffix[1:end]
	if content == "" {
		return nil
	}

	if seg.collection == CollectionMap {
		seg.key, seg.hasKey = content, true
		return nil
	}

	for i := 0; i < len(content); i++ {
		if content[i] < '0' || content[i] > '9' {
			return &PathSyntaxError{Pos: 1 + i, Err: ErrInvalidIndex}
		}
	}

	index, err := strconv.Atoi(content)
	if err != nil {
		return &PathSyntaxError{Pos: 1, Err: ErrInvalidIndex}
	}

	seg.index, seg.hasIndex = index, true

	return nil
}
