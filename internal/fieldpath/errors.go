package fieldpath

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPath              = errors.New("empty path")
	ErrEmptySegment           = errors.New("empty segment")
	ErrEmptyName              = errors.New("empty name")
	ErrUnterminatedCollection = errors.New("unterminated collection suffix")
	ErrTrailingCharacters     = errors.New("unexpected characters after collection suffix")
	ErrInvalidIndex           = errors.New("collection index must be a non-negative integer")
	ErrMisplacedAttribute     = errors.New("attribute marker must start the segment")
	ErrInvalidNamespace       = errors.New("malformed namespace alias")
	ErrInvalidName            = errors.New("invalid character in name")
	ErrInvalidRoot            = errors.New("root segment cannot be an attribute or collection")
	ErrAttributeNotLast       = errors.New("attribute segment must be the last segment")
)

// PathSyntaxError reports malformed path text. Err is one of the sentinel
// errors of this package.
type PathSyntaxError struct {
	Path string
	Pos  int
	Err  error
}

func (e *PathSyntaxError) Error() string {
	return fmt.Sprintf("invalid path %q at offset %d: %v", e.Path, e.Pos, e.Err)
}

func (e *PathSyntaxError) Unwrap() error {
	return e.Err
}
