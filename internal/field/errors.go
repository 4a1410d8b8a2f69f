package field

import (
	"errors"
	"fmt"

	"docmapper/internal/fieldtype"
)

// ErrWildcardWrite reports a write against a path with wildcard segments.
var ErrWildcardWrite = errors.New("cannot write to a wildcard path")

// ErrIndexTooLarge reports a write whose collection index is above the
// configured MaxIndex.
var ErrIndexTooLarge = errors.New("collection index too large")

// RootMismatchError reports a write whose root segment does not match the
// existing root of the output document.
type RootMismatchError struct {
	Path string
	Want string
	Got  string
}

func (e *RootMismatchError) Error() string {
	return fmt.Sprintf("path %s: root %q does not match document root %q", e.Path, e.Want, e.Got)
}

// UnresolvedNamespaceError reports an alias with no registered URI while
// writing in strict mode.
type UnresolvedNamespaceError struct {
	Path  string
	Alias string
}

func (e *UnresolvedNamespaceError) Error() string {
	return fmt.Sprintf("path %s: namespace alias %q is not registered", e.Path, e.Alias)
}

// ConversionError reports a failed conversion between a value and its text
// form. Hooks return it; the reader and writer fill in Path.
type ConversionError struct {
	Path  string
	From  fieldtype.Type
	To    fieldtype.Type
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %v from %s to %s", e.Value, e.From, e.To)
	if e.Path != "" {
		msg = "path " + e.Path + ": " + msg
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// conversionError normalizes any hook failure into a *ConversionError
// carrying path.
func conversionError(err error, path string, value any, from, to fieldtype.Type) *ConversionError {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		out := *convErr
		if out.Path == "" {
			out.Path = path
		}

		return &out
	}

	return &ConversionError{Path: path, From: from, To: to, Value: value, Err: err}
}
