// Package convert provides the default field.ConversionHook.
//
// Typed values use these Go representations:
//
//	Boolean   bool
//	Char      rune
//	Byte      int8
//	Short     int16
//	Integer   int32
//	Long      int64
//	Float     float32
//	Double    float64
//	Decimal   float64
//	Date      time.Time (midnight UTC)
//	DateTime  time.Time
//	Duration  time.Duration
//
// String, Any and Complex values are strings. Numeric inputs may be of any
// Go integer or float type.
package convert

import (
	"errors"
	"fmt"
	"time"

	"docmapper/internal/field"
	"docmapper/internal/fieldtype"
)

var (
	// ErrNotAllowed reports a conversion outside the hook's categories.
	ErrNotAllowed = errors.New("conversion not allowed")
	// ErrOutOfRange reports a numeric value the target type cannot hold.
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnexpectedValue reports a Go value that does not match its declared type.
	ErrUnexpectedValue = errors.New("unexpected value")
)

// Hook converts field values within a set of categories.
type Hook struct {
	categories Category
}

var _ field.ConversionHook = (*Hook)(nil)

// New creates a hook limited to categories.
func New(categories Category) *Hook {
	return &Hook{categories: categories}
}

// Default creates a hook allowing every category.
func Default() *Hook {
	return New(CategoryAll)
}

// Categories returns the categories the hook allows.
func (h *Hook) Categories() Category {
	return h.categories
}

// Convert implements field.ConversionHook. A nil value converts to nil.
func (h *Hook) Convert(value any, from, to fieldtype.Type) (any, error) {
	if value == nil || to == fieldtype.TypeAny {
		return value, nil
	}

	from, to = textual(from), textual(to)

	if !h.categories.Allows(from, to) {
		return nil, &field.ConversionError{From: from, To: to, Value: value, Err: ErrNotAllowed}
	}

	out, err := h.convert(value, from, to)
	if err != nil {
		return nil, &field.ConversionError{From: from, To: to, Value: value, Err: err}
	}

	return out, nil
}

func (h *Hook) convert(value any, from, to fieldtype.Type) (any, error) {
	switch {
	case from == to && to == fieldtype.TypeString:
		return textOf(value), nil
	case from == to:
		return value, nil
	case from == fieldtype.TypeString:
		return parse(textOf(value), to)
	case to == fieldtype.TypeString:
		return format(value, from)
	case from.IsNumber() && to.IsNumber():
		return toNumber(value, to)
	case from == fieldtype.TypeDate && to == fieldtype.TypeDateTime:
		return asTime(value)
	case from == fieldtype.TypeDateTime && to == fieldtype.TypeDate:
		t, err := asTime(value)
		if err != nil {
			return nil, err
		}

		return dateOf(t), nil
	default:
		return nil, ErrNotAllowed
	}
}

func textOf(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func asTime(value any) (time.Time, error) {
	t, ok := value.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %T is not a time", ErrUnexpectedValue, value)
	}

	return t, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
