package field

import (
	"errors"
	"fmt"

	"docmapper/internal/fieldtype"
)

var errNoHook = errors.New("no conversion hook configured")

// ConversionHook converts values between field types. It is called once per
// read (document text to the declared type) and once per write (declared
// type to document text).
type ConversionHook interface {
	Convert(value any, from, to fieldtype.Type) (any, error)
}

// HookFunc adapts a function to ConversionHook.
type HookFunc func(value any, from, to fieldtype.Type) (any, error)

// Convert implements ConversionHook.
func (f HookFunc) Convert(value any, from, to fieldtype.Type) (any, error) {
	return f(value, from, to)
}

// fromText turns document text into a value of typ.
func fromText(hook ConversionHook, path, text string, typ fieldtype.Type) (any, error) {
	if typ.IsTextual() {
		return text, nil
	}

	if hook == nil {
		return nil, conversionError(errNoHook, path, text, fieldtype.TypeString, typ)
	}

	v, err := hook.Convert(text, fieldtype.TypeString, typ)
	if err != nil {
		return nil, conversionError(err, path, text, fieldtype.TypeString, typ)
	}

	return v, nil
}

// toText turns a value of typ into document text.
func toText(hook ConversionHook, path string, value any, typ fieldtype.Type) (string, error) {
	if s, ok := value.(string); ok && typ.IsTextual() {
		return s, nil
	}

	if hook == nil {
		if typ.IsTextual() {
			return fmt.Sprint(value), nil
		}

		return "", conversionError(errNoHook, path, value, typ, fieldtype.TypeString)
	}

	out, err := hook.Convert(value, typ, fieldtype.TypeString)
	if err != nil {
		return "", conversionError(err, path, value, typ, fieldtype.TypeString)
	}

	s, ok := out.(string)
	if !ok {
		return "", conversionError(fmt.Errorf("hook returned %T, want string", out), path, value, typ, fieldtype.TypeString)
	}

	return s, nil
}
