// Package fieldtype declares the type tags carried by document fields.
package fieldtype

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Type -trimprefix=Type -output=type_string.go

// Type is the declared type of a field value.
type Type int

const (
	TypeAny Type = iota // undeclared; values pass through as text
	TypeString
	TypeChar
	TypeBoolean
	TypeByte
	TypeShort
	TypeInteger
	TypeLong
	TypeFloat
	TypeDouble
	TypeDecimal
	TypeDate
	TypeDateTime
	TypeDuration
	TypeComplex // structured node, no scalar value

	// typeCount is the total number of types defined
	typeCount = int(iota)
)

// All returns every defined type.
func All() []Type {
	out := make([]Type, 0, typeCount)
	for t := Type(0); int(t) < typeCount; t++ {
		out = append(out, t)
	}

	return out
}

// IsValid reports whether t is a defined type.
func (t Type) IsValid() bool {
	return t >= 0 && int(t) < typeCount
}

func (t Type) IsNumber() bool {
	switch t {
	default:
		return false
	case TypeByte, TypeShort, TypeInteger, TypeLong,
		TypeFloat, TypeDouble, TypeDecimal:
		return true
	}
}

func (t Type) IsInteger() bool {
	switch t {
	default:
		return false
	case TypeByte, TypeShort, TypeInteger, TypeLong:
		return true
	}
}

func (t Type) IsFloat() bool {
	switch t {
	default:
		return false
	case TypeFloat, TypeDouble, TypeDecimal:
		return true
	}
}

func (t Type) IsTemporal() bool {
	return t == TypeDate || t == TypeDateTime || t == TypeDuration
}

// Bits returns the storage width of a numeric type.
func (t Type) Bits() int {
	switch t {
	default:
		panic("only numeric types have a meaningful bit width, but requested for: " + t.String())
	case TypeByte:
		return 8
	case TypeShort:
		return 16
	case TypeInteger, TypeFloat:
		return 32
	case TypeLong, TypeDouble, TypeDecimal:
		return 64
	}
}

// IsTextual reports whether values of t are carried as plain text and need
// no conversion to or from a document's text content.
func (t Type) IsTextual() bool {
	return t == TypeAny || t == TypeString || t == TypeComplex
}

// YAMLTag returns the YAML core schema tag used to emit scalar values of t.
func (t Type) YAMLTag() string {
	switch {
	case t == TypeBoolean:
		return "!!bool"
	case t.IsInteger():
		return "!!int"
	case t.IsFloat():
		return "!!float"
	default:
		return "!!str"
	}
}

// ParseType resolves a type name as written in mapping definitions.
// Matching is case-insensitive and accepts a few common aliases.
func ParseType(name string) (Type, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return TypeAny, nil
	}

	if t, ok := aliases[key]; ok {
		return t, nil
	}

	for _, t := range All() {
		if strings.ToLower(t.String()) == key {
			return t, nil
		}
	}

	return TypeAny, fmt.Errorf("unknown field type %q", name)
}

var aliases = map[string]Type{
	"str":       TypeString,
	"text":      TypeString,
	"bool":      TypeBoolean,
	"int":       TypeInteger,
	"int8":      TypeByte,
	"int16":     TypeShort,
	"int32":     TypeInteger,
	"int64":     TypeLong,
	"float32":   TypeFloat,
	"float64":   TypeDouble,
	"number":    TypeDecimal,
	"date_time": TypeDateTime,
	"timestamp": TypeDateTime,
}

// UnmarshalText implements encoding.TextUnmarshaler, so types can be
// written by name in YAML.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(t.String())), nil
}
