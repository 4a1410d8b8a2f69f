package match

import (
	"strings"

	"docmapper/internal/convert"
	"docmapper/internal/fieldtype"
)

// inferOrder lists the types tried on sampled text, narrowest first.
var inferOrder = []fieldtype.Type{
	fieldtype.TypeLong,
	fieldtype.TypeDouble,
	fieldtype.TypeDate,
	fieldtype.TypeDateTime,
}

var sniffer = convert.Default()

// InferType guesses the type of a sampled value. Blank text has no type;
// text nothing else accepts is a string.
func InferType(sample string) fieldtype.Type {
	s := strings.TrimSpace(sample)

	switch s {
	case "":
		return fieldtype.TypeAny
	case "true", "false":
		return fieldtype.TypeBoolean
	}

	for _, t := range inferOrder {
		if t.IsNumber() && !looksNumeric(s) {
			continue
		}

		if _, err := sniffer.Convert(s, fieldtype.TypeString, t); err == nil {
			return t
		}
	}

	return fieldtype.TypeString
}

// looksNumeric keeps words such as "NaN" or "Inf" out of the numeric types.
func looksNumeric(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.')
}
