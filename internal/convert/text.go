package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"docmapper/internal/fieldtype"
)

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// parse converts document text into a value of typ.
func parse(s string, typ fieldtype.Type) (any, error) {
	s = strings.TrimSpace(s)

	switch {
	case typ == fieldtype.TypeChar:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) {
			return nil, fmt.Errorf("%w: %q is not a single character", ErrUnexpectedValue, s)
		}

		return r, nil
	case typ == fieldtype.TypeBoolean:
		return parseBool(s)
	case typ.IsInteger():
		i, err := strconv.ParseInt(s, 10, typ.Bits())
		if err != nil {
			return nil, err
		}

		return intValue(i, typ), nil
	case typ.IsFloat():
		f, err := strconv.ParseFloat(s, typ.Bits())
		if err != nil {
			return nil, err
		}

		return floatValue(f, typ), nil
	case typ == fieldtype.TypeDate:
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, err
		}

		return t, nil
	case typ == fieldtype.TypeDateTime:
		return parseDateTime(s)
	case typ == fieldtype.TypeDuration:
		return time.ParseDuration(s)
	default:
		return nil, ErrNotAllowed
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a boolean", ErrUnexpectedValue, s)
	}
}

func parseDateTime(s string) (time.Time, error) {
	var firstErr error

	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, firstErr
}

// format renders a value of typ as document text.
func format(value any, typ fieldtype.Type) (string, error) {
	switch {
	case typ == fieldtype.TypeChar:
		switch v := value.(type) {
		case rune:
			return string(v), nil
		case string:
			return v, nil
		}
	case typ == fieldtype.TypeBoolean:
		if v, ok := value.(bool); ok {
			return strconv.FormatBool(v), nil
		}
	case typ.IsInteger():
		if i, ok := asInt64(value); ok {
			return strconv.FormatInt(i, 10), nil
		}

		if u, ok := asUint64(value); ok {
			return strconv.FormatUint(u, 10), nil
		}
	case typ.IsFloat():
		if f, ok := asFloat64(value); ok {
			bits := 64
			if _, single := value.(float32); single {
				bits = 32
			}

			return strconv.FormatFloat(f, 'f', -1, bits), nil
		}
	case typ == fieldtype.TypeDate:
		if t, ok := value.(time.Time); ok {
			return t.Format(time.DateOnly), nil
		}
	case typ == fieldtype.TypeDateTime:
		if t, ok := value.(time.Time); ok {
			return t.Format(time.RFC3339Nano), nil
		}
	case typ == fieldtype.TypeDuration:
		if d, ok := value.(time.Duration); ok {
			return d.String(), nil
		}
	}

	if s, ok := value.(string); ok {
		// already text, e.g. a default from a mapping file
		return s, nil
	}

	return "", fmt.Errorf("%w: %T for %s", ErrUnexpectedValue, value, typ)
}
