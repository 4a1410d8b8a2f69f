package convert

import (
	"fmt"
	"math"

	"docmapper/internal/common"
	"docmapper/internal/fieldtype"
)

// toNumber converts any Go numeric value to the representation of typ,
// failing instead of wrapping or truncating.
func toNumber(value any, typ fieldtype.Type) (any, error) {
	if typ.IsFloat() {
		f, ok := asFloat64(value)
		if !ok {
			if u, isUint := asUint64(value); isUint {
				f, ok = float64(u), true
			}
		}

		if !ok {
			return nil, fmt.Errorf("%w: %T is not a number", ErrUnexpectedValue, value)
		}

		if typ == fieldtype.TypeFloat && math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v overflows %s", ErrOutOfRange, f, typ)
		}

		return floatValue(f, typ), nil
	}

	var i int64

	switch {
	case isFloat(value):
		f, _ := asFloat64(value)
		if math.Trunc(f) != f || f < math.MinInt64 || f >= math.MaxInt64 {
			return nil, fmt.Errorf("%w: %v is not a whole %s", ErrOutOfRange, f, typ)
		}

		i = int64(f)
	default:
		var ok bool
		if i, ok = asInt64(value); !ok {
			u, isUint := asUint64(value)
			if !isUint {
				return nil, fmt.Errorf("%w: %T is not a number", ErrUnexpectedValue, value)
			}

			if u > math.MaxInt64 {
				return nil, fmt.Errorf("%w: %d overflows %s", ErrOutOfRange, u, typ)
			}

			i = int64(u)
		}
	}

	bits := typ.Bits()
	lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1

	if bits == 64 {
		lo, hi = math.MinInt64, math.MaxInt64
	}

	if !common.IsInRange(lo, i, hi) {
		return nil, fmt.Errorf("%w: %d overflows %s", ErrOutOfRange, i, typ)
	}

	return intValue(i, typ), nil
}

func intValue(i int64, typ fieldtype.Type) any {
	switch typ {
	case fieldtype.TypeByte:
		return int8(i)
	case fieldtype.TypeShort:
		return int16(i)
	case fieldtype.TypeInteger:
		return int32(i)
	default:
		return i
	}
}

func floatValue(f float64, typ fieldtype.Type) any {
	if typ == fieldtype.TypeFloat {
		return float32(f)
	}

	return f
}

func isFloat(value any) bool {
	switch value.(type) {
	case float32, float64:
		return true
	default:
		return false
	}
}

// asInt64 accepts signed integers, and unsigned ones that fit.
func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	default:
		return 0, false
	}
}

func asUint64(value any) (uint64, bool) {
	switch v := value.(type) {
	case uint:
		return uint64(v), true
	case uint64:
		return v, true
	default:
		return 0, false
	}
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}

	if i, ok := asInt64(value); ok {
		return float64(i), true
	}

	return 0, false
}
