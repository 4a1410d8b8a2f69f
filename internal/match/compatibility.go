package match

import (
	"docmapper/internal/common"
	"docmapper/internal/convert"
	"docmapper/internal/fieldtype"
)

// TypeCompatibility tells how well a source value type fits a target.
type TypeCompatibility int

const (
	// TypeIncompatible means no allowed conversion exists.
	TypeIncompatible TypeCompatibility = iota
	// TypeUntyped means at least one side has no sampled type; the value
	// passes through as text.
	TypeUntyped
	// TypeConvertible means the conversion hook can convert the value.
	TypeConvertible
	// TypeIdentical means both sides carry the same type.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictConvertible  = "convertible"
	VerdictUntyped      = "untyped"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeConvertible:
		return VerdictConvertible
	case TypeUntyped:
		return VerdictUntyped
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return common.UnknownStr
	}
}

// score maps the level onto 0..1 for ranking.
func (c TypeCompatibility) score() float64 {
	switch c {
	case TypeIdentical:
		return 1.0
	case TypeConvertible:
		return 0.7
	case TypeUntyped:
		return 0.5
	default:
		return 0.0
	}
}

// TypeCompatibilityResult explains a compatibility verdict.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string
	SourceType    fieldtype.Type
	TargetType    fieldtype.Type
}

// ScoreTypeCompatibility rates moving a source value of one type into a
// target of another when only the conversions in cats are allowed.
func ScoreTypeCompatibility(source, target fieldtype.Type, cats convert.Category) TypeCompatibilityResult {
	res := TypeCompatibilityResult{SourceType: source, TargetType: target}

	switch {
	case source == target:
		res.Compatibility = TypeIdentical
		res.Reason = "types are identical"
	case source == fieldtype.TypeAny || target == fieldtype.TypeAny:
		res.Compatibility = TypeUntyped
		res.Reason = "no sampled type on one side"
	case cats.Allows(source, target):
		res.Compatibility = TypeConvertible
		res.Reason = "source converts to target"
	default:
		res.Compatibility = TypeIncompatible
		res.Reason = "conversion not allowed"
	}

	return res
}
