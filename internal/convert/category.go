package convert

import (
	"fmt"
	"strings"

	"docmapper/internal/fieldtype"
)

// Category is a set of conversion families a Hook is allowed to perform.
type Category int

// Pair is a directed conversion between two field types.
type Pair struct {
	From, To fieldtype.Type
}

const (
	CategoryTextNumber  Category = 1 << iota // number <-> text: decimal representation of integers and floats
	CategoryTextualBool                      // bool <-> text: yes, no, on, off, true, false, 1, 0
	CategoryDatetime                         // date and date-time <-> text, date <-> date-time
	CategoryDuration                         // duration <-> text: Go duration syntax (2h45m)
	CategoryNumber                           // number <-> number: widening and range-checked narrowing

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // only identity and char <-> text conversions
)

var categoryNames = map[Category]string{
	CategoryTextNumber:  "text_number",
	CategoryTextualBool: "textual_bool",
	CategoryDatetime:    "datetime",
	CategoryDuration:    "duration",
	CategoryNumber:      "number",
}

var conversionPairs map[Category]map[Pair]struct{}

// alwaysPairs are allowed regardless of categories.
var alwaysPairs = map[Pair]struct{}{
	{fieldtype.TypeString, fieldtype.TypeChar}: {},
	{fieldtype.TypeChar, fieldtype.TypeString}: {},
}

func init() {
	conversionPairs = make(map[Category]map[Pair]struct{})

	conversionPairs[CategoryTextNumber] = map[Pair]struct{}{}
	conversionPairs[CategoryNumber] = map[Pair]struct{}{}

	for _, from := range fieldtype.All() {
		if !from.IsNumber() {
			continue
		}

		conversionPairs[CategoryTextNumber][Pair{from, fieldtype.TypeString}] = struct{}{}
		conversionPairs[CategoryTextNumber][Pair{fieldtype.TypeString, from}] = struct{}{}

		for _, to := range fieldtype.All() {
			if !to.IsNumber() || to == from {
				continue
			}

			conversionPairs[CategoryNumber][Pair{from, to}] = struct{}{}
		}
	}

	conversionPairs[CategoryTextualBool] = map[Pair]struct{}{
		{fieldtype.TypeString, fieldtype.TypeBoolean}: {},
		{fieldtype.TypeBoolean, fieldtype.TypeString}: {},
	}

	conversionPairs[CategoryDatetime] = map[Pair]struct{}{
		{fieldtype.TypeString, fieldtype.TypeDate}:     {},
		{fieldtype.TypeDate, fieldtype.TypeString}:     {},
		{fieldtype.TypeString, fieldtype.TypeDateTime}: {},
		{fieldtype.TypeDateTime, fieldtype.TypeString}: {},
		{fieldtype.TypeDate, fieldtype.TypeDateTime}:   {},
		{fieldtype.TypeDateTime, fieldtype.TypeDate}:   {},
	}

	conversionPairs[CategoryDuration] = map[Pair]struct{}{
		{fieldtype.TypeString, fieldtype.TypeDuration}: {},
		{fieldtype.TypeDuration, fieldtype.TypeString}: {},
	}
}

// Allows reports whether c permits converting from one type to another.
// Identity conversions are always allowed.
func (c Category) Allows(from, to fieldtype.Type) bool {
	pair := Pair{textual(from), textual(to)}
	if pair.From == pair.To {
		return true
	}

	if _, ok := alwaysPairs[pair]; ok {
		return true
	}

	for cat, pairs := range conversionPairs {
		if c&cat == 0 {
			continue
		}

		if _, ok := pairs[pair]; ok {
			return true
		}
	}

	return false
}

// Has reports whether every category in other is in c.
func (c Category) Has(other Category) bool {
	return c&other == other
}

// String lists the category names joined by "|".
func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}

	var names []string

	for cat := Category(1); cat <= CategoryAll; cat <<= 1 {
		if c&cat != 0 {
			names = append(names, categoryNames[cat])
		}
	}

	return strings.Join(names, "|")
}

// ParseCategories combines categories given by name. "all" and "none" are
// accepted; an empty list yields CategoryAll.
func ParseCategories(names []string) (Category, error) {
	if len(names) == 0 {
		return CategoryAll, nil
	}

	var out Category

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))

		switch key {
		case "all":
			out |= CategoryAll
			continue
		case "none":
			continue
		}

		found := false

		for cat, catName := range categoryNames {
			if catName == key {
				out |= cat
				found = true

				break
			}
		}

		if !found {
			return CategoryNone, fmt.Errorf("unknown conversion category %q", name)
		}
	}

	return out, nil
}

// textual folds undeclared values onto strings, which is how documents
// carry them.
func textual(t fieldtype.Type) fieldtype.Type {
	if t == fieldtype.TypeAny {
		return fieldtype.TypeString
	}

	return t
}
