// Package fieldpath parses and represents document field paths.
//
// A path is a "/"-separated sequence of segments. Each segment names an
// element or attribute, optionally qualified by a namespace alias, and may
// carry a collection suffix:
//
//	/Order/@id                    attribute "id" of the root element
//	/ns:Order/ns:Customer/@ns:ref namespace-qualified elements and attribute
//	/Order/items[2]/sku           array member 2
//	/Order/lines<0>/qty           list member 0
//	/Order/totals{gross}          map entry "gross"
//	/Order/items[]/sku            wildcard over every array member (reads only)
//
// Grammar per segment:
//
//	segment    := ["@"] [alias ":"] name [collection]
//	collection := "[" [index] "]" | "<" [index] ">" | "{" [key] "}"
//
// Paths are immutable values. Every operation that changes a path returns
// a new Path and leaves the receiver untouched.
//
// String is the inverse of Parse on canonical input:
//
//	p, _ := fieldpath.Parse("/Order/items[2]/sku")
//	p.String() == "/Order/items[2]/sku"
package fieldpath
