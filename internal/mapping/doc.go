// Package mapping provides the YAML schema, loading and structural
// validation of document mapping definitions.
//
// A mapping definition names a source and a target document format, the
// namespaces each side uses, and an ordered list of field mappings from
// source paths to target paths.
//
// # Schema Overview
//
//	version: "1"
//	source:
//	  format: xml
//	  namespaces:
//	    s: urn:example:source
//	target:
//	  format: json
//	  strict_namespaces: false
//	# Simplified 1:1 text mappings, applied before fields
//	121:
//	  /s:Order/s:id: /SourceOrderList/orders[0]/id
//	fields:
//	  - source: /s:Order/s:item[]/@sku
//	    target: /SourceOrderList/orders[0]/items[]/sku
//	  - source: /s:Order/s:total
//	    target: [/SourceOrderList/total, /SourceOrderList/summary/total]  # 1:many
//	    source_type: decimal
//	    target_type: double
//	  - target: /SourceOrderList/status                                # constant
//	    default: pending
//	options:
//	  stop_on_error: false
//	  conversions: [text_number, datetime]
//
// # Field Order
//
// Field mappings run in file order, "121" entries first (sorted by source
// path). Order matters: collection members are created by index as they
// are first written.
//
// # Wildcards
//
// A wildcard in a source path ("items[]") reads every member. The target
// path may use at most as many wildcards; each is filled from the source
// index (or map key) at the same wildcard position.
package mapping
