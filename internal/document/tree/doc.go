// Package tree adapts nested map/array documents (YAML and JSON) to the
// document.Adapter interface. The tree is a gopkg.in/yaml.v3 node graph,
// which keeps key order and lets nodes be addressed by pointer.
//
// Shape rules:
//   - The root is the single top-level key when the top-level mapping has
//     exactly one entry holding a mapping, as in {"Order": {...}}.
//     Otherwise the top-level mapping itself is the root and has no name.
//   - Array and list collections are sequences; map collections are
//     mappings whose entries carry their key.
//   - Attributes are ordinary keys. Namespace-qualified names are stored
//     as "alias:name" keys; URIs play no role.
//   - Placeholders are null scalars. They are promoted in place to a
//     mapping or sequence the first time something is added below them.
package tree
