// Package field reads and writes field values in document trees addressed
// by fieldpath.Path.
//
// A Reader resolves a path against any document.Adapter and never modifies
// it. Paths with wildcard collection segments expand into a Group whose
// members carry concrete paths, in document order.
//
// A Writer is bound to one output document and extends it one field at a
// time. It only ever locates or appends nodes: collections grow by
// appending placeholders up to the requested index, and nothing is removed
// or reordered, so earlier writes survive later ones (including failed
// ones). The order of Write calls matters for collection placement.
//
// Neither performs type conversion itself. Text is turned into typed values
// (and back) by a ConversionHook supplied by the caller.
//
// Errors:
//   - *RootMismatchError: the output root has another name.
//   - *UnresolvedNamespaceError: strict mode and an alias the registry
//     does not know.
//   - *ConversionError: the hook failed.
//   - ErrWildcardWrite: wildcard paths cannot be written.
//
// A missing node on read or a nil value on write is not an error.
package field
