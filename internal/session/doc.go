// Package session runs a mapping definition: it reads every source path of
// the definition from one document and writes the values into another.
//
// A run never stops on a missing value. Failures are recorded as
// diagnostics and the run continues with the next field mapping unless the
// configuration asks to stop at the first error. Records are also streamed
// to an optional diagnostic.Sink and progress is logged through logr.
package session
