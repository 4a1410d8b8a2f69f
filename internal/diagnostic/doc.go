// Package diagnostic collects the audit records produced while validating
// mapping definitions and moving fields between documents.
//
// Records are data for the caller, not log lines: a run returns them so the
// caller can decide whether a partial result is acceptable.
//
// Key capabilities:
//   - Severity-bucketed collection (errors, warnings, infos)
//   - Record codes for machine filtering
//   - A Sink interface so embedders can stream records elsewhere
package diagnostic
