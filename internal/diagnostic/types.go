package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"docmapper/internal/common"
)

// Diagnostics holds all records of a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single record.
type Diagnostic struct {
	// Severity of the record.
	Severity Severity
	// Code is a unique identifier for this kind of record.
	Code string
	// Message is the human-readable description.
	Message string
	// Mapping identifies the field mapping this relates to (if any), e.g. "fields[2]".
	Mapping string
	// FieldPath identifies the document path this relates to (if any).
	FieldPath string
}

// Severity represents the severity level of a record.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add appends d to the bucket of its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error record.
func (d *Diagnostics) AddError(code, message, mapping, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Mapping: mapping, FieldPath: fieldPath})
}

// AddWarning adds a warning record.
func (d *Diagnostics) AddWarning(code, message, mapping, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Mapping: mapping, FieldPath: fieldPath})
}

// AddInfo adds an info record.
func (d *Diagnostics) AddInfo(code, message, mapping, fieldPath string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Mapping: mapping, FieldPath: fieldPath})
}

// Record implements Sink.
func (d *Diagnostics) Record(severity Severity, path, message string) {
	d.Add(Diagnostic{Severity: severity, Message: message, FieldPath: path})
}

// HasErrors returns true if there are any error records.
func (d *Diagnostics) HasErrors() bool {
	return !common.IsEmpty(d.Errors)
}

// Len returns the number of records of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every record, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error records, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted record.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Mapping != "" {
		prefix = append(prefix, "["+d.Mapping+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
