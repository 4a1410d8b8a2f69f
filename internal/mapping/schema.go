package mapping

import (
	"path/filepath"
	"strings"

	"docmapper/internal/convert"
	"docmapper/internal/fieldtype"
	"docmapper/internal/namespace"
)

// File represents the root of a YAML mapping definition file.
type File struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Source describes the document fields are read from.
	Source DocumentSpec `yaml:"source"`

	// Target describes the document fields are written to.
	Target DocumentSpec `yaml:"target"`

	// OneToOne is a shorthand where keys are source paths and values are
	// target paths, both untyped.
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Fields defines the field mappings with full control, in run order.
	Fields []FieldMapping `yaml:"fields,omitempty"`

	// Options tunes how a run reacts to failures.
	Options Options `yaml:"options,omitempty"`
}

// DocumentSpec describes one side of a mapping.
type DocumentSpec struct {
	// Format of the document; inferred from the file name when empty.
	Format Format `yaml:"format,omitempty"`

	// Namespaces binds the aliases used in paths, in declaration order.
	Namespaces Namespaces `yaml:"namespaces,omitempty"`

	// StrictNamespaces rejects writes through undeclared aliases. Only
	// meaningful for the target.
	StrictNamespaces bool `yaml:"strict_namespaces,omitempty"`
}

// FieldMapping maps one source path to one or more target paths.
type FieldMapping struct {
	// Source path; may be empty when Default is set.
	Source string `yaml:"source,omitempty"`

	// Target paths (1:1 or 1:many).
	Target StringOrArray `yaml:"target"`

	// SourceType is the type the source text is read as.
	SourceType fieldtype.Type `yaml:"source_type,omitempty"`

	// TargetType is the type handed to the writer; defaults to SourceType.
	TargetType fieldtype.Type `yaml:"target_type,omitempty"`

	// Default is written when the source has no value. The text is converted
	// to TargetType.
	Default *string `yaml:"default,omitempty"`
}

// HasDefault reports whether a default value is configured.
func (fm *FieldMapping) HasDefault() bool {
	return fm.Default != nil
}

// Options tunes a run.
type Options struct {
	// StopOnError aborts the run at the first failed field.
	StopOnError bool `yaml:"stop_on_error,omitempty"`

	// Conversions lists the allowed conversion categories; empty means all.
	Conversions []string `yaml:"conversions,omitempty"`
}

// Categories returns the conversion categories the options allow.
func (o Options) Categories() (convert.Category, error) {
	return convert.ParseCategories(o.Conversions)
}

// Format is a document format name.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsValid returns true if the format is a recognized value.
func (f Format) IsValid() bool {
	return f == FormatXML || f == FormatJSON || f == FormatYAML
}

// FormatOf infers a format from a file name, falling back to XML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// FormatFor returns the configured format, or the one inferred from path.
func (d *DocumentSpec) FormatFor(path string) Format {
	if d.Format != "" {
		return d.Format
	}

	return FormatOf(path)
}

// Registry builds a namespace registry from the declared namespaces.
func (d *DocumentSpec) Registry() *namespace.Registry {
	return namespace.NewRegistry(d.Namespaces...)
}

// Namespaces is an ordered list of alias bindings, written in YAML as a
// mapping from alias to URI.
type Namespaces []namespace.Binding

// URI returns the URI declared for alias.
func (n Namespaces) URI(alias string) (string, bool) {
	for _, b := range n {
		if b.Alias == alias {
			return b.URI, true
		}
	}

	return "", false
}
