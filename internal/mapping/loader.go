package mapping

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"docmapper/internal/fieldtype"
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var mf File

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *File) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	for i := range mf.Fields {
		fm := &mf.Fields[i]
		if fm.TargetType == fieldtype.TypeAny {
			fm.TargetType = fm.SourceType
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(mf *File) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a File to the given path.
func WriteFile(mf *File, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// Normalize expands the 121 shorthand into Fields entries, ahead of the
// explicit ones, so a run only has to walk Fields.
func Normalize(mf *File) {
	if len(mf.OneToOne) == 0 {
		return
	}

	sources := make([]string, 0, len(mf.OneToOne))
	for source := range mf.OneToOne {
		sources = append(sources, source)
	}

	sort.Strings(sources)

	expanded := make([]FieldMapping, 0, len(sources)+len(mf.Fields))
	for _, source := range sources {
		expanded = append(expanded, FieldMapping{
			Source: source,
			Target: StringOrArray{mf.OneToOne[source]},
		})
	}

	mf.Fields = append(expanded, mf.Fields...)
	mf.OneToOne = nil
}
