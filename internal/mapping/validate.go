package mapping

import (
	"fmt"
	"maps"
	"slices"

	"docmapper/internal/convert"
	"docmapper/internal/diagnostic"
	"docmapper/internal/fieldpath"
	"docmapper/internal/fieldtype"
)

// SupportedVersion is the only schema version this package reads.
const SupportedVersion = "1"

// Validate checks a mapping definition structurally: paths parse, wildcards
// line up, types and formats are known, and namespace aliases are declared.
// It does not look at any document.
func Validate(mf *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError("mapping_is_nil", "mapping file is nil", "", "")
		return res
	}

	if mf.Version != SupportedVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported mapping version %q", mf.Version), "", "")
	}

	validateDocument(res, "source", &mf.Source)
	validateDocument(res, "target", &mf.Target)

	for i, name := range mf.Options.Conversions {
		if !knownConversion(name) {
			res.AddError("unknown_conversion",
				fmt.Sprintf("unknown conversion category %q", name), fmt.Sprintf("options.conversions[%d]", i), "")
		}
	}

	for _, source := range slices.Sorted(maps.Keys(mf.OneToOne)) {
		fm := FieldMapping{Source: source, Target: StringOrArray{mf.OneToOne[source]}}
		validateFieldMapping(res, "121", mf, &fm)
	}

	targets := map[string]string{}

	for i := range mf.Fields {
		fm := &mf.Fields[i]
		where := fmt.Sprintf("fields[%d]", i)

		validateFieldMapping(res, where, mf, fm)

		for _, tp := range fm.Target {
			p, err := fieldpath.Parse(tp)
			if err != nil {
				continue
			}

			key := p.String()
			if prev, ok := targets[key]; ok {
				res.AddWarning("duplicate_target",
					fmt.Sprintf("target already written by %s; the later value wins", prev), where, key)

				continue
			}

			targets[key] = where
		}
	}

	return res
}

func validateDocument(res *diagnostic.Diagnostics, side string, spec *DocumentSpec) {
	if spec.Format != "" && !spec.Format.IsValid() {
		res.AddError("invalid_format", fmt.Sprintf("unknown %s format %q", side, spec.Format), side, "")
	}

	seen := map[string]struct{}{}

	for _, b := range spec.Namespaces {
		if b.Alias == "" || b.URI == "" {
			res.AddError("invalid_namespace",
				fmt.Sprintf("namespace %q -> %q needs both an alias and a URI", b.Alias, b.URI), side, "")

			continue
		}

		if _, ok := seen[b.Alias]; ok {
			res.AddError("duplicate_namespace", fmt.Sprintf("namespace alias %q declared twice", b.Alias), side, "")
			continue
		}

		seen[b.Alias] = struct{}{}
	}
}

// validateFieldMapping validates a single field mapping.
func validateFieldMapping(res *diagnostic.Diagnostics, where string, mf *File, fm *FieldMapping) {
	if fm.Target.IsEmpty() {
		res.AddError("missing_target", "field mapping has no target", where, fm.Source)
	}

	if fm.Source == "" && !fm.HasDefault() {
		res.AddError("missing_source", "field mapping needs a source or a default", where, fm.Target.First())
	}

	for _, t := range []fieldtype.Type{fm.SourceType, fm.TargetType} {
		if !t.IsValid() {
			res.AddError("invalid_type", fmt.Sprintf("invalid field type %d", int(t)), where, "")
		}
	}

	if fm.HasDefault() && fm.SourceType == fieldtype.TypeComplex {
		res.AddError("invalid_default", "complex fields cannot have a default", where, fm.Source)
	}

	sourceWildcards := 0

	if fm.Source != "" {
		p, err := fieldpath.Parse(fm.Source)
		if err != nil {
			res.AddError("invalid_source_path", fmt.Sprintf("invalid source path: %v", err), where, fm.Source)
		} else {
			sourceWildcards = len(p.Wildcards())
			checkAliases(res, where, p, &mf.Source, false)
		}
	}

	for _, tp := range fm.Target {
		p, err := fieldpath.Parse(tp)
		if err != nil {
			res.AddError("invalid_target_path", fmt.Sprintf("invalid target path: %v", err), where, tp)
			continue
		}

		if n := len(p.Wildcards()); n > sourceWildcards {
			res.AddError("unbound_wildcard",
				fmt.Sprintf("target has %d wildcards but source has only %d", n, sourceWildcards), where, tp)
		}

		checkAliases(res, where, p, &mf.Target, mf.Target.StrictNamespaces)
	}
}

// checkAliases reports aliases used in p but not declared for its side.
// Undeclared target aliases fail strict writes, so they are errors there.
func checkAliases(res *diagnostic.Diagnostics, where string, p fieldpath.Path, spec *DocumentSpec, strict bool) {
	for _, seg := range p.Segments() {
		alias := seg.Namespace()
		if alias == "" {
			continue
		}

		if _, ok := spec.Namespaces.URI(alias); ok {
			continue
		}

		msg := fmt.Sprintf("namespace alias %q is not declared", alias)
		if strict {
			res.AddError("undeclared_namespace", msg, where, p.String())
		} else {
			res.AddWarning("undeclared_namespace", msg, where, p.String())
		}
	}
}

func knownConversion(name string) bool {
	_, err := convert.ParseCategories([]string{name})
	return err == nil
}
