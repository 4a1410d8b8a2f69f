package match

import (
	"docmapper/internal/convert"
	"docmapper/internal/document"
	"docmapper/internal/fieldtype"
	"docmapper/internal/mapping"
)

// keptCandidates is how many ranked candidates a Suggestion keeps.
const keptCandidates = 3

// Config tunes Suggest.
type Config struct {
	// MinScore is the lowest combined score that is accepted.
	MinScore float64
	// MinGap is the lead the best candidate needs over the runner-up.
	MinGap float64
	// Categories limits the conversions considered compatible.
	Categories convert.Category
}

// DefaultConfig returns the default suggestion thresholds.
func DefaultConfig() Config {
	return Config{
		MinScore:   DefaultMinScore,
		MinGap:     DefaultMinGap,
		Categories: convert.CategoryAll,
	}
}

// Suggestion holds the ranked sources for one target leaf.
type Suggestion struct {
	Target     Leaf
	Candidates CandidateList
	// Accepted is nil when no candidate is a confident match.
	Accepted *Candidate
}

// Result is the outcome of Suggest, one Suggestion per target leaf.
type Result struct {
	Suggestions []Suggestion
}

// Suggest pairs every target leaf with its best source leaf. A source may
// feed several targets.
func Suggest(sources, targets []Leaf, cfg Config) *Result {
	res := &Result{Suggestions: make([]Suggestion, 0, len(targets))}

	for _, target := range targets {
		ranked := RankCandidates(target, sources, cfg.Categories)
		s := Suggestion{Target: target, Candidates: ranked.Top(keptCandidates)}

		if best := ranked.HighConfidence(cfg.MinScore, cfg.MinGap); best != nil {
			accepted := *best
			s.Accepted = &accepted
		}

		res.Suggestions = append(res.Suggestions, s)
	}

	return res
}

// Accepted returns the accepted candidates in target order.
func (r *Result) Accepted() []Candidate {
	var out []Candidate

	for _, s := range r.Suggestions {
		if s.Accepted != nil {
			out = append(out, *s.Accepted)
		}
	}

	return out
}

// Unresolved returns the suggestions without an accepted candidate.
func (r *Result) Unresolved() []Suggestion {
	var out []Suggestion

	for _, s := range r.Suggestions {
		if s.Accepted == nil {
			out = append(out, s)
		}
	}

	return out
}

type fieldKey struct {
	source     string
	sourceType fieldtype.Type
	targetType fieldtype.Type
}

// Mapping builds a mapping definition from the accepted candidates. Targets
// fed by the same source with the same types share one entry.
func (r *Result) Mapping(source, target mapping.DocumentSpec) *mapping.File {
	mf := &mapping.File{
		Version: mapping.SupportedVersion,
		Source:  source,
		Target:  target,
	}

	seen := make(map[fieldKey]int)

	for _, c := range r.Accepted() {
		fm := fieldMapping(c)

		key := fieldKey{source: fm.Source, sourceType: fm.SourceType, targetType: fm.TargetType}
		if i, ok := seen[key]; ok {
			mf.Fields[i].Target = append(mf.Fields[i].Target, fm.Target...)
			continue
		}

		seen[key] = len(mf.Fields)
		mf.Fields = append(mf.Fields, fm)
	}

	return mf
}

// fieldMapping declares types only when the source sample was typed, so
// plain text moves through unchanged.
func fieldMapping(c Candidate) mapping.FieldMapping {
	fm := mapping.FieldMapping{
		Source: c.Source.Path.String(),
		Target: mapping.StringOrArray{c.Target.Path.String()},
	}

	switch c.TypeCompat.Compatibility {
	case TypeIdentical, TypeConvertible:
		if !c.Source.Type.IsTextual() {
			fm.SourceType = c.Source.Type
			fm.TargetType = c.Target.Type
		}
	}

	return fm
}

// DocumentSpec describes doc for a generated mapping: its format and the
// prefixed namespace declarations of its root.
func DocumentSpec(doc document.Adapter, format mapping.Format) mapping.DocumentSpec {
	spec := mapping.DocumentSpec{Format: format}

	root := doc.Root()
	if root == nil {
		return spec
	}

	for _, b := range doc.Declarations(root) {
		if b.Alias != "" {
			spec.Namespaces = append(spec.Namespaces, b)
		}
	}

	return spec
}
