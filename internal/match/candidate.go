package match

import (
	"sort"

	"docmapper/internal/convert"
)

// Candidate is a possible mapping from a source leaf to a target leaf.
type Candidate struct {
	Source Leaf
	Target Leaf

	NameScore    float64 // similarity of the leaf names (0-1)
	ContextScore float64 // similarity of the enclosing names (0-1)
	TypeCompat   TypeCompatibilityResult

	// CombinedScore ranks candidates; higher is better.
	CombinedScore float64
}

// CandidateList is a list of candidates, best first once ranked.
type CandidateList []Candidate

// Score weights.
const (
	nameWeight    = 0.5
	contextWeight = 0.1
	typeWeight    = 0.4
)

// Confidence thresholds for accepting a match.
const (
	// DefaultMinScore is the minimum combined score for acceptance.
	DefaultMinScore = 0.7
	// DefaultMinGap is the minimum score gap between the two best candidates.
	DefaultMinGap = 0.05
	// DefaultAmbiguityThreshold is the score difference that marks ambiguity.
	DefaultAmbiguityThreshold = 0.1
)

// RankCandidates scores every source leaf that could feed target and
// sorts them by combined score. Sources with fewer wildcards than the
// target are skipped, since the target wildcards could not be bound.
func RankCandidates(target Leaf, sources []Leaf, cats convert.Category) CandidateList {
	var candidates CandidateList

	need := len(target.Path.Wildcards())

	for _, source := range sources {
		if len(source.Path.Wildcards()) < need {
			continue
		}

		nameScore := NameSimilarity(source.Name(), target.Name())
		contextScore := NameSimilarity(source.Parent(), target.Parent())
		compat := ScoreTypeCompatibility(source.Type, target.Type, cats)

		candidates = append(candidates, Candidate{
			Source:        source,
			Target:        target,
			NameScore:     nameScore,
			ContextScore:  contextScore,
			TypeCompat:    compat,
			CombinedScore: nameScore*nameWeight + contextScore*contextWeight + compat.Compatibility.score()*typeWeight,
		})
	}

	sort.Stable(candidates)

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface: by combined score descending, then by
// source path for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].CombinedScore != c[j].CombinedScore {
		return c[i].CombinedScore > c[j].CombinedScore
	}

	return c[i].Source.Path.String() < c[j].Source.Path.String()
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there is none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the two best candidates are within threshold.
func (c CandidateList) IsAmbiguous(threshold float64) bool {
	if len(c) < 2 {
		return false
	}

	return c[0].CombinedScore-c[1].CombinedScore < threshold
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.CombinedScore >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// HighConfidence returns the best candidate when it reaches minScore, its
// value can reach the target, and it beats the runner-up by minGap.
func (c CandidateList) HighConfidence(minScore, minGap float64) *Candidate {
	best := c.Best()
	if best == nil || best.CombinedScore < minScore {
		return nil
	}

	if best.TypeCompat.Compatibility == TypeIncompatible {
		return nil
	}

	if len(c) > 1 && c[0].CombinedScore-c[1].CombinedScore < minGap {
		return nil
	}

	return best
}
