// Package match proposes field mappings between two documents.
//
// The scalar positions of a source document and of a target template are
// listed with Leaves, and every target leaf is paired with the source leaves
// whose names are closest after normalization:
//   - NormalizeIdent folds case, separators and CamelCase
//   - Levenshtein scores the edit distance between normalized names
//   - ScoreTypeCompatibility weighs the value types sampled from both sides
//   - RankCandidates and Suggest turn the scores into mapping entries
package match
