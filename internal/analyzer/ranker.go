package analyzer

import (
	"math"
	"sort"
)

// ScoredCandidate pairs a candidate identifier with its similarity to the query.
type ScoredCandidate struct {
	ID    string  `json:"id" yaml:"id"`
	Score float64 `json:"score" yaml:"score"`
}

// RankedCandidates is ordered by descending score. Equal scores keep the
// order in which candidates were supplied.
type RankedCandidates []ScoredCandidate

// Best returns the first entry.
func (r RankedCandidates) Best() (ScoredCandidate, bool) {
	if len(r) == 0 {
		return ScoredCandidate{}, false
	}
	return r[0], true
}

// Top returns at most n leading entries. n <= 0 returns everything.
func (r RankedCandidates) Top(n int) RankedCandidates {
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[:n]
}

// AtLeast returns the leading entries scoring >= min.
func (r RankedCandidates) AtLeast(min float64) RankedCandidates {
	for i, sc := range r {
		if sc.Score < min {
			return r[:i]
		}
	}
	return r
}

// ScoreOf looks up the score of id.
func (r RankedCandidates) ScoreOf(id string) (float64, bool) {
	for _, sc := range r {
		if sc.ID == id {
			return sc.Score, true
		}
	}
	return 0, false
}

// CosineSimilarity of two unit-normalized vectors. Zero vectors score 0.
func CosineSimilarity(a, b DocumentVector) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	// rounding can push identical documents a hair above 1
	return math.Min(a.Dot(b), 1)
}

// Rank scores each candidate against query and orders them by descending
// similarity with a stable sort. ids[i] labels candidates[i].
func Rank(query DocumentVector, candidates []DocumentVector, ids []string) RankedCandidates {
	ranked := make(RankedCandidates, len(candidates))
	for i, vec := range candidates {
		ranked[i] = ScoredCandidate{ID: ids[i], Score: CosineSimilarity(query, vec)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
