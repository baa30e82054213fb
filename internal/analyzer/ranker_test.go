package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     DocumentVector
		expected float64
	}{
		{"identical unit vectors", DocumentVector{0.6, 0.8}, DocumentVector{0.6, 0.8}, 1.0},
		{"orthogonal", DocumentVector{1, 0}, DocumentVector{0, 1}, 0},
		{"zero query", DocumentVector{0, 0}, DocumentVector{1, 0}, 0},
		{"zero candidate", DocumentVector{1, 0}, DocumentVector{0, 0}, 0},
		{"partial overlap", DocumentVector{1, 0}, DocumentVector{0.6, 0.8}, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CosineSimilarity(tt.a, tt.b), normTolerance)
		})
	}
}

func TestCosineSimilarity_NeverAboveOne(t *testing.T) {
	v := DocumentVector{0.1, 0.2, 0.3, 0.4, 0.5}
	v.Normalize()
	assert.LessOrEqual(t, CosineSimilarity(v, v), 1.0)
}

func TestRank_DescendingAndStable(t *testing.T) {
	query := DocumentVector{1, 0}
	candidates := []DocumentVector{
		{0, 1},
		{0.6, 0.8},
		{1, 0},
		{0.6, 0.8},
		{0, 0},
	}
	ids := []string{"none", "tieA", "exact", "tieB", "empty"}

	ranked := Rank(query, candidates, ids)

	got := make([]string, len(ranked))
	for i, sc := range ranked {
		got[i] = sc.ID
	}
	assert.Equal(t, []string{"exact", "tieA", "tieB", "none", "empty"}, got)

	best, ok := ranked.Best()
	assert.True(t, ok)
	assert.Equal(t, "exact", best.ID)
}

func TestRankedCandidates_Views(t *testing.T) {
	ranked := RankedCandidates{
		{ID: "a", Score: 0.9},
		{ID: "b", Score: 0.5},
		{ID: "c", Score: 0.1},
	}

	assert.Len(t, ranked.Top(2), 2)
	assert.Len(t, ranked.Top(0), 3)
	assert.Len(t, ranked.Top(10), 3)

	assert.Equal(t, RankedCandidates{{ID: "a", Score: 0.9}, {ID: "b", Score: 0.5}}, ranked.AtLeast(0.5))
	assert.Empty(t, ranked.AtLeast(0.95))

	score, ok := ranked.ScoreOf("b")
	assert.True(t, ok)
	assert.Equal(t, 0.5, score)

	_, ok = RankedCandidates{}.Best()
	assert.False(t, ok)
}
