package analyzer

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestMatch_Scenarios(t *testing.T) {
	t.Run("exact copy wins over disjoint file", func(t *testing.T) {
		result, err := FindBestMatch("foo bar foo", []Candidate{
			{ID: "A", Content: "foo bar foo"},
			{ID: "B", Content: "baz qux"},
		})
		require.NoError(t, err)

		assert.Equal(t, "A", result.Best)
		scoreA, _ := result.Ranked.ScoreOf("A")
		scoreB, _ := result.Ranked.ScoreOf("B")
		assert.InDelta(t, 1.0, scoreA, normTolerance)
		assert.Equal(t, 0.0, scoreB)
		assert.Greater(t, scoreA, scoreB)
	})

	t.Run("empty candidate set fails", func(t *testing.T) {
		result, err := FindBestMatch("foo", nil)
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrNoCandidates))

		result, err = FindBestMatchInMap("foo", map[string]string{})
		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrNoCandidates))
	})

	t.Run("empty query falls back to first candidate", func(t *testing.T) {
		result, err := FindBestMatch("", []Candidate{
			{ID: "A", Content: "foo"},
			{ID: "B", Content: "bar"},
		})
		require.NoError(t, err)

		assert.Equal(t, "A", result.Best)
		for _, sc := range result.Ranked {
			assert.Equal(t, 0.0, sc.Score)
		}
		assert.Equal(t, "B", result.Ranked[1].ID)
	})
}

func TestFindBestMatch_SelfSimilarity(t *testing.T) {
	snippet := "func Add(a, b int) int {\n\treturn a + b\n}\n"
	candidates := []Candidate{
		{ID: "sub.go", Content: "func Sub(a, b int) int {\n\treturn a - b\n}\n"},
		{ID: "add.go", Content: snippet},
		{ID: "mul.go", Content: "func Mul(a, b int) int { return a * b }"},
		{ID: "readme.md", Content: "Arithmetic helpers for integers."},
	}

	result, err := FindBestMatch(snippet, candidates)
	require.NoError(t, err)

	assert.Equal(t, "add.go", result.Best)
	assert.InDelta(t, 1.0, result.BestScore(), normTolerance)
	for _, sc := range result.Ranked[1:] {
		assert.Less(t, sc.Score, result.BestScore())
	}
}

func TestFindBestMatch_IdenticalCandidatesTieInInputOrder(t *testing.T) {
	result, err := FindBestMatch("x y", []Candidate{
		{ID: "other", Content: "unrelated"},
		{ID: "second", Content: "x y z"},
		{ID: "first", Content: "x y z"},
	})
	require.NoError(t, err)

	assert.Equal(t, "second", result.Best)
	assert.Equal(t, result.Ranked[0].Score, result.Ranked[1].Score)
	assert.Equal(t, "first", result.Ranked[1].ID)
}

func TestFindBestMatch_ZeroOverlapScoresZero(t *testing.T) {
	result, err := FindBestMatch("alpha beta", []Candidate{
		{ID: "a", Content: "gamma delta"},
		{ID: "b", Content: "beta"},
	})
	require.NoError(t, err)

	score, ok := result.Ranked.ScoreOf("a")
	require.True(t, ok)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, "b", result.Best)
}

func TestFindBestMatch_CaseSensitive(t *testing.T) {
	result, err := FindBestMatch("Value", []Candidate{
		{ID: "lower", Content: "value"},
		{ID: "upper", Content: "Value"},
	})
	require.NoError(t, err)

	assert.Equal(t, "upper", result.Best)
	score, _ := result.Ranked.ScoreOf("lower")
	assert.Equal(t, 0.0, score)
}

func TestFindBestMatch_Deterministic(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Content: "import os\nprint(os.getcwd())"},
		{ID: "b", Content: "import sys\nprint(sys.argv)"},
		{ID: "c", Content: "print('hello')"},
	}

	first, err := FindBestMatch("print(os.environ)", candidates)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := FindBestMatch("print(os.environ)", candidates)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFindBestMatch_PermutationInvariantScores(t *testing.T) {
	query := "for i in range(10): total += i"
	candidates := []Candidate{
		{ID: "loop", Content: "for i in range(n):\n    total += i"},
		{ID: "while", Content: "while total < 10:\n    total += 1"},
		{ID: "print", Content: "print(total)"},
		{ID: "empty", Content: ""},
	}
	reversed := make([]Candidate, len(candidates))
	for i, c := range candidates {
		reversed[len(candidates)-1-i] = c
	}

	forward, err := FindBestMatch(query, candidates)
	require.NoError(t, err)
	backward, err := FindBestMatch(query, reversed)
	require.NoError(t, err)

	for _, sc := range forward.Ranked {
		other, ok := backward.Ranked.ScoreOf(sc.ID)
		require.True(t, ok)
		assert.InDelta(t, sc.Score, other, normTolerance, sc.ID)
	}
	assert.Equal(t, forward.Best, backward.Best)
}

func TestFindBestMatch_DuplicateIDsLastWriteWins(t *testing.T) {
	result, err := FindBestMatch("needle", []Candidate{
		{ID: "a", Content: "needle"},
		{ID: "b", Content: "haystack"},
		{ID: "a", Content: "nothing here"},
	})
	require.NoError(t, err)

	assert.Len(t, result.Ranked, 2)
	score, _ := result.Ranked.ScoreOf("a")
	assert.Equal(t, 0.0, score)
}

func TestFindBestMatch_VocabularySize(t *testing.T) {
	result, err := FindBestMatch("a b", []Candidate{
		{ID: "x", Content: "b c"},
		{ID: "y", Content: "d a"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, result.VocabularySize)
}

func TestFindBestMatch_Concurrent(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Content: "alpha beta gamma"},
		{ID: "b", Content: "delta epsilon"},
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := FindBestMatch(fmt.Sprintf("alpha %d", i), candidates)
			assert.NoError(t, err)
			assert.Equal(t, "a", result.Best)
		}(i)
	}
	wg.Wait()
}
