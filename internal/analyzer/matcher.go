package analyzer

// MatchResult is the outcome of matching one query against a candidate set.
type MatchResult struct {
	// Best is the identifier of the highest scoring candidate
	Best string `json:"best_match" yaml:"best_match"`

	// Ranked holds every candidate with its score, best first
	Ranked RankedCandidates `json:"scores" yaml:"scores"`

	VocabularySize int `json:"vocabulary_size" yaml:"vocabulary_size"`
}

// BestScore returns the score of the winning candidate.
func (r *MatchResult) BestScore() float64 {
	if best, ok := r.Ranked.Best(); ok {
		return best.Score
	}
	return 0
}

// FindBestMatch returns the candidate whose content is lexically closest to
// query under TF-IDF cosine similarity. Candidates are deduplicated with
// NewCandidateSet first. When every score is zero the first candidate wins.
func FindBestMatch(query string, candidates []Candidate) (*MatchResult, error) {
	set := NewCandidateSet(candidates)
	if len(set) == 0 {
		return nil, ErrNoCandidates
	}

	ids := make([]string, len(set))
	counts := make([]TermCounts, len(set))
	for i, c := range set {
		ids[i] = c.ID
		counts[i] = CountTerms(Tokenize(c.Content))
	}

	return match(newCorpus(counts), ids, query), nil
}

// FindBestMatchInMap is FindBestMatch for callers holding an id → content map.
// Ties resolve in lexical ID order.
func FindBestMatchInMap(query string, files map[string]string) (*MatchResult, error) {
	return FindBestMatch(query, CandidatesFromMap(files))
}

func match(c *corpus, ids []string, query string) *MatchResult {
	space := c.space(CountTerms(Tokenize(query)))
	ranked := Rank(space.Query, space.Candidates, ids)

	return &MatchResult{
		Best:           ranked[0].ID,
		Ranked:         ranked,
		VocabularySize: space.Vocabulary.Len(),
	}
}
