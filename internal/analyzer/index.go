package analyzer

import "sync"

// CandidateIndex caches candidate term counts and document frequencies so
// many queries can be matched against the same candidate set without
// re-tokenizing it. Results equal FindBestMatch over the same candidates.
//
// Every mutation bumps the generation and drops the cached statistics; they
// are rebuilt on the next Match.
type CandidateIndex struct {
	mu         sync.RWMutex
	ids        []string
	counts     []TermCounts
	positions  map[string]int
	corpus     *corpus
	generation uint64
}

// NewCandidateIndex indexes candidates, deduplicated with NewCandidateSet.
func NewCandidateIndex(candidates []Candidate) *CandidateIndex {
	set := NewCandidateSet(candidates)
	idx := &CandidateIndex{
		ids:       make([]string, len(set)),
		counts:    make([]TermCounts, len(set)),
		positions: make(map[string]int, len(set)),
	}
	for i, c := range set {
		idx.ids[i] = c.ID
		idx.counts[i] = CountTerms(Tokenize(c.Content))
		idx.positions[c.ID] = i
	}
	return idx
}

// Match scores query against the indexed candidates.
func (idx *CandidateIndex) Match(query string) (*MatchResult, error) {
	c, ids := idx.snapshot()
	if len(ids) == 0 {
		return nil, ErrNoCandidates
	}
	return match(c, ids, query), nil
}

// snapshot returns the current statistics, rebuilding them if invalidated.
// The returned values are never mutated afterwards.
func (idx *CandidateIndex) snapshot() (*corpus, []string) {
	idx.mu.RLock()
	c, ids := idx.corpus, idx.ids
	idx.mu.RUnlock()
	if c != nil {
		return c, ids
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.corpus == nil {
		idx.corpus = newCorpus(idx.counts)
	}
	return idx.corpus, idx.ids
}

// Replace sets the content of id, appending it when id is not indexed yet.
func (idx *CandidateIndex) Replace(id, content string) {
	tc := CountTerms(Tokenize(content))

	idx.mu.Lock()
	defer idx.mu.Unlock()

	counts := make([]TermCounts, len(idx.counts), len(idx.counts)+1)
	copy(counts, idx.counts)
	ids := idx.ids

	if pos, ok := idx.positions[id]; ok {
		counts[pos] = tc
	} else {
		ids = append(append(make([]string, 0, len(ids)+1), ids...), id)
		counts = append(counts, tc)
		idx.positions[id] = len(ids) - 1
	}

	idx.ids, idx.counts = ids, counts
	idx.invalidate()
}

// Remove drops id from the index. It reports whether id was present.
func (idx *CandidateIndex) Remove(id string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pos, ok := idx.positions[id]
	if !ok {
		return false
	}

	ids := make([]string, 0, len(idx.ids)-1)
	counts := make([]TermCounts, 0, len(idx.counts)-1)
	ids = append(append(ids, idx.ids[:pos]...), idx.ids[pos+1:]...)
	counts = append(append(counts, idx.counts[:pos]...), idx.counts[pos+1:]...)

	positions := make(map[string]int, len(ids))
	for i, cid := range ids {
		positions[cid] = i
	}

	idx.ids, idx.counts, idx.positions = ids, counts, positions
	idx.invalidate()
	return true
}

// Len returns the number of indexed candidates.
func (idx *CandidateIndex) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// IDs returns the indexed identifiers in tie-break order.
func (idx *CandidateIndex) IDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]string(nil), idx.ids...)
}

// Generation increases with every mutation.
func (idx *CandidateIndex) Generation() uint64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.generation
}

// invalidate must be called with the write lock held.
func (idx *CandidateIndex) invalidate() {
	idx.corpus = nil
	idx.generation++
}
