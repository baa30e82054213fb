package analyzer

import (
	"errors"
	"sort"
)

// ErrNoCandidates is returned when a match is requested against an empty
// candidate set. There is no meaningful best match in that case.
var ErrNoCandidates = errors.New("candidate set is empty")

// Candidate is a named document the query is compared against.
type Candidate struct {
	ID      string
	Content string
}

// NewCandidateSet deduplicates candidates by ID. The last content supplied
// for an ID wins; the ID keeps the position of its first occurrence.
func NewCandidateSet(candidates []Candidate) []Candidate {
	positions := make(map[string]int, len(candidates))
	set := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if pos, ok := positions[c.ID]; ok {
			set[pos].Content = c.Content
			continue
		}
		positions[c.ID] = len(set)
		set = append(set, c)
	}
	return set
}

// CandidatesFromMap converts an id → content mapping into candidates ordered
// by ID, giving map callers a deterministic tie-break order.
func CandidatesFromMap(files map[string]string) []Candidate {
	ids := make([]string, 0, len(files))
	for id := range files {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]Candidate, len(ids))
	for i, id := range ids {
		candidates[i] = Candidate{ID: id, Content: files[id]}
	}
	return candidates
}

// Vocabulary is the ordered set of distinct terms of one vector space.
type Vocabulary struct {
	terms []string
	index map[string]int
}

// NewVocabulary creates an empty vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// Add appends term if it is not yet present and returns its position.
func (v *Vocabulary) Add(term string) int {
	if i, ok := v.index[term]; ok {
		return i
	}
	v.index[term] = len(v.terms)
	v.terms = append(v.terms, term)
	return len(v.terms) - 1
}

// Index returns the position of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Terms returns the terms in index order. The slice must not be modified.
func (v *Vocabulary) Terms() []string {
	return v.terms
}

// Len returns the vocabulary size.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// VectorSpace is the TF-IDF space built for one query and its candidates.
type VectorSpace struct {
	Vocabulary *Vocabulary
	Query      DocumentVector
	Candidates []DocumentVector
	Calculator *TFIDFCalculator
}

// BuildVectorSpace weights the query and every candidate token sequence in
// one shared vocabulary. Vocabulary order is first appearance, query first,
// then candidates in the order given.
func BuildVectorSpace(query []string, candidates [][]string) (*VectorSpace, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	counts := make([]TermCounts, len(candidates))
	for i, tokens := range candidates {
		counts[i] = CountTerms(tokens)
	}

	return newCorpus(counts).space(CountTerms(query)), nil
}

// corpus holds per-candidate statistics that do not depend on the query.
type corpus struct {
	counts []TermCounts
	order  []string       // candidate terms by first appearance
	df     map[string]int // document frequency over candidates only
}

func newCorpus(counts []TermCounts) *corpus {
	c := &corpus{
		counts: counts,
		df:     make(map[string]int),
	}
	for _, tc := range counts {
		for _, term := range tc.Order {
			if c.df[term] == 0 {
				c.order = append(c.order, term)
			}
			c.df[term]++
		}
	}
	return c
}

// space completes the corpus statistics with the query document and weights
// every document.
func (c *corpus) space(query TermCounts) *VectorSpace {
	vocab := NewVocabulary()
	for _, term := range query.Order {
		vocab.Add(term)
	}
	for _, term := range c.order {
		vocab.Add(term)
	}

	calc := &TFIDFCalculator{
		DocumentFrequency: make(map[string]int, vocab.Len()),
		TotalDocuments:    len(c.counts) + 1,
	}
	for term, df := range c.df {
		calc.DocumentFrequency[term] = df
	}
	for _, term := range query.Order {
		calc.DocumentFrequency[term]++
	}

	vs := &VectorSpace{
		Vocabulary: vocab,
		Query:      calc.ToWeightedVector(query, vocab),
		Candidates: make([]DocumentVector, len(c.counts)),
		Calculator: calc,
	}
	for i, tc := range c.counts {
		vs.Candidates[i] = calc.ToWeightedVector(tc, vocab)
	}
	return vs
}
