package analyzer

import "math"

// TFIDFCalculator holds the document statistics needed to weight terms.
// The query counts as a document just like every candidate.
type TFIDFCalculator struct {
	DocumentFrequency map[string]int // term → number of documents containing it
	TotalDocuments    int
}

// NewTFIDFCalculator creates an empty calculator.
func NewTFIDFCalculator() *TFIDFCalculator {
	return &TFIDFCalculator{
		DocumentFrequency: make(map[string]int),
	}
}

// AddDocument records the distinct terms of one document.
func (c *TFIDFCalculator) AddDocument(tc TermCounts) {
	for _, term := range tc.Order {
		c.DocumentFrequency[term]++
	}
	c.TotalDocuments++
}

// IDF returns the smoothed inverse document frequency
//
//	idf(t) = ln((1 + N) / (1 + df(t))) + 1
//
// A term present in every document still weighs 1.
func (c *TFIDFCalculator) IDF(term string) float64 {
	df := c.DocumentFrequency[term]
	return math.Log(float64(1+c.TotalDocuments)/float64(1+df)) + 1
}

// ToWeightedVector projects a document onto vocab as raw tf·idf weights
// rescaled to unit L2 norm. A document with no vocabulary terms stays zero.
func (c *TFIDFCalculator) ToWeightedVector(tc TermCounts, vocab *Vocabulary) DocumentVector {
	vector := make(DocumentVector, vocab.Len())
	if tc.Len() == 0 {
		return vector
	}

	for i, term := range vocab.Terms() {
		if count := tc.Counts[term]; count > 0 {
			vector[i] = float64(count) * c.IDF(term)
		}
	}

	return vector.Normalize()
}

// DocumentVector is a TF-IDF weight vector indexed by vocabulary position.
type DocumentVector []float64

// Norm returns the Euclidean length of the vector.
func (v DocumentVector) Norm() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every component is zero.
func (v DocumentVector) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}

// Normalize rescales v in place to unit length and returns it.
func (v DocumentVector) Normalize() DocumentVector {
	norm := v.Norm()
	if norm == 0 {
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}

// Dot returns the inner product of two vectors of the same space.
func (v DocumentVector) Dot(other DocumentVector) float64 {
	n := len(v)
	if len(other) < n {
		n = len(other)
	}
	var dot float64
	for i := 0; i < n; i++ {
		dot += v[i] * other[i]
	}
	return dot
}

// Weights returns the non-zero components keyed by term, for diagnostics.
func (v DocumentVector) Weights(vocab *Vocabulary) map[string]float64 {
	weights := make(map[string]float64)
	for i, term := range vocab.Terms() {
		if i < len(v) && v[i] != 0 {
			weights[term] = v[i]
		}
	}
	return weights
}
