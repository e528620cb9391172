// Package vectorize converts message text into fixed-dimension feature
// vectors using a TF-IDF model fitted offline at index-build time.
package vectorize

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Vectorizer is the contract the inference pipeline depends on. The
// pipeline never sees a concrete model type.
type Vectorizer interface {
	Transform(text string) ([]float32, error)
	Dimension() int
}

// TFIDF is a term-frequency / inverse-document-frequency vectorizer with a
// fixed vocabulary. Instances are immutable after fitting or loading and
// safe for concurrent use.
type TFIDF struct {
	vocabulary map[string]int
	idf        []float32
	buildID    string
}

var tokenPattern = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// tokenize lowercases and splits on non-alphanumeric runes. Single-rune
// tokens carry no signal for merchant names and are dropped.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	fields := strings.Fields(tokenPattern.ReplaceAllString(text, " "))

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Fit builds a TFIDF model from a document corpus. The vocabulary is the
// sorted set of all tokens, so fitting is deterministic for a given corpus.
// IDF uses smoothing so terms present in every document keep a nonzero
// weight: idf = ln((1+n)/(1+df)) + 1.
func Fit(documents []string, buildID string) (*TFIDF, error) {
	if len(documents) == 0 {
		return nil, fmt.Errorf("cannot fit on an empty corpus")
	}

	docFreq := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]bool)
		for _, tok := range tokenize(doc) {
			seen[tok] = true
		}
		for tok := range seen {
			docFreq[tok]++
		}
	}

	if len(docFreq) == 0 {
		return nil, fmt.Errorf("corpus produced no usable tokens")
	}

	terms := make([]string, 0, len(docFreq))
	for tok := range docFreq {
		terms = append(terms, tok)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float32, len(terms))
	n := float64(len(documents))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = float32(math.Log((1+n)/(1+float64(docFreq[term]))) + 1)
	}

	return &TFIDF{vocabulary: vocab, idf: idf, buildID: buildID}, nil
}

// Dimension returns the vector dimension.
func (v *TFIDF) Dimension() int {
	return len(v.idf)
}

// BuildID returns the identifier of the build run that produced this model.
func (v *TFIDF) BuildID() string {
	return v.buildID
}

// Transform converts text into an L2-normalized TF-IDF vector. Text with no
// vocabulary terms yields the zero vector, not an error.
func (v *TFIDF) Transform(text string) ([]float32, error) {
	if len(v.idf) == 0 {
		return nil, fmt.Errorf("vectorizer has an empty vocabulary")
	}

	vector := make([]float32, len(v.idf))
	counts := make(map[int]int)
	for _, tok := range tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, count := range counts {
		w := float32(count) * v.idf[idx]
		vector[idx] = w
		norm += float64(w) * float64(w)
	}

	if norm > 0 {
		scale := float32(1 / math.Sqrt(norm))
		for idx := range counts {
			vector[idx] *= scale
		}
	}

	return vector, nil
}
