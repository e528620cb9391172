// Package index implements the flat similarity index the merchant
// resolver queries, together with the positionally aligned name catalog.
//
// The metric is fixed at build time: inner product over L2-normalized
// vectors, so scores are cosine similarities and higher is better. Every
// comparison against the acceptance threshold in this codebase uses the
// same direction.
package index

import (
	"fmt"
	"sort"

	"github.com/keesa/smsparse/internal/common"
)

// Hit is a single nearest-neighbor result.
type Hit struct {
	Score    float32
	Position int
}

// Flat is an exact nearest-neighbor index over fixed-dimension vectors.
// Immutable once built; safe for concurrent readers.
type Flat struct {
	buildID string
	vectors [][]float32
	dim     int
}

// NewFlat creates an empty index accepting vectors of the given dimension.
func NewFlat(dim int, buildID string) (*Flat, error) {
	if dim < 1 {
		return nil, fmt.Errorf("index dimension must be positive, got %d", dim)
	}
	return &Flat{dim: dim, buildID: buildID}, nil
}

// Empty returns a zero-entry placeholder index. Used as the degraded
// fallback when the real index artifact is missing or corrupt.
func Empty() *Flat {
	return &Flat{dim: 1}
}

// Add appends a vector to the index. Vectors are expected to already be
// L2-normalized by the build pipeline.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: index expects %d, got %d", common.ErrDimensionMismatch, f.dim, len(vec))
	}
	stored := make([]float32, len(vec))
	copy(stored, vec)
	f.vectors = append(f.vectors, stored)
	return nil
}

// Len returns the number of indexed vectors.
func (f *Flat) Len() int {
	return len(f.vectors)
}

// Dimension returns the vector dimension the index was built with.
func (f *Flat) Dimension() int {
	return f.dim
}

// BuildID returns the identifier of the build run that produced this index.
func (f *Flat) BuildID() string {
	return f.buildID
}

// Search returns the k best-scoring entries, highest inner product first.
// Querying an empty index is an error; callers are expected to
// short-circuit on Len() == 0 before reaching here.
func (f *Flat) Search(vec []float32, k int) ([]Hit, error) {
	if len(f.vectors) == 0 {
		return nil, common.ErrIndexEmpty
	}
	if len(vec) != f.dim {
		return nil, fmt.Errorf("%w: index expects %d, got %d", common.ErrDimensionMismatch, f.dim, len(vec))
	}
	if k < 1 {
		return nil, fmt.Errorf("search k must be positive, got %d", k)
	}

	hits := make([]Hit, len(f.vectors))
	for i, stored := range f.vectors {
		var dot float32
		for j := range stored {
			dot += stored[j] * vec[j]
		}
		hits[i] = Hit{Score: dot, Position: i}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Position < hits[j].Position
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}
