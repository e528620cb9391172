// Package resolve matches message vectors against the merchant catalog
// via the similarity index. Every failure mode inside this package
// degrades to the Unknown merchant; resolution never fails a request.
package resolve

import (
	"log/slog"

	"github.com/keesa/smsparse/internal/index"
	"github.com/keesa/smsparse/internal/model"
	"github.com/keesa/smsparse/internal/textutil"
)

// DefaultThreshold is the acceptance cutoff for a nearest-neighbor score.
// Scores are cosine similarities, so higher is better and a match is
// accepted when score >= threshold.
const DefaultThreshold = 0.35

// Resolver answers "which known merchant does this message mention".
type Resolver struct {
	index     *index.Flat
	catalog   *index.Catalog
	logger    *slog.Logger
	threshold float32
}

// New creates a Resolver over a matched index/catalog pair.
func New(idx *index.Flat, catalog *index.Catalog, threshold float32, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{index: idx, catalog: catalog, threshold: threshold, logger: logger}
}

// Resolve returns the catalog merchant nearest to the vector, normalized,
// and whether the match was accepted. Dimension mismatches, empty indexes,
// sub-threshold scores and out-of-range positions all yield
// (Unknown, false).
func (r *Resolver) Resolve(vec []float32) (string, bool) {
	if r.index.Len() == 0 {
		return model.UnknownMerchant, false
	}

	if len(vec) != r.index.Dimension() {
		r.logger.Warn("vector dimension does not match index, merchant degraded to unknown",
			"vector_dim", len(vec),
			"index_dim", r.index.Dimension())
		return model.UnknownMerchant, false
	}

	hits, err := r.index.Search(vec, 1)
	if err != nil || len(hits) == 0 {
		if err != nil {
			r.logger.Warn("similarity search failed, merchant degraded to unknown", "error", err)
		}
		return model.UnknownMerchant, false
	}

	best := hits[0]
	if best.Score < r.threshold {
		r.logger.Debug("best match below threshold",
			"score", best.Score,
			"threshold", r.threshold)
		return model.UnknownMerchant, false
	}

	name, ok := r.catalog.Name(best.Position)
	if !ok {
		r.logger.Warn("index returned position outside catalog",
			"position", best.Position,
			"catalog_size", r.catalog.Len())
		return model.UnknownMerchant, false
	}

	return textutil.Normalize(name), true
}
