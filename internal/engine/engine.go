// Package engine composes the inference pipeline: normalize, vectorize
// once, classify and resolve the merchant off the shared vector, extract
// the amount from the raw text, and assemble the result.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keesa/smsparse/internal/artifact"
	"github.com/keesa/smsparse/internal/classify"
	"github.com/keesa/smsparse/internal/common"
	"github.com/keesa/smsparse/internal/extract"
	"github.com/keesa/smsparse/internal/model"
	"github.com/keesa/smsparse/internal/resolve"
	"github.com/keesa/smsparse/internal/textutil"
)

// Engine turns raw banking messages into InferenceResults. It is
// transport-agnostic; any request-handling layer can call Infer.
type Engine struct {
	stores    *artifact.Provider
	logger    *slog.Logger
	threshold float32
}

// New creates an Engine serving from the given provider. threshold is the
// merchant acceptance cutoff, normally resolve.DefaultThreshold.
func New(stores *artifact.Provider, threshold float32, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{stores: stores, threshold: threshold, logger: logger}
}

// Infer classifies a single message. An empty or whitespace-only message
// is ErrBadInput. A store without classifier or vectorizer is
// ErrArtifactUnavailable. Merchant resolution failures degrade to Unknown
// inside the resolver and never fail the request; vectorization and
// classification faults fail the request as a whole, with no partial
// result. Output is deterministic for a fixed store and message.
func (e *Engine) Infer(ctx context.Context, message string) (model.InferenceResult, error) {
	if err := ctx.Err(); err != nil {
		return model.InferenceResult{}, err
	}

	normalized := textutil.Normalize(message)
	if normalized == "" {
		return model.InferenceResult{}, common.ErrBadInput
	}

	store := e.stores.Current()
	if !store.Ready() {
		return model.InferenceResult{}, common.ErrArtifactUnavailable
	}

	// Vectorize exactly once; classification and merchant resolution
	// share this vector.
	vec, err := store.Vectorizer().Transform(normalized)
	if err != nil {
		return model.InferenceResult{}, fmt.Errorf("vectorization failed: %w", err)
	}

	rawLabel, err := store.Classifier().Predict(vec)
	if err != nil {
		return model.InferenceResult{}, fmt.Errorf("classification failed: %w", err)
	}
	label := model.TransactionType(textutil.Normalize(string(classify.Label(rawLabel))))

	resolver := resolve.New(store.Index(), store.Catalog(), e.threshold, e.logger)
	merchant, matched := resolver.Resolve(vec)

	result := model.InferenceResult{
		TransactionType: label,
		Merchant:        merchant,
		ReferenceNumber: model.PlaceholderReference,
	}
	if amount, ok := extract.Amount(message); ok {
		result.Amount = &amount
	}

	e.logger.Info("message classified",
		"type", result.TransactionType,
		"merchant", result.Merchant,
		"merchant_matched", matched,
		"has_amount", result.Amount != nil)

	return result, nil
}
