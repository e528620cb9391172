package classify

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/keesa/smsparse/internal/common"
)

// Linear is a linear scoring model: one weight row and bias per class,
// prediction is the argmax of vector · weights + bias. It adapts whatever
// the training pipeline exported to the Classifier interface. Immutable
// after loading; safe for concurrent use.
type Linear struct {
	classIDs []int
	weights  [][]float32
	bias     []float32
	dim      int
}

// NewLinear builds a model directly from its parameters. Used by tests and
// by any embedder that trains in-process.
func NewLinear(classIDs []int, weights [][]float32, bias []float32) (*Linear, error) {
	if len(classIDs) == 0 {
		return nil, fmt.Errorf("model has no classes")
	}
	if len(weights) != len(classIDs) || len(bias) != len(classIDs) {
		return nil, fmt.Errorf("model shape mismatch: %d classes, %d weight rows, %d biases",
			len(classIDs), len(weights), len(bias))
	}

	dim := len(weights[0])
	if dim == 0 {
		return nil, fmt.Errorf("model weight rows are empty")
	}
	for i, row := range weights {
		if len(row) != dim {
			return nil, fmt.Errorf("weight row %d has %d dims, want %d", i, len(row), dim)
		}
	}

	return &Linear{classIDs: classIDs, weights: weights, bias: bias, dim: dim}, nil
}

// Dimension returns the feature dimension the model expects.
func (m *Linear) Dimension() int {
	return m.dim
}

// Predict returns the raw class id with the highest score for the vector.
func (m *Linear) Predict(vector []float32) (int, error) {
	if len(vector) != m.dim {
		return 0, fmt.Errorf("%w: model expects %d, got %d", common.ErrDimensionMismatch, m.dim, len(vector))
	}

	best := 0
	var bestScore float32
	for c, row := range m.weights {
		score := m.bias[c]
		for j, w := range row {
			score += w * vector[j]
		}
		if c == 0 || score > bestScore {
			best = c
			bestScore = score
		}
	}

	return m.classIDs[best], nil
}

// modelFile is the on-disk JSON shape exported by the training pipeline.
type modelFile struct {
	ClassIDs []int       `json:"class_ids"`
	Weights  [][]float32 `json:"weights"`
	Bias     []float32   `json:"bias"`
}

// LoadLinear reads a trained model from a JSON artifact.
func LoadLinear(path string) (*Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var f modelFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}

	m, err := NewLinear(f.ClassIDs, f.Weights, f.Bias)
	if err != nil {
		return nil, fmt.Errorf("corrupt model artifact: %w", err)
	}
	return m, nil
}
