package vectorize

import (
	"encoding/json"
	"fmt"
	"os"
)

// artifactFile is the on-disk JSON shape of a fitted TFIDF model.
type artifactFile struct {
	Vocabulary map[string]int `json:"vocabulary"`
	BuildID    string         `json:"build_id"`
	IDF        []float32      `json:"idf"`
}

// Save writes the fitted model to path as a JSON artifact.
func (v *TFIDF) Save(path string) error {
	data, err := json.Marshal(artifactFile{
		BuildID:    v.buildID,
		Vocabulary: v.vocabulary,
		IDF:        v.idf,
	})
	if err != nil {
		return fmt.Errorf("failed to encode vectorizer: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write vectorizer artifact: %w", err)
	}
	return nil
}

// Load reads a fitted model from a JSON artifact written by Save.
func Load(path string) (*TFIDF, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer artifact: %w", err)
	}

	var f artifactFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode vectorizer artifact: %w", err)
	}

	if len(f.Vocabulary) != len(f.IDF) {
		return nil, fmt.Errorf("corrupt vectorizer artifact: %d vocabulary terms but %d idf weights",
			len(f.Vocabulary), len(f.IDF))
	}
	for term, idx := range f.Vocabulary {
		if idx < 0 || idx >= len(f.IDF) {
			return nil, fmt.Errorf("corrupt vectorizer artifact: term %q maps to index %d", term, idx)
		}
	}

	return &TFIDF{vocabulary: f.Vocabulary, idf: f.IDF, buildID: f.BuildID}, nil
}
