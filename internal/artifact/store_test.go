package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keesa/smsparse/internal/index"
	"github.com/keesa/smsparse/internal/vectorize"
)

// writeFullArtifactSet writes a coherent artifact set into dir and returns
// the catalog names it indexed.
func writeFullArtifactSet(t *testing.T, dir, buildID string) []string {
	t.Helper()

	names := []string{"amazon", "swiggy", "zomato"}
	vec, err := vectorize.Fit(names, buildID)
	require.NoError(t, err)
	require.NoError(t, vec.Save(filepath.Join(dir, VectorizerFile)))

	idx, err := index.NewFlat(vec.Dimension(), buildID)
	require.NoError(t, err)
	for _, name := range names {
		v, transformErr := vec.Transform(name)
		require.NoError(t, transformErr)
		require.NoError(t, idx.Add(v))
	}
	require.NoError(t, idx.Save(filepath.Join(dir, IndexFile)))
	require.NoError(t, index.NewCatalog(names, buildID).Save(filepath.Join(dir, CatalogFile)))

	writeClassifier(t, dir, vec.Dimension())
	return names
}

func writeClassifier(t *testing.T, dir string, dim int) {
	t.Helper()

	weights := make([][]float32, 2)
	for c := range weights {
		weights[c] = make([]float32, dim)
	}
	payload, err := json.Marshal(map[string]any{
		"class_ids": []int{0, 1},
		"weights":   weights,
		"bias":      []float32{0, 0.1},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ClassifierFile), payload, 0o600))
}

func TestLoadFullSet(t *testing.T) {
	dir := t.TempDir()
	names := writeFullArtifactSet(t, dir, "build-1")

	store := Load(dir, nil)

	assert.True(t, store.Ready())
	assert.Equal(t, len(names), store.Index().Len())
	assert.Equal(t, len(names), store.Catalog().Len())
	assert.NotNil(t, store.Classifier())
	assert.NotNil(t, store.Vectorizer())
}

func TestLoadMissingClassifierNotReady(t *testing.T) {
	dir := t.TempDir()
	writeFullArtifactSet(t, dir, "build-1")
	require.NoError(t, os.Remove(filepath.Join(dir, ClassifierFile)))

	store := Load(dir, nil)

	assert.False(t, store.Ready())
	// Index and catalog still load; only admission is blocked.
	assert.Equal(t, 3, store.Index().Len())
}

func TestLoadMissingVectorizerNotReady(t *testing.T) {
	dir := t.TempDir()
	writeFullArtifactSet(t, dir, "build-1")
	require.NoError(t, os.Remove(filepath.Join(dir, VectorizerFile)))

	store := Load(dir, nil)
	assert.False(t, store.Ready())
}

func TestLoadMissingIndexDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFullArtifactSet(t, dir, "build-1")
	require.NoError(t, os.Remove(filepath.Join(dir, IndexFile)))

	store := Load(dir, nil)

	assert.True(t, store.Ready(), "missing index must not block requests")
	assert.Equal(t, 0, store.Index().Len())
	assert.Equal(t, 0, store.Catalog().Len(), "catalog without its index degrades too")
}

func TestLoadCorruptIndexDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFullArtifactSet(t, dir, "build-1")
	require.NoError(t, os.WriteFile(filepath.Join(dir, IndexFile), []byte("garbage"), 0o600))

	store := Load(dir, nil)

	assert.True(t, store.Ready())
	assert.Equal(t, 0, store.Index().Len())
}

func TestLoadMismatchedBuildIDsDegradesPair(t *testing.T) {
	dir := t.TempDir()
	writeFullArtifactSet(t, dir, "build-1")
	// Overwrite the catalog with one from a different build run.
	require.NoError(t,
		index.NewCatalog([]string{"amazon", "swiggy", "zomato"}, "build-2").
			Save(filepath.Join(dir, CatalogFile)))

	store := Load(dir, nil)

	assert.True(t, store.Ready())
	assert.Equal(t, 0, store.Index().Len())
	assert.Equal(t, 0, store.Catalog().Len())
}

func TestLoadEmptyDir(t *testing.T) {
	store := Load(t.TempDir(), nil)

	assert.False(t, store.Ready())
	assert.Equal(t, 0, store.Index().Len())
	assert.Equal(t, 0, store.Catalog().Len())
}

func TestProviderSwap(t *testing.T) {
	p := NewProvider(nil)
	assert.False(t, p.Current().Ready(), "fresh provider must not be ready")

	dir := t.TempDir()
	writeFullArtifactSet(t, dir, "build-1")
	loaded := Load(dir, nil)

	p.Swap(loaded)
	assert.Same(t, loaded, p.Current())

	p.Swap(nil)
	assert.False(t, p.Current().Ready())
}
