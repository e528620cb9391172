// Package artifact manages the trained objects the inference pipeline
// needs: classifier, vectorizer, similarity index and merchant catalog.
// A Store is built once from an artifact directory and never mutated;
// hot reloads swap in a whole new Store through a Provider.
package artifact

import (
	"log/slog"
	"path/filepath"

	"github.com/keesa/smsparse/internal/classify"
	"github.com/keesa/smsparse/internal/common"
	"github.com/keesa/smsparse/internal/index"
	"github.com/keesa/smsparse/internal/vectorize"
)

// Artifact filenames within the configured artifact directory.
const (
	ClassifierFile = "classifier.json"
	VectorizerFile = "vectorizer.json"
	IndexFile      = "merchants.index"
	CatalogFile    = "catalog.json"
)

// Store holds one coherent set of loaded artifacts. Immutable after Load;
// safe for unlimited concurrent readers.
type Store struct {
	classifier classify.Classifier
	vectorizer vectorize.Vectorizer
	index      *index.Flat
	catalog    *index.Catalog
}

// Load builds a Store from the artifact directory. Each artifact loads
// independently and degrades on its own:
//
//   - classifier or vectorizer missing/corrupt: held as unavailable, the
//     store reports not ready and requests fail fast;
//   - index or catalog missing/corrupt: replaced by empty placeholders,
//     merchants resolve to Unknown but requests succeed;
//   - index/catalog pair with mismatched counts or build IDs: both
//     degrade to empty, since positions would be meaningless.
//
// Load never fails; the degraded conditions are logged and visible
// through Ready.
func Load(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{}

	if clf, err := classify.LoadLinear(filepath.Join(dir, ClassifierFile)); err != nil {
		logger.Error("classifier unavailable, requests will fail until remediated", "error", err)
	} else {
		s.classifier = clf
	}

	if vec, err := vectorize.Load(filepath.Join(dir, VectorizerFile)); err != nil {
		logger.Error("vectorizer unavailable, requests will fail until remediated", "error", err)
	} else {
		s.vectorizer = vec
	}

	idx, err := index.Load(filepath.Join(dir, IndexFile))
	if err != nil {
		logger.Warn("similarity index unavailable, merchants degrade to unknown", "error", err)
		idx = index.Empty()
	}

	catalog, err := index.LoadCatalog(filepath.Join(dir, CatalogFile))
	if err != nil {
		logger.Warn("merchant catalog unavailable, merchants degrade to unknown", "error", err)
		catalog = index.EmptyCatalog()
	}

	if idx.Len() != catalog.Len() || idx.BuildID() != catalog.BuildID() {
		logger.Error("index and catalog degraded to empty",
			"error", common.ErrMatchedSetMismatch,
			"index_count", idx.Len(),
			"catalog_count", catalog.Len(),
			"index_build", idx.BuildID(),
			"catalog_build", catalog.BuildID())
		idx = index.Empty()
		catalog = index.EmptyCatalog()
	}

	s.index = idx
	s.catalog = catalog

	logger.Info("artifact store loaded",
		"ready", s.Ready(),
		"catalog_size", catalog.Len(),
		"index_dimension", idx.Dimension())

	return s
}

// NewStore assembles a store from already-loaded components. Nil index or
// catalog values become empty placeholders, and a mismatched index/catalog
// pair degrades to empty exactly as in Load.
func NewStore(clf classify.Classifier, vec vectorize.Vectorizer, idx *index.Flat, catalog *index.Catalog) *Store {
	if idx == nil {
		idx = index.Empty()
	}
	if catalog == nil {
		catalog = index.EmptyCatalog()
	}
	if idx.Len() != catalog.Len() || idx.BuildID() != catalog.BuildID() {
		idx = index.Empty()
		catalog = index.EmptyCatalog()
	}
	return &Store{classifier: clf, vectorizer: vec, index: idx, catalog: catalog}
}

// Ready reports whether the store can serve requests. The index and
// catalog are allowed to be empty; the classifier and vectorizer are not.
func (s *Store) Ready() bool {
	return s.classifier != nil && s.vectorizer != nil
}

// Classifier returns the loaded classifier, or nil when unavailable.
func (s *Store) Classifier() classify.Classifier {
	return s.classifier
}

// Vectorizer returns the loaded vectorizer, or nil when unavailable.
func (s *Store) Vectorizer() vectorize.Vectorizer {
	return s.vectorizer
}

// Index returns the similarity index, possibly empty but never nil.
func (s *Store) Index() *index.Flat {
	return s.index
}

// Catalog returns the merchant catalog, possibly empty but never nil.
func (s *Store) Catalog() *index.Catalog {
	return s.catalog
}
