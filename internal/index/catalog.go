package index

import (
	"encoding/json"
	"fmt"
	"os"
)

// Catalog is the ordered list of merchant names positionally aligned with
// the index entries. A catalog and index produced by the same build run
// share a build ID; the artifact store refuses mismatched pairs.
type Catalog struct {
	buildID string
	names   []string
}

// NewCatalog creates a catalog over the given names.
func NewCatalog(names []string, buildID string) *Catalog {
	copied := make([]string, len(names))
	copy(copied, names)
	return &Catalog{buildID: buildID, names: copied}
}

// EmptyCatalog returns a zero-entry catalog, the degraded fallback when
// the catalog artifact is missing or corrupt.
func EmptyCatalog() *Catalog {
	return &Catalog{}
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.names)
}

// Name returns the merchant name at the given position.
func (c *Catalog) Name(position int) (string, bool) {
	if position < 0 || position >= len(c.names) {
		return "", false
	}
	return c.names[position], true
}

// BuildID returns the identifier of the build run that produced this catalog.
func (c *Catalog) BuildID() string {
	return c.buildID
}

type catalogFile struct {
	BuildID string   `json:"build_id"`
	Names   []string `json:"names"`
}

// Save writes the catalog to path as a JSON artifact.
func (c *Catalog) Save(path string) error {
	data, err := json.Marshal(catalogFile{BuildID: c.buildID, Names: c.names})
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write catalog artifact: %w", err)
	}
	return nil
}

// LoadCatalog reads a catalog artifact written by Save.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog artifact: %w", err)
	}

	var f catalogFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode catalog artifact: %w", err)
	}

	return &Catalog{buildID: f.BuildID, names: f.Names}, nil
}
