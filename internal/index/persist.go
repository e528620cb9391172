package index

import (
	"encoding/gob"
	"fmt"
	"os"
)

// flatFile is the on-disk shape of a Flat index.
type flatFile struct {
	BuildID string
	Vectors [][]float32
	Dim     int
}

// Save writes the index to path.
func (f *Flat) Save(path string) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create index artifact: %w", err)
	}
	defer func() { _ = out.Close() }()

	enc := gob.NewEncoder(out)
	if err := enc.Encode(flatFile{BuildID: f.buildID, Dim: f.dim, Vectors: f.vectors}); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return nil
}

// Load reads an index artifact written by Save.
func Load(path string) (*Flat, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index artifact: %w", err)
	}
	defer func() { _ = in.Close() }()

	var f flatFile
	if err := gob.NewDecoder(in).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode index artifact: %w", err)
	}

	if f.Dim < 1 {
		return nil, fmt.Errorf("corrupt index artifact: dimension %d", f.Dim)
	}
	for i, vec := range f.Vectors {
		if len(vec) != f.Dim {
			return nil, fmt.Errorf("corrupt index artifact: entry %d has %d dims, want %d", i, len(vec), f.Dim)
		}
	}

	return &Flat{buildID: f.BuildID, dim: f.Dim, vectors: f.Vectors}, nil
}
