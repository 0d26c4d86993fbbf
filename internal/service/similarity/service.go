// Package similarity will compute near-duplicate relationships using the
// pluggable similarity engines. Not implemented yet.
package similarity

import (
	"github.com/justinmckeown/similitude/internal/port"
)

// Edge is a similarity relationship between two files.
type Edge struct {
	FileA     int64
	FileB     int64
	Score     float64
	Rationale string // e.g. "phash", "ssdeep"
}

// Service computes near-duplicate edges.
type Service struct {
	index  port.Index
	engine port.SimilarityAdapter
}

// New creates a similarity service over index using engine.
func New(index port.Index, engine port.SimilarityAdapter) *Service {
	return &Service{index: index, engine: engine}
}

// Compute yields edges scoring above threshold. Candidate generation needs
// index-side size/type binning to avoid O(N^2) comparisons; until that
// exists this returns nothing.
func (s *Service) Compute(threshold float64) ([]Edge, error) {
	return nil, nil
}
