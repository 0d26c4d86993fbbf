// Package lineage will infer file-evolution edges from timestamps and
// similarity clusters. Not implemented yet.
package lineage

import (
	"github.com/justinmckeown/similitude/internal/port"
)

// Edge is a directional parent -> child relationship in a file's history.
type Edge struct {
	ParentID  int64
	ChildID   int64
	Rationale string
}

// Service infers lineage edges.
type Service struct {
	index port.Index
}

// New creates a lineage service over index.
func New(index port.Index) *Service {
	return &Service{index: index}
}

// Build produces tentative lineage edges suitable for human review. Until
// the heuristics land this returns nothing.
func (s *Service) Build() ([]Edge, error) {
	return nil, nil
}
