// Package duplicate is the read side of exact-duplicate detection.
package duplicate

import (
	"sort"

	"github.com/justinmckeown/similitude/internal/domain"
	"github.com/justinmckeown/similitude/internal/port"
)

// Service produces exact-duplicate clusters from the index with a total,
// deterministic member order.
type Service struct {
	index port.Index
}

// New creates a duplicate service over index.
func New(index port.Index) *Service {
	return &Service{index: index}
}

// Clusters returns the duplicate clusters, each sorted by (path, id). The
// index already orders by path; the id tiebreak makes the order total even
// when two members share a path.
func (s *Service) Clusters() ([]domain.DuplicateCluster, error) {
	clusters, err := s.index.FindDuplicates()
	if err != nil {
		return nil, err
	}

	for _, cluster := range clusters {
		sort.SliceStable(cluster, func(i, j int) bool {
			if cluster[i].Path != cluster[j].Path {
				return cluster[i].Path < cluster[j].Path
			}
			return cluster[i].ID < cluster[j].ID
		})
	}
	return clusters, nil
}
