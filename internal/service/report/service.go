// Package report serializes duplicate clusters to JSON, NDJSON or CSV.
package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/justinmckeown/similitude/internal/domain"
	"github.com/justinmckeown/similitude/internal/port"
	"github.com/justinmckeown/similitude/internal/service/duplicate"
)

// Formats supported by WriteDuplicates.
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatCSV    = "csv"
)

// csvHeader is the stable CSV column order for downstream tooling.
var csvHeader = []string{"cluster_id", "path", "size", "mtime_ns", "strong_hash", "pre_hash"}

// Service writes duplicate reports from the index.
type Service struct {
	index port.Index
}

// New creates a report service over index.
func New(index port.Index) *Service {
	return &Service{index: index}
}

// WriteDuplicates writes the duplicate clusters at call time to outPath in
// the requested format and returns the path written. An unknown format
// fails with an UnsupportedFormatError before any filesystem side effects.
// Missing parent directories are created.
func (s *Service) WriteDuplicates(outPath, format string) (string, error) {
	switch format {
	case FormatJSON, FormatNDJSON, FormatCSV:
	default:
		return "", &domain.UnsupportedFormatError{Format: format}
	}

	clusters, err := duplicate.New(s.index).Clusters()
	if err != nil {
		return "", err
	}
	if clusters == nil {
		clusters = []domain.DuplicateCluster{}
	}

	var body []byte
	switch format {
	case FormatJSON:
		body, err = encodeJSON(clusters)
	case FormatNDJSON:
		body, err = encodeNDJSON(clusters)
	case FormatCSV:
		body, err = encodeCSV(clusters)
	}
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(outPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return outPath, nil
}

// encodeJSON renders one indented JSON array of clusters.
func encodeJSON(clusters []domain.DuplicateCluster) ([]byte, error) {
	return json.MarshalIndent(clusters, "", "  ")
}

// encodeNDJSON renders one cluster (a JSON array of members) per line,
// with a trailing newline when non-empty.
func encodeNDJSON(clusters []domain.DuplicateCluster) ([]byte, error) {
	var buf bytes.Buffer
	for _, cluster := range clusters {
		line, err := json.Marshal(cluster)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// encodeCSV renders flattened member rows with a synthetic 1-based
// cluster_id. The header is written even when there are no clusters.
func encodeCSV(clusters []domain.DuplicateCluster) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i, cluster := range clusters {
		clusterID := strconv.Itoa(i + 1)
		for _, m := range cluster {
			row := []string{
				clusterID,
				m.Path,
				strconv.FormatInt(m.Size, 10),
				strconv.FormatInt(m.MtimeNS, 10),
				deref(m.StrongHash),
				deref(m.PreHash),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
