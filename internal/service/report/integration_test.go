package report

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justinmckeown/similitude/internal/adapter/localfs"
	"github.com/justinmckeown/similitude/internal/adapter/sqlite"
	"github.com/justinmckeown/similitude/internal/hasher"
	"github.com/justinmckeown/similitude/internal/service/scan"
)

// Full round trip: real filesystem, real hashers, real index, real report.
func TestScanAndReportRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "data")

	write := func(rel, content string) string {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	a := write("a.txt", "hello world\n")
	b := write("nested/b.txt", "hello world\n")
	write("c.txt", "something else\n")

	index, err := sqlite.Open(filepath.Join(tmp, "similitude.db"))
	require.NoError(t, err)
	defer index.Close()

	scanner := scan.New(
		localfs.New(),
		hasher.NewPreHasher(1024),
		hasher.NewSHA256(),
		index,
		scan.Options{},
		zap.NewNop(),
	)

	processed, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 3, processed)

	svc := New(index)

	// JSON: exactly one cluster containing a.txt and b.txt.
	jsonOut := filepath.Join(tmp, "duplicates.json")
	_, err = svc.WriteDuplicates(jsonOut, "json")
	require.NoError(t, err)

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)

	var clusters [][]map[string]any
	require.NoError(t, json.Unmarshal(data, &clusters))
	require.Len(t, clusters, 1)
	require.Len(t, clusters[0], 2)

	paths := map[string]bool{}
	for _, member := range clusters[0] {
		paths[member["path"].(string)] = true
	}
	assert.True(t, paths[a])
	assert.True(t, paths[b])

	// CSV: two data rows sharing cluster_id 1.
	csvOut := filepath.Join(tmp, "duplicates.csv")
	_, err = svc.WriteDuplicates(csvOut, "csv")
	require.NoError(t, err)

	f, err := os.Open(csvOut)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "1", rows[2][0])
}

// Rescanning the same tree must not grow the index or change the report.
func TestRescanIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	root := filepath.Join(tmp, "data")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello world\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("hello world\n"), 0o644))

	index, err := sqlite.Open(filepath.Join(tmp, "similitude.db"))
	require.NoError(t, err)
	defer index.Close()

	scanner := scan.New(localfs.New(), hasher.NewPreHasher(1024), hasher.NewSHA256(),
		index, scan.Options{}, zap.NewNop())

	for i := 0; i < 2; i++ {
		processed, err := scanner.Scan(context.Background(), root)
		require.NoError(t, err)
		assert.Equal(t, 2, processed)
	}

	stats, err := index.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalFiles)

	clusters, err := index.FindDuplicates()
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Len(t, clusters[0], 2)
}
