package port

import (
	"github.com/justinmckeown/similitude/internal/domain"
)

// Index is the durable file-identity and hash store.
type Index interface {
	// UpsertFile inserts or updates a file record and returns its id.
	// Identity resolution prefers (device, inode) when both are present and
	// falls back to (path, size, mtime). Repeated calls with the same
	// identity converge to one row.
	UpsertFile(meta domain.FileMeta) (int64, error)

	// UpsertHashes replaces the full hash tuple for a file. It fails with a
	// ReferentialError when fileID has no file record.
	UpsertHashes(fileID int64, hashes domain.Hashes) error

	// FindDuplicates returns one cluster per strong hash shared by two or
	// more files, members ordered by path. Computed fresh per call.
	FindDuplicates() ([]domain.DuplicateCluster, error)

	// Stats summarizes the index contents.
	Stats() (domain.IndexStats, error)

	// SetMeta and GetMeta access the reserved key/value settings table.
	SetMeta(key, value string) error
	GetMeta(key string) (string, bool, error)

	Close() error
}
