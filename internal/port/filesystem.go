package port

import (
	"io"
	"io/fs"

	"github.com/justinmckeown/similitude/internal/domain"
)

// Filesystem abstracts directory traversal and raw file access.
type Filesystem interface {
	// Walk calls fn for every regular file under root, or for root itself
	// when it is a file. Traversal order is unspecified. Returning a
	// non-nil error from fn stops the walk and is returned as-is.
	Walk(root string, fn func(path string, mode fs.FileMode) error) error

	// Stat returns metadata for path, failing on unreadable paths.
	Stat(path string) (domain.FileMeta, error)

	// Open returns the file content for hashing. The returned reader
	// typically also implements io.Seeker.
	Open(path string) (io.ReadCloser, error)
}
