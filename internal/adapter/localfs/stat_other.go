//go:build !linux

package localfs

import (
	"io/fs"

	"github.com/justinmckeown/similitude/internal/domain"
)

// enrichMeta is a no-op on platforms without a portable stat extraction.
// The index falls back to the weak (path, size, mtime) identity.
func enrichMeta(meta *domain.FileMeta, info fs.FileInfo) {
}
