// Package localfs implements the Filesystem port on the local OS
// filesystem.
package localfs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/justinmckeown/similitude/internal/domain"
	"github.com/justinmckeown/similitude/internal/port"
)

// Local walks, stats and opens files on the host filesystem.
type Local struct{}

var _ port.Filesystem = (*Local)(nil)

// New returns a local filesystem adapter.
func New() *Local {
	return &Local{}
}

// Walk calls fn for every regular file under root. A root that is itself a
// regular file is yielded directly. A missing or unreadable root yields
// nothing; unreadable subtrees are skipped rather than failing the walk.
func (l *Local) Walk(root string, fn func(path string, mode fs.FileMode) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return nil
	}
	if info.Mode().IsRegular() {
		return fn(root, info.Mode())
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return fn(path, d.Type())
	})
}

// Stat returns metadata for path. Device, inode, ctime and ownership are
// filled in where the platform exposes them.
func (l *Local) Stat(path string) (domain.FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FileMeta{}, err
	}

	meta := domain.FileMeta{
		Path:    path,
		Size:    info.Size(),
		MtimeNS: info.ModTime().UnixNano(),
	}
	enrichMeta(&meta, info)
	return meta, nil
}

// Open returns the file content for hashing. The *os.File also implements
// io.Seeker, which the pre-hasher uses to learn the stream size.
func (l *Local) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
