package sqlite

import (
	"database/sql"
	"errors"

	"github.com/justinmckeown/similitude/internal/domain"
)

// matchKind discriminates how an identity lookup resolved.
type matchKind int

const (
	matchNone matchKind = iota
	matchStrong
	matchWeak
)

// resolution is the explicit outcome of identity resolution: which row the
// observation lands on, if any, and via which key.
type resolution struct {
	id   int64
	kind matchKind
}

// resolveIdentity finds the existing row for a file observation. The
// strong key (device, inode) wins when both components are present; the
// weak key (path, size, mtime_ns) is tried otherwise or when the strong
// lookup misses. A strong-keyed observation can still land on a row that
// was first seen weakly, so the record never forks when identity
// information appears or disappears between scans.
func (s *Store) resolveIdentity(meta domain.FileMeta, device, inode string) (resolution, error) {
	if device != "" && inode != "" {
		var id int64
		err := s.db.QueryRow(
			`SELECT id FROM files WHERE device = ? AND inode_or_fileid = ?`,
			device, inode,
		).Scan(&id)
		if err == nil {
			return resolution{id: id, kind: matchStrong}, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return resolution{}, err
		}
	}

	var id int64
	err := s.db.QueryRow(
		`SELECT id FROM files WHERE path = ? AND size = ? AND mtime_ns = ?`,
		meta.Path, meta.Size, meta.MtimeNS,
	).Scan(&id)
	if err == nil {
		return resolution{id: id, kind: matchWeak}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return resolution{}, err
	}
	return resolution{kind: matchNone}, nil
}
