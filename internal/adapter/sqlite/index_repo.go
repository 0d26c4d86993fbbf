package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/justinmckeown/similitude/internal/domain"
)

// UpsertFile inserts or updates a file record and returns its id.
//
// Required fields: Path, Size, MtimeNS. Device/inode values of "" or "0"
// are treated as absent. SeenAt defaults to the current wall clock.
func (s *Store) UpsertFile(meta domain.FileMeta) (int64, error) {
	if meta.Path == "" {
		return 0, &domain.ValidationError{Field: "path"}
	}
	if meta.Size < 0 {
		return 0, &domain.ValidationError{Field: "size"}
	}
	if meta.MtimeNS <= 0 {
		return 0, &domain.ValidationError{Field: "mtime_ns"}
	}

	device := normalizeIdentity(meta.Device)
	inode := normalizeIdentity(meta.Inode)
	seenAt := meta.SeenAt
	if seenAt == 0 {
		seenAt = time.Now().Unix()
	}

	res, err := s.resolveIdentity(meta, device, inode)
	if err != nil {
		return 0, &domain.PersistenceError{Op: "upsert_file", Err: err}
	}

	switch res.kind {
	case matchStrong:
		// Identity columns stay; everything observable moves with the file.
		_, err = s.db.Exec(`
			UPDATE files
			SET path = ?, size = ?, mtime_ns = ?, ctime_ns = ?, birthtime_ns = ?,
			    owner_id = ?, owner_name = ?, seen_at = ?
			WHERE id = ?`,
			meta.Path, meta.Size, meta.MtimeNS,
			nullInt64(meta.CtimeNS), nullInt64(meta.BirthtimeNS),
			nullString(meta.OwnerID), nullString(meta.OwnerName),
			seenAt, res.id,
		)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "upsert_file", Err: err}
		}
		return res.id, nil

	case matchWeak:
		// Path, size and mtime already match; device/inode may have newly
		// become available and must attach to the existing row.
		_, err = s.db.Exec(`
			UPDATE files
			SET device = ?, inode_or_fileid = ?, ctime_ns = ?, birthtime_ns = ?,
			    owner_id = ?, owner_name = ?, seen_at = ?
			WHERE id = ?`,
			nullString(device), nullString(inode),
			nullInt64(meta.CtimeNS), nullInt64(meta.BirthtimeNS),
			nullString(meta.OwnerID), nullString(meta.OwnerName),
			seenAt, res.id,
		)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "upsert_file", Err: err}
		}
		return res.id, nil

	default:
		result, err := s.db.Exec(`
			INSERT INTO files (device, inode_or_fileid, path, size, mtime_ns,
			                   ctime_ns, birthtime_ns, owner_id, owner_name, seen_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			nullString(device), nullString(inode), meta.Path, meta.Size, meta.MtimeNS,
			nullInt64(meta.CtimeNS), nullInt64(meta.BirthtimeNS),
			nullString(meta.OwnerID), nullString(meta.OwnerName), seenAt,
		)
		if err != nil {
			return 0, &domain.PersistenceError{Op: "upsert_file", Err: err}
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, &domain.PersistenceError{Op: "upsert_file", Err: err}
		}
		return id, nil
	}
}

// UpsertHashes replaces the hash tuple for fileID. Omitted (empty) values
// clear the stored column; this is a full replace, never a merge.
func (s *Store) UpsertHashes(fileID int64, hashes domain.Hashes) error {
	var exists int64
	err := s.db.QueryRow(`SELECT id FROM files WHERE id = ?`, fileID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.ReferentialError{FileID: fileID}
	}
	if err != nil {
		return &domain.PersistenceError{Op: "upsert_hashes", Err: err}
	}

	_, err = s.db.Exec(`
		INSERT INTO hashes (file_id, pre_hash, strong_hash, phash, ssdeep)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(file_id) DO UPDATE SET
			pre_hash = excluded.pre_hash,
			strong_hash = excluded.strong_hash,
			phash = excluded.phash,
			ssdeep = excluded.ssdeep`,
		fileID,
		nullString(hashes.PreHash), nullString(hashes.StrongHash),
		nullString(hashes.PHash), nullString(hashes.SSDeep),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "upsert_hashes", Err: err}
	}
	return nil
}

// FindDuplicates returns one cluster per strong hash carried by two or
// more files, each cluster ordered by path ascending. The result is
// computed fresh on every call.
func (s *Store) FindDuplicates() ([]domain.DuplicateCluster, error) {
	rows, err := s.db.Query(`
		SELECT strong_hash
		FROM hashes
		WHERE strong_hash IS NOT NULL AND strong_hash != ''
		GROUP BY strong_hash
		HAVING COUNT(*) > 1
		ORDER BY strong_hash`)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find_duplicates", Err: err}
	}
	defer rows.Close()

	var strongHashes []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, &domain.PersistenceError{Op: "find_duplicates", Err: err}
		}
		strongHashes = append(strongHashes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "find_duplicates", Err: err}
	}

	clusters := make([]domain.DuplicateCluster, 0, len(strongHashes))
	for _, h := range strongHashes {
		cluster, err := s.membersForStrongHash(h)
		if err != nil {
			return nil, err
		}
		clusters = append(clusters, cluster)
	}
	return clusters, nil
}

func (s *Store) membersForStrongHash(strongHash string) (domain.DuplicateCluster, error) {
	rows, err := s.db.Query(`
		SELECT f.id, f.device, f.inode_or_fileid, f.path, f.size, f.mtime_ns,
		       f.ctime_ns, f.birthtime_ns, f.owner_id, f.owner_name, f.seen_at,
		       h.pre_hash, h.strong_hash, h.phash, h.ssdeep
		FROM hashes h
		JOIN files f ON f.id = h.file_id
		WHERE h.strong_hash = ?
		ORDER BY f.path ASC`,
		strongHash)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "find_duplicates", Err: err}
	}
	defer rows.Close()

	cluster := make(domain.DuplicateCluster, 0, 2)
	for rows.Next() {
		var m domain.ClusterMember
		var device, inode, ownerID, ownerName sql.NullString
		var ctime, birthtime sql.NullInt64
		var pre, strong, phash, ssdeep sql.NullString

		err := rows.Scan(
			&m.ID, &device, &inode, &m.Path, &m.Size, &m.MtimeNS,
			&ctime, &birthtime, &ownerID, &ownerName, &m.SeenAt,
			&pre, &strong, &phash, &ssdeep,
		)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "find_duplicates", Err: err}
		}

		m.Device = strPtr(device)
		m.Inode = strPtr(inode)
		m.CtimeNS = intPtr(ctime)
		m.BirthtimeNS = intPtr(birthtime)
		m.OwnerID = strPtr(ownerID)
		m.OwnerName = strPtr(ownerName)
		m.PreHash = strPtr(pre)
		m.StrongHash = strPtr(strong)
		m.PHash = strPtr(phash)
		m.SSDeep = strPtr(ssdeep)

		cluster = append(cluster, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "find_duplicates", Err: err}
	}
	return cluster, nil
}

// Stats summarizes the index.
func (s *Store) Stats() (domain.IndexStats, error) {
	var stats domain.IndexStats

	queries := []struct {
		sql  string
		dest *int64
	}{
		{`SELECT COUNT(*) FROM files`, &stats.TotalFiles},
		{`SELECT COUNT(*) FROM hashes WHERE strong_hash IS NOT NULL AND strong_hash != ''`, &stats.HashedFiles},
		{`SELECT COUNT(*) FROM (
			SELECT strong_hash FROM hashes
			WHERE strong_hash IS NOT NULL AND strong_hash != ''
			GROUP BY strong_hash HAVING COUNT(*) > 1)`, &stats.DuplicateClusters},
		{`SELECT COALESCE(SUM(n), 0) FROM (
			SELECT COUNT(*) AS n FROM hashes
			WHERE strong_hash IS NOT NULL AND strong_hash != ''
			GROUP BY strong_hash HAVING COUNT(*) > 1)`, &stats.DuplicateFiles},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.sql).Scan(q.dest); err != nil {
			return domain.IndexStats{}, &domain.PersistenceError{Op: "stats", Err: err}
		}
	}
	return stats, nil
}

// SetMeta stores a value in the kv table.
func (s *Store) SetMeta(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return &domain.PersistenceError{Op: "set_meta", Err: err}
	}
	return nil
}

// GetMeta reads a value from the kv table. The second result reports
// whether the key was present.
func (s *Store) GetMeta(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.PersistenceError{Op: "get_meta", Err: err}
	}
	return value.String, true, nil
}

// normalizeIdentity drops values that cannot identify a file: both the
// empty string and "0" mean the platform had nothing to report.
func normalizeIdentity(v string) string {
	if v == "" || v == "0" {
		return ""
	}
	return v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
