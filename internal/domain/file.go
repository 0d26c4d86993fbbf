package domain

// FileMeta is the metadata observed for a single file during a scan.
// Path, Size and MtimeNS are required; everything else is optional and a
// zero value means "not observed". Device and Inode of "" or "0" are
// normalized to absent by the index, since neither is a usable identity
// component.
type FileMeta struct {
	Path        string
	Size        int64
	MtimeNS     int64
	CtimeNS     int64
	BirthtimeNS int64
	Device      string
	Inode       string
	OwnerID     string
	OwnerName   string
	SeenAt      int64 // unix seconds; 0 means "now" at upsert time
}

// FileRecord is one persisted file identity.
type FileRecord struct {
	ID          int64   `json:"id"`
	Device      *string `json:"device"`
	Inode       *string `json:"inode_or_fileid"`
	Path        string  `json:"path"`
	Size        int64   `json:"size"`
	MtimeNS     int64   `json:"mtime_ns"`
	CtimeNS     *int64  `json:"ctime_ns"`
	BirthtimeNS *int64  `json:"birthtime_ns"`
	OwnerID     *string `json:"owner_id"`
	OwnerName   *string `json:"owner_name"`
	SeenAt      int64   `json:"seen_at"`
}

// Hashes holds the content digests for one file. Empty string means the
// digest was not computed; the index stores it as NULL. Upserting replaces
// the full tuple, it never merges field by field.
type Hashes struct {
	PreHash    string
	StrongHash string
	PHash      string
	SSDeep     string
}

// ClusterMember is a file record joined with its hash row, flattened the
// way reports serialize it.
type ClusterMember struct {
	FileRecord
	PreHash    *string `json:"pre_hash"`
	StrongHash *string `json:"strong_hash"`
	PHash      *string `json:"phash"`
	SSDeep     *string `json:"ssdeep"`
}

// DuplicateCluster is a group of two or more files sharing one non-empty
// strong hash. Singletons are never produced.
type DuplicateCluster []ClusterMember

// IndexStats summarizes the index for the status command.
type IndexStats struct {
	TotalFiles        int64
	HashedFiles       int64
	DuplicateClusters int64
	DuplicateFiles    int64
}
