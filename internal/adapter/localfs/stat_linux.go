//go:build linux

package localfs

import (
	"io/fs"
	"os/user"
	"strconv"
	"syscall"
	"time"

	"github.com/justinmckeown/similitude/internal/domain"
)

// enrichMeta fills in the Linux-specific stat fields. Birth time is not
// available through syscall.Stat_t, so it stays absent.
func enrichMeta(meta *domain.FileMeta, info fs.FileInfo) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return
	}

	meta.Device = strconv.FormatUint(uint64(stat.Dev), 10)
	meta.Inode = strconv.FormatUint(stat.Ino, 10)
	meta.CtimeNS = time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec).UnixNano()
	meta.OwnerID = strconv.FormatUint(uint64(stat.Uid), 10)
	if u, err := user.LookupId(meta.OwnerID); err == nil {
		meta.OwnerName = u.Username
	}
}
