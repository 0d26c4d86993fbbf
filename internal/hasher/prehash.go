// Package hasher provides the content hashing strategies used by scans.
package hasher

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/justinmckeown/similitude/internal/port"
)

// DefaultPreHashWindow is how much of the file head the pre-hash digests.
const DefaultPreHashWindow = 1 << 20 // 1 MiB

// PreHasher is a fast candidate-bucketing hash: BLAKE2b-128 over the first
// N bytes, salted with the stream size when the stream can report it. Not
// an equality proof; duplicates are confirmed by the strong hash.
type PreHasher struct {
	window int64
}

var _ port.Hasher = (*PreHasher)(nil)

// NewPreHasher returns a PreHasher digesting the first window bytes. A
// non-positive window falls back to DefaultPreHashWindow.
func NewPreHasher(window int64) *PreHasher {
	if window <= 0 {
		window = DefaultPreHashWindow
	}
	return &PreHasher{window: window}
}

// Name identifies the strategy, including the window so that indexes built
// with different windows are distinguishable.
func (h *PreHasher) Name() string {
	return fmt.Sprintf("blake2b_first%d", h.window)
}

// HashStream digests up to the window from r and returns a hex string.
func (h *PreHasher) HashStream(r io.Reader) (string, error) {
	d, err := blake2b.New(16, nil)
	if err != nil {
		return "", err
	}

	if _, err := io.CopyN(d, r, h.window); err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	var salt [8]byte
	binary.LittleEndian.PutUint64(salt[:], uint64(streamSize(r)))
	d.Write(salt[:])

	return fmt.Sprintf("%x", d.Sum(nil)), nil
}

// streamSize learns the total size of a seekable stream, restoring the
// position afterwards. Non-seekable streams report 0.
func streamSize(r io.Reader) int64 {
	s, ok := r.(io.Seeker)
	if !ok {
		return 0
	}
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0
	}
	s.Seek(pos, io.SeekStart)
	return end
}
