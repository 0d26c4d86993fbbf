package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/justinmckeown/similitude/internal/port"
)

// SHA256 is the cryptographic strong hash over the full file content.
type SHA256 struct{}

var _ port.Hasher = (*SHA256)(nil)

// NewSHA256 returns the strong hasher.
func NewSHA256() *SHA256 {
	return &SHA256{}
}

func (h *SHA256) Name() string { return "sha256" }

// HashStream digests the entire stream and returns a hex string.
func (h *SHA256) HashStream(r io.Reader) (string, error) {
	d := sha256.New()
	if _, err := io.Copy(d, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}
