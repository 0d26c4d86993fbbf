// Package similarity holds the best-effort enrichment engines. Adapters
// resolve anything they cannot hash to "absent" instead of failing the
// scan.
package similarity

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/corona10/goimagehash"

	"github.com/justinmckeown/similitude/internal/port"
)

// imageExtensions is a cheap guard so that only plausible image files are
// ever decoded.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
	".gif":  true,
	".tiff": true,
	".webp": true,
}

// PHash computes a 64-bit DCT perceptual hash for image files.
type PHash struct{}

var _ port.ImageHasher = (*PHash)(nil)

// NewPHash returns the perceptual hash engine.
func NewPHash() *PHash {
	return &PHash{}
}

func (p *PHash) Name() string { return "phash" }

// PerceptualHash returns a 16-char hex hash, or ("", nil) for files that
// are not decodable images. Only opening the file can fail.
func (p *PHash) PerceptualHash(path string) (string, error) {
	if !imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		// Image-looking extension with undecodable content: absent.
		return "", nil
	}

	h, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return "", nil
	}
	return fmt.Sprintf("%016x", h.GetHash()), nil
}
