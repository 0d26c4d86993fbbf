package port

import "io"

// Hasher digests a byte stream to a hex string.
type Hasher interface {
	Name() string
	HashStream(r io.Reader) (string, error)
}
