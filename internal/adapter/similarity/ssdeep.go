package similarity

import (
	"io"

	"github.com/glaslos/ssdeep"

	"github.com/justinmckeown/similitude/internal/port"
)

// Fuzzy computes ssdeep context-triggered piecewise hashes of arbitrary
// content.
type Fuzzy struct{}

var _ port.StreamFuzzyHasher = (*Fuzzy)(nil)

// NewFuzzy returns the ssdeep engine.
func NewFuzzy() *Fuzzy {
	return &Fuzzy{}
}

func (f *Fuzzy) Name() string { return "ssdeep" }

// FuzzyHash returns the ssdeep digest, or ("", nil) when the content is
// too small to hash. Only reading the stream can fail.
func (f *Fuzzy) FuzzyHash(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	h, err := ssdeep.FuzzyBytes(data)
	if err != nil {
		// ssdeep needs a minimum input size; anything shorter is absent.
		return "", nil
	}
	return h, nil
}
