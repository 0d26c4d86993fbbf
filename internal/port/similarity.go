package port

import "io"

// SimilarityAdapter is a best-effort enrichment engine. Capabilities are
// tagged by the narrower interfaces below: an engine that cannot hash
// images simply does not implement ImageHasher, instead of carrying an
// inert stub that always answers "absent".
type SimilarityAdapter interface {
	Name() string
}

// ImageHasher produces a perceptual hash for image files. A non-image or
// unsupported file resolves to ("", nil); only genuine I/O faults are
// returned, and callers log and ignore them.
type ImageHasher interface {
	SimilarityAdapter
	PerceptualHash(path string) (string, error)
}

// StreamFuzzyHasher produces a fuzzy (context-triggered piecewise) hash of
// arbitrary content. Content too small or otherwise unhashable resolves to
// ("", nil).
type StreamFuzzyHasher interface {
	SimilarityAdapter
	FuzzyHash(r io.Reader) (string, error)
}
