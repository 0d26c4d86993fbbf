package scan

import (
	"path/filepath"
	"strings"
)

// ignorePattern is a parsed ignore pattern with its matching strategy.
type ignorePattern struct {
	pattern   string
	matchPath bool // true = match against the whole path; false = basename only
}

// IgnoreMatcher checks scanned paths against a set of glob patterns.
// Patterns containing a path separator match against the whole
// slash-normalized path; bare patterns match the basename, so "*.tmp"
// ignores temp files anywhere in the tree.
type IgnoreMatcher struct {
	patterns []ignorePattern
}

// NewIgnoreMatcher creates an IgnoreMatcher from raw pattern strings.
// Blank entries and entries starting with '#' are skipped.
func NewIgnoreMatcher(rawPatterns []string) *IgnoreMatcher {
	var patterns []ignorePattern
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		patterns = append(patterns, ignorePattern{
			pattern:   raw,
			matchPath: strings.Contains(raw, "/"),
		})
	}
	return &IgnoreMatcher{patterns: patterns}
}

// Match reports whether path should be ignored.
func (m *IgnoreMatcher) Match(path string) bool {
	if len(m.patterns) == 0 {
		return false
	}

	normalized := filepath.ToSlash(path)
	basename := filepath.Base(path)

	for _, p := range m.patterns {
		var matched bool
		var err error
		if p.matchPath {
			matched, err = filepath.Match(p.pattern, normalized)
		} else {
			matched, err = filepath.Match(p.pattern, basename)
		}
		if err != nil {
			// Bad pattern — skip rather than crash.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
