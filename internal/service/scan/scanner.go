// Package scan orchestrates a filesystem scan pass: walk, hash, persist.
package scan

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justinmckeown/similitude/internal/domain"
	"github.com/justinmckeown/similitude/internal/port"
)

// DefaultInlineThreshold is the file size up to which content is read once
// into memory and fed to both hashers from the same buffer. Larger files
// are streamed separately per hasher to bound memory use. Tunable, not a
// correctness requirement.
const DefaultInlineThreshold = 8 << 20 // 8 MiB

// Options configures a Scanner.
type Options struct {
	IgnorePatterns  []string
	InlineThreshold int64
	EnablePHash     bool
	EnableSSDeep    bool
	Adapters        []port.SimilarityAdapter
}

// Scanner drives one full scan pass over a root path, feeding the index.
// Its failure policy is best effort, keep going: one unreadable or
// unhashable file never aborts the scan of a large tree.
type Scanner struct {
	fs      port.Filesystem
	pre     port.Hasher
	strong  port.Hasher
	index   port.Index
	matcher *IgnoreMatcher

	inlineThreshold int64
	enablePHash     bool
	enableSSDeep    bool
	adapters        []port.SimilarityAdapter

	logger *zap.Logger
}

// New creates a Scanner.
func New(filesystem port.Filesystem, pre, strong port.Hasher, index port.Index, opts Options, logger *zap.Logger) *Scanner {
	threshold := opts.InlineThreshold
	if threshold <= 0 {
		threshold = DefaultInlineThreshold
	}

	return &Scanner{
		fs:              filesystem,
		pre:             pre,
		strong:          strong,
		index:           index,
		matcher:         NewIgnoreMatcher(opts.IgnorePatterns),
		inlineThreshold: threshold,
		enablePHash:     opts.EnablePHash,
		enableSSDeep:    opts.EnableSSDeep,
		adapters:        opts.Adapters,
		logger:          logger,
	}
}

// Scan walks the tree rooted at root and returns the number of files whose
// metadata was durably recorded. A file counts as processed once its index
// row is written, independent of whether hashing succeeds afterwards.
func (s *Scanner) Scan(ctx context.Context, root string) (int, error) {
	scanID := uuid.NewString()
	log := s.logger.With(zap.String("scan_id", scanID), zap.String("root", root))

	start := time.Now()
	log.Info("starting scan")

	processed := 0
	err := s.fs.Walk(root, func(path string, mode fs.FileMode) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		// The walker contract says regular files only; don't trust it.
		if !mode.IsRegular() {
			return nil
		}
		if s.matcher.Match(path) {
			log.Debug("ignoring path", zap.String("path", path))
			return nil
		}

		meta, err := s.fs.Stat(path)
		if err != nil {
			log.Warn("stat failed, skipping file", zap.String("path", path), zap.Error(err))
			return nil
		}

		fileID, err := s.index.UpsertFile(meta)
		if err != nil {
			log.Warn("index upsert failed, skipping file", zap.String("path", path), zap.Error(err))
			return nil
		}
		processed++

		hashes := s.computeHashes(log, path, meta.Size)
		if err := s.index.UpsertHashes(fileID, hashes); err != nil {
			log.Warn("hash upsert failed", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		return processed, err
	}

	if err := s.index.SetMeta("last_scan_id", scanID); err != nil {
		log.Debug("failed to record scan id", zap.Error(err))
	}
	if err := s.index.SetMeta("last_scan_at", time.Now().UTC().Format(time.RFC3339)); err != nil {
		log.Debug("failed to record scan time", zap.Error(err))
	}

	log.Info("scan complete",
		zap.Int("processed", processed),
		zap.Duration("duration", time.Since(start)))
	return processed, nil
}

// computeHashes produces whatever digests can be obtained for path. Each
// hash is isolated: a failure in one never blocks the others.
func (s *Scanner) computeHashes(log *zap.Logger, path string, size int64) domain.Hashes {
	var hashes domain.Hashes

	buffered := false
	if size <= s.inlineThreshold {
		if buf, err := s.readAll(path); err == nil {
			hashes.PreHash = s.hashBuffer(log, s.pre, buf, path)
			hashes.StrongHash = s.hashBuffer(log, s.strong, buf, path)
			buffered = true
		} else {
			log.Debug("buffered read failed, streaming per hasher",
				zap.String("path", path), zap.Error(err))
		}
	}
	if !buffered {
		hashes.PreHash = s.hashFile(log, s.pre, path)
		hashes.StrongHash = s.hashFile(log, s.strong, path)
	}

	if s.enablePHash {
		hashes.PHash = s.perceptualHash(log, path)
	}
	if s.enableSSDeep {
		hashes.SSDeep = s.fuzzyHash(log, path)
	}
	return hashes
}

func (s *Scanner) readAll(path string) ([]byte, error) {
	f, err := s.fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Scanner) hashBuffer(log *zap.Logger, h port.Hasher, buf []byte, path string) string {
	v, err := h.HashStream(bytes.NewReader(buf))
	if err != nil {
		log.Warn("hashing failed", zap.String("hasher", h.Name()),
			zap.String("path", path), zap.Error(err))
		return ""
	}
	return v
}

func (s *Scanner) hashFile(log *zap.Logger, h port.Hasher, path string) string {
	f, err := s.fs.Open(path)
	if err != nil {
		log.Warn("open for hashing failed", zap.String("hasher", h.Name()),
			zap.String("path", path), zap.Error(err))
		return ""
	}
	defer f.Close()

	v, err := h.HashStream(f)
	if err != nil {
		log.Warn("hashing failed", zap.String("hasher", h.Name()),
			zap.String("path", path), zap.Error(err))
		return ""
	}
	return v
}

// perceptualHash tries the configured image-capable adapters in order and
// takes the first non-empty result. Adapter faults are logged and ignored.
func (s *Scanner) perceptualHash(log *zap.Logger, path string) string {
	for _, a := range s.adapters {
		ih, ok := a.(port.ImageHasher)
		if !ok {
			continue
		}
		v, err := ih.PerceptualHash(path)
		if err != nil {
			log.Error("perceptual hash failed", zap.String("adapter", a.Name()),
				zap.String("path", path), zap.Error(err))
			continue
		}
		if v != "" {
			return v
		}
	}
	return ""
}

// fuzzyHash tries the configured stream-capable adapters in order and
// takes the first non-empty result.
func (s *Scanner) fuzzyHash(log *zap.Logger, path string) string {
	for _, a := range s.adapters {
		fh, ok := a.(port.StreamFuzzyHasher)
		if !ok {
			continue
		}

		f, err := s.fs.Open(path)
		if err != nil {
			log.Error("open for fuzzy hash failed", zap.String("adapter", a.Name()),
				zap.String("path", path), zap.Error(err))
			continue
		}
		v, err := fh.FuzzyHash(f)
		f.Close()
		if err != nil {
			log.Error("fuzzy hash failed", zap.String("adapter", a.Name()),
				zap.String("path", path), zap.Error(err))
			continue
		}
		if v != "" {
			return v
		}
	}
	return ""
}
