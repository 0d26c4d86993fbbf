package hasher

import (
	"bytes"
	"strings"
	"testing"
)

func TestSHA256KnownDigest(t *testing.T) {
	h := NewSHA256()
	got, err := h.HashStream(strings.NewReader("hello world\n"))
	if err != nil {
		t.Fatalf("HashStream returned error: %v", err)
	}
	want := "a948904f2f0f479b8f8197694b30184b0d2ed1c1cd2a1ec0fb85d299a192a447"
	if got != want {
		t.Fatalf("sha256 = %s, want %s", got, want)
	}
	if h.Name() != "sha256" {
		t.Fatalf("unexpected name %q", h.Name())
	}
}

func TestPreHasherDeterministic(t *testing.T) {
	h := NewPreHasher(64)
	content := []byte("some file content for bucketing")

	first, err := h.HashStream(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("HashStream returned error: %v", err)
	}
	second, err := h.HashStream(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("HashStream returned error: %v", err)
	}
	if first != second {
		t.Fatalf("pre-hash is not deterministic: %s vs %s", first, second)
	}
	if len(first) != 32 { // blake2b-128 hex
		t.Fatalf("unexpected digest length %d", len(first))
	}
}

func TestPreHasherSizeSalt(t *testing.T) {
	// Same window content, different total sizes: the size salt must
	// separate the buckets when the stream is seekable.
	h := NewPreHasher(16)
	short := bytes.Repeat([]byte{'a'}, 100)
	long := bytes.Repeat([]byte{'a'}, 200)

	hashShort, err := h.HashStream(bytes.NewReader(short))
	if err != nil {
		t.Fatalf("HashStream returned error: %v", err)
	}
	hashLong, err := h.HashStream(bytes.NewReader(long))
	if err != nil {
		t.Fatalf("HashStream returned error: %v", err)
	}
	if hashShort == hashLong {
		t.Fatal("streams of different sizes should bucket differently")
	}
}

func TestPreHasherShortStream(t *testing.T) {
	// Content shorter than the window must still hash cleanly.
	h := NewPreHasher(1 << 20)
	got, err := h.HashStream(strings.NewReader("tiny"))
	if err != nil {
		t.Fatalf("HashStream returned error: %v", err)
	}
	if got == "" {
		t.Fatal("expected a digest for a short stream")
	}
}

func TestPreHasherName(t *testing.T) {
	if got := NewPreHasher(1024).Name(); got != "blake2b_first1024" {
		t.Fatalf("unexpected name %q", got)
	}
	// Window default is reflected in the name.
	if got := NewPreHasher(0).Name(); got != "blake2b_first1048576" {
		t.Fatalf("unexpected default name %q", got)
	}
}
