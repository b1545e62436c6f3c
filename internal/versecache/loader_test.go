package versecache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/FocuswithJustin/Tehillim119/core/psalm"
)

// fakeFetcher counts fetches and returns a fixed corpus or an error.
type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) FetchPsalm119(ctx context.Context) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	verses := make([]string, psalm.VerseCount)
	for i := range verses {
		verses[i] = fmt.Sprintf("<b>פסוק %d</b>", i)
	}
	return verses, nil
}

func TestLoadFetchesOnce(t *testing.T) {
	fetcher := &fakeFetcher{}
	loader := NewLoader(fetcher, "")

	first, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if first != second {
		t.Errorf("Load returned different Psalm instances")
	}
	// Verses were cleaned on the way in.
	if got := first.Stanza(0).Verses[0]; got != "פסוק 0" {
		t.Errorf("verse = %q, want cleaned text", got)
	}
}

func TestLoadFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeFetcher{err: fmt.Errorf("network down")}
	loader := NewLoader(fetcher, "")

	if _, err := loader.Load(context.Background()); err == nil {
		t.Fatalf("Load succeeded despite fetch failure")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	// First loader populates the cache.
	first := &fakeFetcher{}
	if _, err := NewLoader(first, dir).Load(context.Background()); err != nil {
		t.Fatalf("initial Load failed: %v", err)
	}
	if first.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", first.calls)
	}
	if _, err := os.Stat(filepath.Join(dir, cacheFile)); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, checksumFile)); err != nil {
		t.Fatalf("checksum file not written: %v", err)
	}

	// Second loader (fresh process) reads from disk, no fetch.
	second := &fakeFetcher{}
	p, err := NewLoader(second, dir).Load(context.Background())
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if second.calls != 0 {
		t.Errorf("fetcher called %d times on cache hit, want 0", second.calls)
	}
	if got := p.Stanza(21).Verses[7]; got != "פסוק 175" {
		t.Errorf("last verse = %q", got)
	}
}

func TestCorruptCacheRefetches(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewLoader(&fakeFetcher{}, dir).Load(context.Background()); err != nil {
		t.Fatalf("initial Load failed: %v", err)
	}

	// Flip a byte in the cached payload; the checksum no longer matches.
	path := filepath.Join(dir, cacheFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading cache: %v", err)
	}
	data[len(data)/2] ^= 0xff
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("corrupting cache: %v", err)
	}

	fetcher := &fakeFetcher{}
	if _, err := NewLoader(fetcher, dir).Load(context.Background()); err != nil {
		t.Fatalf("Load after corruption failed: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times after corruption, want 1", fetcher.calls)
	}
}

func TestMissingChecksumRefetches(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewLoader(&fakeFetcher{}, dir).Load(context.Background()); err != nil {
		t.Fatalf("initial Load failed: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, checksumFile)); err != nil {
		t.Fatalf("removing checksum: %v", err)
	}

	fetcher := &fakeFetcher{}
	if _, err := NewLoader(fetcher, dir).Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
}
