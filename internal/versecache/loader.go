// Package versecache loads the Psalm 119 corpus exactly once per process
// and keeps an optional checksummed copy on disk so later runs can skip the
// network.
package versecache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Tehillim119/core/psalm"
	"github.com/FocuswithJustin/Tehillim119/internal/logging"
)

const (
	// cacheFile holds the raw verse array as fetched.
	cacheFile = "psalm119.json"
	// checksumFile holds the hex BLAKE3 digest of cacheFile.
	checksumFile = "psalm119.json.b3"
)

// Fetcher fetches the raw Psalm 119 verses. *sefaria.Client satisfies it.
type Fetcher interface {
	FetchPsalm119(ctx context.Context) ([]string, error)
}

// Loader fetches, cleans, and partitions the corpus on first use and then
// serves the same immutable Psalm for the life of the process.
type Loader struct {
	fetcher  Fetcher
	cacheDir string // empty disables the disk cache

	mu    sync.Mutex
	psalm *psalm.Psalm
}

// NewLoader creates a Loader. cacheDir may be empty to disable the disk
// cache entirely.
func NewLoader(fetcher Fetcher, cacheDir string) *Loader {
	return &Loader{fetcher: fetcher, cacheDir: cacheDir}
}

// DefaultCacheDir returns the per-user cache directory for this tool, or
// empty if the platform has none.
func DefaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "tehillim119")
}

// Load returns the Psalm, fetching it on first call. A valid disk cache is
// preferred over the network; cache problems degrade to a fetch and are
// never fatal. A fetch failure is fatal: there is no partial-success mode.
func (l *Loader) Load(ctx context.Context) (*psalm.Psalm, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.psalm != nil {
		return l.psalm, nil
	}

	raw, fromCache := l.readCache()
	if !fromCache {
		var err error
		raw, err = l.fetcher.FetchPsalm119(ctx)
		if err != nil {
			return nil, err
		}
		logging.FetchEvent("fetched", "sefaria", "verses", len(raw))
		l.writeCache(raw)
	} else {
		logging.FetchEvent("cache_hit", l.cacheDir, "verses", len(raw))
	}

	p, err := psalm.NewFromRaw(raw)
	if err != nil {
		return nil, err
	}

	l.psalm = p
	return p, nil
}

// readCache loads the raw verses from disk if the file exists, its BLAKE3
// checksum matches, and it holds exactly the expected verse count.
func (l *Loader) readCache() ([]string, bool) {
	if l.cacheDir == "" {
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(l.cacheDir, cacheFile))
	if err != nil {
		return nil, false
	}

	sumHex, err := os.ReadFile(filepath.Join(l.cacheDir, checksumFile))
	if err != nil {
		return nil, false
	}

	sum := blake3.Sum256(data)
	if hex.EncodeToString(sum[:]) != string(sumHex) {
		logging.Warn("verse cache checksum mismatch, refetching", "dir", l.cacheDir)
		return nil, false
	}

	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		logging.Warn("verse cache unreadable, refetching", "dir", l.cacheDir, "error", err)
		return nil, false
	}

	if len(raw) != psalm.VerseCount {
		logging.Warn("verse cache has wrong verse count, refetching",
			"dir", l.cacheDir, "count", len(raw))
		return nil, false
	}

	return raw, true
}

// writeCache stores the raw verses and their checksum. Failures are logged
// and otherwise ignored; the cache is an optimization, not a requirement.
func (l *Loader) writeCache(raw []string) {
	if l.cacheDir == "" {
		return
	}

	data, err := json.Marshal(raw)
	if err != nil {
		logging.Warn("marshaling verse cache", "error", err)
		return
	}

	if err := os.MkdirAll(l.cacheDir, 0755); err != nil {
		logging.Warn("creating verse cache dir", "dir", l.cacheDir, "error", err)
		return
	}

	if err := os.WriteFile(filepath.Join(l.cacheDir, cacheFile), data, 0644); err != nil {
		logging.Warn("writing verse cache", "error", err)
		return
	}

	sum := blake3.Sum256(data)
	if err := os.WriteFile(filepath.Join(l.cacheDir, checksumFile), []byte(hex.EncodeToString(sum[:])), 0644); err != nil {
		logging.Warn("writing verse cache checksum", "error", err)
	}
}
