package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-linkedin-fetcher/internal/filter"
	"go-linkedin-fetcher/internal/scraper"
)

const (
	cacheFile = "seen_jobs.json"
	ttl       = 30 * 24 * time.Hour
)

type seenEntry struct {
	Key       string `json:"key"`
	Timestamp int64  `json:"timestamp"`
}

// JobCache remembers which records were already reported, keyed by
// filter.Fingerprint. Entries older than 30 days are dropped on load.
type JobCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
	now      func() time.Time
}

// NewJobCache creates or loads a job cache
func NewJobCache(cacheDir string) *JobCache {
	return newJobCache(cacheDir, time.Now)
}

func newJobCache(cacheDir string, now func() time.Time) *JobCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &JobCache{
		filePath: filepath.Join(cacheDir, cacheFile),
		seen:     make(map[string]int64),
		now:      now,
	}
	cache.load()
	return cache
}

// IsSeen reports whether rec was marked in an earlier run.
func (jc *JobCache) IsSeen(rec scraper.JobRecord) bool {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	_, exists := jc.seen[filter.Fingerprint(rec)]
	return exists
}

// Unseen returns the records not yet marked, in order.
func (jc *JobCache) Unseen(records []scraper.JobRecord) []scraper.JobRecord {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	out := make([]scraper.JobRecord, 0, len(records))
	for _, rec := range records {
		if _, exists := jc.seen[filter.Fingerprint(rec)]; !exists {
			out = append(out, rec)
		}
	}
	return out
}

// Add marks records as seen and persists the cache if anything changed.
func (jc *JobCache) Add(records []scraper.JobRecord) error {
	jc.mu.Lock()
	defer jc.mu.Unlock()

	now := jc.now().UnixMilli()
	changed := false
	for _, rec := range records {
		key := filter.Fingerprint(rec)
		if _, exists := jc.seen[key]; !exists {
			jc.seen[key] = now
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return jc.save()
}

func (jc *JobCache) Len() int {
	jc.mu.Lock()
	defer jc.mu.Unlock()
	return len(jc.seen)
}

// load reads the cache from disk into the in-memory map
func (jc *JobCache) load() {
	data, err := os.ReadFile(jc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read %s: %v", cacheFile, err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse %s: %v", cacheFile, err)
		return
	}

	cutoff := jc.now().Add(-ttl).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			jc.seen[e.Key] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen jobs (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk. Caller holds jc.mu.
func (jc *JobCache) save() error {
	entries := make([]seenEntry, 0, len(jc.seen))
	for key, ts := range jc.seen {
		entries = append(entries, seenEntry{Key: key, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(jc.filePath, data, 0644); err != nil {
		return err
	}
	log.Printf("💾 Saved %d seen jobs to cache", len(entries))
	return nil
}
