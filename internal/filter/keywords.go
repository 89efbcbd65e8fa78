package filter

import (
	"go-linkedin-fetcher/internal/scraper"
)

// Apply keeps records that are not excluded, preserving order.
func Apply(records []scraper.JobRecord, m *Matcher) []scraper.JobRecord {
	kept := make([]scraper.JobRecord, 0, len(records))
	for _, rec := range records {
		if m.IsExcluded(rec) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// IsExcluded is a one-off NewMatcher(keywords).IsExcluded(rec).
func IsExcluded(rec scraper.JobRecord, keywords []string) bool {
	return NewMatcher(keywords).IsExcluded(rec)
}
