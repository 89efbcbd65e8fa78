// Package reporter delivers the outcome of a search run: console printout,
// a dated JSON file, Telegram messages and the database.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-linkedin-fetcher/internal/scraper"
	"go-linkedin-fetcher/internal/scraper/linkedin"
)

// Run is one finished search.
type Run struct {
	Criteria   scraper.SearchCriteria `json:"criteria"`
	Result     linkedin.Result        `json:"result"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
}

func (r Run) Records() []scraper.JobRecord {
	return r.Result.Records
}

// Sink receives finished runs.
type Sink interface {
	Name() string
	Report(ctx context.Context, run Run) error
}

// ReportAll hands run to every sink. A failing sink is logged and does not
// stop the others.
func ReportAll(ctx context.Context, run Run, sinks ...Sink) error {
	var errs []error
	for _, s := range sinks {
		if err := s.Report(ctx, run); err != nil {
			log.Printf("⚠️ Reporter %s failed: %v", s.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
