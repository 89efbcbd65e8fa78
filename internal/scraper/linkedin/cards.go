package linkedin

import (
	"context"
	"errors"
	"log"

	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/scraper"
)

// DefaultCardQuery matches one node per result card.
var DefaultCardQuery = dom.Any(
	dom.CSS("div.job-card-job-posting-card-wrapper"),
	dom.CSS("div.job-card-container"),
)

// snapshot is the node set of one query. Positions are only meaningful
// within it; after a re-render the whole snapshot is replaced.
type snapshot []dom.Node

func (s snapshot) at(i int) (dom.Node, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

// CardExtractor copies job cards out of the results list.
type CardExtractor struct {
	session  dom.Session
	poller   *Poller
	locator  Locator
	cards    dom.Query
	fields   cardFields
	attempts int
	logger   *log.Logger
}

func NewCardExtractor(session dom.Session, cards dom.Query, timing Timing, logger *log.Logger) *CardExtractor {
	timing = timing.WithDefaults()
	if logger == nil {
		logger = log.Default()
	}
	return &CardExtractor{
		session:  session,
		poller:   NewPoller(session, timing, logger),
		locator:  NewLocator(session),
		cards:    cards,
		fields:   defaultFields(),
		attempts: timing.StaleAttempts,
		logger:   logger,
	}
}

// ExtractAll waits for a stable card list and extracts up to maxResults
// records from it.
func (e *CardExtractor) ExtractAll(ctx context.Context, maxResults int) []scraper.JobRecord {
	return e.Extract(ctx, e.poller.Poll(ctx, e.cards), maxResults)
}

// Extract reads cards by position from nodes. A stale or missing position
// is retried against a fresh snapshot and skipped once attempts run out,
// so the result can be shorter than requested but never longer.
func (e *CardExtractor) Extract(ctx context.Context, nodes []dom.Node, maxResults int) []scraper.JobRecord {
	snap := snapshot(nodes)
	limit := min(len(snap), maxResults)
	records := make([]scraper.JobRecord, 0, max(limit, 0))
	if limit <= 0 {
		e.logger.Println("    ℹ️ No job cards found.")
		return records
	}
	e.logger.Printf("    📦 Found %d job cards (scraping up to %d)", len(snap), limit)

	for i := 0; i < limit; i++ {
		if ctx.Err() != nil {
			break
		}
		var (
			rec scraper.JobRecord
			ok  bool
		)
		rec, snap, ok = e.extractAt(ctx, snap, i)
		if !ok {
			e.logger.Printf("      ⚠️ Skipped card %d after %d attempts", i+1, e.attempts)
			continue
		}
		records = append(records, rec)
		e.logger.Printf("      ✅ %d. %s - %s - %s", i+1, rec.Title, rec.Company, rec.Location)
	}
	return records
}

// extractAt reads position i, re-acquiring the snapshot on staleness. The
// returned snapshot is the one later positions should use.
func (e *CardExtractor) extractAt(ctx context.Context, snap snapshot, i int) (scraper.JobRecord, snapshot, bool) {
	for attempt := 1; attempt <= e.attempts; attempt++ {
		node, ok := snap.at(i)
		if ok {
			rec, err := e.readCard(ctx, node)
			if err == nil {
				return rec, snap, true
			}
			if !errors.Is(err, dom.ErrStaleHandle) {
				return scraper.JobRecord{}, snap, false
			}
		}
		if ctx.Err() != nil {
			return scraper.JobRecord{}, snap, false
		}
		snap = e.reacquire(ctx)
	}
	return scraper.JobRecord{}, snap, false
}

func (e *CardExtractor) reacquire(ctx context.Context) snapshot {
	nodes, err := e.session.QueryAll(ctx, e.cards)
	if err != nil {
		return nil
	}
	return snapshot(nodes)
}

func (e *CardExtractor) readCard(ctx context.Context, node dom.Node) (scraper.JobRecord, error) {
	title, err := e.locator.ResolveField(ctx, node, e.fields.title)
	if err != nil {
		return scraper.JobRecord{}, err
	}
	company, err := e.locator.ResolveField(ctx, node, e.fields.company)
	if err != nil {
		return scraper.JobRecord{}, err
	}
	location, err := e.locator.ResolveField(ctx, node, e.fields.location)
	if err != nil {
		return scraper.JobRecord{}, err
	}
	return scraper.JobRecord{Title: title, Company: company, Location: location}, nil
}
