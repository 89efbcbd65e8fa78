// Navigate to LinkedIn Jobs on an authenticated session
// Detect the search layout and submit the query
// Scroll until the results list stops growing
// Extract title, company, location from each card

package linkedin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/scraper"
)

// State is a pipeline stage. Done and Empty are terminal.
type State string

const (
	StateInit            State = "init"
	StateLayoutDetection State = "layout_detection"
	StateExpanding       State = "expanding"
	StateStabilizing     State = "stabilizing"
	StateExtracting      State = "extracting"
	StateDone            State = "done"
	StateEmpty           State = "empty"
)

// Result is the outcome of one fetch.
type Result struct {
	Records []scraper.JobRecord `json:"records"`
	Layout  Layout              `json:"layout"`
	State   State               `json:"state"`
}

type Fetcher struct {
	baseURL     string
	timing      Timing
	cards       dom.Query
	fields      cardFields
	screenshots bool
	logger      *log.Logger
}

var _ scraper.Fetcher = (*Fetcher)(nil)

func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: DefaultBaseURL,
		timing:  DefaultTiming(),
		cards:   DefaultCardQuery,
		fields:  defaultFields(),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchJobs runs one search with a default-configured Fetcher.
func FetchJobs(ctx context.Context, session dom.Session, criteria scraper.SearchCriteria, opts ...Option) (Result, error) {
	return New(opts...).Run(ctx, session, criteria)
}

func (f *Fetcher) Name() string {
	return "LinkedIn"
}

// FetchJobs implements scraper.Fetcher.
func (f *Fetcher) FetchJobs(ctx context.Context, session dom.Session, criteria scraper.SearchCriteria) ([]scraper.JobRecord, error) {
	res, err := f.Run(ctx, session, criteria)
	return res.Records, err
}

// JobsURL is the page the search starts from.
func (f *Fetcher) JobsURL() string {
	return strings.TrimRight(f.baseURL, "/") + "/jobs"
}

func (f *Fetcher) enter(res *Result, s State) {
	res.State = s
	f.logger.Printf("  ▶️ %s", s)
}

// Run drives one search to Done or Empty. The error is non-nil only for
// invalid criteria, a failed navigation, or a cancelled context; an
// unrecognised layout ends in Empty with no error.
func (f *Fetcher) Run(ctx context.Context, session dom.Session, criteria scraper.SearchCriteria) (Result, error) {
	res := Result{Records: []scraper.JobRecord{}, State: StateInit}
	if err := criteria.Validate(); err != nil {
		return res, err
	}
	logger := f.logger
	logger.Printf("💼 Searching LinkedIn Jobs: %q in %q (max %d)", criteria.Keywords, criteria.Location, criteria.MaxResults)

	if err := session.Navigate(ctx, f.JobsURL()); err != nil {
		return res, fmt.Errorf("failed to load jobs page: %w", err)
	}

	f.enter(&res, StateLayoutDetection)
	layout, err := NewLayoutDetector(session, f.timing, logger).Detect(ctx, criteria)
	if err != nil {
		if errors.Is(err, ErrNoSearchSurfaceFound) {
			logger.Printf("❌ %v", err)
			f.capture(ctx, session, "linkedin-no-search-surface")
			f.enter(&res, StateEmpty)
			return res, nil
		}
		return res, err
	}
	res.Layout = layout
	logger.Printf("  🔎 Using layout %s for search", layout)

	if err := dom.Sleep(ctx, f.timing.PostSearchSettle); err != nil {
		return res, err
	}

	if criteria.AutoScroll {
		f.enter(&res, StateExpanding)
		NewScrollDriver(session, f.cards, f.timing, logger).Expand(ctx, criteria.MaxResults)
	}

	f.enter(&res, StateStabilizing)
	extractor := NewCardExtractor(session, f.cards, f.timing, logger)
	extractor.fields = f.fields
	nodes := extractor.poller.Poll(ctx, f.cards)

	f.enter(&res, StateExtracting)
	res.Records = extractor.Extract(ctx, nodes, criteria.MaxResults)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	f.enter(&res, StateDone)
	logger.Printf("✅ LinkedIn finished. Scraped %d job(s).", len(res.Records))
	return res, nil
}

func (f *Fetcher) capture(ctx context.Context, session dom.Session, name string) {
	if !f.screenshots {
		return
	}
	shooter, ok := session.(dom.Screenshotter)
	if !ok {
		return
	}
	if err := shooter.Screenshot(ctx, name); err != nil {
		f.logger.Printf("⚠️ Failed to capture screenshot: %v", err)
	}
}
