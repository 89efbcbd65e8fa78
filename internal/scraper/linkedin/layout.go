package linkedin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/scraper"
)

// Layout names the search surface variant that accepted the query.
// It is informational; field extraction does not depend on it.
type Layout string

const (
	LayoutUnresolved Layout = ""
	LayoutA          Layout = "A" // separate keywords and location inputs
	LayoutB          Layout = "B" // one combined search bar
	LayoutC          Layout = "C" // search button that reveals an input
)

// ErrNoSearchSurfaceFound means every known layout was tried and none had
// its controls on the page.
var ErrNoSearchSurfaceFound = errors.New("could not find any job search input")

var (
	keywordsInput = dom.Any(
		dom.AttrContains("input", "aria-label", "Search jobs"),
		dom.AttrContains("input", "placeholder", "Search jobs"),
	)
	locationInput = dom.Any(
		dom.AttrContains("input", "aria-label", "Search location"),
		dom.AttrContains("input", "placeholder", "Search location"),
	)
	combinedInput = dom.Any(
		dom.AttrContains("input", "aria-label", "Search by title"),
		dom.AttrContains("input", "placeholder", "Search jobs"),
	)
	searchTrigger = dom.Any(
		dom.AttrContains("button", "aria-label", "Search jobs"),
		dom.TextContains("button", "Search jobs"),
	)
	revealedInput = dom.Any(
		dom.AttrContains("input", "aria-label", "Search by"),
		dom.AttrContains("input", "placeholder", "Search jobs"),
	)
)

type layoutStrategy struct {
	layout Layout
	submit func(ctx context.Context, d *LayoutDetector, c scraper.SearchCriteria) error
}

// tried strictly in this order; the first that submits wins
var layoutStrategies = []layoutStrategy{
	{LayoutA, submitSeparateInputs},
	{LayoutB, submitCombinedInput},
	{LayoutC, submitBehindTrigger},
}

// LayoutDetector finds the search surface and submits the query on it.
type LayoutDetector struct {
	session dom.Session
	wait    time.Duration
	logger  *log.Logger
}

func NewLayoutDetector(session dom.Session, timing Timing, logger *log.Logger) *LayoutDetector {
	if logger == nil {
		logger = log.Default()
	}
	return &LayoutDetector{
		session: session,
		wait:    timing.WithDefaults().LayoutWait,
		logger:  logger,
	}
}

// Detect returns the layout that accepted the search, which has been
// submitted as a side effect, or ErrNoSearchSurfaceFound.
func (d *LayoutDetector) Detect(ctx context.Context, c scraper.SearchCriteria) (Layout, error) {
	for _, st := range layoutStrategies {
		err := st.submit(ctx, d, c)
		if err == nil {
			return st.layout, nil
		}
		if ctx.Err() != nil {
			return LayoutUnresolved, ctx.Err()
		}
		d.logger.Printf("    ↪️ Layout %s not matched: %v", st.layout, err)
	}
	return LayoutUnresolved, ErrNoSearchSurfaceFound
}

func (d *LayoutDetector) first(ctx context.Context, q dom.Query) (dom.Node, error) {
	nodes, err := d.session.QueryAll(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%s: %w", q, dom.ErrNotFound)
	}
	return nodes[0], nil
}

func (d *LayoutDetector) fillAndSubmit(ctx context.Context, input dom.Node, text string) error {
	if err := d.session.SendKeys(ctx, input, text); err != nil {
		return fmt.Errorf("type query: %w", err)
	}
	if err := d.session.Submit(ctx, input); err != nil {
		return fmt.Errorf("submit query: %w", err)
	}
	return nil
}

func submitSeparateInputs(ctx context.Context, d *LayoutDetector, c scraper.SearchCriteria) error {
	keywords, err := d.session.WaitUntil(ctx, dom.Condition{Query: keywordsInput}, d.wait)
	if err != nil {
		return fmt.Errorf("keywords input: %w", err)
	}
	//both controls must exist before anything is typed
	location, err := d.first(ctx, locationInput)
	if err != nil {
		return fmt.Errorf("location input: %w", err)
	}

	if err := d.session.SendKeys(ctx, keywords, c.Keywords); err != nil {
		return fmt.Errorf("type keywords: %w", err)
	}
	return d.fillAndSubmit(ctx, location, c.Location)
}

func submitCombinedInput(ctx context.Context, d *LayoutDetector, c scraper.SearchCriteria) error {
	input, err := d.session.WaitUntil(ctx, dom.Condition{Query: combinedInput}, d.wait)
	if err != nil {
		return fmt.Errorf("combined input: %w", err)
	}
	return d.fillAndSubmit(ctx, input, c.Query())
}

func submitBehindTrigger(ctx context.Context, d *LayoutDetector, c scraper.SearchCriteria) error {
	button, err := d.session.WaitUntil(ctx, dom.Condition{Query: searchTrigger, Visible: true}, d.wait)
	if err != nil {
		return fmt.Errorf("search button: %w", err)
	}
	if err := d.session.Click(ctx, button); err != nil {
		return fmt.Errorf("click search button: %w", err)
	}
	input, err := d.session.WaitUntil(ctx, dom.Condition{Query: revealedInput}, d.wait)
	if err != nil {
		return fmt.Errorf("revealed input: %w", err)
	}
	return d.fillAndSubmit(ctx, input, c.Query())
}
