package linkedin

import (
	"log"
	"time"

	"go-linkedin-fetcher/internal/dom"
)

const DefaultBaseURL = "https://www.linkedin.com"

// Timing bounds every wait in a run. Zero values take the defaults.
type Timing struct {
	// LayoutWait bounds the wait for each layout's controls.
	LayoutWait time.Duration `yaml:"layout_wait"`
	// PostSearchSettle is the pause after the search is submitted.
	PostSearchSettle time.Duration `yaml:"post_search_settle"`

	ScrollSettle       time.Duration `yaml:"scroll_settle"`
	MaxNoGrowthRetries int           `yaml:"max_no_growth_retries"`
	MaxScrolls         int           `yaml:"max_scrolls"`

	PollTimeout  time.Duration `yaml:"poll_timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
	StableFor    time.Duration `yaml:"stable_for"`

	// StaleAttempts is how many times one card position is read before it
	// is skipped.
	StaleAttempts int `yaml:"stale_attempts"`

	LoginWait   time.Duration `yaml:"login_wait"`
	LoginSettle time.Duration `yaml:"login_settle"`
}

func DefaultTiming() Timing {
	return Timing{
		LayoutWait:         15 * time.Second,
		PostSearchSettle:   2 * time.Second,
		ScrollSettle:       time.Second,
		MaxNoGrowthRetries: 3,
		MaxScrolls:         100,
		PollTimeout:        10 * time.Second,
		PollInterval:       500 * time.Millisecond,
		StableFor:          time.Second,
		StaleAttempts:      2,
		LoginWait:          15 * time.Second,
		LoginSettle:        2 * time.Second,
	}
}

// WithDefaults fills unset fields from DefaultTiming.
func (t Timing) WithDefaults() Timing {
	d := DefaultTiming()
	if t.LayoutWait <= 0 {
		t.LayoutWait = d.LayoutWait
	}
	if t.PostSearchSettle <= 0 {
		t.PostSearchSettle = d.PostSearchSettle
	}
	if t.ScrollSettle <= 0 {
		t.ScrollSettle = d.ScrollSettle
	}
	if t.MaxNoGrowthRetries <= 0 {
		t.MaxNoGrowthRetries = d.MaxNoGrowthRetries
	}
	if t.MaxScrolls <= 0 {
		t.MaxScrolls = d.MaxScrolls
	}
	if t.PollTimeout <= 0 {
		t.PollTimeout = d.PollTimeout
	}
	if t.PollInterval <= 0 {
		t.PollInterval = d.PollInterval
	}
	if t.StableFor <= 0 {
		t.StableFor = d.StableFor
	}
	if t.StaleAttempts <= 0 {
		t.StaleAttempts = d.StaleAttempts
	}
	if t.LoginWait <= 0 {
		t.LoginWait = d.LoginWait
	}
	if t.LoginSettle <= 0 {
		t.LoginSettle = d.LoginSettle
	}
	return t
}

// Option configures a Fetcher.
type Option func(*Fetcher)

func WithTiming(t Timing) Option {
	return func(f *Fetcher) { f.timing = t.WithDefaults() }
}

func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithBaseURL points the fetcher at another host, e.g. a local mirror.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

// WithCardQuery overrides the result card selectors.
func WithCardQuery(q dom.Query) Option {
	return func(f *Fetcher) {
		if len(q) > 0 {
			f.cards = q
		}
	}
}

// WithFields overrides the title, company and location strategies.
func WithFields(title, company, location Field) Option {
	return func(f *Fetcher) {
		f.fields = cardFields{title: title, company: company, location: location}
	}
}

// WithScreenshots captures the page when no search surface is found,
// if the session can take screenshots.
func WithScreenshots(enabled bool) Option {
	return func(f *Fetcher) { f.screenshots = enabled }
}
