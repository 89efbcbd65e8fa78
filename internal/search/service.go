// Package search runs the end-to-end job search: login, fetch, filter,
// dedup and report. The CLI and the HTTP server both drive it.
package search

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go-linkedin-fetcher/internal/dedup"
	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/filter"
	"go-linkedin-fetcher/internal/reporter"
	"go-linkedin-fetcher/internal/scraper"
	"go-linkedin-fetcher/internal/scraper/linkedin"
)

type Service struct {
	session dom.Session
	fetcher *linkedin.Fetcher
	auth    *linkedin.Authenticator
	cred    linkedin.Credentials
	matcher *filter.Matcher
	cache   *dedup.JobCache
	sinks   []reporter.Sink
	logger  *log.Logger
	now     func() time.Time

	// one page, one search at a time
	mu       sync.Mutex
	loggedIn bool
}

type Option func(*Service)

// WithLogin logs the session in before the first search.
func WithLogin(auth *linkedin.Authenticator, cred linkedin.Credentials) Option {
	return func(s *Service) {
		s.auth = auth
		s.cred = cred
	}
}

// WithExcludeKeywords drops records whose title or company names one of
// keywords.
func WithExcludeKeywords(keywords []string) Option {
	return func(s *Service) { s.matcher = filter.NewMatcher(keywords) }
}

// WithOnlyNew drops records already reported in an earlier run and marks
// the rest as seen.
func WithOnlyNew(cache *dedup.JobCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithSinks(sinks ...reporter.Sink) Option {
	return func(s *Service) { s.sinks = append(s.sinks, sinks...) }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewService(session dom.Session, fetcher *linkedin.Fetcher, opts ...Option) *Service {
	s := &Service{
		session: session,
		fetcher: fetcher,
		matcher: filter.NewMatcher(nil),
		logger:  log.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs one search on the shared session. Concurrent calls queue.
// Sink failures are logged and do not fail the search.
func (s *Service) Search(ctx context.Context, criteria scraper.SearchCriteria) (reporter.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run := reporter.Run{Criteria: criteria, StartedAt: s.now()}
	if err := criteria.Validate(); err != nil {
		return run, err
	}

	if s.auth != nil && !s.loggedIn {
		if err := s.auth.EnsureLoggedIn(ctx, s.session, s.cred); err != nil {
			return run, fmt.Errorf("login failed: %w", err)
		}
		s.loggedIn = true
	}

	res, err := s.fetcher.Run(ctx, s.session, criteria)
	run.Result = res
	run.FinishedAt = s.now()
	if err != nil {
		return run, err
	}

	total := len(res.Records)
	run.Result.Records = filter.Apply(res.Records, s.matcher)
	if excluded := total - len(run.Result.Records); excluded > 0 {
		s.logger.Printf("🚫 Excluded %d/%d jobs by keyword", excluded, total)
	}

	if s.cache != nil {
		unseen := s.cache.Unseen(run.Result.Records)
		s.logger.Printf("🔍 Deduplication: %d total -> %d unseen jobs", len(run.Result.Records), len(unseen))
		if err := s.cache.Add(unseen); err != nil {
			s.logger.Printf("⚠️ Failed to save job cache: %v", err)
		}
		run.Result.Records = unseen
	}

	_ = reporter.ReportAll(ctx, run, s.sinks...)
	return run, nil
}
