package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-linkedin-fetcher/internal/config"
	"go-linkedin-fetcher/internal/htmlsession"
	"go-linkedin-fetcher/internal/scraper"
	"go-linkedin-fetcher/internal/scraper/linkedin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://jobs.example.test"

const resultsPage = `<html><body><div class="scaffold-layout__list">
<div class="job-card-job-posting-card-wrapper">
  <span class="job-card-job-posting-card-wrapper__title">Go Developer</span>
  <span class="artdeco-entity-lockup__subtitle">Acme</span>
  <span class="artdeco-entity-lockup__caption">Berlin</span>
</div>
<div class="job-card-job-posting-card-wrapper">
  <span class="job-card-job-posting-card-wrapper__title">Lead Go Developer</span>
  <span class="artdeco-entity-lockup__subtitle">Initech</span>
  <span class="artdeco-entity-lockup__caption">Remote</span>
</div>
</div></body></html>`

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.LinkedIn.BaseURL = base
	cfg.LinkedIn.Email = "me@example.test"
	cfg.LinkedIn.Password = "pw"
	cfg.LinkedIn.Timing = linkedin.Timing{
		LayoutWait:   20 * time.Millisecond,
		PollTimeout:  200 * time.Millisecond,
		PollInterval: 5 * time.Millisecond,
		StableFor:    15 * time.Millisecond,
		LoginWait:    20 * time.Millisecond,
		ScrollSettle: time.Millisecond,
		LoginSettle:  time.Millisecond,
	}.WithDefaults()
	cfg.LinkedIn.Timing.PostSearchSettle = time.Millisecond
	cfg.ExcludeKeywords = []string{"lead"}
	cfg.OutputDir = t.TempDir()
	cfg.CachePath = t.TempDir()
	return cfg
}

func session(t *testing.T) *htmlsession.Session {
	s, err := htmlsession.New(`<html><body></body></html>`)
	require.NoError(t, err)
	s.AddPage(base+"/feed/", `<html><body><div id="global-nav-search"></div></body></html>`)
	s.AddPage(base+"/jobs", `<html><body>
<input aria-label="Search jobs" />
<input aria-label="Search location" />
</body></html>`)
	s.OnSubmit = func(s *htmlsession.Session, _ htmlsession.Submission) {
		require.NoError(t, s.Render(resultsPage))
	}
	return s
}

func TestNewWithSessionRunsSearch(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	a, err := NewWithSession(context.Background(), cfg, session(t), Options{Console: &out, SaveJSON: true, OnlyNew: true})
	require.NoError(t, err)
	defer a.Close()
	assert.Nil(t, a.Repo)

	criteria := scraper.SearchCriteria{Keywords: "golang", Location: "Berlin", MaxResults: 10}
	run, err := a.Service.Search(context.Background(), criteria)
	require.NoError(t, err)

	assert.Equal(t, []scraper.JobRecord{{Title: "Go Developer", Company: "Acme", Location: "Berlin"}}, run.Records())
	assert.Contains(t, out.String(), "1. Go Developer\n   Acme\n   Berlin")

	files, err := filepath.Glob(filepath.Join(cfg.OutputDir, "job-search-*.json"))
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = os.Stat(filepath.Join(cfg.CachePath, "seen_jobs.json"))
	assert.NoError(t, err)
}

func TestNewWithSessionBadDatabaseURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseURL = "://not a url"

	_, err := NewWithSession(context.Background(), cfg, session(t), Options{})
	assert.Error(t, err)
}
