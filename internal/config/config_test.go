package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-linkedin-fetcher/internal/scraper"
	"go-linkedin-fetcher/internal/scraper/linkedin"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"LINKEDIN_EMAIL", "LINKEDIN_PASSWORD",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"DATABASE_URL", "PORT",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
search:
  keywords: " golang developer "
  location: Berlin
  max_results: 20
  auto_scroll: false
exclude_keywords: [senior, lead]
linkedin:
  email: me@example.test
  timing:
    layout_wait: 5s
    poll_interval: 250ms
browser:
  headless: true
cache_path: /tmp/fetcher-cache
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, scraper.SearchCriteria{
		Keywords:   "golang developer",
		Location:   "Berlin",
		MaxResults: 20,
		AutoScroll: false,
	}, cfg.Search)
	assert.Equal(t, []string{"senior", "lead"}, cfg.ExcludeKeywords)
	assert.Equal(t, "me@example.test", cfg.LinkedIn.Email)
	assert.Equal(t, linkedin.DefaultBaseURL, cfg.LinkedIn.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.LinkedIn.Timing.LayoutWait)
	assert.Equal(t, 250*time.Millisecond, cfg.LinkedIn.Timing.PollInterval)
	assert.Equal(t, linkedin.DefaultTiming().StableFor, cfg.LinkedIn.Timing.StableFor)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "/tmp/fetcher-cache", cfg.CachePath)
	assert.Equal(t, ".cookies", cfg.CookiesPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.True(t, cfg.Search.AutoScroll)
	assert.Equal(t, linkedin.DefaultTiming(), cfg.LinkedIn.Timing)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LINKEDIN_EMAIL", "env@example.test")
	t.Setenv("LINKEDIN_PASSWORD", "secret")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("PORT", "9090")
	path := writeConfig(t, "linkedin:\n  email: file@example.test\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, linkedin.Credentials{Email: "env@example.test", Password: "secret"}, cfg.Credentials())
	assert.Equal(t, int64(-1001), cfg.TelegramChatID)
	assert.True(t, cfg.TelegramEnabled())
	assert.Equal(t, "postgres://localhost/jobs", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "search: [not, a, map]\n"))
	assert.Error(t, err)

	t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"ok", func(c *Config) { c.Search.Keywords = "go" }, false},
		{"no query", func(c *Config) {}, true},
		{"zero max", func(c *Config) { c.Search.Keywords = "go"; c.Search.MaxResults = 0 }, true},
		{"half telegram", func(c *Config) { c.Search.Keywords = "go"; c.TelegramToken = "x" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExampleConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, linkedin.DefaultTiming(), cfg.LinkedIn.Timing)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.NoError(t, cfg.Validate())
}
