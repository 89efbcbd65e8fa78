// Load envs from .env
// Load YAML config
// Override secrets from env vars
// Provide default values

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go-linkedin-fetcher/internal/scraper"
	"go-linkedin-fetcher/internal/scraper/linkedin"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type LinkedInConfig struct {
	BaseURL  string `yaml:"base_url"`
	Email    string `yaml:"email" env:"LINKEDIN_EMAIL"`
	Password string `yaml:"password" env:"LINKEDIN_PASSWORD"`
	//capture the page when no search surface is found
	Screenshots bool            `yaml:"screenshots"`
	Timing      linkedin.Timing `yaml:"timing"`
}

type BrowserConfig struct {
	Headless       bool   `yaml:"headless"`
	ViewportWidth  int    `yaml:"viewport_width"`
	ViewportHeight int    `yaml:"viewport_height"`
	UserAgent      string `yaml:"user_agent"`
}

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	Port           string `yaml:"port" env:"PORT"`

	//Search criteria
	Search          scraper.SearchCriteria `yaml:"search"`
	ExcludeKeywords []string               `yaml:"exclude_keywords"`

	LinkedIn LinkedInConfig `yaml:"linkedin"`
	Browser  BrowserConfig  `yaml:"browser"`

	//Paths
	CookiesPath   string `yaml:"cookies_path"`
	CachePath     string `yaml:"cache_path"`
	OutputDir     string `yaml:"output_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Port: "8080",
		Search: scraper.SearchCriteria{
			MaxResults: 50,
			AutoScroll: true,
		},
		LinkedIn: LinkedInConfig{
			BaseURL: linkedin.DefaultBaseURL,
			Timing:  linkedin.DefaultTiming(),
		},
		CookiesPath:   ".cookies",
		CachePath:     ".cache",
		OutputDir:     "logs",
		ScreenshotDir: "logs/screenshots",
	}
}

// Load reads .env, then the YAML file at path (DefaultPath if empty), then
// env overrides. A missing YAML file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		log.Printf("⚠️ Could not read %s, using defaults", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("LINKEDIN_EMAIL"); v != "" {
		c.LinkedIn.Email = v
	}
	if v := os.Getenv("LINKEDIN_PASSWORD"); v != "" {
		c.LinkedIn.Password = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	return nil
}

// applyDefaults refills fields a YAML file explicitly blanked.
func (c *Config) applyDefaults() {
	d := Default()
	if c.LinkedIn.BaseURL == "" {
		c.LinkedIn.BaseURL = d.LinkedIn.BaseURL
	}
	c.LinkedIn.Timing = c.LinkedIn.Timing.WithDefaults()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.CookiesPath == "" {
		c.CookiesPath = d.CookiesPath
	}
	if c.CachePath == "" {
		c.CachePath = d.CachePath
	}
	if c.OutputDir == "" {
		c.OutputDir = d.OutputDir
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = d.ScreenshotDir
	}
	c.Search.Keywords = strings.TrimSpace(c.Search.Keywords)
	c.Search.Location = strings.TrimSpace(c.Search.Location)
}

// TelegramEnabled reports whether both bot credentials are set.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func (c *Config) Credentials() linkedin.Credentials {
	return linkedin.Credentials{Email: c.LinkedIn.Email, Password: c.LinkedIn.Password}
}

// Validate checks a configuration about to run a search.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Search.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Search.Query() == "" {
		errs = append(errs, errors.New("search keywords or location is required"))
	}
	if (c.TelegramToken == "") != (c.TelegramChatID == 0) {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set together"))
	}
	return errors.Join(errs...)
}
