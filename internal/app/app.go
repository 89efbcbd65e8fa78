// Package app assembles a ready-to-search Service from configuration: the
// browser page, login, filters and every configured report sink.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"go-linkedin-fetcher/internal/browser"
	"go-linkedin-fetcher/internal/config"
	"go-linkedin-fetcher/internal/database"
	"go-linkedin-fetcher/internal/dedup"
	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/reporter"
	"go-linkedin-fetcher/internal/scraper/linkedin"
	"go-linkedin-fetcher/internal/search"
	"go-linkedin-fetcher/internal/telegram"
)

const cookieFile = "cookies-linkedin.json"

type Options struct {
	// Console receives the numbered printout; nil disables it.
	Console io.Writer
	// SaveJSON writes each run under config OutputDir.
	SaveJSON bool
	OnlyNew  bool
	// NoTelegram skips Telegram even when it is configured.
	NoTelegram bool
}

type App struct {
	Config  *config.Config
	Service *search.Service
	// Repo is nil when no DATABASE_URL is configured.
	Repo    *database.Repository
	closers []func()
}

// New launches the browser and builds the App. Close releases everything.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	mgr, err := browser.NewManager(browser.Options{
		Headless:       cfg.Browser.Headless,
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		UserAgent:      cfg.Browser.UserAgent,
	})
	if err != nil {
		return nil, err
	}
	log.Println("✅ Browser launched")

	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, cookieFile))
	if err != nil {
		log.Printf("⚠️ Could not load LinkedIn cookies: %v. Continuing.", err)
	} else {
		log.Printf("🍪 Loaded LinkedIn cookies (%d)", len(cookies))
	}

	page, err := mgr.NewPage(cookies, cfg.ScreenshotDir)
	if err != nil {
		_ = mgr.Close()
		return nil, err
	}

	a, err := NewWithSession(ctx, cfg, page, opts)
	if err != nil {
		_ = mgr.Close()
		return nil, err
	}
	a.closers = append(a.closers, func() {
		if err := mgr.Close(); err != nil {
			log.Printf("⚠️ Failed to close browser: %v", err)
		}
	})
	return a, nil
}

// NewWithSession builds the App on an existing session.
func NewWithSession(ctx context.Context, cfg *config.Config, session dom.Session, opts Options) (*App, error) {
	a := &App{Config: cfg}

	sinks, err := a.sinks(ctx, opts)
	if err != nil {
		a.Close()
		return nil, err
	}

	fetcher := linkedin.New(
		linkedin.WithBaseURL(cfg.LinkedIn.BaseURL),
		linkedin.WithTiming(cfg.LinkedIn.Timing),
		linkedin.WithScreenshots(cfg.LinkedIn.Screenshots),
	)
	auth := linkedin.NewAuthenticator(cfg.LinkedIn.BaseURL, cfg.LinkedIn.Timing, nil)

	svcOpts := []search.Option{
		search.WithLogin(auth, cfg.Credentials()),
		search.WithExcludeKeywords(cfg.ExcludeKeywords),
		search.WithSinks(sinks...),
	}
	if opts.OnlyNew {
		svcOpts = append(svcOpts, search.WithOnlyNew(dedup.NewJobCache(cfg.CachePath)))
	}
	a.Service = search.NewService(session, fetcher, svcOpts...)
	return a, nil
}

func (a *App) sinks(ctx context.Context, opts Options) ([]reporter.Sink, error) {
	cfg := a.Config
	var sinks []reporter.Sink
	if opts.Console != nil {
		sinks = append(sinks, reporter.Console{W: opts.Console})
	}
	if opts.SaveJSON {
		sinks = append(sinks, reporter.JSONFile{Dir: cfg.OutputDir})
	}

	if cfg.TelegramEnabled() && !opts.NoTelegram {
		bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			return nil, err
		}
		log.Println("🤖 Telegram Bot initialized.")
		sinks = append(sinks, reporter.NewTelegram(bot))
	}

	if cfg.DatabaseURL != "" {
		repo, err := database.ConnectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, repo.Close)
		if err := repo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		log.Println("🗄️ Database connected.")
		a.Repo = repo
		sinks = append(sinks, repo)
	}
	return sinks, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
