package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Options controls how Chromium is launched.
type Options struct {
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	UserAgent      string
}

func (o Options) withDefaults() Options {
	if o.ViewportWidth <= 0 {
		o.ViewportWidth = 1366
	}
	if o.ViewportHeight <= 0 {
		o.ViewportHeight = 900
	}
	return o
}

// launchArgs hides the automation banner LinkedIn keys on.
var launchArgs = []string{"--disable-blink-features=AutomationControlled"}

// Manager owns the playwright driver and one Chromium instance.
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	opts    Options
}

func NewManager(opts Options) (*Manager, error) {
	opts = opts.withDefaults()

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     launchArgs,
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}

	return &Manager{pw: pw, browser: browser, opts: opts}, nil
}

// NewContext opens an isolated browser context with cookies preloaded.
func (m *Manager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctxOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  m.opts.ViewportWidth,
			Height: m.opts.ViewportHeight,
		},
	}
	if m.opts.UserAgent != "" {
		ctxOpts.UserAgent = playwright.String(m.opts.UserAgent)
	}

	browserCtx, err := m.browser.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	if len(cookies) > 0 {
		if err := browserCtx.AddCookies(cookies); err != nil {
			_ = browserCtx.Close()
			return nil, fmt.Errorf("failed to add cookies: %w", err)
		}
	}
	return browserCtx, nil
}

// NewPage opens a page in a fresh context and wraps it as a PageSession.
func (m *Manager) NewPage(cookies []playwright.OptionalCookie, screenshotDir string) (*PageSession, error) {
	browserCtx, err := m.NewContext(cookies)
	if err != nil {
		return nil, err
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		_ = browserCtx.Close()
		return nil, fmt.Errorf("failed to create new page: %w", err)
	}
	return NewPageSession(page, screenshotDir), nil
}

func (m *Manager) Close() error {
	var errs []error
	if m.browser != nil {
		if err := m.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close browser: %w", err))
		}
	}
	if m.pw != nil {
		if err := m.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop playwright: %w", err))
		}
	}
	return errors.Join(errs...)
}
