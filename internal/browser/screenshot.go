package browser

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

var DefaultScreenshotDir = filepath.Join(".", "logs", "screenshots")

// screenshotPath builds <dir>/<name>_<timestamp>.png.
func screenshotPath(dir, name string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, at.Format("2006-01-02_15-04-05")))
}

// Screenshot saves a full-page PNG for debugging.
func (s *PageSession) Screenshot(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.screenshotDir, 0755); err != nil {
		return fmt.Errorf("failed to create screenshot dir: %w", err)
	}

	path := screenshotPath(s.screenshotDir, name, time.Now())
	log.Printf("📸 Capturing %s", name)
	_, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return err
	}
	log.Printf("   Screenshot saved: %s", path)
	return nil
}
