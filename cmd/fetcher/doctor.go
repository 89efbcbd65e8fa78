package main

import (
	"fmt"
	"path/filepath"

	"go-linkedin-fetcher/internal/browser"
	"go-linkedin-fetcher/internal/config"
	"go-linkedin-fetcher/internal/scraper/linkedin"

	"github.com/spf13/cobra"
)

var doctorCMD = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, cookies and whether the browser session is logged in",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	doctorCMD.Flags().Bool("no-browser", false, "skip launching the browser")
	rootCMD.AddCommand(doctorCMD)
}

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	path, _ := cmd.Flags().GetString("config")

	fmt.Fprintln(out, "🔧 Checking config...")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "   Search: %q in %q (max %d, scroll %t)\n",
		cfg.Search.Keywords, cfg.Search.Location, cfg.Search.MaxResults, cfg.Search.AutoScroll)
	fmt.Fprintf(out, "   LinkedIn: %s as %q\n", cfg.LinkedIn.BaseURL, cfg.LinkedIn.Email)
	fmt.Fprintf(out, "   Telegram: %t\n", cfg.TelegramEnabled())
	if cfg.TelegramEnabled() {
		fmt.Fprintf(out, "   Telegram Token: %s\n", mask(cfg.TelegramToken))
	}
	fmt.Fprintf(out, "   Database: %t\n", cfg.DatabaseURL != "")
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(out, "⚠️ %v\n", err)
	}

	fmt.Fprintln(out, "🍪 Checking cookies...")
	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-linkedin.json"))
	if err != nil {
		fmt.Fprintf(out, "⚠️ %v\n", err)
	} else {
		fmt.Fprintf(out, "✅ Loaded %d cookies\n", len(cookies))
	}

	if noBrowser, _ := cmd.Flags().GetBool("no-browser"); noBrowser {
		return nil
	}

	fmt.Fprintln(out, "🌐 Checking browser session...")
	mgr, err := browser.NewManager(browser.Options{Headless: true})
	if err != nil {
		return err
	}
	defer mgr.Close()

	page, err := mgr.NewPage(cookies, cfg.ScreenshotDir)
	if err != nil {
		return err
	}
	auth := linkedin.NewAuthenticator(cfg.LinkedIn.BaseURL, cfg.LinkedIn.Timing, nil)
	if auth.IsLoggedIn(cmd.Context(), page) {
		fmt.Fprintln(out, "✅ Cookies give a logged-in session")
	} else {
		fmt.Fprintln(out, "⚠️ Not logged in; the fetcher will use the login form")
	}
	return nil
}
