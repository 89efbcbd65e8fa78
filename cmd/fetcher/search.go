package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"go-linkedin-fetcher/internal/app"
	"go-linkedin-fetcher/internal/config"

	"github.com/spf13/cobra"
)

const runTimeout = 10 * time.Minute

func init() {
	f := rootCMD.Flags()
	f.StringP("keywords", "k", "", "job title or keywords")
	f.StringP("location", "l", "", "job location")
	f.IntP("max", "n", 0, "maximum number of jobs to extract")
	f.Bool("no-scroll", false, "do not scroll the results list")
	f.Bool("headless", false, "run the browser headless")
	f.Bool("only-new", false, "report only jobs not seen in the last 30 days")
	f.Bool("no-save", false, "do not write the JSON result file")
	f.Bool("no-telegram", false, "do not send results to Telegram")
	f.Bool("no-prompt", false, "fail instead of asking for missing values")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("keywords") {
		cfg.Search.Keywords, _ = f.GetString("keywords")
	}
	if f.Changed("location") {
		cfg.Search.Location, _ = f.GetString("location")
	}
	if f.Changed("max") {
		cfg.Search.MaxResults, _ = f.GetInt("max")
	}
	if noScroll, _ := f.GetBool("no-scroll"); noScroll {
		cfg.Search.AutoScroll = false
	}
	if f.Changed("headless") {
		cfg.Browser.Headless, _ = f.GetBool("headless")
	}
	return cfg, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if noPrompt, _ := cmd.Flags().GetBool("no-prompt"); !noPrompt {
		p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if err := p.fill("Login details",
			promptField{"Enter your email", &cfg.LinkedIn.Email},
			promptField{"Enter your password", &cfg.LinkedIn.Password},
		); err != nil {
			return err
		}
		if cfg.Search.Query() == "" {
			if err := p.fill("\nSearch details",
				promptField{"Enter location", &cfg.Search.Location},
				promptField{"Enter job", &cfg.Search.Keywords},
			); err != nil {
				return err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log.Printf("🔧 Config loaded. Search: %q in %q", cfg.Search.Keywords, cfg.Search.Location)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	onlyNew, _ := cmd.Flags().GetBool("only-new")
	noSave, _ := cmd.Flags().GetBool("no-save")
	noTelegram, _ := cmd.Flags().GetBool("no-telegram")

	log.Println("🚀 Starting LinkedIn job fetcher...")
	a, err := app.New(ctx, cfg, app.Options{
		Console:    cmd.OutOrStdout(),
		SaveJSON:   !noSave,
		OnlyNew:    onlyNew,
		NoTelegram: noTelegram,
	})
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.Close()

	run, err := a.Service.Search(ctx, cfg.Search)
	if err != nil {
		return err
	}
	log.Printf("🏁 Finished in %v with state %s", run.FinishedAt.Sub(run.StartedAt).Round(time.Second), run.Result.State)
	return nil
}
