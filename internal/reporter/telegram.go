package reporter

import (
	"context"
	"fmt"
	"log"
	"time"

	"go-linkedin-fetcher/internal/dom"
	"go-linkedin-fetcher/internal/scraper"
)

// JobSender is the part of telegram.Bot the reporter needs.
type JobSender interface {
	SendJob(rec scraper.JobRecord) error
	SendStatus(message string) error
}

// Telegram sends every record, then a summary line.
type Telegram struct {
	Bot JobSender
	// Delay between messages keeps the bot under the API rate limit.
	Delay time.Duration
}

func NewTelegram(bot JobSender) *Telegram {
	return &Telegram{Bot: bot, Delay: time.Second}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Report(ctx context.Context, run Run) error {
	records := run.Records()
	sent := 0
	for i, rec := range records {
		if err := t.Bot.SendJob(rec); err != nil {
			log.Printf("⚠️ Failed to send job to Telegram: %v", err)
			continue
		}
		sent++
		if i < len(records)-1 {
			if err := dom.Sleep(ctx, t.Delay); err != nil {
				return err
			}
		}
	}

	status := fmt.Sprintf("✅ %q in %q: found %d jobs, sent %d.",
		run.Criteria.Keywords, run.Criteria.Location, len(records), sent)
	if len(records) == 0 {
		status = fmt.Sprintf("No jobs found for %q in %q (%s).",
			run.Criteria.Keywords, run.Criteria.Location, run.Result.State)
	}
	return t.Bot.SendStatus(status)
}
