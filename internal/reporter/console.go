package reporter

import (
	"context"
	"fmt"
	"io"
)

// Console prints records as a numbered list.
type Console struct {
	W io.Writer
}

func (c Console) Name() string { return "console" }

func (c Console) Report(_ context.Context, run Run) error {
	records := run.Records()
	if len(records) > 0 {
		fmt.Fprintln(c.W)
	}
	for i, rec := range records {
		if _, err := fmt.Fprintf(c.W, "%d. %s\n   %s\n   %s\n\n", i+1, rec.Title, rec.Company, rec.Location); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(c.W, "Scraped %d job(s).\n", len(records))
	return err
}
