package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// JSONFile writes each run to <Dir>/job-search-YYYY-MM-DD.json, replacing
// an earlier run of the same day.
type JSONFile struct {
	Dir string
	Now func() time.Time
}

func (j JSONFile) Name() string { return "json" }

// Path is the file a run at t is written to.
func (j JSONFile) Path(t time.Time) string {
	return filepath.Join(j.Dir, fmt.Sprintf("job-search-%s.json", t.Format("2006-01-02")))
}

func (j JSONFile) Report(_ context.Context, run Run) error {
	now := time.Now
	if j.Now != nil {
		now = j.Now
	}
	if err := os.MkdirAll(j.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}
	path := j.Path(now())
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Printf("💾 Saved %d jobs to %s", len(run.Records()), path)
	return nil
}
