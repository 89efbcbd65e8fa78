package models

import (
	"time"
)

// SearchRun is one row of search_runs.
type SearchRun struct {
	ID          string    `json:"id"`
	Keywords    string    `json:"keywords"`
	Location    string    `json:"location"`
	MaxResults  int       `json:"max_results"`
	Layout      string    `json:"layout"`
	State       string    `json:"state"`
	RecordCount int       `json:"record_count"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// JobRecord is one row of job_records, in extraction order within its run.
type JobRecord struct {
	RunID       string `json:"run_id"`
	Position    int    `json:"position"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Fingerprint string `json:"fingerprint"`
}
