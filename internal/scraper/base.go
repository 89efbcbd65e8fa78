// Define the records every job source produces
// and the criteria a search is run with

package scraper

import (
	"context"
	"errors"
	"strings"

	"go-linkedin-fetcher/internal/dom"
)

// NotAvailable is stored in a field no selector could resolve.
const NotAvailable = "N/A"

// ErrInvalidCriteria is returned for criteria that cannot drive a search.
var ErrInvalidCriteria = errors.New("invalid search criteria")

// JobRecord is one card copied out of the results list.
// Fields are never empty: unresolved ones hold NotAvailable.
type JobRecord struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// SearchCriteria is the immutable input of one fetch.
type SearchCriteria struct {
	Keywords   string `json:"keywords" yaml:"keywords"`
	Location   string `json:"location" yaml:"location"`
	MaxResults int    `json:"max_results" yaml:"max_results"`
	AutoScroll bool   `json:"auto_scroll" yaml:"auto_scroll"`
}

// Query joins keywords and location for single-input search bars.
func (c SearchCriteria) Query() string {
	return strings.TrimSpace(strings.TrimSpace(c.Keywords) + " " + strings.TrimSpace(c.Location))
}

func (c SearchCriteria) Validate() error {
	if c.MaxResults <= 0 {
		return errors.Join(ErrInvalidCriteria, errors.New("max_results must be positive"))
	}
	return nil
}

// Fetcher defines the interface that job sources implement
type Fetcher interface {
	// FetchJobs runs one search on an authenticated session
	FetchJobs(ctx context.Context, session dom.Session, criteria SearchCriteria) ([]JobRecord, error)

	// Name is the platform name (LinkedIn, ...)
	Name() string
}
