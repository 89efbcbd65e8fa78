package linkedin

import (
	"fmt"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"go-linkedin-fetcher/internal/htmlsession"

	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://jobs.example.test"

var quiet = log.New(io.Discard, "", 0)

func fastTiming() Timing {
	return Timing{
		LayoutWait:         30 * time.Millisecond,
		PostSearchSettle:   time.Millisecond,
		ScrollSettle:       time.Millisecond,
		MaxNoGrowthRetries: 3,
		MaxScrolls:         100,
		PollTimeout:        300 * time.Millisecond,
		PollInterval:       5 * time.Millisecond,
		StableFor:          20 * time.Millisecond,
		StaleAttempts:      2,
		LoginWait:          30 * time.Millisecond,
		LoginSettle:        time.Millisecond,
	}
}

func card(i int) string {
	return fmt.Sprintf(`<div class="job-card-container" data-idx="%d">
  <a class="job-card-list__title">Job %d</a>
  <span class="artdeco-entity-lockup__subtitle">Company %d</span>
  <ul><li class="job-card-container__metadata-item">City %d</li></ul>
</div>`, i, i, i, i)
}

func cards(from, to int) string {
	var b strings.Builder
	for i := from; i <= to; i++ {
		b.WriteString(card(i))
	}
	return b.String()
}

func resultsPage(n int) string {
	return `<html><body><div class="scaffold-layout__list">` + cards(1, n) + `</div></body></html>`
}

const (
	layoutAPage = `<html><body>
<input aria-label="Search jobs" />
<input aria-label="Search location" />
</body></html>`
	layoutBPage = `<html><body>
<input aria-label="Search by title, skill, or company" />
</body></html>`
	layoutCPage = `<html><body>
<button aria-label="Open search">Search jobs</button>
</body></html>`
	revealedPage = `<html><body>
<input aria-label="Search by title, skill, or company" />
</body></html>`
	blankPage = `<html><body><p>Nothing to see</p></body></html>`
)

func newSession(t *testing.T, body string) *htmlsession.Session {
	t.Helper()
	s, err := htmlsession.New(body)
	require.NoError(t, err)
	return s
}

// waits returns the wait entries of the call log, in order.
func waits(s *htmlsession.Session) []string {
	var out []string
	for _, c := range s.Calls() {
		if strings.HasPrefix(c, "wait ") {
			out = append(out, strings.TrimPrefix(c, "wait "))
		}
	}
	return out
}

func countCalls(calls []string, entry string) int {
	n := 0
	for _, c := range calls {
		if c == entry {
			n++
		}
	}
	return n
}
