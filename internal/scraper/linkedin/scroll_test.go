package linkedin

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"go-linkedin-fetcher/internal/htmlsession"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lazyList appends batch cards per scroll until total cards exist.
func lazyList(t *testing.T, s *htmlsession.Session, batch, total int) {
	loaded := s.Count("div.job-card-container")
	s.OnScript = func(s *htmlsession.Session, _ string) (any, error) {
		if loaded >= total {
			return "container", nil
		}
		to := min(loaded+batch, total)
		require.NoError(t, s.Append(".scaffold-layout__list", cards(loaded+1, to)))
		loaded = to
		return "container", nil
	}
}

func TestExpandStopsAtPlateau(t *testing.T) {
	s := newSession(t, resultsPage(10))
	lazyList(t, s, 10, 37)

	NewScrollDriver(s, DefaultCardQuery, fastTiming(), quiet).Expand(context.Background(), 50)

	assert.Equal(t, 37, s.Count("div.job-card-container"))
	// three growing scrolls, then three without growth
	assert.Equal(t, 6, countCalls(s.Calls(), "script"))
}

func TestExpandStopsAtTarget(t *testing.T) {
	s := newSession(t, resultsPage(10))
	lazyList(t, s, 10, 100)

	NewScrollDriver(s, DefaultCardQuery, fastTiming(), quiet).Expand(context.Background(), 25)

	assert.Equal(t, 30, s.Count("div.job-card-container"))
	assert.Equal(t, 2, countCalls(s.Calls(), "script"))
}

func TestExpandRespectsScrollCeiling(t *testing.T) {
	timing := fastTiming()
	timing.MaxScrolls = 5
	s := newSession(t, resultsPage(1))
	lazyList(t, s, 1, 1000)

	NewScrollDriver(s, DefaultCardQuery, timing, quiet).Expand(context.Background(), 500)

	assert.Equal(t, 5, countCalls(s.Calls(), "script"))
	assert.Equal(t, 6, s.Count("div.job-card-container"))
}

func TestExpandAlreadyEnough(t *testing.T) {
	s := newSession(t, resultsPage(12))

	NewScrollDriver(s, DefaultCardQuery, fastTiming(), quiet).Expand(context.Background(), 10)

	assert.Zero(t, countCalls(s.Calls(), "script"))
}

func TestScrollScriptListsContainers(t *testing.T) {
	script := scrollScript(resultContainers)
	for _, c := range resultContainers {
		quoted, err := json.Marshal(c)
		require.NoError(t, err)
		assert.True(t, strings.Contains(script, string(quoted)), c)
	}
	assert.Contains(t, script, "window.scrollBy")
}
