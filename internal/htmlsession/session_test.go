package htmlsession

import (
	"context"
	"testing"
	"time"

	"go-linkedin-fetcher/internal/dom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<ul id="list">
  <li class="item"><b>one</b></li>
  <li class="item"><b>two</b></li>
</ul>
<button>Search jobs</button>
<input aria-label="Search location" />
</body></html>`

var items = dom.Any(dom.CSS("li.item"))

func TestQueryAllAndReadText(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	nodes, err := s.QueryAll(ctx, items)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	b, err := s.QueryOne(ctx, nodes[1], dom.CSS("b"))
	require.NoError(t, err)
	text, err := s.ReadText(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "two", text)

	_, err = s.QueryOne(ctx, nodes[0], dom.CSS("i"))
	assert.ErrorIs(t, err, dom.ErrNotFound)
}

func TestTextAndAttrSelectors(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	buttons, err := s.QueryAll(ctx, dom.Any(dom.TextContains("button", "Search jobs")))
	require.NoError(t, err)
	assert.Len(t, buttons, 1)

	inputs, err := s.QueryAll(ctx, dom.Any(
		dom.AttrContains("input", "placeholder", "location"),
		dom.AttrContains("input", "aria-label", "location"),
	))
	require.NoError(t, err)
	assert.Len(t, inputs, 1)
}

func TestRenderMakesHandlesStale(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	nodes, err := s.QueryAll(ctx, items)
	require.NoError(t, err)
	require.NoError(t, s.Render(page))

	_, err = s.ReadText(ctx, nodes[0])
	assert.ErrorIs(t, err, dom.ErrStaleHandle)
	_, err = s.QueryOne(ctx, nodes[0], dom.CSS("b"))
	assert.ErrorIs(t, err, dom.ErrStaleHandle)
	assert.ErrorIs(t, s.Click(ctx, nodes[0]), dom.ErrStaleHandle)
}

func TestAppendKeepsHandles(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	nodes, err := s.QueryAll(ctx, items)
	require.NoError(t, err)
	require.NoError(t, s.Append("#list", `<li class="item"><b>three</b></li>`))

	text, err := s.ReadText(ctx, nodes[0])
	require.NoError(t, err)
	assert.Equal(t, "one", text)
	assert.Equal(t, 3, s.Count("li.item"))

	assert.ErrorIs(t, s.Append("#missing", "<p></p>"), dom.ErrNotFound)
}

func TestSendKeysAndSubmit(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	var hooked []Submission
	s.OnSubmit = func(_ *Session, sub Submission) { hooked = append(hooked, sub) }

	inputs, err := s.QueryAll(ctx, dom.Any(dom.CSS("input")))
	require.NoError(t, err)
	require.NoError(t, s.SendKeys(ctx, inputs[0], "Berlin"))
	require.NoError(t, s.Submit(ctx, inputs[0]))

	want := []Submission{{Value: "Berlin", Field: "Search location"}}
	assert.Equal(t, want, s.Submissions())
	assert.Equal(t, want, hooked)
	assert.Equal(t, []string{`type "Berlin"`, `submit "Berlin"`}, s.Calls())
}

func TestNavigate(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()
	s.AddPage("https://example.test/other", `<html><body><p class="x">x</p></body></html>`)

	require.NoError(t, s.Navigate(ctx, "https://example.test/unknown"))
	assert.Equal(t, 2, s.Count("li.item"))

	require.NoError(t, s.Navigate(ctx, "https://example.test/other"))
	assert.Equal(t, 0, s.Count("li.item"))
	assert.Equal(t, "https://example.test/other", s.URL())
}

func TestWaitUntil(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = s.Append("#list", `<li class="late">late</li>`)
	}()
	node, err := s.WaitUntil(ctx, dom.Condition{Query: dom.Any(dom.CSS("li.late"))}, time.Second)
	require.NoError(t, err)
	text, err := s.ReadText(ctx, node)
	require.NoError(t, err)
	assert.Equal(t, "late", text)

	start := time.Now()
	_, err = s.WaitUntil(ctx, dom.Condition{Query: dom.Any(dom.CSS("table"))}, 30*time.Millisecond)
	assert.ErrorIs(t, err, dom.ErrTimedOut)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestExecuteScriptHook(t *testing.T) {
	s, err := New(page)
	require.NoError(t, err)
	ctx := context.Background()

	v, err := s.ExecuteScript(ctx, "1+1")
	require.NoError(t, err)
	assert.Nil(t, v)

	s.OnScript = func(_ *Session, code string) (any, error) { return code, nil }
	v, err = s.ExecuteScript(ctx, "window.scrollBy(0, 100)")
	require.NoError(t, err)
	assert.Equal(t, "window.scrollBy(0, 100)", v)
}
