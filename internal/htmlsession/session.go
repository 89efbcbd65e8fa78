// Package htmlsession implements dom.Session over an in-memory HTML document
// parsed with goquery. It backs the fetcher tests and the CLI replay mode,
// where a saved results page is extracted without launching a browser.
//
// Re-renders are modelled with a generation counter: Render and Navigate
// replace the document and bump the generation, so every node handed out
// earlier becomes stale. Append mutates the current document in place, the
// way lazy loading appends cards, and leaves existing handles valid.
package htmlsession

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-linkedin-fetcher/internal/dom"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const waitStep = 5 * time.Millisecond

type handle struct {
	gen  int
	node *html.Node
}

// Submission records one Submit call.
type Submission struct {
	// Value is the text typed into the submitted control.
	Value string
	// Field is the control's aria-label or placeholder.
	Field string
}

// Session is a goquery-backed dom.Session.
type Session struct {
	mu     sync.Mutex
	doc    *goquery.Document
	gen    int
	url    string
	pages  map[string]string
	values map[*html.Node]string
	calls  []string
	subs   []Submission

	// OnScript is called for ExecuteScript. Nil means scripts are no-ops.
	OnScript func(s *Session, code string) (any, error)
	// OnSubmit is called after a Submit was recorded.
	OnSubmit func(s *Session, sub Submission)
	// OnClick is called when a live node is clicked.
	OnClick func(s *Session, n *html.Node)
	// OnAccess is called before QueryOne or ReadText touches a node, before
	// the liveness check. Tests use it to re-render under the reader.
	OnAccess func(s *Session, n *html.Node)
}

// New parses body as the current page.
func New(body string) (*Session, error) {
	s := &Session{
		pages:  make(map[string]string),
		values: make(map[*html.Node]string),
	}
	if err := s.Render(body); err != nil {
		return nil, err
	}
	return s, nil
}

// AddPage registers the document served for url by Navigate.
func (s *Session) AddPage(url, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[url] = body
}

// Render replaces the whole document. All previously returned nodes go stale.
func (s *Session) Render(body string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("htmlsession: parse document: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.gen++
	return nil
}

// Append adds fragment to the first element matching parent.
func (s *Session) Append(parent, fragment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.doc.Find(parent).First()
	if target.Length() == 0 {
		return fmt.Errorf("htmlsession: append target %q: %w", parent, dom.ErrNotFound)
	}
	target.AppendHtml(fragment)
	return nil
}

// Count returns how many elements currently match css.
func (s *Session) Count(css string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Find(css).Length()
}

// URL is the last navigated address.
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// Calls returns the interaction log, e.g. "wait input[...]", "click", "submit".
func (s *Session) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Submissions returns every recorded Submit.
func (s *Session) Submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.subs...)
}

// Value returns what was typed into n.
func (s *Session) Value(n *html.Node) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[n]
}

func cascadiaText(tag, substr string) string {
	return fmt.Sprintf("%s:contains(%q)", tag, substr)
}

func (s *Session) record(format string, args ...any) {
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *Session) wrap(sel *goquery.Selection) []dom.Node {
	nodes := make([]dom.Node, 0, sel.Length())
	for _, n := range sel.Nodes {
		nodes = append(nodes, handle{gen: s.gen, node: n})
	}
	return nodes
}

// live resolves a handle under s.mu.
func (s *Session) live(n dom.Node) (*html.Node, error) {
	h, ok := n.(handle)
	if !ok || h.node == nil {
		return nil, fmt.Errorf("htmlsession: foreign node %T: %w", n, dom.ErrStaleHandle)
	}
	if h.gen != s.gen {
		return nil, dom.ErrStaleHandle
	}
	return h.node, nil
}

func (s *Session) access(n dom.Node) {
	if s.OnAccess == nil {
		return
	}
	if h, ok := n.(handle); ok && h.node != nil {
		s.OnAccess(s, h.node)
	}
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	body, ok := s.pages[url]
	s.url = url
	s.record("navigate %s", url)
	s.mu.Unlock()
	if !ok {
		//single-document fixtures keep the current page
		return nil
	}
	return s.Render(body)
}

func (s *Session) QueryAll(ctx context.Context, q dom.Query) ([]dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wrap(s.doc.Find(q.Compile(cascadiaText))), nil
}

func (s *Session) QueryOne(ctx context.Context, node dom.Node, sel dom.Selector) (dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.access(node)
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.live(node)
	if err != nil {
		return nil, err
	}
	found := s.doc.FindNodes(n).Find(sel.Compile(cascadiaText)).First()
	if found.Length() == 0 {
		return nil, dom.ErrNotFound
	}
	return s.wrap(found)[0], nil
}

func (s *Session) ReadText(ctx context.Context, node dom.Node) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.access(node)
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.live(node)
	if err != nil {
		return "", err
	}
	return s.doc.FindNodes(n).Text(), nil
}

func (s *Session) SendKeys(ctx context.Context, node dom.Node, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, err := s.live(node)
	if err != nil {
		return err
	}
	s.values[n] = text
	s.doc.FindNodes(n).SetAttr("value", text)
	s.record("type %q", text)
	return nil
}

func (s *Session) Submit(ctx context.Context, node dom.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	n, err := s.live(node)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	sel := s.doc.FindNodes(n)
	field, ok := sel.Attr("aria-label")
	if !ok {
		field, _ = sel.Attr("placeholder")
	}
	sub := Submission{Value: s.values[n], Field: field}
	s.subs = append(s.subs, sub)
	s.record("submit %q", sub.Value)
	hook := s.OnSubmit
	s.mu.Unlock()

	if hook != nil {
		hook(s, sub)
	}
	return nil
}

func (s *Session) Click(ctx context.Context, node dom.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	n, err := s.live(node)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.record("click")
	hook := s.OnClick
	s.mu.Unlock()

	if hook != nil {
		hook(s, n)
	}
	return nil
}

func (s *Session) ExecuteScript(ctx context.Context, code string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.record("script")
	hook := s.OnScript
	s.mu.Unlock()

	if hook == nil {
		return nil, nil
	}
	return hook(s, code)
}

// WaitUntil polls the document. Visibility is not modelled; attached counts.
func (s *Session) WaitUntil(ctx context.Context, cond dom.Condition, timeout time.Duration) (dom.Node, error) {
	s.mu.Lock()
	s.record("wait %s", cond.Query)
	s.mu.Unlock()

	deadline := time.Now().Add(timeout)
	for {
		nodes, err := s.QueryAll(ctx, cond.Query)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			return nodes[0], nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, fmt.Errorf("%s: %w", cond.Query, dom.ErrTimedOut)
		}
		if err := dom.Sleep(ctx, min(waitStep, remaining)); err != nil {
			return nil, err
		}
	}
}
