package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-linkedin-fetcher/internal/dom"

	"github.com/playwright-community/playwright-go"
)

const navigationTimeout = 30 * time.Second

// PageSession drives a playwright page through dom.Session. Nodes are
// ElementHandles; a handle whose element left the document reports
// dom.ErrStaleHandle.
type PageSession struct {
	page          playwright.Page
	screenshotDir string
}

var (
	_ dom.Session       = (*PageSession)(nil)
	_ dom.Screenshotter = (*PageSession)(nil)
)

func NewPageSession(page playwright.Page, screenshotDir string) *PageSession {
	if screenshotDir == "" {
		screenshotDir = DefaultScreenshotDir
	}
	return &PageSession{page: page, screenshotDir: screenshotDir}
}

// Page exposes the underlying page, e.g. to close it.
func (s *PageSession) Page() playwright.Page {
	return s.page
}

func hasText(tag, substr string) string {
	return fmt.Sprintf("%s:has-text(%q)", tag, substr)
}

func element(n dom.Node) (playwright.ElementHandle, error) {
	el, ok := n.(playwright.ElementHandle)
	if !ok || el == nil {
		return nil, fmt.Errorf("browser: foreign node %T: %w", n, dom.ErrStaleHandle)
	}
	return el, nil
}

// live returns el if it is still attached to the document. Detached handles
// still answer text queries in playwright, so this is checked explicitly.
func live(n dom.Node) (playwright.ElementHandle, error) {
	el, err := element(n)
	if err != nil {
		return nil, err
	}
	connected, err := el.Evaluate("el => el.isConnected")
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, dom.ErrStaleHandle)
	}
	if ok, _ := connected.(bool); !ok {
		return nil, dom.ErrStaleHandle
	}
	return el, nil
}

// handleErr maps an action error on el to ErrStaleHandle when el is gone.
func handleErr(el playwright.ElementHandle, err error) error {
	if err == nil {
		return nil
	}
	if _, liveErr := live(el); liveErr != nil {
		return liveErr
	}
	return err
}

// timeout clips d to the context deadline.
func timeout(ctx context.Context, d time.Duration) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			return max(left, time.Millisecond)
		}
	}
	return d
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

func (s *PageSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   ms(timeout(ctx, navigationTimeout)),
	})
	return err
}

func (s *PageSession) QueryAll(ctx context.Context, q dom.Query) ([]dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	els, err := s.page.QuerySelectorAll(q.Compile(hasText))
	if err != nil {
		return nil, err
	}
	nodes := make([]dom.Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, el)
	}
	return nodes, nil
}

func (s *PageSession) QueryOne(ctx context.Context, node dom.Node, sel dom.Selector) (dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	el, err := live(node)
	if err != nil {
		return nil, err
	}
	found, err := el.QuerySelector(sel.Compile(hasText))
	if err != nil {
		return nil, handleErr(el, err)
	}
	if found == nil {
		return nil, dom.ErrNotFound
	}
	return found, nil
}

func (s *PageSession) ReadText(ctx context.Context, node dom.Node) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	el, err := live(node)
	if err != nil {
		return "", err
	}
	text, err := el.InnerText()
	return text, handleErr(el, err)
}

func (s *PageSession) SendKeys(ctx context.Context, node dom.Node, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := live(node)
	if err != nil {
		return err
	}
	return handleErr(el, el.Fill(text))
}

func (s *PageSession) Submit(ctx context.Context, node dom.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := live(node)
	if err != nil {
		return err
	}
	return handleErr(el, el.Press("Enter"))
}

func (s *PageSession) Click(ctx context.Context, node dom.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	el, err := live(node)
	if err != nil {
		return err
	}
	return handleErr(el, el.Click())
}

func (s *PageSession) ExecuteScript(ctx context.Context, code string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.page.Evaluate(code)
}

func (s *PageSession) WaitUntil(ctx context.Context, cond dom.Condition, d time.Duration) (dom.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := playwright.WaitForSelectorStateAttached
	if cond.Visible {
		state = playwright.WaitForSelectorStateVisible
	}
	el, err := s.page.WaitForSelector(cond.Query.Compile(hasText), playwright.PageWaitForSelectorOptions{
		State:   state,
		Timeout: ms(timeout(ctx, d)),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%s: %w", cond.Query, dom.ErrTimedOut)
		}
		return nil, err
	}
	if el == nil {
		return nil, fmt.Errorf("%s: %w", cond.Query, dom.ErrNotFound)
	}
	return el, nil
}
