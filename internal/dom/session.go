// Package dom describes the browser session the extraction core drives.
// The session is already authenticated; nothing here knows how.
package dom

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means a query matched nothing.
	ErrNotFound = errors.New("dom: element not found")
	// ErrStaleHandle means the node was removed or replaced by a re-render
	// after the snapshot that produced it.
	ErrStaleHandle = errors.New("dom: stale element handle")
	// ErrTimedOut is returned by WaitUntil when the condition never held.
	ErrTimedOut = errors.New("dom: wait timed out")
)

// Node is an opaque handle into the live DOM. It is only meaningful to the
// Session that returned it and may go stale at any time.
type Node interface{}

// Condition is what WaitUntil waits for.
type Condition struct {
	Query Query
	//Visible requires the element to be rendered and clickable, not just attached
	Visible bool
}

// Session is an interactive, already-authenticated browser page.
type Session interface {
	Navigate(ctx context.Context, url string) error
	QueryAll(ctx context.Context, q Query) ([]Node, error)
	// QueryOne searches node's subtree. Returns ErrNotFound or ErrStaleHandle.
	QueryOne(ctx context.Context, node Node, sel Selector) (Node, error)
	// ReadText returns the rendered text of node, or ErrStaleHandle.
	ReadText(ctx context.Context, node Node) (string, error)
	// SendKeys clears the control and types text into it.
	SendKeys(ctx context.Context, node Node, text string) error
	// Submit presses Enter on node.
	Submit(ctx context.Context, node Node) error
	Click(ctx context.Context, node Node) error
	ExecuteScript(ctx context.Context, code string) (any, error)
	// WaitUntil blocks until cond matches or timeout elapses (ErrTimedOut).
	WaitUntil(ctx context.Context, cond Condition, timeout time.Duration) (Node, error)
}

// Screenshotter is implemented by sessions that can capture the page for
// debugging.
type Screenshotter interface {
	Screenshot(ctx context.Context, name string) error
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
