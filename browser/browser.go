// Package browser narrows a rendered browser page down to the operations
// the scraping pipeline needs. The chromedp implementation drives a real
// Chrome tab; the interfaces exist so extraction logic can be exercised
// against scripted pages in tests.
package browser

import (
	"context"
	"time"
)

// Page is a single rendered browser page (one tab).
type Page interface {
	Navigate(ctx context.Context, url string) error
	Location(ctx context.Context) (string, error)
	// WaitReady blocks until the document reports itself loaded or the
	// timeout elapses. A timeout comes back as an error the caller may
	// treat as non-fatal.
	WaitReady(ctx context.Context, timeout time.Duration) error
	Query(ctx context.Context, sel Selector) ([]Element, error)
	ScrollToBottom(ctx context.Context) error
	AtBottom(ctx context.Context) (bool, error)
	Back(ctx context.Context) error
	Reload(ctx context.Context) error
	Close() error
}

// Element is a handle to a matched DOM node. Handles go stale when the page
// re-renders; a stale handle returns an error from every operation rather
// than panicking.
type Element interface {
	Visible(ctx context.Context) (bool, error)
	Text(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Click(ctx context.Context) error
	ClickJS(ctx context.Context) error
	ScrollIntoView(ctx context.Context) error
}
