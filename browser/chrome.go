package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"venue-scraper/config"
	"venue-scraper/utils"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Chrome owns the browser process and mints pages as dedicated tabs.
type Chrome struct {
	cfg     *config.Config
	logger  *utils.Logger
	browser context.Context
	cancels []context.CancelFunc
}

// New prepares a headless Chrome allocator. The browser process itself
// starts lazily with the first page.
func New(cfg *config.Config, logger *utils.Logger) *Chrome {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	if chromeBin != "" {
		logger.Info("[browser] Using browser binary: %s", chromeBin)
	} else {
		logger.Warn("[browser] No Chrome binary found, relying on chromedp defaults")
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))

	return &Chrome{
		cfg:     cfg,
		logger:  logger,
		browser: browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
	}
}

// NewPage opens a fresh tab.
func (c *Chrome) NewPage() (Page, error) {
	tabCtx, cancel := chromedp.NewContext(c.browser)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, fmt.Errorf("browser: open tab: %w", err)
	}
	return &chromePage{cfg: c.cfg, tab: tabCtx, cancel: cancel}, nil
}

// Close terminates the browser process and every open tab.
func (c *Chrome) Close() {
	for _, cancel := range c.cancels {
		cancel()
	}
}

// chromePage drives one Chrome tab through the Page interface.
type chromePage struct {
	cfg    *config.Config
	tab    context.Context
	cancel context.CancelFunc
}

// bounded derives an operation context from the tab with the given timeout.
// Caller cancellation propagates into the operation without tying chromedp
// to the caller's context tree.
func (p *chromePage) bounded(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	opCtx, cancel := context.WithTimeout(p.tab, d)
	stop := context.AfterFunc(ctx, cancel)
	return opCtx, func() { stop(); cancel() }, nil
}

func (p *chromePage) Navigate(ctx context.Context, url string) error {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.PageLoadTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := chromedp.Run(opCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	return nil
}

func (p *chromePage) Location(ctx context.Context) (string, error) {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.ElementTimeout)
	if err != nil {
		return "", err
	}
	defer cancel()

	var loc string
	if err := chromedp.Run(opCtx, chromedp.Location(&loc)); err != nil {
		return "", fmt.Errorf("browser: read location: %w", err)
	}
	return loc, nil
}

func (p *chromePage) WaitReady(ctx context.Context, timeout time.Duration) error {
	opCtx, cancel, err := p.bounded(ctx, timeout)
	if err != nil {
		return err
	}
	defer cancel()

	var ready bool
	err = chromedp.Run(opCtx, chromedp.Poll(
		`document.readyState === "interactive" || document.readyState === "complete"`,
		&ready,
		chromedp.WithPollingInterval(200*time.Millisecond),
	))
	if err != nil {
		return fmt.Errorf("browser: wait ready: %w", err)
	}
	return nil
}

func (p *chromePage) Query(ctx context.Context, sel Selector) ([]Element, error) {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.ElementTimeout)
	if err != nil {
		return nil, err
	}
	defer cancel()

	// DOM search handles XPath expressions (including compiled text
	// candidates); plain CSS goes through querySelectorAll.
	opt := chromedp.BySearch
	if sel.Kind == KindCSS {
		opt = chromedp.ByQueryAll
	}

	var nodes []*cdp.Node
	if err := chromedp.Run(opCtx,
		chromedp.Nodes(sel.SearchQuery(), &nodes, opt, chromedp.AtLeast(0)),
	); err != nil {
		return nil, fmt.Errorf("browser: query %q: %w", sel.Expr, err)
	}

	els := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		els = append(els, &chromeElement{page: p, node: n})
	}
	return els, nil
}

func (p *chromePage) ScrollToBottom(ctx context.Context) error {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.ElementTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := chromedp.Run(opCtx,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
	); err != nil {
		return fmt.Errorf("browser: scroll to bottom: %w", err)
	}
	return nil
}

func (p *chromePage) AtBottom(ctx context.Context) (bool, error) {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.ElementTimeout)
	if err != nil {
		return false, err
	}
	defer cancel()

	var atBottom bool
	if err := chromedp.Run(opCtx, chromedp.Evaluate(
		`(window.innerHeight + window.scrollY) >= (document.body.scrollHeight - 2)`,
		&atBottom,
	)); err != nil {
		return false, fmt.Errorf("browser: check scroll position: %w", err)
	}
	return atBottom, nil
}

func (p *chromePage) Back(ctx context.Context) error {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.PageLoadTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := chromedp.Run(opCtx, chromedp.NavigateBack()); err != nil {
		return fmt.Errorf("browser: navigate back: %w", err)
	}
	return nil
}

func (p *chromePage) Reload(ctx context.Context) error {
	opCtx, cancel, err := p.bounded(ctx, p.cfg.PageLoadTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := chromedp.Run(opCtx, chromedp.Reload()); err != nil {
		return fmt.Errorf("browser: reload: %w", err)
	}
	return nil
}

func (p *chromePage) Close() error {
	p.cancel()
	return nil
}

// chromeElement wraps one DOM node handle. Operations run against the
// node's live state; a detached node surfaces as an error.
type chromeElement struct {
	page *chromePage
	node *cdp.Node
}

// callOn runs fn (a JS function literal) with the node bound to `this` and
// decodes the by-value result into res when res is non-nil.
func (e *chromeElement) callOn(ctx context.Context, fn string, res interface{}) error {
	opCtx, cancel, err := e.page.bounded(ctx, e.page.cfg.ElementTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	return chromedp.Run(opCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		obj, err := dom.ResolveNode().WithNodeID(e.node.NodeID).Do(ctx)
		if err != nil {
			return fmt.Errorf("browser: resolve node: %w", err)
		}
		defer func() {
			_ = runtime.ReleaseObject(obj.ObjectID).Do(ctx)
		}()

		val, exc, err := runtime.CallFunctionOn(fn).
			WithObjectID(obj.ObjectID).
			WithReturnByValue(true).
			Do(ctx)
		if err != nil {
			return fmt.Errorf("browser: call on node: %w", err)
		}
		if exc != nil {
			return fmt.Errorf("browser: node script: %w", exc)
		}
		if res != nil && val != nil && val.Value != nil {
			if err := json.Unmarshal(val.Value, res); err != nil {
				return fmt.Errorf("browser: decode node result: %w", err)
			}
		}
		return nil
	}))
}

func (e *chromeElement) Visible(ctx context.Context) (bool, error) {
	var visible bool
	err := e.callOn(ctx, `function() {
		var style = window.getComputedStyle(this);
		if (style.display === 'none' || style.visibility === 'hidden' || style.opacity === '0') {
			return false;
		}
		var rect = this.getBoundingClientRect();
		return rect.width > 0 && rect.height > 0;
	}`, &visible)
	if err != nil {
		return false, err
	}
	return visible, nil
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	var text string
	if err := e.callOn(ctx, `function() { return this.innerText || this.textContent || ''; }`, &text); err != nil {
		return "", err
	}
	return text, nil
}

func (e *chromeElement) HTML(ctx context.Context) (string, error) {
	var markup string
	if err := e.callOn(ctx, `function() { return this.innerHTML; }`, &markup); err != nil {
		return "", err
	}
	return markup, nil
}

func (e *chromeElement) Click(ctx context.Context) error {
	opCtx, cancel, err := e.page.bounded(ctx, e.page.cfg.ElementTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := chromedp.Run(opCtx, chromedp.MouseClickNode(e.node)); err != nil {
		return fmt.Errorf("browser: click: %w", err)
	}
	return nil
}

func (e *chromeElement) ClickJS(ctx context.Context) error {
	return e.callOn(ctx, `function() { this.click(); }`, nil)
}

func (e *chromeElement) ScrollIntoView(ctx context.Context) error {
	opCtx, cancel, err := e.page.bounded(ctx, e.page.cfg.ElementTimeout)
	if err != nil {
		return err
	}
	defer cancel()

	if err := chromedp.Run(opCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		return dom.ScrollIntoViewIfNeeded().WithNodeID(e.node.NodeID).Do(ctx)
	})); err != nil {
		return fmt.Errorf("browser: scroll into view: %w", err)
	}
	return nil
}

// findChromeBinary locates the Chrome/Chromium binary.
func findChromeBinary(override string) string {
	if override != "" {
		return override
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
