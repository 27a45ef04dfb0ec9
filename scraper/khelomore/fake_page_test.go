package khelomore

import (
	"context"
	"errors"
	"time"

	"venue-scraper/browser"
	"venue-scraper/config"
	"venue-scraper/utils"
)

var errStale = errors.New("node detached")

// fakeElement is a scripted DOM node.
type fakeElement struct {
	text    string
	html    string
	visible bool
	stale   bool

	clickErr   error
	jsClickErr error
	onClick    func()

	clicks   int
	jsClicks int
}

func (e *fakeElement) Visible(context.Context) (bool, error) {
	if e.stale {
		return false, errStale
	}
	return e.visible, nil
}

func (e *fakeElement) Text(context.Context) (string, error) {
	if e.stale {
		return "", errStale
	}
	return e.text, nil
}

func (e *fakeElement) HTML(context.Context) (string, error) {
	if e.stale {
		return "", errStale
	}
	return e.html, nil
}

func (e *fakeElement) Click(context.Context) error {
	e.clicks++
	if e.stale {
		return errStale
	}
	if e.clickErr != nil {
		return e.clickErr
	}
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) ClickJS(context.Context) error {
	e.jsClicks++
	if e.stale {
		return errStale
	}
	if e.jsClickErr != nil {
		return e.jsClickErr
	}
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) ScrollIntoView(context.Context) error {
	if e.stale {
		return errStale
	}
	return nil
}

// fakePage scripts a page as a map from selector expression to elements.
// Swapping the map between interactions emulates a re-rendering app.
type fakePage struct {
	elements map[string][]browser.Element
	queries  map[string]int
	queryErr map[string]error

	location string
	history  []string

	navErrs  []error
	navCalls int
	backs    int
	reloads  int
	scrolls  int
	atBottom bool
	readyErr error
	closed   bool

	onNavigate func(url string)
	onBack     func()
}

func newFakePage() *fakePage {
	return &fakePage{
		elements: map[string][]browser.Element{},
		queries:  map[string]int{},
		queryErr: map[string]error{},
	}
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	p.navCalls++
	if len(p.navErrs) > 0 {
		err := p.navErrs[0]
		p.navErrs = p.navErrs[1:]
		if err != nil {
			return err
		}
	}
	p.history = append(p.history, p.location)
	p.location = url
	if p.onNavigate != nil {
		p.onNavigate(url)
	}
	return nil
}

func (p *fakePage) Location(context.Context) (string, error) {
	return p.location, nil
}

func (p *fakePage) WaitReady(context.Context, time.Duration) error {
	return p.readyErr
}

func (p *fakePage) Query(_ context.Context, sel browser.Selector) ([]browser.Element, error) {
	p.queries[sel.Expr]++
	if err := p.queryErr[sel.Expr]; err != nil {
		return nil, err
	}
	return p.elements[sel.Expr], nil
}

func (p *fakePage) ScrollToBottom(context.Context) error {
	p.scrolls++
	return nil
}

func (p *fakePage) AtBottom(context.Context) (bool, error) {
	return p.atBottom, nil
}

func (p *fakePage) Back(context.Context) error {
	p.backs++
	if n := len(p.history); n > 0 {
		p.location = p.history[n-1]
		p.history = p.history[:n-1]
	}
	if p.onBack != nil {
		p.onBack()
	}
	return nil
}

func (p *fakePage) Reload(context.Context) error {
	p.reloads++
	return nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

type fakeSource struct {
	page browser.Page
	err  error
}

func (s *fakeSource) NewPage() (browser.Page, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.page, nil
}

// Primary selector expressions, for wiring fake pages to the candidate lists.
var (
	listingItemsExpr = listingItemCandidates[0].Expr
	loadMoreExpr     = loadMoreCandidates[0].Expr
	modalContentExpr = modalContentCandidates[0].Expr
	modalCloseExpr   = modalCloseCandidates[0].Expr
)

func detailExpr(field string) string {
	for _, f := range detailFields {
		if f.field == field {
			return f.candidates[0].Expr
		}
	}
	return ""
}

func modalOpenerExpr(field string) string {
	for _, m := range modalFields {
		if m.field == field {
			return m.opener[0].Expr
		}
	}
	return ""
}

// makeItems builds n visible listing cards.
func makeItems(n int) []browser.Element {
	items := make([]browser.Element, n)
	for i := range items {
		items[i] = &fakeElement{visible: true, text: "venue card"}
	}
	return items
}

// testConfig shrinks every delay so loops run in microseconds.
func testConfig() *config.Config {
	return &config.Config{
		Cities:                []string{"pune"},
		ListingURLFormat:      "https://venues.test/%s/all",
		PageLoadTimeout:       50 * time.Millisecond,
		ElementTimeout:        20 * time.Millisecond,
		SettleDelay:           time.Millisecond,
		RetryBaseDelay:        time.Millisecond,
		MaxPaginationAttempts: 50,
		StableRounds:          3,
		MaxNoProgress:         5,
		MaxItemRetries:        3,
		NavRetries:            3,
		InterCityDelay:        time.Millisecond,
	}
}

func newTestScraper(cfg *config.Config, page browser.Page) *Scraper {
	if cfg == nil {
		cfg = testConfig()
	}
	return New(cfg, utils.NewLogger(false), &fakeSource{page: page})
}
