package khelomore

import "venue-scraper/browser"

// The listing site ships no stable DOM contract, so every page target is an
// ordered candidate list: structural paths first, generic class and text
// patterns as fallback. Resolution takes the first visible candidate that
// yields non-empty text.

// listingItemCandidates locate the venue cards on a city listing page.
var listingItemCandidates = []browser.Selector{
	browser.XPath(`//*[@id="root"]/div/div/div/div/div[2]/div[2]/div[2]/div`),
	browser.CSS(`[class*="venue-card"]`),
	browser.CSS(`[class*="venueCard"]`),
}

// loadMoreCandidates locate the pagination control at the listing bottom.
var loadMoreCandidates = []browser.Selector{
	browser.XPath(`//*[@id="root"]/div/div/div/div/div[2]/div[2]/div[2]/div[21]/div`),
	browser.Text("Load More"),
	browser.Text("load more"),
	browser.CSS(`[class*="load-more"]`),
	browser.CSS(`[class*="loadmore"]`),
	browser.CSS(`button[class*="load"]`),
	browser.CSS(`div[class*="load"]`),
	browser.XPath(`//button[contains(@class, "load")]`),
	browser.XPath(`//div[contains(@class, "load")]`),
}

// fieldTarget binds one record field to its candidates on the detail view.
type fieldTarget struct {
	field      string
	candidates []browser.Selector
}

// detailFields covers every directly readable field of the venue schema, in
// extraction order.
var detailFields = []fieldTarget{
	{"name", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[1]/div[1]/h1`),
		browser.CSS(`h1`),
	}},
	{"price", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[1]/div[1]/div[3]/div/div[1]`),
		browser.CSS(`[class*="price"]`),
	}},
	{"timing", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[1]/div[1]/div[3]/div/div[2]`),
		browser.CSS(`[class*="timing"]`),
	}},
	{"address", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[1]/div[3]/div[1]/div/div`),
		browser.CSS(`[class*="address"]`),
	}},
	{"rating", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[1]/div[3]/div[3]/div/div/div/span[1]`),
		browser.CSS(`[class*="rating"] span`),
	}},
	{"raters", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[1]/div[3]/div[3]/div/div/div/span[2]`),
	}},
	{"about_venue", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[2]/div/div`),
		browser.CSS(`[class*="about"]`),
	}},
	{"available_sports", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[3]`),
		browser.CSS(`[class*="sports"]`),
	}},
	{"highlights", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[4]/div`),
		browser.CSS(`[class*="highlight"]`),
	}},
	{"amenities", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[5]`),
		browser.CSS(`[class*="amenit"]`),
	}},
	{"offer", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[6]`),
		browser.CSS(`[class*="offer"]`),
	}},
}

// modalField describes a field gated behind a dialog on the detail view.
// Both dialogs share one content region and one close control.
type modalField struct {
	field  string
	opener []browser.Selector
}

var modalFields = []modalField{
	{"facilities", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[7]`),
		browser.Text("Facilities"),
	}},
	{"venue_rules", []browser.Selector{
		browser.XPath(`//*[@id="root"]/div/div/div/div[4]/div[8]`),
		browser.Text("Venue Rules"),
	}},
}

var modalContentCandidates = []browser.Selector{
	browser.XPath(`/html/body/div[4]/div[3]/div/div/div/div[2]`),
	browser.CSS(`[role="dialog"] [class*="content"]`),
	browser.CSS(`[role="dialog"]`),
}

var modalCloseCandidates = []browser.Selector{
	browser.XPath(`/html/body/div[4]/div[3]/div/div/div/div[1]/div/div[3]/svg`),
	browser.CSS(`[role="dialog"] svg`),
	browser.CSS(`[aria-label="close"]`),
}
