package browser

import "testing"

func TestSelectorSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
		want string
	}{
		{"css passes through", CSS(`[class*='load-more']`), `[class*='load-more']`},
		{"xpath passes through", XPath(`//*[@id='root']/div`), `//*[@id='root']/div`},
		{"text compiles to xpath", Text("Load More"), `//*[contains(text(), 'Load More')]`},
		{"text with double quotes", Text(`say "hi"`), `//*[contains(text(), 'say "hi"')]`},
		{"text with apostrophe", Text("Lord's Arena"), `//*[contains(text(), "Lord's Arena")]`},
		{
			"text with both quote styles",
			Text(`it's "here"`),
			`//*[contains(text(), concat('it', "'", 's "here"'))]`,
		},
	}

	for _, tt := range tests {
		if got := tt.sel.SearchQuery(); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
