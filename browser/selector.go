package browser

import "strings"

// Kind discriminates how a Selector expression is interpreted.
type Kind string

const (
	KindCSS   Kind = "css"
	KindXPath Kind = "xpath"
	// KindText matches elements whose direct text contains the expression.
	KindText Kind = "text"
)

// Selector is one candidate locator for a logical page target.
type Selector struct {
	Kind Kind
	Expr string
}

// CSS builds a querySelector candidate.
func CSS(expr string) Selector { return Selector{Kind: KindCSS, Expr: expr} }

// XPath builds an XPath candidate.
func XPath(expr string) Selector { return Selector{Kind: KindXPath, Expr: expr} }

// Text builds a text-substring candidate.
func Text(expr string) Selector { return Selector{Kind: KindText, Expr: expr} }

// SearchQuery returns the expression handed to the DOM search backend. CSS
// and XPath candidates pass through; text candidates compile to an XPath
// matching elements whose direct text contains the value.
func (s Selector) SearchQuery() string {
	if s.Kind == KindText {
		return "//*[contains(text(), " + xpathLiteral(s.Expr) + ")]"
	}
	return s.Expr
}

// xpathLiteral quotes s as an XPath 1.0 string literal. XPath has no escape
// syntax, so a value containing both quote styles is assembled with concat().
func xpathLiteral(s string) string {
	if !strings.Contains(s, `'`) {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}

	var b strings.Builder
	b.WriteString("concat(")
	for i, part := range strings.Split(s, `'`) {
		if i > 0 {
			b.WriteString(`, "'", `)
		}
		b.WriteString(`'` + part + `'`)
	}
	b.WriteString(")")
	return b.String()
}
