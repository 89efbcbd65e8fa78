package dom

import (
	"fmt"
	"strconv"
	"strings"
)

// Strategy tags how a Selector matches.
type Strategy int

const (
	// ByCSS matches a plain CSS selector held in Value.
	ByCSS Strategy = iota
	// ByAttrContains matches Tag elements whose Attr contains Value.
	ByAttrContains
	// ByTextContains matches Tag elements whose text contains Value.
	ByTextContains
)

func (s Strategy) String() string {
	switch s {
	case ByCSS:
		return "css"
	case ByAttrContains:
		return "attr"
	case ByTextContains:
		return "text"
	}
	return "unknown"
}

// Selector is one typed matching strategy.
type Selector struct {
	By    Strategy
	Tag   string
	Attr  string
	Value string
}

func CSS(sel string) Selector {
	return Selector{By: ByCSS, Value: sel}
}

func AttrContains(tag, attr, substr string) Selector {
	return Selector{By: ByAttrContains, Tag: tag, Attr: attr, Value: substr}
}

func TextContains(tag, substr string) Selector {
	return Selector{By: ByTextContains, Tag: tag, Value: substr}
}

func (s Selector) String() string {
	switch s.By {
	case ByCSS:
		return s.Value
	case ByAttrContains:
		return fmt.Sprintf("%s[%s*=%s]", s.Tag, s.Attr, strconv.Quote(s.Value))
	case ByTextContains:
		return fmt.Sprintf("%s<text~%s>", s.Tag, strconv.Quote(s.Value))
	}
	return "?"
}

// TextPseudo renders a text-contains match for a concrete engine, e.g.
// `button:has-text("x")` for playwright or `button:contains("x")` for cascadia.
type TextPseudo func(tag, substr string) string

// Compile renders s as a selector string. Only ByTextContains needs the
// engine-specific pseudo class.
func (s Selector) Compile(text TextPseudo) string {
	switch s.By {
	case ByAttrContains:
		return fmt.Sprintf("%s[%s*=%s]", s.Tag, s.Attr, strconv.Quote(s.Value))
	case ByTextContains:
		return text(s.Tag, s.Value)
	default:
		return s.Value
	}
}

// Query is a set of alternative selectors; a node matching any of them
// matches the query. Results come back in document order.
type Query []Selector

// Any builds a Query from alternatives.
func Any(sels ...Selector) Query {
	return Query(sels)
}

// Compile joins the alternatives into one selector list.
func (q Query) Compile(text TextPseudo) string {
	parts := make([]string, 0, len(q))
	for _, s := range q {
		parts = append(parts, s.Compile(text))
	}
	return strings.Join(parts, ", ")
}

func (q Query) String() string {
	parts := make([]string, 0, len(q))
	for _, s := range q {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, " | ")
}
