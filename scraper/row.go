package scraper

import (
	"context"
	"strings"
)

// Element is one node of a rendered page
type Element interface {
	// Text returns the trimmed visible text, "" if there is none
	Text() string
	// Find returns descendants matching a CSS selector in document order
	Find(selector string) []Element
}

// Row is one table row. Row handles are owned by the page they come from and are
// only valid while it is open.
type Row interface {
	Element
	Cells() []Element
	HTML() string
}

// RowSource hands out the rows of a loaded page, waiting for them to appear if needed
type RowSource interface {
	Rows(ctx context.Context) ([]Row, error)
}

const currencyMarker = "$"

func isCurrency(text string) bool {
	return strings.HasPrefix(text, currencyMarker)
}

func isPercent(text string) bool {
	return strings.Contains(text, "%")
}

// firstText tries the selectors in order and returns the text of the first match
// of the first selector that has non-empty text
func firstText(el Element, selectors ...string) string {
	for _, sel := range selectors {
		found := el.Find(sel)
		if len(found) == 0 {
			continue
		}
		if text := found[0].Text(); text != "" {
			return text
		}
	}
	return ""
}

func firstSpan(row Element, match func(string) bool) string {
	for _, span := range row.Find("span") {
		if text := span.Text(); text != "" && match(text) {
			return text
		}
	}
	return ""
}

func lastSpan(row Element, match func(string) bool) string {
	spans := row.Find("span")
	for i := len(spans) - 1; i >= 0; i-- {
		if text := spans[i].Text(); text != "" && match(text) {
			return text
		}
	}
	return ""
}
