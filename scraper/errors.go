package scraper

import (
	"fmt"
)

// Limit of the row markup kept in an ExtractionError
const htmlDumpLimit = 800

// StructureError means a row does not have the layout the structural extractor expects
type StructureError struct {
	Row    int
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("row %d: unexpected structure: %s", e.Row, e.Reason)
}

// ExtractionError means neither extractor could recover a row
type ExtractionError struct {
	Row  int
	HTML string
}

func newExtractionError(row int, html string) *ExtractionError {
	return &ExtractionError{Row: row, HTML: truncate(html, htmlDumpLimit)}
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("row %d: fallback parse failed, row innerHTML (trimmed):\n%s", e.Row, e.HTML)
}

func truncate(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
