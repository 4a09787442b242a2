package scraper

import (
	"fmt"
	"time"

	"github.com/kabils0918/CryptoTracker/model"
)

// Cell layout of a listing row: ..., name, price, 24h change, ..., market cap
const (
	minCells   = 4
	nameCell   = 2
	priceCell  = 3
	changeCell = 4
)

// Anchors pointing at an asset detail page carry the asset name
const assetLinkSelector = "a[href*='/currencies/']"

// ExtractStructural reads a row by cell index. It fails with a *StructureError when
// the row is too short or the name or price cannot be found.
func ExtractStructural(row Row, rank int, at time.Time) (model.Record, error) {
	cells := row.Cells()
	if len(cells) < minCells {
		return model.Record{}, &StructureError{
			Row:    rank,
			Reason: fmt.Sprintf("expected at least %d cells, got %d", minCells, len(cells)),
		}
	}

	name := firstText(cells[nameCell], "a", "p")
	var symbol string
	if spans := cells[nameCell].Find("span"); len(spans) > 0 {
		// The ticker is usually the last small span next to the name
		symbol = spans[len(spans)-1].Text()
	}

	price := firstText(cells[priceCell], "a", "span")
	if price == "" {
		price = firstSpan(row, isCurrency)
	}

	var change string
	if len(cells) > changeCell {
		change = firstText(cells[changeCell], "span")
	}
	if change == "" {
		change = firstSpan(row, isPercent)
	}

	marketCap := firstText(cells[len(cells)-1], "span")
	if marketCap == "" {
		marketCap = lastSpan(row, isCurrency)
	}

	if name == "" || price == "" {
		return model.Record{}, &StructureError{Row: rank, Reason: "missing name or price"}
	}
	return model.NewRecord(rank, name, symbol, price, change, marketCap, at), nil
}

// ExtractFallback ignores the cell layout and searches the whole row for a detail
// link, the first dollar amount and the first percentage.
func ExtractFallback(row Row, rank int, at time.Time) (model.Record, error) {
	name := firstText(row, assetLinkSelector, "a")
	price := firstSpan(row, isCurrency)
	change := firstSpan(row, isPercent)
	marketCap := lastSpan(row, isCurrency)

	if name == "" || price == "" {
		return model.Record{}, newExtractionError(rank, row.HTML())
	}
	return model.NewRecord(rank, name, "", price, change, marketCap, at), nil
}
