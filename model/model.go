package model

import (
	"math"
	"time"
)

// NoValue marks a numeric field whose source text could not be parsed
const NoValue = math.MaxFloat64

// TimeLayout is the capture time format, second precision
const TimeLayout = "2006-01-02 15:04:05"

func HasValue(v float64) bool {
	return v != NoValue
}

// Record is one row of a snapshot. PriceNum and ChangeNum are always derived from
// Price and Change24h, use NewRecord to build one.
type Record struct {
	Rank      int
	Name      string
	Symbol    string
	Price     string
	PriceNum  float64
	Change24h string
	ChangeNum float64
	MarketCap string
	Timestamp string
}

func NewRecord(rank int, name, symbol, price, change24h, marketCap string, at time.Time) Record {
	return Record{
		Rank:      rank,
		Name:      name,
		Symbol:    symbol,
		Price:     price,
		PriceNum:  ParsePrice(price),
		Change24h: change24h,
		ChangeNum: ParsePercent(change24h),
		MarketCap: marketCap,
		Timestamp: at.Format(TimeLayout),
	}
}

// Refresh recomputes the numeric fields from the raw strings
func (r *Record) Refresh() {
	r.PriceNum = ParsePrice(r.Price)
	r.ChangeNum = ParsePercent(r.Change24h)
}
