package scraper

import (
	"context"
	"time"

	"github.com/kabils0918/CryptoTracker/model"
	"github.com/sirupsen/logrus"
)

// Stats counts how the rows of the last collection were resolved
type Stats struct {
	Structural int
	Fallback   int
	Skipped    int
}

type Collector struct {
	// Now stamps each record, time.Now when nil
	Now   func() time.Time
	Stats Stats
}

func NewCollector() *Collector {
	return &Collector{Now: time.Now}
}

// Collect extracts up to n records from the first n rows of src. Rows that fail
// both extractors are logged and skipped, so the result may be shorter than n.
// An empty result means nothing could be scraped.
func (c *Collector) Collect(ctx context.Context, src RowSource, n int) []model.Record {
	c.Stats = Stats{}
	rows, err := src.Rows(ctx)
	if err != nil {
		logrus.WithError(err).Error("No table rows to parse")
		return nil
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	logrus.Debugf("Parsing %d table rows", len(rows))

	records := make([]model.Record, 0, len(rows))
	for i, row := range rows {
		rank := i + 1
		if rec, ok := c.extract(row, rank); ok {
			records = append(records, rec)
		}
	}
	logrus.WithFields(logrus.Fields{
		"structural": c.Stats.Structural,
		"fallback":   c.Stats.Fallback,
		"skipped":    c.Stats.Skipped,
	}).Infof("Scraped %d of %d rows", len(records), len(rows))
	return records
}

func (c *Collector) extract(row Row, rank int) (model.Record, bool) {
	rec, err := ExtractStructural(row, rank, c.now())
	if err == nil {
		c.Stats.Structural++
		return rec, true
	}
	logrus.WithError(err).Debugf("Row %d structural parse failed, trying fallback", rank)

	rec, err = ExtractFallback(row, rank, c.now())
	if err != nil {
		c.Stats.Skipped++
		logrus.WithError(err).WithField("row", rank).Warnf("Row %d parse error, skipping", rank)
		return model.Record{}, false
	}
	c.Stats.Fallback++
	return rec, true
}

func (c *Collector) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
