// Package tracker wires scraping, the snapshot file and the charts into the
// two runs the binaries expose.
package tracker

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kabils0918/CryptoTracker/chart"
	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/model"
	"github.com/kabils0918/CryptoTracker/scraper"
	"github.com/kabils0918/CryptoTracker/snapshot"
	"github.com/kabils0918/CryptoTracker/source"
	"github.com/kabils0918/CryptoTracker/writer"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrNoData means the page gave no usable rows
var ErrNoData = errors.New("no data scraped")

// Out receives the console tables, stdout when nil
var Out io.Writer

// Run scrapes the listing, saves the snapshot and draws both charts. The page
// source is closed on every path.
func Run(ctx context.Context, cfg *config.Config) error {
	page, err := source.Open(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "open page")
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			logrus.WithError(cerr).Warn("Failed to close page source")
		}
	}()

	records := scraper.NewCollector().Collect(ctx, page, cfg.TopN)
	if len(records) == 0 {
		return ErrNoData
	}

	if err := snapshot.Write(cfg.CSVPath(), records); err != nil {
		return err
	}
	if err := renderCharts(cfg, records); err != nil {
		return err
	}

	fmt.Fprintf(output(), "\nTOP %d CRYPTO (latest snapshot):\n", len(records))
	return writer.NewTableWriter(Out, writer.SummaryColumns()).Render(records)
}

// Replot redraws the charts from the first snapshot file found among the
// configured candidates, without scraping
func Replot(cfg *config.Config) error {
	path, err := snapshot.Resolve(cfg.CandidatePaths())
	if err != nil {
		return err
	}

	logrus.Info("Loading CSV...")
	records, err := snapshot.Read(path)
	if err != nil {
		return err
	}
	logrus.Infof("Loaded %d rows", len(records))

	preview := records
	if len(preview) > cfg.TopN {
		preview = preview[:cfg.TopN]
	}
	fmt.Fprintln(output(), "\nParsed price and 24h change sample:")
	if err := writer.NewTableWriter(Out, writer.PreviewColumns()).Render(preview); err != nil {
		return err
	}

	return renderCharts(cfg, records)
}

// A chart without data is only worth a warning
func renderCharts(cfg *config.Config, records []model.Record) error {
	charts := []struct {
		opts chart.Options
		path string
		what string
	}{
		{chart.PriceOptions(cfg.TopN), cfg.PriceChartPath(), "price"},
		{chart.ChangeOptions(cfg.TopN), cfg.ChangeChartPath(), "24h change"},
	}
	for _, c := range charts {
		c.opts.DPI = cfg.DPI
		err := chart.Render(records, c.opts, c.path)
		if errors.Is(err, chart.ErrNoData) {
			logrus.Warnf("No numeric %s data to plot", c.what)
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "render %s chart", c.what)
		}
	}
	return nil
}

func output() io.Writer {
	if Out == nil {
		return os.Stdout
	}
	return Out
}
