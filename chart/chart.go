// Package chart draws the top-N horizontal bar charts of a snapshot.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/kabils0918/CryptoTracker/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoData is returned when no record has a value to plot. Nothing is written.
var ErrNoData = errors.New("no data to plot")

const (
	DefaultDPI = 300

	width  = 12 * vg.Inch
	height = 8 * vg.Inch
)

var (
	barColor      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	positiveColor = color.RGBA{G: 128, A: 255}
	negativeColor = color.RGBA{R: 255, A: 255}
)

type Options struct {
	// Title gets the number of bars actually drawn
	Title  func(shown int) string
	XLabel string
	Value  func(model.Record) float64
	TopN   int
	// Ascending puts the smallest values first, default is largest first
	Ascending bool
	// Signed colors bars by sign and draws a zero line
	Signed bool
	Format func(float64) string
	DPI    int
}

func PriceOptions(topN int) Options {
	return Options{
		Title: func(shown int) string {
			return fmt.Sprintf("Top %d Cryptocurrencies by Price", shown)
		},
		XLabel: "Price (USD)",
		Value:  func(r model.Record) float64 { return r.PriceNum },
		TopN:   topN,
		Format: FormatPrice,
	}
}

func ChangeOptions(topN int) Options {
	return Options{
		Title: func(int) string {
			return "24h Price Changes - Top Cryptocurrencies"
		},
		XLabel:    "24h Price Change (%)",
		Value:     func(r model.Record) float64 { return r.ChangeNum },
		TopN:      topN,
		Ascending: true,
		Signed:    true,
		Format:    FormatPercent,
	}
}

func FormatPrice(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Bar is one entry of a chart, in display order from the top
type Bar struct {
	Label string
	Value float64
	Text  string
	Color color.Color
}

// Bars drops records without a value, sorts the rest and keeps the first TopN
func Bars(records []model.Record, opts Options) []Bar {
	kept := make([]model.Record, 0, len(records))
	for _, r := range records {
		if model.HasValue(opts.Value(r)) {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if opts.Ascending {
			return opts.Value(kept[i]) < opts.Value(kept[j])
		}
		return opts.Value(kept[i]) > opts.Value(kept[j])
	})
	if opts.TopN > 0 && len(kept) > opts.TopN {
		kept = kept[:opts.TopN]
	}

	bars := make([]Bar, 0, len(kept))
	for _, r := range kept {
		v := opts.Value(r)
		bar := Bar{Label: r.Name, Value: v, Text: " " + opts.format(v), Color: barColor}
		if opts.Signed {
			bar.Color = negativeColor
			if v > 0 {
				bar.Color = positiveColor
			}
		}
		bars = append(bars, bar)
	}
	return bars
}

func (o Options) format(v float64) string {
	if o.Format == nil {
		return fmt.Sprintf("%.2f", v)
	}
	return o.Format(v)
}

// Render draws the chart of records to a PNG at path
func Render(records []model.Record, opts Options, path string) error {
	bars := Bars(records, opts)
	if len(bars) == 0 {
		return ErrNoData
	}
	p, err := newPlot(bars, opts)
	if err != nil {
		return err
	}
	if err := save(p, path, opts.DPI); err != nil {
		return err
	}
	logrus.Infof("Saved chart: %s", path)
	return nil
}

func newPlot(bars []Bar, opts Options) (*plot.Plot, error) {
	p := plot.New()
	if opts.Title != nil {
		p.Title.Text = opts.Title(len(bars))
	}
	p.X.Label.Text = opts.XLabel

	// gonum draws the first category at the bottom, so reverse to keep the
	// first bar on top
	n := len(bars)
	names := make([]string, n)
	labels := plotter.XYLabels{XYs: make(plotter.XYs, n), Labels: make([]string, n)}
	for i, bar := range bars {
		y := float64(n - 1 - i)
		names[n-1-i] = bar.Label

		bc, err := plotter.NewBarChart(plotter.Values{bar.Value}, vg.Points(24))
		if err != nil {
			return nil, errors.Wrapf(err, "bar %q", bar.Label)
		}
		bc.Horizontal = true
		bc.XMin = y
		bc.Color = bar.Color
		bc.LineStyle.Width = 0
		p.Add(bc)

		labels.XYs[i] = plotter.XY{X: bar.Value, Y: y}
		labels.Labels[i] = bar.Text
	}
	p.NominalY(names...)

	lbl, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, errors.Wrap(err, "value labels")
	}
	p.Add(lbl)

	if opts.Signed {
		zero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: -0.5}, {X: 0, Y: float64(n) - 0.5}})
		if err != nil {
			return nil, errors.Wrap(err, "zero line")
		}
		zero.LineStyle.Width = vg.Points(0.6)
		zero.LineStyle.Color = color.Black
		p.Add(zero)
	}
	return p, nil
}

func save(p *plot.Plot, path string, dpi int) error {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create chart directory")
	}
	c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create chart")
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return f.Close()
}
