package writer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uilive"
	"github.com/kabils0918/CryptoTracker/model"
	"github.com/mattn/go-colorable"
	"github.com/olekukonko/tablewriter"
)

const (
	ColRank      = "Rank"
	ColName      = "Name"
	ColSymbol    = "Symbol"
	ColPrice     = "Price"
	ColPriceNum  = "Price(num)"
	ColChange24h = "%Change(24h)"
	ColChangeNum = "Change(num)"
	ColMarketCap = "Market Cap"
	ColUpdated   = "Updated"
)

// SummaryColumns is the table printed after a live run
func SummaryColumns() []string {
	return []string{ColRank, ColName, ColSymbol, ColPrice, ColChange24h}
}

// PreviewColumns shows raw text next to the parsed value
func PreviewColumns() []string {
	return []string{ColName, ColPrice, ColPriceNum, ColChange24h, ColChangeNum}
}

var faint = color.New(color.Faint).SprintFunc()

type tableWriter struct {
	*uilive.Writer
	table   *tablewriter.Table
	columns []string
}

// NewTableWriter sets up an ascii table writer on out, stdout when nil
func NewTableWriter(out io.Writer, columns []string) *tableWriter {
	tw := &tableWriter{Writer: uilive.New(), columns: columns}
	if out == nil {
		out = colorable.NewColorableStdout() // For Windows
	}
	tw.Writer.Out = out
	tw.table = tablewriter.NewWriter(tw.Writer)
	tw.table.SetAutoFormatHeaders(false)
	tw.table.SetAutoWrapText(false)
	formattedHeaders := make([]string, len(columns))
	for i, hdr := range columns {
		formattedHeaders[i] = color.YellowString(hdr)
	}
	tw.table.SetHeader(formattedHeaders)
	tw.table.SetRowLine(true)
	tw.table.SetCenterSeparator(faint("-"))
	tw.table.SetColumnSeparator(faint("|"))
	tw.table.SetRowSeparator(faint("-"))
	return tw
}

func (tw *tableWriter) highlightChange(raw string, changePct float64) string {
	if !model.HasValue(changePct) {
		return raw
	}
	if changePct == 0 {
		return faint(raw)
	} else if changePct > 0 {
		return color.GreenString(raw)
	}
	return color.RedString(raw)
}

func formatNum(v float64) string {
	if !model.HasValue(v) {
		return faint("-")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (tw *tableWriter) Render(records []model.Record) error {
	tw.table.ClearRows()
	// Fill in data
	for _, r := range records {
		var columns []string
		for _, hdr := range tw.columns {
			switch strings.ToLower(hdr) {
			case strings.ToLower(ColRank):
				columns = append(columns, strconv.Itoa(r.Rank))
			case strings.ToLower(ColName):
				columns = append(columns, r.Name)
			case strings.ToLower(ColSymbol):
				columns = append(columns, r.Symbol)
			case strings.ToLower(ColPrice):
				columns = append(columns, r.Price)
			case strings.ToLower(ColPriceNum):
				columns = append(columns, formatNum(r.PriceNum))
			case strings.ToLower(ColChange24h):
				columns = append(columns, tw.highlightChange(r.Change24h, r.ChangeNum))
			case strings.ToLower(ColChangeNum):
				columns = append(columns, formatNum(r.ChangeNum))
			case strings.ToLower(ColMarketCap):
				columns = append(columns, r.MarketCap)
			case strings.ToLower(ColUpdated):
				columns = append(columns, r.Timestamp)
			default:
				return fmt.Errorf("unknown column: %s", hdr)
			}
		}
		tw.table.Append(columns)
	}

	tw.table.Render()
	return tw.Flush()
}
