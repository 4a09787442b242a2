package scraper_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/model"
	"github.com/kabils0918/CryptoTracker/scraper"
	"github.com/kabils0918/CryptoTracker/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var capturedAt = time.Date(2024, 3, 1, 12, 30, 45, 0, time.Local)

func listingRow(name, symbol, price, change, marketCap string) string {
	return fmt.Sprintf(`<tr>
  <td><span class="icon-star"></span></td>
  <td><p>#</p></td>
  <td><a href="/currencies/%s/"><p>%s</p></a><span>%s</span></td>
  <td><span>%s</span></td>
  <td><span>%s</span></td>
  <td><span>%s</span></td>
</tr>`, strings.ToLower(name), name, symbol, price, change, marketCap)
}

func document(t *testing.T, rows ...string) *source.Document {
	t.Helper()
	html := "<html><body><table><tbody>" + strings.Join(rows, "\n") + "</tbody></table></body></html>"
	doc, err := source.NewDocument(strings.NewReader(html), config.DefaultRowSelector)
	require.NoError(t, err)
	return doc
}

func singleRow(t *testing.T, row string) scraper.Row {
	t.Helper()
	rows, err := document(t, row).Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestExtractStructural(t *testing.T) {

	t.Run("well-formed row", func(t *testing.T) {
		row := singleRow(t, listingRow("Bitcoin", "BTC", "$89,619.55", "-1.23%", "$1,771,512,398,143"))
		rec, err := scraper.ExtractStructural(row, 1, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, 1, rec.Rank)
		assert.Equal(t, "Bitcoin", rec.Name)
		assert.Equal(t, "BTC", rec.Symbol)
		assert.Equal(t, "$89,619.55", rec.Price)
		assert.Equal(t, 89619.55, rec.PriceNum)
		assert.Equal(t, "-1.23%", rec.Change24h)
		assert.Equal(t, -1.23, rec.ChangeNum)
		assert.Equal(t, "$1,771,512,398,143", rec.MarketCap)
		assert.Equal(t, "2024-03-01 12:30:45", rec.Timestamp)
	})

	t.Run("name in paragraph without link", func(t *testing.T) {
		row := singleRow(t, `<tr><td></td><td></td><td><p>Tether</p></td><td><a href="#">$1.00</a></td><td><span>0.01%</span></td></tr>`)
		rec, err := scraper.ExtractStructural(row, 3, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, "Tether", rec.Name)
		assert.Equal(t, "", rec.Symbol)
		assert.Equal(t, "$1.00", rec.Price)
		assert.Equal(t, "0.01%", rec.Change24h)
	})

	t.Run("price found elsewhere in the row", func(t *testing.T) {
		row := singleRow(t, `<tr><td></td><td></td><td><a href="/currencies/xrp/">XRP</a></td><td><div>n/a</div></td><td><div><span>$0.52</span></div></td></tr>`)
		rec, err := scraper.ExtractStructural(row, 4, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, "$0.52", rec.Price)
		assert.Equal(t, 0.52, rec.PriceNum)
	})

	t.Run("four cells, change searched in row", func(t *testing.T) {
		row := singleRow(t, `<tr><td></td><td><span>+4.20%</span></td><td><a href="/currencies/bnb/">BNB</a></td><td><span>$601.77</span></td></tr>`)
		rec, err := scraper.ExtractStructural(row, 5, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, "+4.20%", rec.Change24h)
		assert.Equal(t, 4.20, rec.ChangeNum)
		// The last cell is the price cell here
		assert.Equal(t, "$601.77", rec.MarketCap)
	})

	t.Run("market cap from last dollar span", func(t *testing.T) {
		row := singleRow(t, `<tr><td></td><td></td><td><a>Solana</a></td><td><span>$150.00</span></td><td><span>1.00%</span></td><td><span>$68,000,000,000</span></td><td><img src="chart.svg"></td></tr>`)
		rec, err := scraper.ExtractStructural(row, 6, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, "$68,000,000,000", rec.MarketCap)
	})

	t.Run("too few cells", func(t *testing.T) {
		row := singleRow(t, `<tr><td><a href="/currencies/solana/">Solana</a></td><td><span>$150.00</span></td></tr>`)
		_, err := scraper.ExtractStructural(row, 7, capturedAt)

		var structErr *scraper.StructureError
		require.True(t, errors.As(err, &structErr))
		assert.Equal(t, 7, structErr.Row)
	})

	t.Run("missing price", func(t *testing.T) {
		row := singleRow(t, `<tr><td></td><td></td><td><a>Ghost</a></td><td>-</td><td>-</td></tr>`)
		_, err := scraper.ExtractStructural(row, 8, capturedAt)

		var structErr *scraper.StructureError
		assert.True(t, errors.As(err, &structErr))
	})
}

func TestExtractFallback(t *testing.T) {

	t.Run("short row", func(t *testing.T) {
		row := singleRow(t, `<tr><td><a href="/watchlist">Watch</a><a href="/currencies/solana/">Solana</a></td>`+
			`<td><span>$150.00</span><span>+3.10%</span><span>-0.50%</span></td><td><span>$70,000,000,000</span></td></tr>`)
		rec, err := scraper.ExtractFallback(row, 2, capturedAt)
		require.NoError(t, err)

		assert.Equal(t, 2, rec.Rank)
		assert.Equal(t, "Solana", rec.Name)
		assert.Equal(t, "", rec.Symbol)
		assert.Equal(t, "$150.00", rec.Price)
		assert.Equal(t, "+3.10%", rec.Change24h)
		assert.Equal(t, "$70,000,000,000", rec.MarketCap)
	})

	t.Run("any link when no detail link", func(t *testing.T) {
		row := singleRow(t, `<tr><td><a href="/coin/doge">Dogecoin</a></td><td><span>$0.12</span></td></tr>`)
		rec, err := scraper.ExtractFallback(row, 9, capturedAt)
		require.NoError(t, err)
		assert.Equal(t, "Dogecoin", rec.Name)
		assert.False(t, model.HasValue(rec.ChangeNum))
	})

	t.Run("nothing to recover", func(t *testing.T) {
		row := singleRow(t, `<tr><td colspan="9">Sponsored <b>`+strings.Repeat("x", 2000)+`</b></td></tr>`)
		_, err := scraper.ExtractFallback(row, 10, capturedAt)

		var extractErr *scraper.ExtractionError
		require.True(t, errors.As(err, &extractErr))
		assert.Equal(t, 10, extractErr.Row)
		assert.Len(t, extractErr.HTML, 800)
		assert.True(t, strings.HasPrefix(extractErr.HTML, `<td colspan="9">Sponsored`))
	})
}

type failingSource struct{}

func (failingSource) Rows(ctx context.Context) ([]scraper.Row, error) {
	return nil, &source.TimeoutError{Selector: "table tbody tr", Timeout: time.Second, Err: context.DeadlineExceeded}
}

func tenRows() []string {
	rows := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		rows = append(rows, listingRow(
			fmt.Sprintf("Coin%d", i),
			fmt.Sprintf("C%d", i),
			fmt.Sprintf("$%d,%03d.%02d", i*3%10+1, i*37, i),
			fmt.Sprintf("%.2f%%", float64(i)-5.5),
			fmt.Sprintf("$%d,000,000", i),
		))
	}
	return rows
}

func TestCollector_Collect(t *testing.T) {
	collector := scraper.NewCollector()
	collector.Now = func() time.Time { return capturedAt }

	t.Run("ten well-formed rows", func(t *testing.T) {
		records := collector.Collect(context.Background(), document(t, tenRows()...), 10)
		require.Len(t, records, 10)

		maxPrice := 0.0
		for i, rec := range records {
			assert.Equal(t, i+1, rec.Rank)
			assert.Equal(t, fmt.Sprintf("Coin%d", i+1), rec.Name)
			assert.True(t, model.HasValue(rec.PriceNum))
			if rec.PriceNum > maxPrice {
				maxPrice = rec.PriceNum
			}
		}
		assert.Equal(t, scraper.Stats{Structural: 10}, collector.Stats)
		assert.Equal(t, 10111.03, maxPrice)
	})

	t.Run("one unparseable row is skipped", func(t *testing.T) {
		rows := tenRows()
		rows[4] = `<tr><td colspan="6">Advertisement</td></tr>`
		records := collector.Collect(context.Background(), document(t, rows...), 10)
		require.Len(t, records, 9)

		for _, rec := range records {
			assert.NotEqual(t, "Coin5", rec.Name)
		}
		assert.Equal(t, 4, records[3].Rank)
		assert.Equal(t, 6, records[4].Rank)
		assert.Equal(t, scraper.Stats{Structural: 9, Skipped: 1}, collector.Stats)
	})

	t.Run("short row handled by fallback", func(t *testing.T) {
		rows := tenRows()
		rows[2] = `<tr><td><a href="/currencies/solana/">Solana</a></td><td><span>$150.00</span><span>+3.10%</span></td></tr>`
		records := collector.Collect(context.Background(), document(t, rows...), 10)
		require.Len(t, records, 10)

		assert.Equal(t, "Solana", records[2].Name)
		assert.Equal(t, 3, records[2].Rank)
		assert.Equal(t, scraper.Stats{Structural: 9, Fallback: 1}, collector.Stats)
	})

	t.Run("only the first n rows", func(t *testing.T) {
		records := collector.Collect(context.Background(), document(t, tenRows()...), 3)
		require.Len(t, records, 3)
		assert.Equal(t, "Coin3", records[2].Name)
	})

	t.Run("rows never appeared", func(t *testing.T) {
		records := collector.Collect(context.Background(), failingSource{}, 10)
		assert.Empty(t, records)
	})
}
