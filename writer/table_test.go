package writer

import (
	"bytes"
	"testing"
	"time"

	"github.com/kabils0918/CryptoTracker/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWriter_Render(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 30, 45, 0, time.Local)
	records := []model.Record{
		model.NewRecord(1, "Bitcoin", "BTC", "$89,619.55", "-1.23%", "$1.77T", at),
		model.NewRecord(2, "Ethereum", "ETH", "$3,012.10", "", "$362B", at),
	}

	t.Run("summary", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewTableWriter(&out, SummaryColumns()).Render(records))

		assert.Contains(t, out.String(), "Bitcoin")
		assert.Contains(t, out.String(), "$89,619.55")
		assert.Contains(t, out.String(), "-1.23%")
		assert.Contains(t, out.String(), "ETH")
	})

	t.Run("preview", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, NewTableWriter(&out, PreviewColumns()).Render(records))

		assert.Contains(t, out.String(), "89619.55")
		assert.Contains(t, out.String(), "-1.23")
	})

	t.Run("unknown column", func(t *testing.T) {
		var out bytes.Buffer
		err := NewTableWriter(&out, []string{"Volume"}).Render(records)
		assert.Error(t, err)
	})
}
