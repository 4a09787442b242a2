// Package snapshot stores one run's records as a CSV file. Every write replaces
// the previous file, there is no history.
package snapshot

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kabils0918/CryptoTracker/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	ColRank      = "rank"
	ColName      = "name"
	ColSymbol    = "symbol"
	ColPrice     = "price"
	ColPriceNum  = "price_num"
	ColChange24h = "change_24h"
	ColChangeNum = "change_num"
	ColMarketCap = "market_cap"
	ColTimestamp = "timestamp"
)

// Columns is the fixed column order of a snapshot file
var Columns = []string{
	ColRank, ColName, ColSymbol, ColPrice, ColPriceNum, ColChange24h, ColChangeNum, ColMarketCap, ColTimestamp,
}

// Older files used these names
var synonyms = map[string]string{
	"price_usd":        ColPrice,
	"price_change_24h": ColChange24h,
}

// Write replaces the file at path with records
func Write(path string, records []model.Record) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create snapshot")
	}
	defer f.Close()

	if err := Encode(f, records); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", path)
	}
	logrus.Infof("CSV saved: %s (%d rows)", path, len(records))
	return nil
}

func Encode(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		err := cw.Write([]string{
			strconv.Itoa(r.Rank),
			r.Name,
			r.Symbol,
			r.Price,
			formatNum(r.PriceNum),
			r.Change24h,
			formatNum(r.ChangeNum),
			r.MarketCap,
			r.Timestamp,
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatNum(v float64) string {
	if !model.HasValue(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Read loads a snapshot. Numeric columns in the file are ignored and recomputed
// from the raw price and change text.
func Read(path string) ([]model.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open snapshot")
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return records, nil
}

func Decode(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	index := columnIndex(header)
	logrus.Debugf("Columns: %v", header)

	var records []model.Record
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			if i, ok := index[col]; ok && i < len(fields) {
				return fields[i]
			}
			return ""
		}
		rank, err := strconv.Atoi(get(ColRank))
		if err != nil {
			rank = line
		}
		rec := model.Record{
			Rank:      rank,
			Name:      get(ColName),
			Symbol:    get(ColSymbol),
			Price:     get(ColPrice),
			Change24h: get(ColChange24h),
			MarketCap: get(ColMarketCap),
			Timestamp: get(ColTimestamp),
		}
		rec.Refresh()
		records = append(records, rec)
	}
	return records, nil
}

// columnIndex maps column names to positions, renaming known synonyms when the
// canonical column is absent
func columnIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for old, canonical := range synonyms {
		i, ok := index[old]
		if _, exist := index[canonical]; ok && !exist {
			logrus.Debugf("Using column %q as %q", old, canonical)
			index[canonical] = i
		}
	}
	return index
}

// NotFoundError means none of the candidate snapshot files exist
type NotFoundError struct {
	Checked []string
}

func (e *NotFoundError) Error() string {
	return "no snapshot file found, checked: " + strings.Join(e.Checked, ", ")
}

// Resolve returns the first candidate that exists
func Resolve(candidates []string) (string, error) {
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			logrus.Infof("Using CSV: %s", p)
			return p, nil
		}
	}
	return "", &NotFoundError{Checked: candidates}
}
