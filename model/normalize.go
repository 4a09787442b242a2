package model

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a price like "$89,619.55" to a float, NoValue if it fails.
// Anything after the first whitespace is ignored, so "$1.02 USD" parses too.
func ParsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return NoValue
	}
	return parseDecimal(fields[0])
}

// ParsePercent converts a percentage like "-1.23%" to a float, NoValue if it fails
func ParsePercent(raw string) float64 {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "%", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return NoValue
	}
	return parseDecimal(s)
}

// float64 cannot hold anything past this, and a huge exponent makes the conversion slow
const maxExponent = 400

func parseDecimal(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil || d.Exponent() > maxExponent || d.Exponent() < -maxExponent {
		return NoValue
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) || f == NoValue {
		return NoValue
	}
	return f
}
