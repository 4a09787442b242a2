package config

import (
	"path/filepath"
	"time"
)

const (
	SourceBrowser = "browser"
	SourceHTTP    = "http"
	SourceFile    = "file"
)

const (
	DefaultURL         = "https://coinmarketcap.com/"
	DefaultRowSelector = "table tbody tr"
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36"
)

type Config struct {
	URL         string        `mapstructure:"url"`
	Source      string        `mapstructure:"source"`
	HTMLFile    string        `mapstructure:"html_file"`
	RowSelector string        `mapstructure:"row_selector"`
	TopN        int           `mapstructure:"top_n"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
	Headless    bool          `mapstructure:"headless"`
	Proxy       string        `mapstructure:"proxy"`
	UserAgent   string        `mapstructure:"user_agent"`
	WindowSize  string        `mapstructure:"window_size"`

	OutputDir     string   `mapstructure:"output_dir"`
	CSVFile       string   `mapstructure:"csv_file"`
	CSVCandidates []string `mapstructure:"csv_candidates"`
	PriceChart    string   `mapstructure:"price_chart"`
	ChangeChart   string   `mapstructure:"change_chart"`
	DPI           int      `mapstructure:"dpi"`

	Debug       bool `mapstructure:"debug"`
	ListSources bool `mapstructure:"list_sources"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"url":            DefaultURL,
		"source":         SourceBrowser,
		"row_selector":   DefaultRowSelector,
		"top_n":          10,
		"wait_timeout":   20 * time.Second,
		"headless":       false,
		"user_agent":     DefaultUserAgent,
		"window_size":    "1920,1080",
		"output_dir":     "outputs",
		"csv_file":       "crypto_prices.csv",
		"csv_candidates": []string{"selenium_crypto_prices.csv", "crypto_prices.csv"},
		"price_chart":    "top10_prices.png",
		"change_chart":   "price_changes_24h.png",
		"dpi":            300,
		"html_file":      "",
		"proxy":          "",
		"debug":          false,
		"list_sources":   false,
	}
}

// Path places a file name under the output directory
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

func (c *Config) CSVPath() string {
	return c.Path(c.CSVFile)
}

func (c *Config) PriceChartPath() string {
	return c.Path(c.PriceChart)
}

func (c *Config) ChangeChartPath() string {
	return c.Path(c.ChangeChart)
}

// CandidatePaths lists the snapshot files the replot tool looks for, in order
func (c *Config) CandidatePaths() []string {
	paths := make([]string, 0, len(c.CSVCandidates))
	for _, name := range c.CSVCandidates {
		paths = append(paths, c.Path(name))
	}
	return paths
}
