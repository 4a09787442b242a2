// Package source loads a listing page and exposes its table rows to the scraper.
// Sources register themselves by name, the configured one is picked by Open.
package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/scraper"
)

// Page is a loaded page. Rows handed out by it are only valid until Close.
type Page interface {
	scraper.RowSource
	io.Closer
}

type Opener func(ctx context.Context, cfg *config.Config) (Page, error)

var openers = make(map[string]Opener)

func Register(name string, o Opener) {
	upperName := strings.ToUpper(name)
	if _, exist := openers[upperName]; exist {
		panic(fmt.Errorf("%q already exists in source registry", upperName))
	}
	openers[upperName] = o
}

func GetAllNames() []string {
	names := make([]string, 0, len(openers))
	for name := range openers {
		names = append(names, strings.ToLower(name))
	}
	sort.Strings(names)
	return names
}

// Open loads the page with the source named in cfg
func Open(ctx context.Context, cfg *config.Config) (Page, error) {
	o, ok := openers[strings.ToUpper(cfg.Source)]
	if !ok {
		return nil, fmt.Errorf("unknown page source %q, supported: %s", cfg.Source, strings.Join(GetAllNames(), ", "))
	}
	return o(ctx, cfg)
}

// TimeoutError means the table rows did not show up in time
type TimeoutError struct {
	Selector string
	Timeout  time.Duration
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no rows matching %q after %s: %v", e.Selector, e.Timeout, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}
