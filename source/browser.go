package source

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/scraper"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Browser renders the page in a local Chrome driven by rod
type Browser struct {
	lnch     *launcher.Launcher
	browser  *rod.Browser
	page     *rod.Page
	selector string
	timeout  time.Duration
}

func openBrowser(ctx context.Context, cfg *config.Config) (Page, error) {
	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("window-size", cfg.WindowSize).
		// Hide navigator.webdriver and the automation infobar
		Set("disable-blink-features", "AutomationControlled")
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
		logrus.Debugf("Using proxy %s", cfg.Proxy)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "launch chrome")
	}
	b := &Browser{lnch: l, selector: cfg.RowSelector, timeout: cfg.WaitTimeout}
	logrus.Debugf("Chrome listening on %s", controlURL)

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		b.Close()
		return nil, errors.Wrap(err, "connect to chrome")
	}
	b.browser = browser

	if b.page, err = stealth.Page(b.browser); err != nil {
		b.Close()
		return nil, errors.Wrap(err, "create tab")
	}
	if cfg.UserAgent != "" {
		err := b.page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.UserAgent})
		if err != nil {
			logrus.WithError(err).Warn("Failed to override user agent")
		}
	}

	logrus.Infof("Opening %s", cfg.URL)
	if err := b.page.Navigate(cfg.URL); err != nil {
		b.Close()
		return nil, errors.Wrapf(err, "navigate to %s", cfg.URL)
	}
	return b, nil
}

// Rows waits up to the configured timeout for the first row to be present
func (b *Browser) Rows(ctx context.Context) ([]scraper.Row, error) {
	page := b.page.Context(ctx)
	if _, err := page.Timeout(b.timeout).Element(b.selector); err != nil {
		return nil, &TimeoutError{Selector: b.selector, Timeout: b.timeout, Err: err}
	}
	found, err := page.Elements(b.selector)
	if err != nil {
		return nil, errors.Wrapf(err, "query %q", b.selector)
	}
	rows := make([]scraper.Row, 0, len(found))
	for _, el := range found {
		rows = append(rows, &rodRow{rodElement{el}})
	}
	return rows, nil
}

func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
		b.lnch = nil
	}
	logrus.Info("Browser closed")
	return err
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Text() string {
	text, err := e.el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// Find does not wait, an element that is not rendered yet is simply missing
func (e rodElement) Find(selector string) []scraper.Element {
	found, err := e.el.Elements(selector)
	if err != nil {
		return nil
	}
	elements := make([]scraper.Element, 0, len(found))
	for _, el := range found {
		elements = append(elements, rodElement{el})
	}
	return elements
}

type rodRow struct {
	rodElement
}

func (r *rodRow) Cells() []scraper.Element {
	return r.Find("td")
}

func (r *rodRow) HTML() string {
	html, err := r.el.Property("innerHTML")
	if err != nil {
		return ""
	}
	return html.Str()
}

func init() {
	Register(config.SourceBrowser, openBrowser)
}
