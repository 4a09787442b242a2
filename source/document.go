package source

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/http"
	"github.com/kabils0918/CryptoTracker/scraper"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Document serves rows out of static HTML, for pages rendered on the server or
// saved to disk
type Document struct {
	doc      *goquery.Document
	selector string
}

func NewDocument(r io.Reader, rowSelector string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html")
	}
	return &Document{doc: doc, selector: rowSelector}, nil
}

func (d *Document) Rows(ctx context.Context) ([]scraper.Row, error) {
	sel := d.doc.Find(d.selector)
	if sel.Length() == 0 {
		return nil, errors.Errorf("no rows matching %q", d.selector)
	}
	rows := make([]scraper.Row, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, &docRow{docElement{s}})
	})
	return rows, nil
}

func (d *Document) Close() error {
	return nil
}

type docElement struct {
	sel *goquery.Selection
}

func (e docElement) Text() string {
	return strings.TrimSpace(e.sel.Text())
}

func (e docElement) Find(selector string) []scraper.Element {
	found := e.sel.Find(selector)
	elements := make([]scraper.Element, 0, found.Length())
	found.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, docElement{s})
	})
	return elements
}

type docRow struct {
	docElement
}

func (r *docRow) Cells() []scraper.Element {
	return r.Find("td")
}

func (r *docRow) HTML() string {
	html, err := r.sel.Html()
	if err != nil {
		return ""
	}
	return html
}

func openHTTP(ctx context.Context, cfg *config.Config) (Page, error) {
	logrus.Infof("Fetching %s", cfg.URL)
	body, err := http.New(cfg).Get(cfg.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", cfg.URL)
	}
	return NewDocument(bytes.NewReader(body), cfg.RowSelector)
}

func openFile(ctx context.Context, cfg *config.Config) (Page, error) {
	logrus.Infof("Reading %s", cfg.HTMLFile)
	f, err := os.Open(cfg.HTMLFile)
	if err != nil {
		return nil, errors.Wrap(err, "open html file")
	}
	defer f.Close()
	return NewDocument(f, cfg.RowSelector)
}

func init() {
	Register(config.SourceHTTP, openHTTP)
	Register(config.SourceFile, openFile)
}
