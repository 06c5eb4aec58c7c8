// Package fetcher performs the HTTP GETs behind carrier and zip code lookups
// and hands back the body ready for HTML querying.
package fetcher

import (
	"bytes"
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

// Fetcher defines the interface for retrieving remote pages.
type Fetcher interface {
	// Get fetches rawURL, giving up after timeout. Transport failures are
	// returned as errors; any HTTP status is returned in the Page.
	Get(ctx context.Context, rawURL string, timeout time.Duration) (*Page, error)
}

// Page is a fetched HTTP response.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// OK reports whether the response status is 2xx.
func (p *Page) OK() bool {
	return p.StatusCode >= 200 && p.StatusCode < 300
}

// Document parses the body as HTML.
func (p *Page) Document() (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(p.Body))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: parse html")
	}
	return doc, nil
}
