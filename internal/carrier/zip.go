package carrier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/fetcher"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/textnorm"
)

// DefaultZipTimeout bounds a single zip code page fetch.
const DefaultZipTimeout = 10 * time.Second

// DefaultZipBaseURL is the zip-codes.com site root.
const DefaultZipBaseURL = "https://www.zip-codes.com"

// ZipClient turns a US zip code into a place string using the zip-codes.com
// zip code pages.
type ZipClient struct {
	fetcher fetcher.Fetcher
	baseURL string
	timeout time.Duration
}

// NewZipClient creates a ZipClient. An empty baseURL selects DefaultZipBaseURL
// and a non-positive timeout selects DefaultZipTimeout.
func NewZipClient(f fetcher.Fetcher, baseURL string, timeout time.Duration) *ZipClient {
	if baseURL == "" {
		baseURL = DefaultZipBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultZipTimeout
	}
	return &ZipClient{
		fetcher: f,
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}
}

// LookupURL returns the page URL for zip.
func (c *ZipClient) LookupURL(zip string) string {
	return fmt.Sprintf("%s/zip-code/%s/zip-code-%s.asp", c.baseURL, zip, zip)
}

// Lookup returns the place string for zip, built from the page heading.
// Failures are logged and returned as a *FetchError.
func (c *ZipClient) Lookup(ctx context.Context, zip string) (string, error) {
	log := zap.L().With(zap.String("zip", zip))

	page, err := c.fetcher.Get(ctx, c.LookupURL(zip), c.timeout)
	if err != nil {
		fe := &FetchError{Reason: ReasonNetwork, Key: zip, Err: err}
		log.Warn("zip: error fetching zip code data", zap.Bool("timeout", fe.Timeout()), zap.Error(err))
		return "", fe
	}
	if !page.OK() {
		log.Warn("zip: unexpected status", zap.Int("status", page.StatusCode))
		return "", &FetchError{Reason: ReasonStatus, Key: zip, StatusCode: page.StatusCode}
	}

	doc, err := page.Document()
	if err != nil {
		log.Warn("zip: error parsing zip code data", zap.Error(err))
		return "", &FetchError{Reason: ReasonParse, Key: zip, Err: err}
	}

	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		log.Warn("zip: no heading on page")
		return "", &FetchError{Reason: ReasonNotFound, Key: zip}
	}

	place := ReorderHeading(textnorm.StripNonASCII(h1.Text()))
	log.Debug("zip: resolved", zap.String("place", place))
	return place, nil
}

// ReorderHeading rearranges the comma separated heading parts: a copy of the
// first part is inserted at index 3 (or appended when there are fewer than
// three parts) and the original first part is removed. Part whitespace is
// kept as is.
func ReorderHeading(heading string) string {
	parts := strings.Split(heading, ",")

	at := min(3, len(parts))
	out := make([]string, 0, len(parts)+1)
	out = append(out, parts[:at]...)
	out = append(out, parts[0])
	out = append(out, parts[at:]...)

	return strings.Join(out[1:], ",")
}
