package carrier

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/fetcher"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/textnorm"
	"github.com/Ricky512227/MedshipmentTrackingTool/internal/tracking"
)

// DefaultTrackingTimeout bounds a single tracking page fetch.
const DefaultTrackingTimeout = 15 * time.Second

// IPSClient reads the latest event for a tracking number from the IPS web
// tracking page.
type IPSClient struct {
	fetcher fetcher.Fetcher
	baseURL string
	timeout time.Duration
}

// IPSOption configures an IPSClient.
type IPSOption func(*IPSClient)

// WithTrackingTimeout overrides DefaultTrackingTimeout.
func WithTrackingTimeout(d time.Duration) IPSOption {
	return func(c *IPSClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewIPSClient creates an IPSClient querying baseURL.
func NewIPSClient(f fetcher.Fetcher, baseURL string, opts ...IPSOption) *IPSClient {
	c := &IPSClient{
		fetcher: f,
		baseURL: baseURL,
		timeout: DefaultTrackingTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// TrackingURL returns the query URL for a tracking number.
func (c *IPSClient) TrackingURL(trackingNumber string) string {
	q := url.Values{}
	q.Set("itemid", trackingNumber)
	return c.baseURL + "?" + q.Encode() + "&Submit=Submit"
}

// Track fetches the most recent event for trackingNumber. Every failure is
// logged here and returned as a *FetchError.
func (c *IPSClient) Track(ctx context.Context, trackingNumber string) (tracking.Event, error) {
	log := zap.L().With(zap.String("tracking_number", trackingNumber))

	page, err := c.fetcher.Get(ctx, c.TrackingURL(trackingNumber), c.timeout)
	if err != nil {
		fe := &FetchError{Reason: ReasonNetwork, Key: trackingNumber, Err: err}
		log.Warn("tracking: network error", zap.Bool("timeout", fe.Timeout()), zap.Error(err))
		return tracking.Event{}, fe
	}

	if page.StatusCode != 200 {
		log.Warn("tracking: unable to hit the link", zap.Int("status", page.StatusCode))
		return tracking.Event{}, &FetchError{Reason: ReasonStatus, Key: trackingNumber, StatusCode: page.StatusCode}
	}

	doc, err := page.Document()
	if err != nil {
		log.Warn("tracking: unparsable page", zap.Error(err))
		return tracking.Event{}, &FetchError{Reason: ReasonParse, Key: trackingNumber, Err: err}
	}

	fields, ok := LatestEventFields(doc)
	if !ok {
		msg := siteMessage(doc)
		if msg != "" {
			log.Warn("tracking: hit link but no information available, check the item manually",
				zap.String("message", msg))
		} else {
			log.Warn("tracking: hit link but no information available, check the item manually")
		}
		return tracking.Event{}, &FetchError{Reason: ReasonNotFound, Key: trackingNumber, Message: msg}
	}

	log.Info("tracking: fetched latest event", zap.Int("fields", len(fields)))
	return tracking.Event{Fields: fields}, nil
}

// LatestEventFields extracts the last row of the tracking table. The table
// cell is the first td.tabproperty and must have at least three child nodes
// (text nodes included). The row text is split on newlines, then the first
// line (leaked header) and the last two lines (trailing boilerplate) are
// dropped. The trim is positional and yields the seven event fields for a
// well-formed page.
func LatestEventFields(doc *goquery.Document) ([]string, bool) {
	cell := doc.Find("td.tabproperty").First()
	if cell.Length() == 0 || cell.Contents().Length() < 3 {
		return nil, false
	}

	rows := cell.Find("tr")
	if rows.Length() == 0 {
		return nil, false
	}

	text := textnorm.StripNonASCII(rows.Last().Text())
	return trimEventLines(strings.Split(text, "\n")), true
}

// trimEventLines drops one leading and up to two trailing lines.
func trimEventLines(lines []string) []string {
	if len(lines) > 0 {
		lines = lines[1:]
	}
	for i := 0; i < 2; i++ {
		if len(lines) > 0 {
			lines = lines[:len(lines)-1]
		}
	}
	return lines
}

// siteMessage returns the text of the second paragraph, where the site
// explains why it has nothing for an item.
func siteMessage(doc *goquery.Document) string {
	p := doc.Find("p")
	if p.Length() < 2 {
		return ""
	}
	return p.Eq(1).Text()
}
