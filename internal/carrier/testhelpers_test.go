package carrier

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ricky512227/MedshipmentTrackingTool/internal/fetcher"
)

// serveHTML starts a server answering every request with status and body.
func serveHTML(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{UserAgent: "test-agent"})
}

const trackingPage = `<html><body>
<p>International Postal System</p>
<table><tr><td class="tabproperty">
<table>
<tr><th>Local Date and Time</th><th>Country</th><th>Location</th><th>Event Type</th><th>Mail Category</th><th>Next Office</th><th>Extra Information</th></tr>
<tr>
<td>2024-02-27 08:12</td>
<td>USA</td>
<td>ISC NEW YORK NY</td>
<td>Receive item at office of exchange (Inb)</td>
<td>Priority</td>
<td>USNYCA</td>
<td></td>
</tr>
<tr>
<td>2024-03-01 10:00</td>
<td>USA</td>
<td>10001</td>
<td>Deliver item (Inb)</td>
<td>Priority</td>
<td>USNYCB</td>
<td>Signed by ROSÉ</td>

</tr>
</table>
</td></tr></table>
</body></html>`

const noInfoPage = `<html><body>
<p>International Postal System</p>
<p>No information is available for this item.</p>
</body></html>`
