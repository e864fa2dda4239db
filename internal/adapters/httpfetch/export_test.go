package httpfetch

import "net/http"

// NewFetcherWithClientForTest exposes newFetcherWithClient to external tests.
func NewFetcherWithClientForTest(client *http.Client) *Fetcher {
	return newFetcherWithClient(client)
}
