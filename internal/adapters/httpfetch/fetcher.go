// Package httpfetch implements the Fetcher port over HTTP.
package httpfetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.trai.ch/modpack/internal/build"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher implements ports.Fetcher with a plain HTTP GET.
// Redirects are followed; requests are bounded only by the caller's context.
type Fetcher struct {
	httpClient *http.Client
}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return newFetcherWithClient(&http.Client{})
}

// newFetcherWithClient creates a Fetcher with a custom http client (used for testing).
func newFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{httpClient: client}
}

// Fetch retrieves the full body at url. The returned download carries the URL of the
// final response, after redirects. When ctx carries a telemetry vertex, the transfer
// is reported on its output stream.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*domain.Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", url)
	}
	req.Header.Set("User-Agent", "modpack/"+build.Version)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := zerr.With(domain.ErrArtifactUnavailable, "status_code", resp.StatusCode)
		return nil, zerr.With(statusErr, "url", url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", url)
	}

	effective := url
	if resp.Request != nil && resp.Request.URL != nil {
		effective = resp.Request.URL.String()
	}

	if vertex, ok := ports.VertexFromContext(ctx); ok {
		_, _ = fmt.Fprintf(vertex.Stdout(), "fetched %d bytes from %s\n", len(data), effective)
	}

	return &domain.Download{URL: effective, Data: data}, nil
}
