package httpfetch_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modpack/internal/adapters/httpfetch"
	"go.trai.ch/modpack/internal/core/domain"
	"go.trai.ch/modpack/internal/core/ports"
	"go.trai.ch/modpack/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestFetcher_Fetch(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("jar-bytes"))
	}))
	defer server.Close()

	got, err := httpfetch.NewFetcher().Fetch(context.Background(), server.URL+"/a-1.0.jar")
	require.NoError(t, err)
	assert.Equal(t, []byte("jar-bytes"), got.Data)
	assert.Equal(t, server.URL+"/a-1.0.jar", got.URL)
	assert.True(t, strings.HasPrefix(userAgent, "modpack/"))
}

func TestFetcher_Fetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/projects/jei/files/1/download", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/files/jei%201.12.2.jar", http.StatusFound)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jei"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	got, err := httpfetch.NewFetcher().Fetch(context.Background(), server.URL+"/projects/jei/files/1/download")
	require.NoError(t, err)
	assert.Equal(t, []byte("jei"), got.Data)
	assert.Equal(t, server.URL+"/files/jei%201.12.2.jar", got.URL)
}

func TestFetcher_Fetch_ReportsToVertex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jar-bytes"))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	vertex := mocks.NewMockVertex(ctrl)
	out := &bytes.Buffer{}
	vertex.EXPECT().Stdout().Return(out)

	ctx := ports.ContextWithVertex(context.Background(), vertex)
	_, err := httpfetch.NewFetcher().Fetch(ctx, server.URL+"/a-1.0.jar")
	require.NoError(t, err)
	assert.Equal(t, "fetched 9 bytes from "+server.URL+"/a-1.0.jar\n", out.String())
}

func TestFetcher_Fetch_NonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := httpfetch.NewFetcher().Fetch(context.Background(), server.URL+"/missing.jar")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrArtifactUnavailable.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	meta := zErr.Metadata()
	assert.Equal(t, http.StatusNotFound, meta["status_code"])
	assert.Equal(t, server.URL+"/missing.jar", meta["url"])
}

func TestFetcher_Fetch_TransportError(t *testing.T) {
	client := &http.Client{Transport: &testTransport{
		handler: func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}}

	_, err := httpfetch.NewFetcherWithClientForTest(client).Fetch(context.Background(), "http://host/a.jar")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	_, err := httpfetch.NewFetcher().Fetch(context.Background(), "://nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrFetchFailed.Error())
}

func TestFetcher_Fetch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &http.Client{Transport: &testTransport{
		handler: func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		},
	}}

	_, err := httpfetch.NewFetcherWithClientForTest(client).Fetch(ctx, "http://host/a.jar")
	require.Error(t, err)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

// testTransport implements http.RoundTripper for testing.
type testTransport struct {
	handler func(*http.Request) (*http.Response, error)
}

func (t *testTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.handler(req)
}
