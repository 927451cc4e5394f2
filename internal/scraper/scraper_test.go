package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/pkg/log"
)

const fixtureListing = `<!DOCTYPE html>
<html><body>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/facebook/react">facebook / react</a></h2>
  <p class="col-9 color-fg-muted my-1 pr-4">The library for web and native user interfaces.</p>
  <a href="/facebook/react/stargazers">231,546</a>
  <span class="d-inline-block float-sm-right">1,204 stars today</span>
</article>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/rust-lang/rust">rust-lang / rust</a></h2>
  <p class="color-fg-muted my-1">Empowering everyone to build reliable software.</p>
  <a href="/rust-lang/rust/stargazers">n/a</a>
  <span class="d-inline-block float-sm-right">35 stars today</span>
</article>
<article class="Box-row">
  <h2 class="h3 lh-condensed"><a href="/golang/go">golang / go</a></h2>
  <a href="/golang/go/stargazers">120,033</a>
  <span class="d-inline-block float-sm-right">Built by</span>
</article>
</body></html>`

func newTestScraper(t *testing.T, baseUrl string) *Scraper {
	loader, _ := cfg.NewMockLoader()
	config, err := loader.Load()
	require.NoError(t, err)
	config.Trending.BaseUrl = baseUrl

	logger, _ := log.NewCslLogger()
	s, err := NewScraper(logger, config)
	require.NoError(t, err)
	return s
}

func TestFetchTrending_ExtractsRowsInDocumentOrder(t *testing.T) {
	var gotUserAgent, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(fixtureListing))
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	repos, err := s.FetchTrending(context.Background(), model.TypeRepositories, FetchOptions{
		Language: "go",
		Since:    model.SinceDaily,
	})
	require.NoError(t, err)
	require.Len(t, repos, 3)

	assert.Equal(t, "Mozilla/5.0 (compatible; TrendingFetcher/1.0)", gotUserAgent)
	assert.Equal(t, "text/html,application/xhtml+xml", gotAccept)

	first := repos[0]
	assert.Equal(t, "facebook", first.Owner)
	assert.Equal(t, "react", first.Repo)
	require.NotNil(t, first.Url)
	assert.Equal(t, "https://github.com/facebook/react", *first.Url)
	require.NotNil(t, first.Description)
	assert.Equal(t, "The library for web and native user interfaces.", *first.Description)
	assert.Equal(t, 231546, first.Stars)
	require.NotNil(t, first.StarsSince)
	assert.Equal(t, 1204, *first.StarsSince)
	assert.Nil(t, first.Language)

	// Fallback description selector, unparseable star cell degrades to 0
	second := repos[1]
	assert.Equal(t, "rust-lang", second.Owner)
	require.NotNil(t, second.Description)
	assert.Equal(t, "Empowering everyone to build reliable software.", *second.Description)
	assert.Equal(t, 0, second.Stars)
	require.NotNil(t, second.StarsSince)
	assert.Equal(t, 35, *second.StarsSince)

	// Missing description and velocity phrase: nil, not zero
	third := repos[2]
	assert.Nil(t, third.Description)
	assert.Equal(t, 120033, third.Stars)
	assert.Nil(t, third.StarsSince)
}

func TestFetchTrending_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	_, err := s.FetchTrending(context.Background(), model.TypeRepositories, FetchOptions{Language: "go"})
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusTooManyRequests, fetchErr.StatusCode)
	assert.Contains(t, fetchErr.Url, server.URL)
}

func TestFetchTrending_EmptyListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body></body></html>"))
	}))
	defer server.Close()

	s := newTestScraper(t, server.URL)
	repos, err := s.FetchTrending(context.Background(), model.TypeRepositories, FetchOptions{Language: "go"})
	require.NoError(t, err)
	assert.Empty(t, repos)
}
