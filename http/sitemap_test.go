package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	linkhttp "github.com/fwojciec/linkcheck/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapSource_Discover(t *testing.T) {
	t.Parallel()

	t.Run("discovers URLs from robots.txt sitemap directive", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/page1</loc></url>
  <url><loc>%s/page2</loc></url>
</urlset>`, server.URL, server.URL)
		})

		source := linkhttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/page1", server.URL + "/page2"}, urls)
	})

	t.Run("falls back to sitemap.xml when robots.txt is missing", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/only</loc></url></urlset>`, server.URL)
		})

		source := linkhttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/only"}, urls)
	})

	t.Run("follows sitemap index recursively", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<sitemapindex>
  <sitemap><loc>%s/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>%s/sitemap-b.xml</loc></sitemap>
</sitemapindex>`, server.URL, server.URL)
		})
		mux.HandleFunc("/sitemap-a.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/a</loc></url></urlset>`, server.URL)
		})
		mux.HandleFunc("/sitemap-b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset><url><loc>%s/b</loc></url></urlset>`, server.URL)
		})

		source := linkhttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/a", server.URL + "/b"}, urls)
	})

	t.Run("filters out foreign hosts", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		server := httptest.NewServer(mux)
		defer server.Close()

		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<urlset>
  <url><loc>%s/mine</loc></url>
  <url><loc>https://other.test/theirs</loc></url>
</urlset>`, server.URL)
		})

		source := linkhttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, []string{server.URL + "/mine"}, urls)
	})

	t.Run("returns empty slice when no sitemaps exist", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		source := linkhttp.NewSitemapSource(nil)
		urls, err := source.Discover(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})
}
