package scraping

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeGeneric(t *testing.T) {
	var images, features strings.Builder
	for i := 0; i < 7; i++ {
		fmt.Fprintf(&images, `<img src="/img/product-%d.jpg" alt="product photo %d">`, i, i)
		fmt.Fprintf(&features, `<li>Great feature number %d</li>`, i)
	}

	srv := serve(t, fmt.Sprintf(`<html><head>
		<meta name="description" content="A very nice kettle">
		<title>Fallback Title</title></head>
		<body>
		<h1>Electric Kettle Pro</h1>
		<span class="price">$49.99</span>
		%s
		<ul class="features">%s</ul>
		</body></html>`, images.String(), features.String()))

	product, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Electric Kettle Pro", product.Title)
	assert.Equal(t, "A very nice kettle", product.Description)
	assert.Equal(t, "$49.99", product.Price)
	assert.Equal(t, "generic", product.Category)
	assert.Equal(t, srv.URL, product.URL)

	// Bounded collections, relative URLs resolved against the page.
	assert.Len(t, product.Images, 5)
	assert.Equal(t, srv.URL+"/img/product-0.jpg", product.Images[0])
	assert.Len(t, product.Features, 5)
	assert.Equal(t, "Great feature number 0", product.Features[0])
}

func TestScrapeShopify(t *testing.T) {
	srv := serve(t, `<html><head>
		<script src="https://cdn.shopify.com/assets/theme.js"></script></head>
		<body>
		<h1>Handmade Mug</h1>
		<div class="product__description">A mug made by hand.</div>
		<span class="price">$18</span>
		<div class="product__media"><img src="/cdn/mug.jpg"></div>
		<ul><li>Dishwasher safe</li><li>x</li></ul>
		</body></html>`)

	product, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Handmade Mug", product.Title)
	assert.Equal(t, "A mug made by hand.", product.Description)
	assert.Equal(t, "$18", product.Price)
	assert.Equal(t, "shopify", product.Category)
	assert.Equal(t, []string{srv.URL + "/cdn/mug.jpg"}, product.Images)
	// Short list items are filtered out.
	assert.Equal(t, []string{"Dishwasher safe"}, product.Features)
}

func TestScrapeNoTitle(t *testing.T) {
	t.Run("missing title", func(t *testing.T) {
		srv := serve(t, `<html><body><p>Nothing to see</p></body></html>`)

		_, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrNoTitle)
	})

	t.Run("title below minimum length", func(t *testing.T) {
		srv := serve(t, `<html><body><h1>ab</h1></body></html>`)

		_, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrNoTitle)
	})
}

func TestScrapeErrors(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		_, err := NewScraper(nil).Scrape(context.Background(), "not a url")
		assert.Error(t, err)
	})

	t.Run("non-200 response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		_, err := NewScraper(srv.Client()).Scrape(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})
}

func TestTruncateRuneBoundary(t *testing.T) {
	t.Run("short string passes through", func(t *testing.T) {
		assert.Equal(t, "héllo", truncate(" héllo ", 10))
	})

	t.Run("cut backs up to a rune boundary", func(t *testing.T) {
		// Ten bytes of two-byte runes; an odd limit lands mid-rune.
		s := strings.Repeat("é", 5)
		got := truncate(s, 5)

		assert.Equal(t, "éé", got)
	})
}

func TestIsAmazonURL(t *testing.T) {
	assert.True(t, isAmazonURL("https://www.amazon.com/dp/B0ABCDEF"))
	assert.True(t, isAmazonURL("https://www.amazon.co.uk/gp/product/B0ABCDEF"))
	assert.False(t, isAmazonURL("https://www.amazon.com/stores/somebrand"))
	assert.False(t, isAmazonURL("https://example.com/dp/B0ABCDEF"))
}
