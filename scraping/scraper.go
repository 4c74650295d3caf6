package scraping

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"github.com/ameyarj/chima-ads/models"
)

const (
	maxImages         = 5
	maxFeatures       = 5
	maxDescriptionLen = 500
	minTitleLen       = 3
)

// ErrNoTitle is returned when no usable product title can be extracted.
var ErrNoTitle = errors.New("could not extract product title")

// Scraper extracts product data from storefront pages using per-site-family
// selector heuristics (Amazon, Shopify, generic fallback).
type Scraper struct {
	client *http.Client
}

// NewScraper wires an HTTP client; a nil client gets a 30 second timeout default.
func NewScraper(client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Scraper{client: client}
}

// Scrape fetches the page once, classifies the source and extracts product data.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*models.ProductData, error) {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid product url %q", pageURL)
	}

	doc, rawHTML, err := s.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	var product *models.ProductData
	switch {
	case isAmazonURL(pageURL):
		log.Infof("Detected Amazon product: %s", pageURL)
		product = extractAmazon(doc, base)
	case isShopifyPage(rawHTML):
		log.Infof("Detected Shopify store: %s", pageURL)
		product = extractShopify(doc, base)
	default:
		log.Infof("Using generic extractor: %s", pageURL)
		product = extractGeneric(doc, base)
	}

	product.URL = pageURL
	if len(strings.TrimSpace(product.Title)) < minTitleLen {
		return nil, ErrNoTitle
	}

	log.Infof("Scraped product: %s (%d images, %d features)",
		product.Title, len(product.Images), len(product.Features))
	return product, nil
}

func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("page returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("parse page: %w", err)
	}

	return doc, string(body), nil
}

func isAmazonURL(pageURL string) bool {
	return strings.Contains(pageURL, "amazon.") &&
		(strings.Contains(pageURL, "/dp/") || strings.Contains(pageURL, "/gp/product/"))
}

func isShopifyPage(html string) bool {
	return strings.Contains(html, "Shopify") ||
		strings.Contains(html, "shopify") ||
		strings.Contains(html, "cdn.shopify.com")
}
