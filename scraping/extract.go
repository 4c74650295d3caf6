package scraping

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/ameyarj/chima-ads/models"
)

func extractAmazon(doc *goquery.Document, base *url.URL) *models.ProductData {
	title := textOf(doc, "#productTitle")

	description := textOf(doc, "#feature-bullets ul")
	if description == "" {
		description = textOf(doc, "#productDescription")
	}

	price := textOf(doc, ".a-price-whole")
	if price == "" {
		price = textOf(doc, ".a-price")
	}

	images := collectImages(doc, base, "#landingImage, .a-dynamic-image, #imgTagWrapperId img", nil)

	features := collectFeatures(doc, "#feature-bullets li, .a-unordered-list li", func(text string) bool {
		return len(text) > 10 && len(text) < 200 && !strings.Contains(text, "Make sure")
	})

	return &models.ProductData{
		Title:       title,
		Description: truncate(description, maxDescriptionLen),
		Price:       price,
		Images:      images,
		Features:    features,
		Category:    "amazon",
	}
}

func extractShopify(doc *goquery.Document, base *url.URL) *models.ProductData {
	title := firstText(doc, "h1", ".product-title", `[data-testid="product-title"]`)
	description := firstText(doc, ".product-description", ".product__description", `[data-testid="product-description"]`)
	price := firstText(doc, ".price", ".product-price", `[data-testid="price"]`)

	images := collectImages(doc, base,
		`img[src*="product"], img[alt*="product"], .product-image img, .product__media img`, nil)

	features := collectFeatures(doc, ".product-features li, .features li, .product-details li, ul li", func(text string) bool {
		return len(text) > 5 && len(text) < 100
	})

	return &models.ProductData{
		Title:       title,
		Description: truncate(description, maxDescriptionLen),
		Price:       price,
		Images:      images,
		Features:    features,
		Category:    "shopify",
	}
}

func extractGeneric(doc *goquery.Document, base *url.URL) *models.ProductData {
	title := firstText(doc, "h1", ".product-title", `[data-testid="product-title"]`)
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	description := firstText(doc, ".product-description", ".description")
	if description == "" {
		description, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
		description = strings.TrimSpace(description)
	}

	price := firstText(doc, ".price", ".product-price", `[class*="price"]`)

	// Only keep images that look product-related: alt/src mention "product" or
	// the image sits inside a product gallery container.
	images := collectImages(doc, base, "img", func(sel *goquery.Selection, src string) bool {
		alt := strings.ToLower(sel.AttrOr("alt", ""))
		if strings.Contains(alt, "product") || strings.Contains(src, "product") {
			return true
		}
		return sel.Closest(`.product-image, .product-gallery, [class*="product"]`).Length() > 0
	})

	features := collectFeatures(doc, "ul li, .features li, .specs li", func(text string) bool {
		return len(text) > 5 && len(text) < 150
	})

	return &models.ProductData{
		Title:       title,
		Description: truncate(description, maxDescriptionLen),
		Price:       price,
		Images:      images,
		Features:    features,
		Category:    "generic",
	}
}

func textOf(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

func firstText(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if text := textOf(doc, sel); text != "" {
			return text
		}
	}
	return ""
}

func collectImages(doc *goquery.Document, base *url.URL, selector string, keep func(*goquery.Selection, string) bool) []string {
	images := make([]string, 0, maxImages)
	seen := map[string]struct{}{}

	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src := strings.TrimSpace(sel.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		if keep != nil && !keep(sel, src) {
			return true
		}

		resolved := resolveURL(base, src)
		if _, ok := seen[resolved]; ok {
			return true
		}
		seen[resolved] = struct{}{}
		images = append(images, resolved)

		return len(images) < maxImages
	})

	return images
}

func collectFeatures(doc *goquery.Document, selector string, keep func(string) bool) []string {
	features := make([]string, 0, maxFeatures)
	seen := map[string]struct{}{}

	doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" || !keep(text) {
			return true
		}
		if _, ok := seen[text]; ok {
			return true
		}
		seen[text] = struct{}{}
		features = append(features, text)

		return len(features) < maxFeatures
	})

	return features
}

func resolveURL(base *url.URL, src string) string {
	parsed, err := url.Parse(src)
	if err != nil {
		return src
	}
	return base.ResolveReference(parsed).String()
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}
