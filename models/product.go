package models

// ProductData holds the facts scraped from one product page. It is produced
// once by the scraper and never mutated afterwards.
type ProductData struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       string   `json:"price,omitempty"`
	Images      []string `json:"images"`
	Features    []string `json:"features"`
	Category    string   `json:"category,omitempty"`
}
