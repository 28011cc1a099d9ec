package model

import "strings"

// SearchHit is one ranked result returned by the web search provider.
type SearchHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

type ProductQuery struct {
	ProductName string `json:"product_name"`
	SearchQuery string `json:"search_query"`
}

// NewProductQuery derives the search query for a product, e.g. "nokia g42" -> "nokia g42 review".
func NewProductQuery(productName, suffix string) ProductQuery {
	name := strings.TrimSpace(productName)
	return ProductQuery{
		ProductName: name,
		SearchQuery: name + suffix,
	}
}

// ScrapedPage is the readable text of one review page. A failed scrape has no page.
type ScrapedPage struct {
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	CleanText string `json:"clean_text"`
}

// ReviewCorpus is the concatenated review text for one product. Content may be empty
// when none of the product's pages could be scraped.
type ReviewCorpus struct {
	ProductName string   `json:"product_name"`
	Content     string   `json:"content"`
	Sources     []string `json:"sources,omitempty"`
}

func (c ReviewCorpus) IsEmpty() bool {
	return strings.TrimSpace(c.Content) == ""
}
