package providers

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Page is one fetched and decoded HTML document. It only lives for a
// single iteration of a walk.
type Page struct {
	URL      string
	Doc      *goquery.Document
	Bytes    int64
	Encoding string
}

type Scraper interface {
	FetchPage(ctx context.Context, url string) (*Page, error)
	ExtractTitle(doc *goquery.Document) string
	ExtractContent(doc *goquery.Document) (string, bool)
	NextPage(doc *goquery.Document, pageURL string) (string, bool)
}
