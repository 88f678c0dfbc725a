package generic

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/gogs/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const (
	maxPageBytes  = 16 << 20
	maxSniffBytes = 64 << 10
)

type debugLogger interface {
	Debugf(string, ...any)
}

type Scraper struct {
	client   *http.Client
	log      debugLogger
	encoding string
}

// NewScraper returns a scraper that fetches pages with c. A non-empty
// forcedEncoding label disables charset detection.
func NewScraper(c *http.Client, log debugLogger, forcedEncoding string) *Scraper {
	return &Scraper{
		client:   c,
		log:      log,
		encoding: strings.TrimSpace(forcedEncoding),
	}
}

func (s *Scraper) debugf(format string, args ...any) {
	if s.log != nil {
		s.log.Debugf(format, args...)
	}
}

// FetchPage performs a single GET for target and parses the decoded body.
// Non-2xx responses are errors; there is no retry.
func (s *Scraper) FetchPage(ctx context.Context, target string) (*providers.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxPageBytes {
		return nil, fmt.Errorf("page too large (exceeds %d bytes)", maxPageBytes)
	}

	r, name, err := s.decode(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, err
	}
	s.debugf("Decoded %s as %s (%d bytes)\n", target, name, len(body))

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	return &providers.Page{
		URL:      target,
		Doc:      doc,
		Bytes:    int64(len(body)),
		Encoding: name,
	}, nil
}

func (s *Scraper) decode(body []byte, contentType string) (io.Reader, string, error) {
	var (
		enc  encoding.Encoding
		name string
	)

	if s.encoding != "" {
		enc, name = charset.Lookup(s.encoding)
		if enc == nil {
			return nil, "", fmt.Errorf("unknown encoding %q", s.encoding)
		}
	} else {
		var certain bool
		enc, name, certain = charset.DetermineEncoding(body, contentType)
		// windows-1252 without certainty is the fallback for bytes that are
		// not UTF-8 and carry no label.
		if !certain && name == "windows-1252" {
			if e, n := sniffEncoding(body); e != nil {
				enc, name = e, n
			}
		}
	}

	return transform.NewReader(bytes.NewReader(body), enc.NewDecoder()), name, nil
}

// sniffEncoding guesses the charset of an unlabelled page from its bytes.
func sniffEncoding(body []byte) (encoding.Encoding, string) {
	if len(body) > maxSniffBytes {
		body = body[:maxSniffBytes]
	}

	res, err := chardet.NewHtmlDetector().DetectBest(body)
	if err != nil {
		return nil, ""
	}

	label := strings.ToLower(res.Charset)
	if label == "gb-18030" {
		label = "gb18030"
	}

	return charset.Lookup(label)
}

func (s *Scraper) ExtractTitle(doc *goquery.Document) string {
	return ExtractTitle(doc)
}

func (s *Scraper) ExtractContent(doc *goquery.Document) (string, bool) {
	return ExtractContent(doc)
}

func (s *Scraper) NextPage(doc *goquery.Document, pageURL string) (string, bool) {
	next, ok := NextPage(doc, pageURL)
	if ok {
		s.debugf("Next page for %s: %s\n", pageURL, next)
	}

	return next, ok
}

func resolveURL(baseURL, href string) string {
	if href == "" {
		return baseURL
	}

	b, err := url.Parse(baseURL)
	if err != nil {
		return href
	}

	u, err := url.Parse(href)
	if err != nil {
		// Malformed escapes such as "%zz" are kept literally in the path.
		u = &url.URL{Path: href}
	}

	return b.ResolveReference(u).String()
}
