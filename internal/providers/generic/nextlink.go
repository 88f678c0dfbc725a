package generic

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	nextKeywords = []string{"下一页", "下一章", "下一节", "下一頁", "Next", ">", "›"}
	nextClasses  = []string{"next", "next-page", "pagination-next"}

	rePageParam = regexp.MustCompile(`(?i)(?:^|[?&;/])(page|p)=(\d+)`)
)

type nextRule func(doc *goquery.Document, pageURL string) (string, bool)

var nextRules = []nextRule{
	nextByAnchorText,
	nextByAnchorClass,
	nextByPageParam,
}

// NextPage returns the absolute URL of the page following pageURL. The
// first rule that matches wins: anchor text, anchor class, then a
// page=N / p=N query increment.
func NextPage(doc *goquery.Document, pageURL string) (string, bool) {
	for _, rule := range nextRules {
		if href, ok := rule(doc, pageURL); ok {
			return resolveURL(pageURL, href), true
		}
	}

	return "", false
}

func usableHref(a *goquery.Selection) (string, bool) {
	href, ok := a.Attr("href")
	if !ok {
		return "", false
	}

	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}

	return href, true
}

func nextByAnchorText(doc *goquery.Document, _ string) (string, bool) {
	anchors := doc.Find("a[href]")

	for _, kw := range nextKeywords {
		var found string
		anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if !strings.EqualFold(strings.TrimSpace(a.Text()), kw) {
				return true
			}
			if href, ok := usableHref(a); ok {
				found = href
				return false
			}
			return true
		})

		if found != "" {
			return found, true
		}
	}

	return "", false
}

func nextByAnchorClass(doc *goquery.Document, _ string) (string, bool) {
	for _, class := range nextClasses {
		var found string
		doc.Find("a." + class).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if href, ok := usableHref(a); ok {
				found = href
				return false
			}
			return true
		})

		if found != "" {
			return found, true
		}
	}

	return "", false
}

// nextByPageParam rewrites ".../read?page=3" to ".../read?page=4".
func nextByPageParam(_ *goquery.Document, pageURL string) (string, bool) {
	if !strings.Contains(strings.ToLower(pageURL), "page") {
		return "", false
	}

	m := rePageParam.FindStringSubmatchIndex(pageURL)
	if m == nil {
		return "", false
	}

	n, err := strconv.Atoi(pageURL[m[4]:m[5]])
	if err != nil {
		return "", false
	}

	return pageURL[:m[4]] + strconv.Itoa(n+1) + pageURL[m[5]:], true
}
