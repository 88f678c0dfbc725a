package generic

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// UntitledChapter is returned when no heuristic yields a usable title.
const UntitledChapter = "untitled chapter"

// ws matches everything strings.TrimSpace would trim.
const ws = `[\s\v\x{85}\p{Z}]*`

var (
	reBracketed  = regexp.MustCompile(`\(.*?\)|（.*?）|【.*?】`)
	rePageMarker = regexp.MustCompile(`(?:` + ws + `[-—]` + ws + `第?[0-9]+[页頁章節节]?)+` + ws + `$`)
	reSiteSuffix = regexp.MustCompile(`[-|_—]`)
)

// NormalizeTitle strips bracketed spans such as "(2/3)" or "【VIP】" and
// trailing page markers such as "- 第2页" from a raw title. The result may
// be empty.
func NormalizeTitle(raw string) string {
	t := reBracketed.ReplaceAllString(raw, "")
	t = rePageMarker.ReplaceAllString(t, "")

	return strings.TrimSpace(t)
}

type titleRule func(doc *goquery.Document) string

var titleRules = []titleRule{
	headingTitle,
	documentTitle,
}

// ExtractTitle returns the first non-empty normalized title produced by
// the title rules, or UntitledChapter.
func ExtractTitle(doc *goquery.Document) string {
	for _, rule := range titleRules {
		if t := NormalizeTitle(rule(doc)); t != "" {
			return t
		}
	}

	return UntitledChapter
}

func headingTitle(doc *goquery.Document) string {
	h1 := doc.Find("h1").First()
	if h1.Length() == 0 {
		return ""
	}

	return strippedText(h1)
}

// documentTitle keeps the part of <title> before the site name, e.g.
// "第一章 - 某某小说网" gives "第一章".
func documentTitle(doc *goquery.Document) string {
	title := doc.Find("title").First()
	if title.Length() == 0 {
		return ""
	}

	text := strippedText(title)
	if loc := reSiteSuffix.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	return strings.TrimSpace(text)
}
