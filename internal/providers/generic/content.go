package generic

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// minContentRunes is the text length a candidate must exceed; shorter
// matches are usually navigation or sidebar blocks.
const minContentRunes = 100

type matchKind int

const (
	matchTag matchKind = iota
	matchID
	matchClass
	matchIDPattern
	matchClassPattern
)

type contentSelector struct {
	tag     string
	kind    matchKind
	value   string
	pattern *regexp.Regexp
}

// Ordered by how common the convention is across fiction sites.
var contentSelectors = []contentSelector{
	{tag: "div", kind: matchID, value: "content"},
	{tag: "div", kind: matchClass, value: "content"},
	{tag: "div", kind: matchID, value: "chapter-content"},
	{tag: "div", kind: matchClass, value: "chapter-content"},
	{tag: "article", kind: matchTag},
	{tag: "div", kind: matchClassPattern, pattern: regexp.MustCompile(`read|text|article`)},
	{tag: "div", kind: matchIDPattern, pattern: regexp.MustCompile(`content|chapter`)},
}

var noiseMatcher = cascadia.MustCompile("script, style, noscript, div.ad, ins, iframe")

func (cs contentSelector) matches(sel *goquery.Selection) bool {
	switch cs.kind {
	case matchTag:
		return true
	case matchID:
		id, _ := sel.Attr("id")
		return id == cs.value
	case matchClass:
		return sel.HasClass(cs.value)
	case matchIDPattern:
		id, ok := sel.Attr("id")
		return ok && cs.pattern.MatchString(id)
	case matchClassPattern:
		class, ok := sel.Attr("class")
		return ok && cs.pattern.MatchString(class)
	}

	return false
}

func (cs contentSelector) first(doc *goquery.Document) *goquery.Selection {
	return doc.Find(cs.tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return cs.matches(s)
	}).First()
}

// ExtractContent returns the chapter text of the first selector whose
// first match, once scripts, styles, ads and frames are removed, holds
// more than minContentRunes characters. The document is not modified.
func ExtractContent(doc *goquery.Document) (string, bool) {
	for _, cs := range contentSelectors {
		root := cs.first(doc)
		if root.Length() == 0 {
			continue
		}

		// Length is measured on the cleaned copy; noise never counts
		// towards the threshold.
		clean := root.Clone()
		clean.FindMatcher(noiseMatcher).Remove()

		if utf8.RuneCountInString(strippedText(clean)) <= minContentRunes {
			continue
		}

		return strings.TrimSpace(lineText(clean)), true
	}

	return "", false
}
