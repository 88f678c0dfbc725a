package generic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// eachText calls fn with every non-empty, trimmed text node under sel in
// document order. Comments and other non-text nodes are skipped, as is
// noscript, whose body the parser keeps as raw markup.
func eachText(sel *goquery.Selection, fn func(string)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Noscript {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				fn(t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}
}

// strippedText joins the trimmed text runs of sel without separators.
func strippedText(sel *goquery.Selection) string {
	var b strings.Builder
	eachText(sel, func(t string) {
		b.WriteString(t)
	})

	return b.String()
}

// lineText joins the trimmed text runs of sel with line breaks.
func lineText(sel *goquery.Selection) string {
	var lines []string
	eachText(sel, func(t string) {
		lines = append(lines, t)
	})

	return strings.Join(lines, "\n")
}
