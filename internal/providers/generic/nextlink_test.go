package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chapterURL = "https://novel.example.com/book/12/34.html"

func TestNextPage(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		pageURL string
		want    string
		wantOK  bool
	}{
		{
			name:    "keyword text beats class",
			html:    `<a class="next" href="/by-class">more</a><a href="/by-text">下一页</a>`,
			pageURL: chapterURL,
			want:    "https://novel.example.com/by-text",
			wantOK:  true,
		},
		{
			name:    "keyword order beats document order",
			html:    `<a href="35.html">下一章</a><a href="34_2.html">下一页</a>`,
			pageURL: chapterURL,
			want:    "https://novel.example.com/book/12/34_2.html",
			wantOK:  true,
		},
		{
			name:    "case-insensitive english keyword",
			html:    `<a href="?p=2"> NEXT </a>`,
			pageURL: chapterURL,
			want:    "https://novel.example.com/book/12/34.html?p=2",
			wantOK:  true,
		},
		{
			name:    "arrow keyword",
			html:    `<a href="https://cdn.example.com/n/2">›</a>`,
			pageURL: chapterURL,
			want:    "https://cdn.example.com/n/2",
			wantOK:  true,
		},
		{
			name:    "text must match exactly",
			html:    `<a href="/toc">下一页目录</a>`,
			pageURL: chapterURL,
			wantOK:  false,
		},
		{
			name:    "javascript and fragment hrefs are ignored",
			html:    `<a href="javascript:void(0)">下一页</a><a href="#">下一章</a><a class="next-page" href="34_2.html">go</a>`,
			pageURL: chapterURL,
			want:    "https://novel.example.com/book/12/34_2.html",
			wantOK:  true,
		},
		{
			name:    "pagination-next class",
			html:    `<ul><li><a class="btn pagination-next" href="../13/1.html">→</a></li></ul>`,
			pageURL: chapterURL,
			want:    "https://novel.example.com/book/13/1.html",
			wantOK:  true,
		},
		{
			name:    "class must be a whole token",
			html:    `<a class="nextchapter" href="/x">→</a>`,
			pageURL: chapterURL,
			wantOK:  false,
		},
		{
			name:    "anchor without href is skipped",
			html:    `<a>下一页</a>`,
			pageURL: chapterURL,
			wantOK:  false,
		},
		{
			name:    "page query increment",
			html:    `<p>no links</p>`,
			pageURL: "https://novel.example.com/read?page=3",
			want:    "https://novel.example.com/read?page=4",
			wantOK:  true,
		},
		{
			name:    "p query increment",
			html:    `<p>no links</p>`,
			pageURL: "https://novel.example.com/pages/read?id=7&p=9",
			want:    "https://novel.example.com/pages/read?id=7&p=10",
			wantOK:  true,
		},
		{
			name:    "page number rolls over digits",
			html:    ``,
			pageURL: "https://novel.example.com/read?book=1&Page=99",
			want:    "https://novel.example.com/read?book=1&Page=100",
			wantOK:  true,
		},
		{
			name:    "p param needs page somewhere in url",
			html:    ``,
			pageURL: "https://novel.example.com/read?p=3",
			wantOK:  false,
		},
		{
			name:    "page in path without param",
			html:    ``,
			pageURL: "https://novel.example.com/page/3",
			wantOK:  false,
		},
		{
			name:    "step param is not a page param",
			html:    ``,
			pageURL: "https://novel.example.com/pages?step=3",
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextPage(mustDoc(t, `<html><body>`+tt.html+`</body></html>`), tt.pageURL)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPage_AnchorWinsOverPageParam(t *testing.T) {
	doc := mustDoc(t, `<html><body><a href="/read?page=10">下一页</a></body></html>`)

	got, ok := NextPage(doc, "https://novel.example.com/read?page=3")
	assert.True(t, ok)
	assert.Equal(t, "https://novel.example.com/read?page=10", got)
}

func TestResolveURL(t *testing.T) {
	assert.Equal(t, "https://a.example/x/2.html", resolveURL("https://a.example/x/1.html", "2.html"))
	assert.Equal(t, "https://a.example/2.html", resolveURL("https://a.example/x/1.html", "/2.html"))
	assert.Equal(t, "http://b.example/2", resolveURL("https://a.example/x/1.html", "http://b.example/2"))
	assert.Equal(t, "https://b.example/2", resolveURL("https://a.example/x/1.html", "//b.example/2"))
	assert.Equal(t, "https://a.example/x/1.html", resolveURL("https://a.example/x/1.html", ""))
	assert.Equal(t, "https://a.example/x/2%25zz.html", resolveURL("https://a.example/x/1.html", "2%zz.html"))
}

func TestNextPage_MalformedHrefStaysOnSite(t *testing.T) {
	doc := mustDoc(t, `<a href="/read/2%zz.html">下一页</a>`)

	next, ok := NextPage(doc, "https://a.example/read/1.html")
	require.True(t, ok)
	assert.Equal(t, "https://a.example/read/2%25zz.html", next)
}
