package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers"
	"github.com/brogergvhs/noveld/internal/providers/generic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	textA = strings.Repeat("A", 120)
	textB = strings.Repeat("B", 120)
	textC = strings.Repeat("C", 120)
)

func novelPage(title, body, next string) string {
	link := ""
	if next != "" {
		link = `<div class="page"><a href="` + next + `">下一页</a></div>`
	}

	return `<html><head><title>` + title + ` - 测试小说网</title></head><body>` +
		`<h1>` + title + `</h1><div id="content">` + body + `</div>` + link +
		`</body></html>`
}

type site struct {
	mu    sync.Mutex
	pages map[string]string
	hits  map[string]int
}

func newSite(pages map[string]string) (*site, *httptest.Server) {
	s := &site{pages: pages, hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}

		s.mu.Lock()
		s.hits[key]++
		s.mu.Unlock()

		body, ok := s.pages[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, body)
	}))

	return s, srv
}

func (s *site) hitCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key]
}

func newTestWalker(t *testing.T, srv *httptest.Server, opts Options) (*Walker, string) {
	t.Helper()

	out := filepath.Join(t.TempDir(), "novel.txt")
	sink, err := chapters.NewFileSink(out)
	require.NoError(t, err)

	scr := generic.NewScraper(srv.Client(), nil, "")
	return New(scr, sink, opts), out
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWalker_EndToEnd(t *testing.T) {
	_, srv := newSite(map[string]string{
		"/1.html": novelPage("Chapter 1", textA, "2.html"),
		"/2.html": novelPage("Chapter 1", textB, "/3.html"),
		"/3.html": novelPage("Chapter 2", textC, ""),
	})
	defer srv.Close()

	w, out := newTestWalker(t, srv, Options{})

	sum, err := w.Run(context.Background(), srv.URL+"/1.html")
	require.NoError(t, err)

	assert.Equal(t, StopEnd, sum.Reason)
	assert.Equal(t, 2, sum.Chapters)
	assert.Equal(t, 3, sum.Pages)
	assert.Equal(t, srv.URL+"/3.html", sum.LastURL)
	assert.Positive(t, sum.Bytes)

	want := "Chapter 1\n" + textA + textB + "\n" + "Chapter 2\n" + textC + "\n"
	assert.Equal(t, want, readOutput(t, out))
}

func TestWalker_CycleGuard(t *testing.T) {
	s, srv := newSite(map[string]string{
		"/a": novelPage("第一章", textA, "/b"),
		"/b": novelPage("第一章", textB, "/a"),
	})
	defer srv.Close()

	w, out := newTestWalker(t, srv, Options{})

	sum, err := w.Run(context.Background(), srv.URL+"/a")
	require.NoError(t, err)

	assert.Equal(t, StopCycle, sum.Reason)
	assert.Equal(t, 1, s.hitCount("/a"))
	assert.Equal(t, 1, s.hitCount("/b"))
	assert.Equal(t, "第一章\n"+textA+textB+"\n", readOutput(t, out))
}

func TestWalker_ContentNotFoundKeepsOpenChapter(t *testing.T) {
	_, srv := newSite(map[string]string{
		"/1": novelPage("Chapter 1", textA, "/2"),
		"/2": novelPage("Chapter 1", "too short", "/3"),
		"/3": novelPage("Chapter 2", textC, ""),
	})
	defer srv.Close()

	w, out := newTestWalker(t, srv, Options{})

	sum, err := w.Run(context.Background(), srv.URL+"/1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrContentNotFound)

	var pe *PageError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, srv.URL+"/2", pe.URL)

	assert.Equal(t, StopFailed, sum.Reason)
	assert.Equal(t, 1, sum.Chapters)
	assert.Equal(t, "Chapter 1\n"+textA+"\n", readOutput(t, out))
}

func TestWalker_FetchErrorTerminates(t *testing.T) {
	s, srv := newSite(map[string]string{
		"/read?page=1": `<html><body><h1>卷一</h1><div class="text">` + textA + `</div></body></html>`,
		"/read?page=2": `<html><body><h1>卷一</h1><div class="text">` + textB + `</div></body></html>`,
	})
	defer srv.Close()

	w, out := newTestWalker(t, srv, Options{})

	sum, err := w.Run(context.Background(), srv.URL+"/read?page=1")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, srv.URL+"/read?page=3", fe.URL)
	assert.Contains(t, fe.Error(), "HTTP 404")
	assert.Equal(t, 1, s.hitCount("/read?page=3"))

	assert.Equal(t, 2, sum.Pages)
	assert.Equal(t, "卷一\n"+textA+textB+"\n", readOutput(t, out))
}

func TestWalker_MaxPages(t *testing.T) {
	s, srv := newSite(map[string]string{
		"/1": novelPage("Chapter 1", textA, "/2"),
		"/2": novelPage("Chapter 2", textB, "/3"),
		"/3": novelPage("Chapter 3", textC, ""),
	})
	defer srv.Close()

	w, out := newTestWalker(t, srv, Options{MaxPages: 2})

	sum, err := w.Run(context.Background(), srv.URL+"/1")
	require.NoError(t, err)

	assert.Equal(t, StopLimit, sum.Reason)
	assert.Equal(t, 0, s.hitCount("/3"))
	assert.Equal(t, "Chapter 1\n"+textA+"\n"+"Chapter 2\n"+textB+"\n", readOutput(t, out))
}

func TestWalker_DelayBeforeEachFetch(t *testing.T) {
	_, srv := newSite(map[string]string{
		"/1": novelPage("Chapter 1", textA, "/2"),
		"/2": novelPage("Chapter 1", textB, ""),
	})
	defer srv.Close()

	w, _ := newTestWalker(t, srv, Options{Delay: 30 * time.Millisecond})

	start := time.Now()
	_, err := w.Run(context.Background(), srv.URL+"/1")
	require.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestWalker_CancelledBeforeStart(t *testing.T) {
	s, srv := newSite(map[string]string{
		"/1": novelPage("Chapter 1", textA, ""),
	})
	defer srv.Close()

	w, out := newTestWalker(t, srv, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := w.Run(ctx, srv.URL+"/1")
	require.NoError(t, err)

	assert.Equal(t, StopInterrupted, sum.Reason)
	assert.Equal(t, 0, s.hitCount("/1"))
	assert.Equal(t, "", readOutput(t, out))
}

type fakePage struct {
	title   string
	content string
	next    string
}

// fakeScraper serves canned pages keyed by URL; the last fetched URL
// stands in for the document.
type fakeScraper struct {
	pages   map[string]fakePage
	current string
	onFetch func(url string) error
}

func (f *fakeScraper) FetchPage(_ context.Context, url string) (*providers.Page, error) {
	if f.onFetch != nil {
		if err := f.onFetch(url); err != nil {
			return nil, err
		}
	}

	if _, ok := f.pages[url]; !ok {
		return nil, errors.New("HTTP 404: Not Found")
	}
	f.current = url

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html></html>"))
	if err != nil {
		return nil, err
	}

	return &providers.Page{URL: url, Doc: doc, Bytes: 10}, nil
}

func (f *fakeScraper) ExtractTitle(_ *goquery.Document) string {
	return f.pages[f.current].title
}

func (f *fakeScraper) ExtractContent(_ *goquery.Document) (string, bool) {
	c := f.pages[f.current].content
	return c, c != ""
}

func (f *fakeScraper) NextPage(_ *goquery.Document, _ string) (string, bool) {
	n := f.pages[f.current].next
	return n, n != ""
}

type memorySink struct {
	flushed []string
	err     error
}

func (m *memorySink) Flush(ch *chapters.Chapter) error {
	if ch.Empty() {
		return nil
	}
	if m.err != nil {
		return m.err
	}
	m.flushed = append(m.flushed, ch.Title+"|"+ch.Body())
	ch.Reset()
	return nil
}

type recordingProgress struct {
	updates []string
	done    int
}

func (p *recordingProgress) Update(pages int, bytes int64, chapter string) {
	p.updates = append(p.updates, fmt.Sprintf("%d/%d/%s", pages, bytes, chapter))
}

func (p *recordingProgress) MarkDone() {
	p.done++
}

func TestWalker_TitleChangesSplitChapters(t *testing.T) {
	scr := &fakeScraper{pages: map[string]fakePage{
		"u1": {title: "一", content: "a1", next: "u2"},
		"u2": {title: "二", content: "b1", next: "u3"},
		"u3": {title: "二", content: "b2", next: "u4"},
		"u4": {title: "一", content: "a2"},
	}}
	sink := &memorySink{}
	prog := &recordingProgress{}

	sum, err := New(scr, sink, Options{Progress: prog}).Run(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, []string{"一|a1", "二|b1b2", "一|a2"}, sink.flushed)
	assert.Equal(t, 3, sum.Chapters)
	assert.Equal(t, []string{"1/10/一", "2/20/二", "3/30/二", "4/40/一"}, prog.updates)
	assert.Equal(t, 1, prog.done)
}

func TestWalker_InterruptFlushesOpenChapter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scr := &fakeScraper{pages: map[string]fakePage{
		"u1": {title: "一", content: "a1", next: "u2"},
		"u2": {title: "一", content: "a2", next: "u3"},
		"u3": {title: "一", content: "a3"},
	}}
	scr.onFetch = func(url string) error {
		if url == "u3" {
			cancel()
			return ctx.Err()
		}
		return nil
	}
	sink := &memorySink{}

	sum, err := New(scr, sink, Options{}).Run(ctx, "u1")
	require.NoError(t, err)

	assert.Equal(t, StopInterrupted, sum.Reason)
	assert.Equal(t, []string{"一|a1a2"}, sink.flushed)
}

func TestWalker_SinkErrorIsReturned(t *testing.T) {
	scr := &fakeScraper{pages: map[string]fakePage{
		"u1": {title: "一", content: "a1", next: "u2"},
		"u2": {title: "二", content: "b1"},
	}}
	sink := &memorySink{err: errors.New("disk full")}

	sum, err := New(scr, sink, Options{}).Run(context.Background(), "u1")
	require.EqualError(t, err, "disk full")
	assert.Equal(t, StopFailed, sum.Reason)
	assert.Equal(t, 2, sum.Pages)
	assert.Empty(t, sink.flushed)
}

func TestWalker_VisitedSetSpansRuns(t *testing.T) {
	scr := &fakeScraper{pages: map[string]fakePage{
		"u1": {title: "一", content: "a1"},
	}}
	sink := &memorySink{}
	w := New(scr, sink, Options{})

	_, err := w.Run(context.Background(), "u1")
	require.NoError(t, err)

	sum, err := w.Run(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, StopCycle, sum.Reason)
	assert.Equal(t, 0, sum.Pages)
	assert.Equal(t, []string{"一|a1"}, sink.flushed)
}
