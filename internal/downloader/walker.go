package downloader

import (
	"context"
	"time"

	"github.com/brogergvhs/noveld/internal/chapters"
	"github.com/brogergvhs/noveld/internal/providers"
)

type ChapterSink interface {
	Flush(ch *chapters.Chapter) error
}

type Progress interface {
	Update(pages int, bytes int64, chapter string)
	MarkDone()
}

type Logger interface {
	Debugf(string, ...any)
	Infof(string, ...any)
	Errorf(string, ...any)
}

type Options struct {
	// Delay is slept before every request.
	Delay time.Duration
	// MaxPages stops the walk after that many fetched pages; 0 means no limit.
	MaxPages int
	Progress Progress
	Log      Logger
}

// Walker follows next-page links from a start URL, grouping page text
// into chapters by title and handing finished chapters to a sink.
type Walker struct {
	scr     providers.Scraper
	sink    ChapterSink
	opts    Options
	visited VisitedSet
}

func New(scr providers.Scraper, sink ChapterSink, opts Options) *Walker {
	return &Walker{
		scr:     scr,
		sink:    sink,
		opts:    opts,
		visited: VisitedSet{},
	}
}

// Run walks from startURL until no next link is found, a URL repeats,
// the page limit is hit, ctx is cancelled or a page fails. The open
// chapter is always flushed before Run returns. The returned error is a
// *FetchError, a *PageError or a sink error; cycles, limits and
// cancellation are reported through Summary.Reason only.
func (w *Walker) Run(ctx context.Context, startURL string) (Summary, error) {
	st := &WalkState{URL: startURL}

	if w.opts.Progress != nil {
		defer w.opts.Progress.MarkDone()
	}

	reason, err := w.walk(ctx, st)

	if ferr := w.flush(st); ferr != nil {
		w.errorf("Saving chapter %q failed: %v\n", st.title(), ferr)
		if err == nil {
			err = ferr
			reason = StopFailed
		}
	}

	return Summary{
		Chapters: st.Chapters,
		Pages:    st.Pages,
		Bytes:    st.Bytes,
		LastURL:  st.URL,
		Reason:   reason,
	}, err
}

func (w *Walker) walk(ctx context.Context, st *WalkState) (StopReason, error) {
	for {
		if w.visited.Has(st.URL) {
			w.debugf("Already visited %s, stopping\n", st.URL)
			return StopCycle, nil
		}
		if w.opts.MaxPages > 0 && st.Pages >= w.opts.MaxPages {
			return StopLimit, nil
		}

		w.visited.Add(st.URL)

		if err := w.pause(ctx); err != nil {
			return StopInterrupted, nil
		}

		page, err := w.scr.FetchPage(ctx, st.URL)
		if err != nil {
			if ctx.Err() != nil {
				return StopInterrupted, nil
			}
			w.errorf("Fetch failed: %s - %v\n", st.URL, err)
			return StopFailed, &FetchError{URL: st.URL, Err: err}
		}

		st.Pages++
		st.Bytes += page.Bytes

		title := w.scr.ExtractTitle(page.Doc)
		content, ok := w.scr.ExtractContent(page.Doc)
		if !ok {
			w.errorf("No chapter content found: %s\n", st.URL)
			return StopFailed, &PageError{URL: st.URL, Err: ErrContentNotFound}
		}

		if st.Chapter == nil || title != st.Chapter.Title {
			if err := w.flush(st); err != nil {
				return StopFailed, err
			}
			st.Chapter = chapters.New(title)
			st.Chapters++
			w.debugf("New chapter %d: %s\n", st.Chapters, title)
		}
		st.Chapter.Append(content)

		if w.opts.Progress != nil {
			w.opts.Progress.Update(st.Pages, st.Bytes, title)
		}

		next, ok := w.scr.NextPage(page.Doc, st.URL)
		if !ok {
			return StopEnd, nil
		}
		st.URL = next
	}
}

func (w *Walker) flush(st *WalkState) error {
	if st.Chapter.Empty() {
		return nil
	}

	title := st.Chapter.Title
	if err := w.sink.Flush(st.Chapter); err != nil {
		return err
	}

	w.infof("Saved chapter: %s\n", title)
	return nil
}

func (w *Walker) pause(ctx context.Context) error {
	if w.opts.Delay <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(w.opts.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (w *Walker) debugf(format string, args ...any) {
	if w.opts.Log != nil {
		w.opts.Log.Debugf(format, args...)
	}
}

func (w *Walker) infof(format string, args ...any) {
	if w.opts.Log != nil {
		w.opts.Log.Infof(format, args...)
	}
}

func (w *Walker) errorf(format string, args ...any) {
	if w.opts.Log != nil {
		w.opts.Log.Errorf(format, args...)
	}
}
