package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/noveld/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager(out io.Writer) *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(12),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

func (pm *MPBProgressManager) Register(prefix string) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
	}
	h.initBar()
	return h
}

// ProgressHandle is a spinner line for a walk whose length is unknown
// up front.
type ProgressHandle struct {
	pm     *MPBProgressManager
	prefix string
	bar    *mpb.Bar

	pages   atomic.Int64
	bytes   atomic.Int64
	chapter atomic.Value

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()
	h.chapter.Store("")

	h.bar = h.pm.p.New(
		0,
		mpb.SpinnerStyle(),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" %d pages", h.pages.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(h.bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					return fmt.Sprintf(" | %ds", h.elapsed.Load())
				}

				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
			decor.Any(func(_ decor.Statistics) string {
				if ch, _ := h.chapter.Load().(string); ch != "" {
					return " | " + ch
				}
				return ""
			}),
		),
	)
}

func (h *ProgressHandle) Update(pages int, bytes int64, chapter string) {
	if h.final.Load() {
		return
	}

	h.pages.Store(int64(pages))
	h.bytes.Store(bytes)
	h.chapter.Store(chapter)
	h.bar.SetCurrent(int64(pages))
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.elapsed.Store(int64(time.Since(h.start).Seconds()))
	h.bar.SetTotal(-1, true)
}
