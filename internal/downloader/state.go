package downloader

import "github.com/brogergvhs/noveld/internal/chapters"

// VisitedSet holds every URL fetched by a Walker. It only grows.
type VisitedSet map[string]struct{}

func (v VisitedSet) Has(url string) bool {
	_, ok := v[url]
	return ok
}

func (v VisitedSet) Add(url string) {
	v[url] = struct{}{}
}

// WalkState is owned by a single Run call.
type WalkState struct {
	URL      string
	Chapter  *chapters.Chapter
	Chapters int
	Pages    int
	Bytes    int64
}

func (st *WalkState) title() string {
	if st.Chapter == nil {
		return ""
	}
	return st.Chapter.Title
}

type StopReason string

const (
	StopEnd         StopReason = "end of pagination"
	StopCycle       StopReason = "next link already visited"
	StopLimit       StopReason = "page limit reached"
	StopInterrupted StopReason = "interrupted"
	StopFailed      StopReason = "failed"
)

type Summary struct {
	Chapters int
	Pages    int
	Bytes    int64
	LastURL  string
	Reason   StopReason
}
