package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/brogergvhs/noveld/internal/util"
)

type Stats struct {
	Chapters int
	Pages    int
	Bytes    int64
	Written  int64
	Stopped  string
	Output   string
	Elapsed  time.Duration
}

func PrintSummary(w io.Writer, s Stats) {
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Download Summary:")
	_, _ = fmt.Fprintf(w, "Chapters: %d\n", s.Chapters)
	_, _ = fmt.Fprintf(w, "Pages:    %d\n", s.Pages)
	_, _ = fmt.Fprintf(w, "Fetched:  %s\n", util.Human(s.Bytes))
	_, _ = fmt.Fprintf(w, "Written:  %s -> %s\n", util.Human(s.Written), s.Output)
	if s.Stopped != "" {
		_, _ = fmt.Fprintf(w, "Stopped:  %s\n", s.Stopped)
	}
	_, _ = fmt.Fprintf(w, "Time:     %.2fs\n", s.Elapsed.Seconds())
}
