package chapters

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSink appends finished chapters to a single UTF-8 text file.
type FileSink struct {
	path    string
	written int64
}

// NewFileSink truncates (or creates) path and returns a sink appending to it.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("cannot create output folder: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("sink: %w", err)
	}

	return &FileSink{path: path}, nil
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Written() int64 {
	return s.written
}

// Flush writes the title line followed by the concatenated fragments and
// a line break, then clears the fragments. Flushing a nil or empty
// chapter is a no-op, so a second Flush without new content writes nothing.
func (s *FileSink) Flush(ch *Chapter) error {
	if ch.Empty() {
		return nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.path, err)
	}

	n, err := f.WriteString(ch.Title + "\n" + ch.Body() + "\n")
	s.written += int64(n)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("write chapter %q: %w", ch.Title, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", s.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}

	ch.Reset()
	return nil
}
