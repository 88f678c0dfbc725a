package chapters

import "strings"

// Chapter is identified by its normalized title and owns the text of
// every page fetched for it so far, in fetch order.
type Chapter struct {
	Title     string
	Fragments []string
}

func New(title string) *Chapter {
	return &Chapter{Title: title}
}

func (c *Chapter) Append(fragment string) {
	c.Fragments = append(c.Fragments, fragment)
}

func (c *Chapter) Empty() bool {
	return c == nil || len(c.Fragments) == 0
}

// Body concatenates the fragments without separators.
func (c *Chapter) Body() string {
	return strings.Join(c.Fragments, "")
}

func (c *Chapter) Reset() {
	c.Fragments = nil
}
