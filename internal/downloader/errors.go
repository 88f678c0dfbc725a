package downloader

import (
	"errors"
	"fmt"
)

// ErrContentNotFound means no content selector matched a large enough
// block on the page.
var ErrContentNotFound = errors.New("no content found")

// FetchError wraps network failures, timeouts and non-2xx responses.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PageError reports a page that was fetched but could not be used.
type PageError struct {
	URL string
	Err error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %s: %v", e.URL, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
