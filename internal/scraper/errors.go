package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrHTTPStatus     = errors.New("unexpected http status")
	ErrNoMatch        = errors.New("selector matched no elements")
	ErrAmbiguous      = errors.New("selector matched elements with different counts")
	ErrNoInteger      = errors.New("matched text contains no integer")
	ErrInvalidPattern = errors.New("invalid pattern")
)

// FetchError reports a failed page download: network error, timeout or
// non-success status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: http %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractionError reports that no single count could be read from the page.
type ExtractionError struct {
	Selector string
	Text     string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("extract %q: %v (text %q)", e.Selector, e.Err, e.Text)
	}
	return fmt.Sprintf("extract %q: %v", e.Selector, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
