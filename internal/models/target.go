package models

// Target identifies the page to watch and where the count lives on it.
type Target struct {
	URL      string `json:"url"`
	Selector string `json:"selector"`
	// Pattern is an optional regular expression applied to the matched text.
	// The first capture group, or the whole match, must hold the count.
	Pattern string `json:"pattern,omitempty"`
}
