package models

import "time"

// Observation is the outcome of one successful extraction.
type Observation struct {
	URL        string    `json:"url"`
	Selector   string    `json:"selector"`
	Count      int       `json:"count"`
	Previous   Count     `json:"previous"`
	Changed    bool      `json:"changed"`
	Notified   bool      `json:"notified"`
	ObservedAt time.Time `json:"observed_at"`
}

// Delta returns the signed change against the previous count, if known.
func (o Observation) Delta() (int, bool) {
	return o.Previous.Delta(o.Count)
}
