package models

import "strconv"

// Count is a job count that may be unknown, e.g. before the first run.
type Count struct {
	Value int  `json:"value"`
	Known bool `json:"known"`
}

func KnownCount(value int) Count {
	return Count{Value: value, Known: true}
}

// Differs reports whether current should be treated as a change from c.
// An unknown count always differs.
func (c Count) Differs(current int) bool {
	return !c.Known || c.Value != current
}

// Delta returns current minus the known value. ok is false when c is unknown.
func (c Count) Delta(current int) (delta int, ok bool) {
	if !c.Known {
		return 0, false
	}
	return current - c.Value, true
}

func (c Count) String() string {
	if !c.Known {
		return "unknown"
	}
	return strconv.Itoa(c.Value)
}

// SignedDelta formats a delta as "+12", "-3" or "0".
func SignedDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
