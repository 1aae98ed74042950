package monitor

// Phase is a step of a single monitoring pass.
type Phase int

const (
	PhaseFetching Phase = iota
	PhaseExtracting
	PhaseComparing
	PhaseNotifying
	PhasePersisting
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseExtracting:
		return "extracting"
	case PhaseComparing:
		return "comparing"
	case PhaseNotifying:
		return "notifying"
	case PhasePersisting:
		return "persisting"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}
