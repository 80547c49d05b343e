package pacing

import "fmt"

// StalePolicy decides what happens to a manual forecast entry whose date
// has already passed. Actuals are authoritative over manual entries for
// past dates; the policy only controls whether a stale entry with no
// covering actual survives or is discarded.
type StalePolicy int

const (
	// DropStale discards every manual entry dated on or before the as-of
	// date: history belongs to actuals.
	DropStale StalePolicy = iota
	// KeepStale keeps a stale manual entry only when no actual exists for
	// the same investment, month and flow type.
	KeepStale
)

func (p StalePolicy) String() string {
	switch p {
	case DropStale:
		return "drop"
	case KeepStale:
		return "keep"
	default:
		return "unknown"
	}
}

// ParseStalePolicy parses a string into a StalePolicy.
func ParseStalePolicy(s string) (StalePolicy, error) {
	switch s {
	case "drop", "":
		return DropStale, nil
	case "keep":
		return KeepStale, nil
	default:
		return 0, fmt.Errorf("unknown stale policy: %q", s)
	}
}
