package renderer

import "github.com/etnz/pacing"

// cell renders a monetary magnitude for a table cell, "-" when zero, so
// quiet rows read as blanks instead of formatted zeros.
func cell(m pacing.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// marker maps an activity intensity to a compact heat marker.
func marker(i pacing.Intensity) string {
	switch i {
	case pacing.High:
		return "███"
	case pacing.Medium:
		return "██"
	case pacing.Low:
		return "█"
	default:
		return ""
	}
}
