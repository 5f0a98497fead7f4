package formatter

import (
	"fmt"
	"math"
	"time"
)

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "today"
	case days == -1:
		return "yesterday"
	case days > 0:
		// Only clock skew puts a stored timestamp in the future.
		return t.Format("Jan 2, 2006")
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	case days > -365:
		return fmt.Sprintf("%dmo ago", -days/30)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// Truncate shortens s to at most n visible runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
