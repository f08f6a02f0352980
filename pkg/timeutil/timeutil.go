package timeutil

import (
	"fmt"
	"time"
)

// Relative formats t relative to now: "5 minutes ago", "in 2 hours",
// "just now". Granularity caps at days; anything older falls back to the
// absolute date.
func Relative(t time.Time) string {
	d := time.Until(t)
	past := d < 0
	if past {
		d = -d
	}

	switch {
	case d < 10*time.Second:
		return "just now"
	case d >= 30*24*time.Hour:
		return t.Format("2006-01-02")
	}

	var n int
	var unit string
	switch {
	case d < time.Minute:
		n, unit = int(d.Seconds()), "second"
	case d < time.Hour:
		n, unit = int(d.Minutes()), "minute"
	case d < 24*time.Hour:
		n, unit = int(d.Hours()), "hour"
	default:
		n, unit = int(d.Hours()/24), "day"
	}
	if n != 1 {
		unit += "s"
	}

	if past {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("in %d %s", n, unit)
}
