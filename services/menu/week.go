package menu

import (
	"time"

	"hudsmenu-backend/lib/timezone"
)

// Week is the Monday-anchored week the menu site is currently displaying.
type Week struct {
	Start time.Time
}

func CurrentWeek(now time.Time) Week {
	start, _ := timezone.GetCurrentWeek(now)
	return Week{Start: start}
}

func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, 6)
}

// Dates returns the 7 dates of the week, Monday first.
func (w Week) Dates() [7]time.Time {
	var dates [7]time.Time
	for i := range dates {
		dates[i] = w.Start.AddDate(0, 0, i)
	}
	return dates
}

func (w Week) Bounds() (startISO, endISO string) {
	return isoDate(w.Start), isoDate(w.End())
}

// Contains reports whether the given date falls inside the week.
func (w Week) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return !d.Before(w.Start) && !d.After(w.End())
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}
