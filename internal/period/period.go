// Package period computes the weekly posting period label. Every waffle
// belongs to a week anchored on Wednesday; the label is the date of the most
// recent Wednesday at or before the given time, formatted "YYYY-MM-DD".
package period

import "time"

const layout = "2006-01-02"

// Resolve returns the label of the period containing t: the most recent
// Wednesday at or before t, in t's location. Wednesday itself maps to the
// same day.
func Resolve(t time.Time) string {
	daysBack := (int(t.Weekday()) - int(time.Wednesday) + 7) % 7
	return t.AddDate(0, 0, -daysBack).Format(layout)
}

// IsPostingDay reports whether t falls on Wednesday.
func IsPostingDay(t time.Time) bool {
	return t.Weekday() == time.Wednesday
}
