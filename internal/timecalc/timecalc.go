package timecalc

import (
	"fmt"
	"time"
)

const (
	msPerMinute = 60 * 1000
	msPerHour   = 60 * msPerMinute
)

// FormatDate formats epoch milliseconds as "D.MM.YYYY" in the local calendar.
func FormatDate(epochMillis int64) string {
	return time.UnixMilli(epochMillis).In(time.Local).Format("2.01.2006")
}

// FormatTime formats epoch milliseconds as a 24-hour "HH:MM" in local time.
func FormatTime(epochMillis int64) string {
	return time.UnixMilli(epochMillis).In(time.Local).Format("15:04")
}

// FormatDuration formats a span of milliseconds as "Hh MMm".
// Positive spans truncate to whole minutes. Negative spans come from clock
// skew between client and server: their magnitude is rounded up to the next
// whole minute and the sign is dropped, so -30s renders as "0h 01m".
func FormatDuration(spanMillis int64) string {
	if spanMillis < 0 {
		// -(x+1)+1 keeps math.MinInt64 in range.
		mag := uint64(-(spanMillis + 1)) + 1
		minutes := (mag + msPerMinute - 1) / msPerMinute
		return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dh %02dm", spanMillis/msPerHour, (spanMillis/msPerMinute)%60)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := EndOfDay(monday.AddDate(0, 0, 6))
	return monday, sunday
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
