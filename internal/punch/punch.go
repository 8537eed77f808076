// Package punch turns day-bucketed clock entries into display summaries.
package punch

import (
	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// Placeholders shown where invalid entries leave nothing to compute.
const (
	NoTime     = "XX:XX"
	NoDuration = "Xh XXm"
)

// EntryList summarizes every bucket of c. The last bucket comes first in the
// result; buckets are never re-sorted by their day key.
func EntryList(c model.Collection) []model.DaySummary {
	days := make([]model.DaySummary, len(c))
	for i, b := range c {
		days[len(c)-1-i] = summarizeDay(b)
	}
	return days
}

// summarizeDay builds the summary of one bucket. The day is valid only if all
// of its entries are; From spans all entries, To only valid days, and the
// duration sums the valid entries alone.
func summarizeDay(b model.Bucket) model.DaySummary {
	day := model.DaySummary{
		Date:     timecalc.FormatDate(b.Day * 1000),
		Valid:    true,
		From:     NoTime,
		To:       NoTime,
		Duration: NoDuration,
		Entries:  make([]model.EntrySummary, 0, len(b.Entries)),
	}

	var (
		minFrom, maxTo int64
		validEntries   int
	)
	for i, e := range b.Entries {
		if i == 0 || e.From < minFrom {
			minFrom = e.From
		}
		if i == 0 || e.To > maxTo {
			maxTo = e.To
		}
		if e.Valid {
			validEntries++
		} else {
			day.Valid = false
		}
		day.Entries = append(day.Entries, summarizeEntry(e))
	}

	if len(b.Entries) == 0 {
		return day
	}
	day.From = timecalc.FormatTime(minFrom * 1000)
	if day.Valid {
		day.To = timecalc.FormatTime(maxTo * 1000)
	}
	if validEntries > 0 {
		day.Duration = timecalc.FormatDuration(WorkedSeconds(b) * 1000)
	}
	return day
}

func summarizeEntry(e model.RawEntry) model.EntrySummary {
	s := model.EntrySummary{
		From:     timecalc.FormatTime(e.From * 1000),
		To:       NoTime,
		Valid:    e.Valid,
		Duration: NoDuration,
	}
	if e.Valid {
		s.To = timecalc.FormatTime(e.To * 1000)
		s.Duration = timecalc.FormatDuration((e.To - e.From) * 1000)
	}
	return s
}

// WorkedSeconds sums the spans of the valid entries of b.
func WorkedSeconds(b model.Bucket) int64 {
	var total int64
	for _, e := range b.Entries {
		if e.Valid {
			total += e.To - e.From
		}
	}
	return total
}
