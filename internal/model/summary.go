package model

// DaySummary is the rendered view of one day bucket.
type DaySummary struct {
	Date     string         `json:"date" yaml:"date"`
	Valid    bool           `json:"valid" yaml:"valid"`
	From     string         `json:"from" yaml:"from"`
	To       string         `json:"to" yaml:"to"`
	Duration string         `json:"duration" yaml:"duration"`
	Entries  []EntrySummary `json:"entries" yaml:"entries"`
}

// EntrySummary is the rendered view of a single RawEntry.
type EntrySummary struct {
	From     string `json:"from" yaml:"from"`
	To       string `json:"to" yaml:"to"`
	Valid    bool   `json:"valid" yaml:"valid"`
	Duration string `json:"duration" yaml:"duration"`
}
