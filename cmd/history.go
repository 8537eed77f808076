package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/punch"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// outputFormat is a pflag.Value restricted to the supported history formats.
type outputFormat string

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
	formatCSV  outputFormat = "csv"
)

var _ pflag.Value = (*outputFormat)(nil)

func (f *outputFormat) String() string { return string(*f) }

func (f *outputFormat) Set(v string) error {
	switch outputFormat(strings.ToLower(v)) {
	case formatText, formatJSON, formatYAML, formatCSV:
		*f = outputFormat(strings.ToLower(v))
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json, yaml or csv)", v)
}

func (f *outputFormat) Type() string { return "format" }

var (
	historyToday  bool
	historyWeek   bool
	historyFormat = formatText
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List your clock entries grouped by day, newest day first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyToday, "today", false, "Only today")
	historyCmd.Flags().BoolVar(&historyWeek, "week", false, "Only the current week")
	historyCmd.Flags().Var(&historyFormat, "format", "Output format: text, json, yaml, csv")
	historyCmd.MarkFlagsMutuallyExclusive("today", "week")
}

func runHistory(cmd *cobra.Command, args []string) error {
	now := time.Now()
	e := loadEnv(cmd.Context(), true)

	entries, err := e.client.Entries(cmd.Context())
	if err != nil {
		exitWith(2, err)
	}

	switch {
	case historyToday:
		entries = bucketsOn(entries, now)
	case historyWeek:
		from, to := timecalc.WeekRange(now)
		entries = filterBuckets(entries, from, to)
	}
	days := punch.EntryList(entries)

	if historyFormat != formatText {
		if err := writeHistory(os.Stdout, historyFormat, days); err != nil {
			exitWith(2, err)
		}
		return nil
	}

	if historyWeek {
		fmt.Println(e.out.Header("Week " + timecalc.ISOWeekLabel(now)))
	}
	fmt.Print(e.out.History(days))
	return nil
}

// filterBuckets keeps the buckets whose day falls on a calendar day between
// from and to, inclusive. Order is preserved.
func filterBuckets(c model.Collection, from, to time.Time) model.Collection {
	lo := timecalc.StartOfDay(from)
	hi := timecalc.EndOfDay(to)
	var out model.Collection
	for _, b := range c {
		day := time.Unix(b.Day, 0).In(time.Local)
		if day.Before(lo) || day.After(hi) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// bucketsOn keeps the buckets whose day is the calendar day of t.
func bucketsOn(c model.Collection, t time.Time) model.Collection {
	var out model.Collection
	for _, b := range c {
		if timecalc.SameDay(time.Unix(b.Day, 0).In(t.Location()), t) {
			out = append(out, b)
		}
	}
	return out
}

// writeHistory writes days in one of the machine-readable formats.
func writeHistory(w io.Writer, f outputFormat, days []model.DaySummary) error {
	if days == nil {
		days = []model.DaySummary{}
	}
	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(days)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(days); err != nil {
			return err
		}
		return enc.Close()
	case formatCSV:
		return writeHistoryCSV(w, days)
	}
	return errors.New("text is not an export format")
}

// writeHistoryCSV writes one row per entry.
func writeHistoryCSV(w io.Writer, days []model.DaySummary) error {
	if _, err := fmt.Fprintln(w, "date,from,to,duration,valid"); err != nil {
		return err
	}
	for _, d := range days {
		for _, e := range d.Entries {
			_, err := fmt.Fprintf(w, "%s,%s,%s,%s,%t\n",
				csvEscape(d.Date), csvEscape(e.From), csvEscape(e.To), csvEscape(e.Duration), e.Valid)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
