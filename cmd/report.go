package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/punch"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// reportFormat is a pflag.Value restricted to the weekly report formats.
type reportFormat string

const (
	reportMarkdown reportFormat = "md"
	reportCSV      reportFormat = "csv"
	reportJSON     reportFormat = "json"
)

var _ pflag.Value = (*reportFormat)(nil)

func (f *reportFormat) String() string { return string(*f) }

func (f *reportFormat) Set(v string) error {
	switch reportFormat(strings.ToLower(v)) {
	case reportMarkdown, reportCSV, reportJSON:
		*f = reportFormat(strings.ToLower(v))
		return nil
	}
	return fmt.Errorf("unknown format %q (want md, csv or json)", v)
}

func (f *reportFormat) Type() string { return "format" }

var reportOutput = reportMarkdown

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show worked time per day for the current week",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().Var(&reportOutput, "format", "Output format: md, csv, json")
}

// dayTotal is one row of the weekly report.
type dayTotal struct {
	Date    string `json:"date"`
	Seconds int64  `json:"duration_seconds"`
}

func runReport(cmd *cobra.Command, args []string) error {
	now := time.Now()
	e := loadEnv(cmd.Context(), true)

	entries, err := e.client.Entries(cmd.Context())
	if err != nil {
		exitWith(2, err)
	}
	from, to := timecalc.WeekRange(now)
	rows := weekTotals(filterBuckets(entries, from, to))

	if err := writeReport(os.Stdout, reportOutput, timecalc.ISOWeekLabel(now), rows); err != nil {
		exitWith(2, err)
	}
	return nil
}

// weekTotals sums the valid work of each bucket, oldest day first.
func weekTotals(c model.Collection) []dayTotal {
	rows := make([]dayTotal, 0, len(c))
	for _, b := range c {
		rows = append(rows, dayTotal{
			Date:    timecalc.FormatDate(b.Day * 1000),
			Seconds: punch.WorkedSeconds(b),
		})
	}
	return rows
}

func writeReport(w io.Writer, format reportFormat, label string, rows []dayTotal) error {
	var total int64
	for _, r := range rows {
		total += r.Seconds
	}

	switch format {
	case reportCSV:
		if _, err := fmt.Fprintln(w, "date,duration_minutes"); err != nil {
			return err
		}
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%s,%d\n", csvEscape(r.Date), r.Seconds/60); err != nil {
				return err
			}
		}
		return nil
	case reportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Week         string     `json:"week"`
			Days         []dayTotal `json:"days"`
			TotalSeconds int64      `json:"total_seconds"`
		}{label, rows, total})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Week %s\n", label)
	b.WriteString("--------------------------------\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-20s%s\n", r.Date, timecalc.FormatDuration(r.Seconds*1000))
	}
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "%-20s%s\n", "Total", timecalc.FormatDuration(total*1000))
	_, err := io.WriteString(w, b.String())
	return err
}
