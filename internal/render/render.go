// Package render draws day summaries and clock status for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/timecalc"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

// Renderer formats views either plainly or with ANSI styling.
type Renderer struct {
	styled bool

	red    lipgloss.Style
	green  lipgloss.Style
	dim    lipgloss.Style
	bold   lipgloss.Style
	header lipgloss.Style
	box    lipgloss.Style
}

// New returns a Renderer for out. With styled false every view is plain text.
// force skips terminal detection and always emits colors.
func New(out io.Writer, styled, force bool) *Renderer {
	lr := lipgloss.NewRenderer(out)
	if force {
		lr.SetColorProfile(termenv.TrueColor)
	}
	return &Renderer{
		styled: styled,
		red:    lr.NewStyle().Foreground(colorRed),
		green:  lr.NewStyle().Foreground(colorGreen),
		dim:    lr.NewStyle().Foreground(colorDim),
		bold:   lr.NewStyle().Foreground(colorFg).Bold(true),
		header: lr.NewStyle().Foreground(colorHeader).Bold(true),
		box: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			PaddingLeft(2).
			PaddingRight(2),
	}
}

func (r *Renderer) paint(s lipgloss.Style, text string) string {
	if !r.styled {
		return text
	}
	return s.Render(text)
}

// Header renders a section title.
func (r *Renderer) Header(text string) string {
	return r.paint(r.header, text)
}

// History renders day summaries in the given order, each day followed by
// its entries. Invalid days and entries are drawn in red.
func (r *Renderer) History(days []model.DaySummary) string {
	if len(days) == 0 {
		return "No entries found.\n"
	}

	var b strings.Builder
	for _, d := range days {
		line := fmt.Sprintf("%s  %s  (%s – %s)", d.Date, d.Duration, d.From, d.To)
		if d.Valid {
			b.WriteString(r.paint(r.bold, line))
		} else {
			b.WriteString(r.paint(r.red.Bold(true), line))
		}
		b.WriteString("\n")

		for _, e := range d.Entries {
			entry := fmt.Sprintf("  %s - %s  (%s)", e.From, e.To, e.Duration)
			if e.Valid {
				b.WriteString(r.paint(r.dim, entry))
			} else {
				b.WriteString(r.paint(r.red, entry))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Elapsed renders how long ago the epoch second since was, as seen at now.
func Elapsed(since int64, now time.Time) string {
	return timecalc.FormatDuration(now.UnixMilli() - since*1000)
}

// Status renders the dashboard for s as seen at now.
func (r *Renderer) Status(s model.Status, now time.Time) string {
	var b strings.Builder

	if s.Online == 1 {
		fmt.Fprintf(&b, "%s person is clocked in right now.\n", r.paint(r.bold, "1"))
	} else {
		fmt.Fprintf(&b, "%s people are clocked in right now.\n", r.paint(r.bold, fmt.Sprint(s.Online)))
	}

	var running int64
	if s.ClockedIn() {
		running = now.Unix() - s.Since
		fmt.Fprintf(&b, "You've been %s for %s.\n",
			r.paint(r.green.Bold(true), "clocked in"), r.paint(r.bold, Elapsed(s.Since, now)))
	} else {
		fmt.Fprintf(&b, "You're currently %s.\n", r.paint(r.bold, "clocked out"))
	}

	b.WriteString(r.delta(s.DeltaForDay+running, "day"))
	b.WriteString(r.delta(s.DeltaForMonth+running, "month"))

	out := strings.TrimRight(b.String(), "\n")
	if !r.styled {
		return out + "\n"
	}
	return r.box.Render(r.header.Render("STATUS")+"\n\n"+out) + "\n"
}

// delta renders a signed number of seconds as "You're Xh YYm ahead|behind".
func (r *Renderer) delta(seconds int64, period string) string {
	word, style := "ahead", r.green
	if seconds < 0 {
		word, style = "behind", r.red
		seconds = -seconds
	}
	amount := timecalc.FormatDuration(seconds * 1000)
	return fmt.Sprintf("You're %s for the %s.\n", r.paint(style.Bold(true), amount+" "+word), period)
}

// OnlineUsers renders the admin list of clocked-in users.
func (r *Renderer) OnlineUsers(users []model.OnlineUser, now time.Time) string {
	if len(users) == 0 {
		return "Nobody is clocked in.\n"
	}
	var b strings.Builder
	for _, u := range users {
		fmt.Fprintf(&b, "uid %-6d since %s %s  (%s)\n", u.UID,
			timecalc.FormatDate(u.Since*1000), timecalc.FormatTime(u.Since*1000),
			r.paint(r.bold, Elapsed(u.Since, now)))
	}
	return b.String()
}
