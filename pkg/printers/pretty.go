package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/progress"
	"tableflip.dev/routine/pkg/quote"
	"tableflip.dev/routine/pkg/schedule"
	"tableflip.dev/routine/pkg/weather"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	Width  int
}

const barWidth = 30

var (
	spacing = strings.Repeat(" ", len("screens-off  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 72
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, done, total int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d/%d\n", done, total)
}

// Section prints one section's tasks with their check state.
func (pp *PrettyPrint) Section(sec app.SectionView) {
	done := 0
	for _, t := range sec.Tasks {
		if t.Done {
			done++
		}
	}
	pp.TitleWithCount(strings.TrimSpace(sec.Icon+" "+sec.Title), done, len(sec.Tasks))

	if len(sec.Tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	t := color.New()
	d := color.New(color.Faint, color.CrossedOut)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)

	for _, task := range sec.Tasks {
		if pp.ShowID {
			_, _ = y.Fprint(pp.out(), task.ID)
			if pad := len(spacing) - len(task.ID); pad > 0 {
				_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
			} else {
				_, _ = y.Fprint(pp.out(), " ")
			}
		}
		if task.Done {
			_, _ = t.Fprint(pp.out(), "☑ ")
			_, _ = d.Fprintf(pp.out(), "%s %s\n", task.Icon, task.Text)
		} else {
			_, _ = t.Fprintf(pp.out(), "☐ %s %s\n", task.Icon, task.Text)
		}
	}
	_, _ = t.Fprintln(pp.out(), "")
}

// BandColor is the colour used for a progress band.
func BandColor(b progress.Band) *color.Color {
	switch b {
	case progress.BandComplete:
		return color.New(color.FgHiGreen, color.Bold)
	case progress.BandHigh:
		return color.New(color.FgGreen)
	case progress.BandMid:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// Bar renders a fixed-width text progress bar.
func Bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (pp *PrettyPrint) Summary(s progress.Summary) {
	c := BandColor(s.Band)
	_, _ = c.Fprintf(pp.out(), "%s %s\n", Bar(s.Percentage, barWidth), s)
}

func (pp *PrettyPrint) Celebration(c *progress.Celebration) {
	if c == nil {
		return
	}
	var p *color.Color
	switch c.Tier {
	case progress.TierMega:
		p = color.New(color.FgHiMagenta, color.Bold)
	case progress.TierBig:
		p = color.New(color.FgHiCyan, color.Bold)
	default:
		p = color.New(color.FgCyan)
	}
	_, _ = p.Fprintf(pp.out(), "🎉 %.0f%% done", c.Percentage)
	if c.Message != "" {
		_, _ = p.Fprintf(pp.out(), " · %s", c.Message)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

// Weather prints an outcome; the unavailable placeholder when there is no snapshot.
func (pp *PrettyPrint) Weather(out weather.Outcome) {
	f := color.New(color.Faint, color.Italic)
	s := out.Snapshot
	if s == nil {
		msg := out.Message
		if msg == "" {
			msg = weather.Unavailable
		}
		_, _ = f.Fprintln(pp.out(), msg)
		return
	}

	b := color.New(color.Bold)
	_, _ = b.Fprintf(pp.out(), "%d°C / %d°F", s.TemperatureC, s.TemperatureF)
	_, _ = fmt.Fprintf(pp.out(), "  %s · %s\n", s.Description, s.LocationLabel)

	// low |----*----| high
	pos := int(s.Position() / 100 * barWidth)
	if pos >= barWidth {
		pos = barWidth - 1
	}
	gauge := strings.Repeat("─", pos) + "●" + strings.Repeat("─", barWidth-pos-1)
	_, _ = fmt.Fprintf(pp.out(), "%3d°C %s %d°C\n", s.LowC, gauge, s.HighC)
	_, _ = f.Fprintf(pp.out(), "UV %d · Humidity %d%%", s.UVIndex, s.Humidity)
	if out.Source == weather.SourceMock {
		_, _ = f.Fprint(pp.out(), " · estimated")
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Quote(q quote.Quote) {
	i := color.New(color.Italic)
	f := color.New(color.Faint)
	text := wordwrap.String("“"+q.Text+"”", pp.width()-2)
	_, _ = i.Fprintln(pp.out(), indent.String(text, 2))
	_, _ = f.Fprintf(pp.out(), "  — %s\n", q.Author)
}

// Dashboard prints the full checklist view.
func (pp *PrettyPrint) Dashboard(d app.Dashboard) {
	pp.NewLine()
	pp.Title("Daily Routine · " + string(d.Session.Day))
	pp.Summary(d.Summary)
	pp.NewLine()
	for _, sec := range d.Sections {
		pp.Section(sec)
	}
	if d.Weather != nil {
		pp.Weather(*d.Weather)
		pp.NewLine()
	}
	pp.Quote(d.Quote)
}

// Schedule prints the loaded catalog as a table.
func (pp *PrettyPrint) Schedule(s *schedule.Schedule) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Section"), bold.Sprint("ID"), bold.Sprint("Task"))
	for _, sec := range s.Sections() {
		for i, t := range sec.Tasks {
			name := ""
			if i == 0 {
				name = strings.TrimSpace(sec.Icon + " " + sec.Title)
			}
			tbl.AddRow(name, t.ID, strings.TrimSpace(t.Icon+" "+t.Text))
		}
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// History prints one row per day of a report.
func (pp *PrettyPrint) History(r app.ReportResult) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Day"), bold.Sprint("Progress"), "")
	for _, d := range r.Days {
		c := BandColor(d.Summary.Band)
		tbl.AddRow(string(d.Day), c.Sprint(Bar(d.Summary.Percentage, 20)), d.Summary.String())
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = bold.Fprintf(pp.out(), "Streak: %d day(s)\n", r.Streak)
}
