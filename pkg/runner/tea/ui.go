package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/geo"
	routineprogress "tableflip.dev/routine/pkg/progress"
	"tableflip.dev/routine/pkg/runner/tea/internal/theme"
	"tableflip.dev/routine/pkg/weather"
)

// Model states
type mode int

const (
	modeNormal mode = iota
	modeLocation
	modeConfirmReset
)

// pollInterval re-reads the dashboard so rollover and writes from other
// processes show up.
const pollInterval = time.Minute

const normalHelp = "j/k move · space toggle · l location · w weather · r reset · q quit"

// Model contains UI state
type Model struct {
	svc  *app.Session
	ctx  context.Context
	mode mode

	dash   app.Dashboard
	loaded bool
	cursor int

	input textinput.Model
	bar   progress.Model
	theme theme.Theme

	status      string
	alert       string
	celebration *routineprogress.Celebration

	termWidth  int
	termHeight int
}

// New creates a new UI model backed by the Session.
func New(svc *app.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "City, region"
	ti.CharLimit = 128
	ti.Prompt = "Location: "

	return Model{
		svc:    svc,
		ctx:    context.Background(),
		mode:   modeNormal,
		input:  ti,
		bar:    progress.New(progress.WithSolidFill(theme.ProgressColor(0)), progress.WithoutPercentage()),
		theme:  theme.Default(),
		status: normalHelp,
	}
}

// messages
type errMsg struct{ err error }
type dashboardMsg struct{ dash app.Dashboard }
type toggledMsg struct{ res app.ToggleResult }
type locationMsg struct{ place geo.Place }
type weatherMsg struct{ out weather.Outcome }
type resetMsg struct{}
type tickMsg time.Time

// Init loads initial data
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDashboard(), m.loadWeather(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) loadDashboard() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return errMsg{app.ErrNoPersistence}
		}
		return dashboardMsg{svc.Dashboard(ctx)}
	}
}

func (m Model) loadWeather() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if svc == nil {
			return nil
		}
		return weatherMsg{svc.Weather(ctx)}
	}
}

func (m Model) toggle(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		res, err := svc.Toggle(ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return toggledMsg{res}
	}
}

func (m Model) reset() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.Reset(ctx); err != nil {
			return errMsg{err}
		}
		return resetMsg{}
	}
}

func (m Model) setLocation(query string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		place, err := svc.SetLocation(ctx, query)
		if err != nil {
			if errors.Is(err, geo.ErrEmptyQuery) {
				return nil
			}
			return errMsg{fmt.Errorf("could not find %q", query)}
		}
		return locationMsg{place}
	}
}

// tasks flattens the dashboard so the cursor can move across sections.
func (m Model) tasks() []app.TaskView {
	var out []app.TaskView
	for _, sec := range m.dash.Sections {
		out = append(out, sec.Tasks...)
	}
	return out
}

func (m Model) currentTask() (app.TaskView, bool) {
	ts := m.tasks()
	if m.cursor < 0 || m.cursor >= len(ts) {
		return app.TaskView{}, false
	}
	return ts[m.cursor], true
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.bar.Width = clamp(msg.Width-20, 10, 60)
	case errMsg:
		m.alert = msg.err.Error()
	case dashboardMsg:
		prev := m.dash.Session.ID
		m.dash = msg.dash
		m.loaded = true
		if n := len(m.tasks()); m.cursor >= n {
			m.cursor = max(0, n-1)
		}
		if prev != "" && prev != msg.dash.Session.ID {
			// New day.
			m.celebration = nil
			m.alert = ""
			m.status = "A new day: " + string(msg.dash.Session.Day)
			cmds = append(cmds, m.loadWeather())
		}
	case weatherMsg:
		out := msg.out
		m.dash.Weather = &out
		m.dash.WeatherFresh = true
	case toggledMsg:
		m.celebration = msg.res.Celebration
		m.alert = ""
		cmds = append(cmds, m.loadDashboard())
	case resetMsg:
		m.celebration = nil
		m.status = "Today's progress cleared"
		cmds = append(cmds, m.loadDashboard())
	case locationMsg:
		m.status = "Location set to " + msg.place.Label
		cmds = append(cmds, m.loadDashboard(), m.loadWeather())
	case tickMsg:
		cmds = append(cmds, m.loadDashboard(), tick())
	case tea.KeyMsg:
		switch m.mode {
		case modeLocation:
			switch msg.String() {
			case "enter":
				query := strings.TrimSpace(m.input.Value())
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				cmds = append(cmds, m.setLocation(query))
			case "esc":
				m.mode = modeNormal
				m.input.Reset()
				m.input.Blur()
				m.status = "Location unchanged"
			default:
				var cmd tea.Cmd
				m.input, cmd = m.input.Update(msg)
				cmds = append(cmds, cmd)
			}
		case modeConfirmReset:
			switch msg.String() {
			case "y", "Y":
				cmds = append(cmds, m.reset())
			default:
				m.status = "Reset cancelled"
			}
			m.mode = modeNormal
		default:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "j", "down":
				if m.cursor < len(m.tasks())-1 {
					m.cursor++
				}
			case "k", "up":
				if m.cursor > 0 {
					m.cursor--
				}
			case "g", "home":
				m.cursor = 0
			case "G", "end":
				m.cursor = max(0, len(m.tasks())-1)
			case " ", "enter", "x":
				if t, ok := m.currentTask(); ok && m.svc != nil {
					cmds = append(cmds, m.toggle(t.ID))
				}
			case "l":
				m.mode = modeLocation
				m.alert = ""
				cmds = append(cmds, m.input.Focus())
			case "w":
				m.status = "Refreshing weather…"
				cmds = append(cmds, m.loadWeather())
			case "r":
				m.mode = modeConfirmReset
			case "esc":
				m.alert = ""
				m.celebration = nil
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// View renders the UI
func (m Model) View() string {
	if !m.loaded {
		return "Loading…\n"
	}
	th := m.theme
	var b strings.Builder

	b.WriteString(th.Title.Render("Daily Routine · " + string(m.dash.Session.Day)))
	b.WriteString("\n\n")

	s := m.dash.Summary
	bar := m.bar
	bar.FullColor = theme.ProgressColor(s.Percentage)
	b.WriteString(bar.ViewAs(s.Percentage / 100))
	b.WriteString(" " + s.String() + "\n")

	if c := m.celebration; c != nil {
		text := fmt.Sprintf("🎉 %.0f%% done", c.Percentage)
		if c.Message != "" {
			text += " · " + c.Message
		}
		b.WriteString(th.Celebrate[c.Tier].Render(text) + "\n")
	}

	i := 0
	for _, sec := range m.dash.Sections {
		b.WriteString(th.Section.Render(strings.TrimSpace(sec.Icon+" "+sec.Title)) + "\n")
		for _, t := range sec.Tasks {
			cursor := "  "
			if i == m.cursor {
				cursor = th.Cursor.Render("> ")
			}
			box, style := "☐", th.Task
			if t.Done {
				box, style = "☑", th.Done
			}
			b.WriteString(cursor + box + " " + style.Render(strings.TrimSpace(t.Icon+" "+t.Text)) + "\n")
			i++
		}
	}
	b.WriteString("\n")

	panels := []string{m.weatherView(), m.quoteView()}
	if m.termWidth >= 80 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, panels...))
	}
	b.WriteString("\n")

	b.WriteString(m.footerView())
	return b.String()
}

func (m Model) panelWidth() int {
	if m.termWidth >= 80 {
		return m.termWidth/2 - 2
	}
	if m.termWidth > 0 {
		return m.termWidth - 2
	}
	return 40
}

func (m Model) weatherView() string {
	th := m.theme
	w := m.panelWidth()
	out := m.dash.Weather
	if out == nil {
		return th.Panel.Width(w).Render("Loading weather…")
	}
	s := out.Snapshot
	if s == nil {
		return th.Panel.Width(w).Render(weather.Unavailable)
	}

	gaugeWidth := clamp(w-16, 8, 40)
	pos := int(s.Position() / 100 * float64(gaugeWidth))
	if pos >= gaugeWidth {
		pos = gaugeWidth - 1
	}
	gauge := strings.Repeat("─", pos) + "●" + strings.Repeat("─", gaugeWidth-pos-1)

	lines := []string{
		fmt.Sprintf("%d°C / %d°F  %s", s.TemperatureC, s.TemperatureF, s.Description),
		s.LocationLabel,
		fmt.Sprintf("%d° %s %d°", s.LowC, gauge, s.HighC),
		fmt.Sprintf("UV %d · Humidity %d%%", s.UVIndex, s.Humidity),
	}
	if out.Source == weather.SourceMock {
		lines = append(lines, th.Footer.Status.Render("estimated"))
	}
	return th.Panel.Width(w).Render(strings.Join(lines, "\n"))
}

func (m Model) quoteView() string {
	th := m.theme
	w := m.panelWidth()
	q := m.dash.Quote
	text := wordwrap.String("“"+q.Text+"”", max(10, w-4))
	return th.Panel.Width(w).Render(th.Quote.Render(text) + "\n" + th.Author.Render("— "+q.Author))
}

func (m Model) footerView() string {
	th := m.theme.Footer
	switch m.mode {
	case modeLocation:
		return th.Prompt.Render(m.input.View()) + "\n" + th.Help.Render("enter set · esc cancel")
	case modeConfirmReset:
		return th.Alert.Render("Clear today's progress? (y/N)")
	}
	var lines []string
	if m.alert != "" {
		lines = append(lines, th.Alert.Render(m.alert))
	}
	if m.status != normalHelp {
		lines = append(lines, th.Status.Render(m.status))
	}
	lines = append(lines, th.Help.Render(normalHelp))
	return strings.Join(lines, "\n")
}
