package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/routine/pkg/progress"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Title     lipgloss.Style
	Section   lipgloss.Style
	Task      lipgloss.Style
	Done      lipgloss.Style
	Cursor    lipgloss.Style
	Panel     lipgloss.Style
	Quote     lipgloss.Style
	Author    lipgloss.Style
	Footer    FooterTheme
	Celebrate map[progress.Tier]lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/prompt bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Alert  lipgloss.Style
	Prompt lipgloss.Style
}

// Band endpoints of the progress gradient.
var (
	lowColor      = mustHex("#e57373")
	completeColor = mustHex("#43a047")
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ProgressColor blends from the low to the complete colour by pct. The
// bands snap so each one reads as a distinct colour.
func ProgressColor(pct float64) string {
	var t float64
	switch progress.BandFor(pct) {
	case progress.BandComplete:
		t = 1
	case progress.BandHigh:
		t = 0.75
	case progress.BandMid:
		t = 0.5
	default:
		t = 0.1
	}
	return lowColor.BlendHcl(completeColor, t).Clamped().Hex()
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Title:   lipgloss.NewStyle().Bold(true).Underline(true),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginTop(1),
		Task:    lipgloss.NewStyle(),
		Done:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Cursor:  lipgloss.NewStyle().Foreground(lipgloss.Color("218")).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		Quote:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("250")),
		Author: lipgloss.NewStyle().Faint(true),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Alert:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
			Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		},
		Celebrate: map[progress.Tier]lipgloss.Style{
			progress.TierBasic: lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
			progress.TierBig:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
			progress.TierMega:  lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Blink(true),
		},
	}
}
