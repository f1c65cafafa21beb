// Package progress turns a completion count into a percentage, a display
// band, and the celebration shown when a task is checked off.
package progress

import "fmt"

// Percentage is completed/total*100, or 0 when total is 0.
func Percentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Band is the presentation tier of a percentage.
type Band string

const (
	BandLow      Band = "low"
	BandMid      Band = "mid"
	BandHigh     Band = "high"
	BandComplete Band = "complete"
)

// BandFor maps <50 to low, [50,75) to mid, [75,100) to high and 100 to complete.
func BandFor(pct float64) Band {
	switch {
	case pct >= 100:
		return BandComplete
	case pct >= 75:
		return BandHigh
	case pct >= 50:
		return BandMid
	default:
		return BandLow
	}
}

// Tier is the intensity of the animation played on completing a task.
type Tier string

const (
	TierBasic Tier = "basic"
	TierBig   Tier = "big"
	TierMega  Tier = "mega"
)

// TierFor maps <50 to basic, [50,80) to big and >=80 to mega.
func TierFor(pct float64) Tier {
	switch {
	case pct >= 80:
		return TierMega
	case pct >= 50:
		return TierBig
	default:
		return TierBasic
	}
}

// Milestone is a one-shot message at an exact percentage.
type Milestone int

const (
	MilestoneHalf     Milestone = 50
	MilestoneAlmost   Milestone = 80
	MilestoneComplete Milestone = 100
)

// MilestoneFor reports the milestone reached at exactly pct, if any.
func MilestoneFor(pct float64) (Milestone, bool) {
	switch pct {
	case 50:
		return MilestoneHalf, true
	case 80:
		return MilestoneAlmost, true
	case 100:
		return MilestoneComplete, true
	}
	return 0, false
}

// Message is the text shown for m.
func (m Milestone) Message() string {
	switch m {
	case MilestoneHalf:
		return "Halfway there! Keep the momentum going."
	case MilestoneAlmost:
		return "80% done. The finish line is in sight!"
	case MilestoneComplete:
		return "Every task done. What a day!"
	}
	return ""
}

// Celebration describes what to show after a task moves to complete.
// Tier and milestone are independent; both may be set.
type Celebration struct {
	Percentage float64   `json:"percentage"`
	Tier       Tier      `json:"tier"`
	Milestone  Milestone `json:"milestone,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// Celebrate builds the celebration for the post-toggle percentage pct.
func Celebrate(pct float64) Celebration {
	c := Celebration{Percentage: pct, Tier: TierFor(pct)}
	if m, ok := MilestoneFor(pct); ok {
		c.Milestone = m
		c.Message = m.Message()
	}
	return c
}

// Summary is the progress readout for one day.
type Summary struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Band       Band    `json:"band"`
}

// Summarize computes the readout for completed of total tasks.
func Summarize(completed, total int) Summary {
	pct := Percentage(completed, total)
	return Summary{Completed: completed, Total: total, Percentage: pct, Band: BandFor(pct)}
}

// String renders "3/11 (27%)".
func (s Summary) String() string {
	return fmt.Sprintf("%d/%d (%.0f%%)", s.Completed, s.Total, s.Percentage)
}
