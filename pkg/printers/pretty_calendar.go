package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/progress"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the month of then with each day coloured by the band it
// reached. Days missing from days are faint.
func (pp *PrettyPrint) Calendar(then time.Time, days []app.ReportDay) {
	bands := make(map[day.Key]progress.Band, len(days))
	for _, d := range days {
		if d.Summary.Completed > 0 {
			bands[d.Day] = d.Summary.Band
		}
	}

	first := time.Date(then.Year(), then.Month(), 1, 12, 0, 0, 0, then.Location())
	wd := first.Weekday()

	tf := color.New(color.FgWhite, color.Italic)
	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	// Pad out the start of the month.
	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", int(wd)))

	faint := color.New(color.Faint, color.FgWhite)
	for i := 0; i < DaysIn(then); i++ {
		key := day.Of(first.AddDate(0, 0, i))
		printer := faint
		if b, ok := bands[key]; ok {
			printer = BandColor(b)
		}
		_, _ = printer.Fprintf(pp.out(), "%2d ", i+1)

		wd++
		if wd > time.Saturday {
			wd = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// DaysIn is the number of days in the month of then.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
