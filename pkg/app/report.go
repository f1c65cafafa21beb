package app

import (
	"context"
	"time"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/progress"
	"tableflip.dev/routine/pkg/tracker"
)

// MaxReportDays bounds how far back a report or streak looks.
const MaxReportDays = 366

// ReportDay is the progress recorded for one past or current day.
type ReportDay struct {
	Day       day.Key          `json:"day"`
	Summary   progress.Summary `json:"summary"`
	Completed []string         `json:"completed"`
}

// ReportResult is the completion history between two days, oldest first.
type ReportResult struct {
	Since  day.Key     `json:"since"`
	Until  day.Key     `json:"until"`
	Days   []ReportDay `json:"days"`
	Streak int         `json:"streak"`
}

// Report reads the completion records kept in storage for every day from
// since to until inclusive. Ids no longer in the schedule are not counted.
func (s *Session) Report(ctx context.Context, since, until day.Key) (ReportResult, error) {
	if s.Persistence == nil {
		return ReportResult{}, ErrNoPersistence
	}
	s.init()
	from, err := since.Time()
	if err != nil {
		return ReportResult{}, err
	}
	to, err := until.Time()
	if err != nil {
		return ReportResult{}, err
	}
	if from.After(to) {
		from, to = to, from
		since, until = until, since
	}

	result := ReportResult{Since: since, Until: until}
	for t, n := from, 0; !t.After(to) && n < MaxReportDays; t, n = t.AddDate(0, 0, 1), n+1 {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Days = append(result.Days, s.reportDay(day.Of(t)))
	}
	result.Streak = s.streak(ctx, to)
	return result, nil
}

// Streak counts consecutive fully completed days ending at until. An
// unfinished until does not break the streak; counting starts the day
// before.
func (s *Session) Streak(ctx context.Context, until day.Key) (int, error) {
	if s.Persistence == nil {
		return 0, ErrNoPersistence
	}
	s.init()
	t, err := until.Time()
	if err != nil {
		return 0, err
	}
	return s.streak(ctx, t), nil
}

func (s *Session) streak(ctx context.Context, until time.Time) int {
	n := 0
	t := until
	if s.reportDay(day.Of(t)).Summary.Band != progress.BandComplete {
		t = t.AddDate(0, 0, -1)
	}
	for i := 0; i < MaxReportDays && ctx.Err() == nil; i++ {
		if s.reportDay(day.Of(t)).Summary.Band != progress.BandComplete {
			break
		}
		n++
		t = t.AddDate(0, 0, -1)
	}
	return n
}

func (s *Session) reportDay(d day.Key) ReportDay {
	ids, err := s.Persistence.Completions(d)
	if err != nil {
		s.logger().Warn("completion record unreadable", "day", d, "err", err)
		ids = nil
	}
	set := tracker.NewCompletionSet(d, ids)
	counted := make([]string, 0, set.Len())
	for _, id := range set.IDs() {
		if s.Schedule.Has(id) {
			counted = append(counted, id)
		}
	}
	return ReportDay{
		Day:       d,
		Summary:   progress.Summarize(len(counted), s.Schedule.TotalTasks()),
		Completed: counted,
	}
}
