// Package schedule loads the fixed catalog of routine tasks, grouped into
// time-of-day sections.
package schedule

import (
	"errors"
	"fmt"
)

// ErrUnknownSection is returned when a section key is not in the schedule.
var ErrUnknownSection = errors.New("schedule: unknown section")

// Task is one checklist item.
type Task struct {
	ID   string `json:"id" yaml:"id"`
	Icon string `json:"icon" yaml:"icon"`
	Text string `json:"text" yaml:"text"`
}

// Section groups the tasks for one time of day.
type Section struct {
	Key   string `json:"key" yaml:"-"`
	Title string `json:"title" yaml:"title"`
	Icon  string `json:"icon" yaml:"icon"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Schedule is the loaded catalog. It is read-only after Load.
type Schedule struct {
	sections []Section
	index    map[string]int // section key -> position
	tasks    map[string]Task
}

// New builds a Schedule from sections in display order. Task ids must be
// unique across the whole schedule.
func New(sections ...Section) (*Schedule, error) {
	s := &Schedule{
		index: make(map[string]int, len(sections)),
		tasks: make(map[string]Task),
	}
	for _, sec := range sections {
		if sec.Key == "" {
			return nil, errors.New("schedule: section key required")
		}
		if _, dup := s.index[sec.Key]; dup {
			return nil, fmt.Errorf("schedule: duplicate section %q", sec.Key)
		}
		for _, t := range sec.Tasks {
			if t.ID == "" {
				return nil, fmt.Errorf("schedule: task without id in section %q", sec.Key)
			}
			if _, dup := s.tasks[t.ID]; dup {
				return nil, fmt.Errorf("schedule: duplicate task id %q", t.ID)
			}
			s.tasks[t.ID] = t
		}
		s.index[sec.Key] = len(s.sections)
		s.sections = append(s.sections, sec)
	}
	return s, nil
}

// Empty returns a schedule with no sections.
func Empty() *Schedule {
	s, _ := New()
	return s
}

// Keys returns the section keys in display order.
func (s *Schedule) Keys() []string {
	keys := make([]string, len(s.sections))
	for i, sec := range s.sections {
		keys[i] = sec.Key
	}
	return keys
}

// Sections returns a copy of the sections in display order.
func (s *Schedule) Sections() []Section {
	out := make([]Section, len(s.sections))
	copy(out, s.sections)
	return out
}

// Section looks up a section by key.
func (s *Schedule) Section(key string) (Section, error) {
	i, ok := s.index[key]
	if !ok {
		return Section{}, fmt.Errorf("%w: %s", ErrUnknownSection, key)
	}
	return s.sections[i], nil
}

// TotalTasks sums task counts across all sections.
func (s *Schedule) TotalTasks() int {
	return len(s.tasks)
}

// Has reports whether id is a task in the schedule.
func (s *Schedule) Has(id string) bool {
	_, ok := s.tasks[id]
	return ok
}

// Task returns the task with the given id.
func (s *Schedule) Task(id string) (Task, bool) {
	t, ok := s.tasks[id]
	return t, ok
}

// IDs returns every task id in display order.
func (s *Schedule) IDs() []string {
	ids := make([]string, 0, len(s.tasks))
	for _, sec := range s.sections {
		for _, t := range sec.Tasks {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
