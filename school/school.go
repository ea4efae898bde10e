// Package school provides the simulated population component.
package school

import (
	"fmt"

	"github.com/sarchlab/lanternfish/population"
	"github.com/sarchlab/lanternfish/sim"
)

// A DayEvent moves a school one day forward.
type DayEvent struct {
	*sim.EventBase
}

// School is a group of organisms that ages one day per DayEvent.
type School struct {
	name      string
	engine    sim.Engine
	idGen     sim.IDGenerator
	totalDays int

	day    int
	census population.Histogram
}

// State is a snapshot of a school.
type State struct {
	Name      string
	Day       int
	TotalDays int
	Census    []uint64
	Total     uint64
}

// Name returns the name of the school.
func (s *School) Name() string {
	return s.name
}

// StartSimulation schedules the first day. Nothing is scheduled when the
// school simulates zero days.
func (s *School) StartSimulation() {
	if s.totalDays == 0 {
		return
	}

	s.scheduleDay(1)
}

// Handle handles the events of the school.
func (s *School) Handle(e sim.Event) error {
	switch evt := e.(type) {
	case *DayEvent:
		return s.handleDay(evt)
	default:
		return fmt.Errorf("school %s: cannot handle event of type %T",
			s.name, e)
	}
}

func (s *School) handleDay(evt *DayEvent) error {
	next, err := s.census.Step()
	if err != nil {
		return fmt.Errorf("school %s, day %d: %w", s.name, evt.Time(), err)
	}

	s.census = next
	s.day = int(evt.Time())

	if s.day < s.totalDays {
		s.scheduleDay(evt.Time() + 1)
	}

	return nil
}

func (s *School) scheduleDay(day sim.VTimeInDay) {
	evt := &DayEvent{
		EventBase: sim.NewEventBase(s.idGen.Generate(), day, s),
	}

	s.engine.Schedule(evt)
}

// Day returns the last simulated day.
func (s *School) Day() int {
	return s.day
}

// TotalDays returns the number of days the school simulates.
func (s *School) TotalDays() int {
	return s.totalDays
}

// Census returns the current number of organisms per age.
func (s *School) Census() population.Histogram {
	return s.census
}

// Total returns the current number of organisms.
func (s *School) Total() (uint64, error) {
	return s.census.Total()
}

// State returns a snapshot of the school.
func (s *School) State() (State, error) {
	total, err := s.Total()
	if err != nil {
		return State{}, err
	}

	state := State{
		Name:      s.name,
		Day:       s.day,
		TotalDays: s.totalDays,
		Census:    s.census.Buckets(),
		Total:     total,
	}

	return state, nil
}
