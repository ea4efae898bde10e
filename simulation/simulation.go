// Package simulation wires a school, an engine, and the optional recorders
// into a runnable simulation.
package simulation

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sarchlab/lanternfish/datarecording"
	"github.com/sarchlab/lanternfish/monitoring"
	"github.com/sarchlab/lanternfish/school"
	"github.com/sarchlab/lanternfish/sim"
	"github.com/sarchlab/lanternfish/tracing"
)

// ErrAlreadyRun is returned when a simulation is run a second time.
var ErrAlreadyRun = errors.New("simulation already run")

// A Simulation runs one school for a number of days.
type Simulation struct {
	id     string
	logger *zap.Logger
	engine sim.Engine
	school *school.School

	recorder datarecording.DataRecorder
	tracer   *tracing.CensusTracer
	progress *monitoring.ProgressBar

	ran bool
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() sim.Engine {
	return s.engine
}

// School returns the simulated school.
func (s *Simulation) School() *school.School {
	return s.school
}

// Recorder returns the data recorder, or nil if nothing is recorded.
func (s *Simulation) Recorder() datarecording.DataRecorder {
	return s.recorder
}

// Progress returns the progress bar, or nil if progress is not tracked.
func (s *Simulation) Progress() *monitoring.ProgressBar {
	return s.progress
}

// Run simulates every day and returns the final population.
func (s *Simulation) Run() (uint64, error) {
	if s.ran {
		return 0, ErrAlreadyRun
	}

	s.ran = true

	s.logger.Debug("simulation started",
		zap.String("id", s.id),
		zap.Int("days", s.school.TotalDays()),
	)

	if s.tracer != nil {
		if err := s.tracer.RecordInitial(); err != nil {
			return 0, fmt.Errorf("simulation %s: %w", s.id, err)
		}
	}

	s.school.StartSimulation()

	if err := s.engine.Run(); err != nil {
		return 0, fmt.Errorf("simulation %s: %w", s.id, err)
	}

	s.engine.Finished()

	if err := s.flush(); err != nil {
		return 0, err
	}

	total, err := s.school.Total()
	if err != nil {
		return 0, fmt.Errorf("simulation %s: %w", s.id, err)
	}

	return total, nil
}

// Handle logs the end of the simulation.
func (s *Simulation) Handle(now sim.VTimeInDay) {
	s.logger.Info("simulation ended",
		zap.String("id", s.id),
		zap.Uint64("day", uint64(now)),
	)
}

func (s *Simulation) flush() error {
	if s.tracer == nil {
		return nil
	}

	if err := s.tracer.Err(); err != nil {
		return fmt.Errorf("simulation %s: %w", s.id, err)
	}

	if err := s.recorder.Flush(); err != nil {
		return fmt.Errorf("simulation %s: %w", s.id, err)
	}

	return nil
}

// Terminate releases the recorder of the simulation.
func (s *Simulation) Terminate() error {
	if s.recorder == nil {
		return nil
	}

	return s.recorder.Close()
}
