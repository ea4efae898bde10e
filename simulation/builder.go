package simulation

import (
	"fmt"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/sarchlab/lanternfish/datarecording"
	"github.com/sarchlab/lanternfish/monitoring"
	"github.com/sarchlab/lanternfish/school"
	"github.com/sarchlab/lanternfish/sim"
	"github.com/sarchlab/lanternfish/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	ages         []int
	days         int
	logger       *zap.Logger
	recorder     datarecording.DataRecorder
	eventLogging bool
	progress     bool
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		logger: zap.NewNop(),
	}
}

// WithAges sets the initial timers of the school.
func (b Builder) WithAges(ages []int) Builder {
	b.ages = ages
	return b
}

// WithDays sets the number of days to simulate.
func (b Builder) WithDays(days int) Builder {
	b.days = days
	return b
}

// WithLogger sets the logger of the simulation.
func (b Builder) WithLogger(logger *zap.Logger) Builder {
	b.logger = logger
	return b
}

// WithRecorder records the census of every day into recorder. The
// simulation closes the recorder on Terminate.
func (b Builder) WithRecorder(recorder datarecording.DataRecorder) Builder {
	b.recorder = recorder
	return b
}

// WithEventLogging logs every event at debug level.
func (b Builder) WithEventLogging() Builder {
	b.eventLogging = true
	return b
}

// WithProgress tracks the finished days with a progress bar.
func (b Builder) WithProgress() Builder {
	b.progress = true
	return b
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Simulation{
		id:       xid.New().String(),
		logger:   logger,
		recorder: b.recorder,
	}

	engine := sim.NewSerialEngine()
	engine.RegisterSimulationEndHandler(s)
	s.engine = engine

	sch, err := school.MakeBuilder().
		WithEngine(engine).
		WithAges(b.ages).
		WithDays(b.days).
		Build("School")
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	s.school = sch

	if b.eventLogging {
		engine.AcceptHook(sim.NewEventLogger(logger))
	}

	if b.progress {
		s.progress = monitoring.NewProgressBar(
			"days", uint64(b.days), logger)
		engine.AcceptHook(s.progress)
	}

	if b.recorder != nil {
		s.tracer = tracing.NewCensusTracer(s.id, b.recorder, sch)
		engine.AcceptHook(s.tracer)
	}

	return s, nil
}
