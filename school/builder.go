package school

import (
	"fmt"

	"github.com/sarchlab/lanternfish/population"
	"github.com/sarchlab/lanternfish/sim"
)

// Builder can build schools.
type Builder struct {
	engine    sim.Engine
	idGen     sim.IDGenerator
	ages      []int
	totalDays int
}

// MakeBuilder returns a builder with a sequential ID generator.
func MakeBuilder() Builder {
	return Builder{
		idGen: sim.NewSequentialIDGenerator(),
	}
}

// WithEngine sets the engine that drives the school.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithIDGenerator sets the generator of event IDs.
func (b Builder) WithIDGenerator(idGen sim.IDGenerator) Builder {
	b.idGen = idGen
	return b
}

// WithAges sets the ages of the initial organisms.
func (b Builder) WithAges(ages []int) Builder {
	b.ages = ages
	return b
}

// WithDays sets the number of days to simulate.
func (b Builder) WithDays(days int) Builder {
	b.totalDays = days
	return b
}

// Build creates a school with the given name.
func (b Builder) Build(name string) (*School, error) {
	if b.engine == nil {
		return nil, fmt.Errorf("school %s: engine is not set", name)
	}

	if err := population.ValidateDays(b.totalDays); err != nil {
		return nil, fmt.Errorf("school %s: %w", name, err)
	}

	census, err := population.NewHistogram(b.ages)
	if err != nil {
		return nil, fmt.Errorf("school %s: %w", name, err)
	}

	s := &School{
		name:      name,
		engine:    b.engine,
		idGen:     b.idGen,
		totalDays: b.totalDays,
		census:    census,
	}

	return s, nil
}
