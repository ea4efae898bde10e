// Package tracing records what happens during a simulation.
package tracing

import (
	"fmt"

	"github.com/sarchlab/lanternfish/datarecording"
	"github.com/sarchlab/lanternfish/population"
	"github.com/sarchlab/lanternfish/sim"
)

// CensusTable is the table that CensusTracer writes into.
const CensusTable = "census"

// CensusEntry is one row of the census table.
type CensusEntry struct {
	SimulationID string
	Day          uint64
	Total        uint64
	Age0         uint64
	Age1         uint64
	Age2         uint64
	Age3         uint64
	Age4         uint64
	Age5         uint64
	Age6         uint64
	Age7         uint64
	Age8         uint64
}

// Histogram returns the age classes of the entry.
func (e CensusEntry) Histogram() population.Histogram {
	return population.Histogram{
		e.Age0, e.Age1, e.Age2, e.Age3, e.Age4, e.Age5, e.Age6, e.Age7, e.Age8,
	}
}

// A CensusSource is a handler whose population can be counted.
type CensusSource interface {
	sim.Handler
	Census() population.Histogram
}

// CensusTracer is a hook that records the population of a source after each
// of its events.
type CensusTracer struct {
	simulationID string
	recorder     datarecording.DataRecorder
	source       CensusSource

	tableCreated bool
	entries      int
	err          error
}

// NewCensusTracer creates a tracer that records source into recorder.
func NewCensusTracer(
	simulationID string,
	recorder datarecording.DataRecorder,
	source CensusSource,
) *CensusTracer {
	return &CensusTracer{
		simulationID: simulationID,
		recorder:     recorder,
		source:       source,
	}
}

// RecordInitial records the population before the first event, as day 0.
func (t *CensusTracer) RecordInitial() error {
	return t.record(0)
}

// Func records the census after each event handled by the source.
func (t *CensusTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterEvent {
		return
	}

	evt, ok := ctx.Item.(sim.Event)
	if !ok || evt.Handler() != sim.Handler(t.source) {
		return
	}

	if t.err != nil {
		return
	}

	t.err = t.record(evt.Time())
}

// Err returns the first error met while recording from the hook.
func (t *CensusTracer) Err() error {
	return t.err
}

// Entries returns the number of rows recorded.
func (t *CensusTracer) Entries() int {
	return t.entries
}

func (t *CensusTracer) record(day sim.VTimeInDay) error {
	if !t.tableCreated {
		if err := t.recorder.CreateTable(CensusTable, CensusEntry{}); err != nil {
			return fmt.Errorf("tracing: %w", err)
		}

		t.tableCreated = true
	}

	census := t.source.Census()

	total, err := census.Total()
	if err != nil {
		return fmt.Errorf("tracing: day %d: %w", day, err)
	}

	entry := CensusEntry{
		SimulationID: t.simulationID,
		Day:          uint64(day),
		Total:        total,
		Age0:         census[0],
		Age1:         census[1],
		Age2:         census[2],
		Age3:         census[3],
		Age4:         census[4],
		Age5:         census[5],
		Age6:         census[6],
		Age7:         census[7],
		Age8:         census[8],
	}

	if err := t.recorder.InsertData(CensusTable, entry); err != nil {
		return fmt.Errorf("tracing: day %d: %w", day, err)
	}

	t.entries++

	return nil
}
