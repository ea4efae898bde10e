package sim

// VTimeInDay is the simulated time, counted in whole days since the start of
// the simulation.
type VTimeInDay uint64

// An Event is something going to happen in the future.
type Event interface {
	// Time returns the day on which the event should happen.
	Time() VTimeInDay

	// Handler returns the handler that should handle the event.
	Handler() Handler

	// IsSecondary tells if the event is a secondary event. Secondary events
	// are handled after all same-time primary events are handled.
	IsSecondary() bool
}

// EventBase provides the basic fields and getters for other events.
type EventBase struct {
	ID        string
	time      VTimeInDay
	handler   Handler
	secondary bool
}

// NewEventBase creates a new primary EventBase.
func NewEventBase(id string, t VTimeInDay, handler Handler) *EventBase {
	return &EventBase{
		ID:      id,
		time:    t,
		handler: handler,
	}
}

// NewSecondaryEventBase creates a new secondary EventBase.
func NewSecondaryEventBase(
	id string,
	t VTimeInDay,
	handler Handler,
) *EventBase {
	e := NewEventBase(id, t, handler)
	e.secondary = true

	return e
}

// Time returns the day on which the event happens.
func (e EventBase) Time() VTimeInDay {
	return e.time
}

// Handler returns the handler to handle the event.
func (e EventBase) Handler() Handler {
	return e.handler
}

// IsSecondary returns true if the event is a secondary event.
func (e EventBase) IsSecondary() bool {
	return e.secondary
}

// A Handler defines a domain for the events.
//
// One event is always bound to one Handler. A handler only schedules events
// for itself and only modifies its own state while handling them.
type Handler interface {
	Handle(e Event) error
}
