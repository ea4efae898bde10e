package sim

import (
	"reflect"

	"go.uber.org/zap"
)

// EventLogger is a hook that logs every event before it is handled.
type EventLogger struct {
	logger *zap.Logger
}

// NewEventLogger returns a new EventLogger which writes into the logger at
// debug level.
func NewEventLogger(logger *zap.Logger) *EventLogger {
	h := new(EventLogger)
	h.logger = logger

	return h
}

type named interface {
	Name() string
}

// Func logs the event information.
func (h *EventLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	handlerName := "<nil>"
	switch handler := evt.Handler().(type) {
	case nil:
	case named:
		handlerName = handler.Name()
	default:
		handlerName = reflect.TypeOf(handler).String()
	}

	h.logger.Debug("event",
		zap.Uint64("day", uint64(evt.Time())),
		zap.String("type", reflect.TypeOf(evt).String()),
		zap.String("handler", handlerName),
		zap.Bool("secondary", evt.IsSecondary()),
	)
}
