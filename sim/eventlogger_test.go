package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type namedHandler struct{}

func (namedHandler) Name() string { return "School" }

func (namedHandler) Handle(Event) error { return nil }

var _ = Describe("EventLogger", func() {
	var (
		logs   *observer.ObservedLogs
		logger *EventLogger
	)

	BeforeEach(func() {
		var core zapcore.Core
		core, logs = observer.New(zapcore.DebugLevel)
		logger = NewEventLogger(zap.New(core))
	})

	It("should log events before they are handled", func() {
		evt := NewEventBase("1", 4, namedHandler{})

		logger.Func(HookCtx{Pos: HookPosBeforeEvent, Item: evt})
		logger.Func(HookCtx{Pos: HookPosAfterEvent, Item: evt})

		Expect(logs.Len()).To(Equal(1))
		fields := logs.All()[0].ContextMap()
		Expect(fields).To(HaveKeyWithValue("day", uint64(4)))
		Expect(fields).To(HaveKeyWithValue("handler", "School"))
		Expect(fields).To(HaveKeyWithValue("secondary", false))
	})

	It("should ignore items that are not events", func() {
		logger.Func(HookCtx{Pos: HookPosBeforeEvent, Item: "day"})

		Expect(logs.Len()).To(BeZero())
	})
})
