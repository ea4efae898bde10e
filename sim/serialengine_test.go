package sim

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	newEvent := func(
		t VTimeInDay,
		handler Handler,
		secondary bool,
	) *MockEvent {
		evt := NewMockEvent(mockCtrl)
		evt.EXPECT().Time().Return(t).AnyTimes()
		evt.EXPECT().Handler().Return(handler).AnyTimes()
		evt.EXPECT().IsSecondary().Return(secondary).AnyTimes()

		return evt
	}

	It("should schedule events", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		evt1 := newEvent(4, handler1, false)
		evt2 := newEvent(2, handler2, false)
		evt3 := newEvent(3, handler1, false)
		evt4 := newEvent(5, handler1, false)

		handleEvt2 := handler2.EXPECT().Handle(evt2).Do(func(e Event) {
			engine.Schedule(evt3)
			engine.Schedule(evt4)
		})
		handleEvt3 := handler1.EXPECT().Handle(evt3).After(handleEvt2)
		handleEvt1 := handler1.EXPECT().Handle(evt1).After(handleEvt3)
		handler1.EXPECT().Handle(evt4).After(handleEvt1)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		Expect(engine.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(Equal(VTimeInDay(5)))
	})

	It("should consider secondary events", func() {
		handler1 := NewMockHandler(mockCtrl)
		handler2 := NewMockHandler(mockCtrl)
		handler3 := NewMockHandler(mockCtrl)
		evt1 := newEvent(2, handler1, true)
		evt2 := newEvent(2, handler2, false)
		evt3 := newEvent(2, handler3, false)

		handleEvt2 := handler2.EXPECT().Handle(evt2)
		handleEvt3 := handler3.EXPECT().Handle(evt3)
		handler1.EXPECT().
			Handle(evt1).
			After(handleEvt2).
			After(handleEvt3)

		engine.Schedule(evt1)
		engine.Schedule(evt2)
		engine.Schedule(evt3)

		Expect(engine.Run()).To(Succeed())
	})

	It("should stop at the first handler error", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := newEvent(1, handler, false)
		evt2 := newEvent(2, handler, false)
		failure := errors.New("boom")

		handler.EXPECT().Handle(evt1).Return(failure)

		engine.Schedule(evt1)
		engine.Schedule(evt2)

		err := engine.Run()

		Expect(err).To(MatchError(failure))
		Expect(engine.CurrentTime()).To(Equal(VTimeInDay(1)))
	})

	It("should panic when scheduling into the past", func() {
		handler := NewMockHandler(mockCtrl)
		evt1 := newEvent(3, handler, false)
		evt2 := newEvent(1, handler, false)

		handler.EXPECT().Handle(evt1).Do(func(e Event) {
			engine.Schedule(evt2)
		})

		engine.Schedule(evt1)

		Expect(func() { _ = engine.Run() }).To(Panic())
	})

	It("should invoke hooks around every event", func() {
		handler := NewMockHandler(mockCtrl)
		hook := NewMockHook(mockCtrl)
		evt := newEvent(1, handler, false)

		var positions []*HookPos
		hook.EXPECT().Func(gomock.Any()).Do(func(ctx HookCtx) {
			Expect(ctx.Item).To(BeIdenticalTo(evt))
			Expect(ctx.Domain).To(BeIdenticalTo(engine))
			positions = append(positions, ctx.Pos)
		}).Times(2)
		handler.EXPECT().Handle(evt)

		engine.AcceptHook(hook)
		engine.Schedule(evt)

		Expect(engine.Run()).To(Succeed())
		Expect(positions).To(Equal(
			[]*HookPos{HookPosBeforeEvent, HookPosAfterEvent}))
	})

	It("should call simulation end handlers when finished", func() {
		handler := NewMockHandler(mockCtrl)
		endHandler := NewMockSimulationEndHandler(mockCtrl)
		evt := newEvent(7, handler, false)

		handler.EXPECT().Handle(evt)
		endHandler.EXPECT().Handle(VTimeInDay(7))

		engine.RegisterSimulationEndHandler(endHandler)
		engine.Schedule(evt)

		Expect(engine.Run()).To(Succeed())
		engine.Finished()
	})

	It("should hold events while paused", func() {
		handler := NewMockHandler(mockCtrl)
		evt := newEvent(1, handler, false)
		handled := make(chan struct{})

		handler.EXPECT().Handle(evt).Do(func(e Event) {
			close(handled)
		})

		engine.Schedule(evt)
		engine.Pause()

		done := make(chan error)
		go func() { done <- engine.Run() }()

		Consistently(handled).ShouldNot(BeClosed())

		engine.Continue()

		Eventually(done).Should(Receive(BeNil()))
		Expect(handled).To(BeClosed())
	})
})
