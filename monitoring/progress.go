// Package monitoring reports on a running simulation: progress, resource
// usage, CPU profiles, and component state.
package monitoring

import (
	"sync"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/sarchlab/lanternfish/sim"
)

// A ProgressBar tracks how many simulated days have finished.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`

	logger     *zap.Logger
	lastDecile uint64
}

// NewProgressBar creates a progress bar of total steps. Every tenth of the
// way is reported to logger, which may be nil.
func NewProgressBar(name string, total uint64, logger *zap.Logger) *ProgressBar {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
		logger:    logger,
	}
}

// IncrementFinished adds amount to the finished steps.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
	if b.Finished > b.Total {
		b.Finished = b.Total
	}

	decile := b.decile()
	if decile == b.lastDecile {
		return
	}

	b.lastDecile = decile
	b.logger.Info("progress",
		zap.String("name", b.Name),
		zap.Uint64("finished", b.Finished),
		zap.Uint64("total", b.Total),
		zap.Uint64("percent", decile*10),
		zap.Duration("elapsed", time.Since(b.StartTime)),
	)
}

// Percent returns the finished share in [0, 100].
func (b *ProgressBar) Percent() float64 {
	b.Lock()
	defer b.Unlock()

	if b.Total == 0 {
		return 100
	}

	return float64(b.Finished) * 100 / float64(b.Total)
}

func (b *ProgressBar) decile() uint64 {
	if b.Total == 0 {
		return 10
	}

	return b.Finished * 10 / b.Total
}

// Func advances the bar after each primary event.
func (b *ProgressBar) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterEvent {
		return
	}

	evt, ok := ctx.Item.(sim.Event)
	if !ok || evt.IsSecondary() {
		return
	}

	b.IncrementFinished(1)
}
