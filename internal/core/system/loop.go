package system

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop drives a Runner from wall-clock tickers: fixed-rate updates and
// a separate render rate.
type Loop struct {
	runner    *Runner
	tickRate  time.Duration
	frameRate time.Duration
	log       *zap.Logger

	ticks    uint64
	frames   uint64
	lastTick time.Time
}

// NewLoop creates a loop. A zero frameRate disables rendering.
func NewLoop(runner *Runner, tickRate, frameRate time.Duration, log *zap.Logger) *Loop {
	return &Loop{
		runner:    runner,
		tickRate:  tickRate,
		frameRate: frameRate,
		log:       log,
	}
}

// Run blocks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.tickRate)
	defer ticker.Stop()

	var frameC <-chan time.Time
	if l.frameRate > 0 {
		frameTicker := time.NewTicker(l.frameRate)
		defer frameTicker.Stop()
		frameC = frameTicker.C
	}

	l.lastTick = time.Now()
	l.log.Info("loop started",
		zap.Duration("tick_rate", l.tickRate),
		zap.Duration("frame_rate", l.frameRate))

	for {
		select {
		case now := <-ticker.C:
			l.runner.Tick(l.tickRate)
			l.lastTick = now
			l.ticks++
		case now := <-frameC:
			l.runner.Frame(l.alpha(now))
			l.frames++
		case <-ctx.Done():
			l.log.Info("loop stopped",
				zap.Uint64("ticks", l.ticks),
				zap.Uint64("frames", l.frames))
			return ctx.Err()
		}
	}
}

// alpha is the fraction of the current tick elapsed at now, clamped to [0,1].
func (l *Loop) alpha(now time.Time) float64 {
	a := float64(now.Sub(l.lastTick)) / float64(l.tickRate)
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

func (l *Loop) Ticks() uint64  { return l.ticks }
func (l *Loop) Frames() uint64 { return l.frames }
