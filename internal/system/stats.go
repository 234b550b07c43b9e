package system

import (
	"github.com/l1jgo/sysmgr/internal/core/ecs"
	"github.com/l1jgo/sysmgr/internal/core/service"
	"go.uber.org/zap"
)

const statsEvery = 300

// StatsRenderer reports world statistics every statsEvery frames.
type StatsRenderer struct {
	world *ecs.World
	log   *zap.Logger

	frames int
}

func NewStatsRenderer() *StatsRenderer {
	return &StatsRenderer{log: zap.NewNop()}
}

func (s *StatsRenderer) Slots() []service.Slot {
	return []service.Slot{
		service.InjectNamed("world", &s.world),
		service.InjectNamed("log", &s.log),
	}
}

func (s *StatsRenderer) Initialise() {}

func (s *StatsRenderer) Render(alpha float64) {
	s.frames++
	if s.world == nil || s.frames%statsEvery != 0 {
		return
	}
	s.log.Debug("frame stats",
		zap.Int("frame", s.frames),
		zap.Float64("alpha", alpha),
		zap.Int("entities", s.world.EntityCount()),
		zap.Int("pending_destroy", s.world.PendingDestruction()))
}

func (s *StatsRenderer) Frames() int { return s.frames }
