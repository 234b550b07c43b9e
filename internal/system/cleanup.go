package system

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/core/ecs"
	"github.com/l1jgo/sysmgr/internal/core/service"
	coresys "github.com/l1jgo/sysmgr/internal/core/system"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 6 (Cleanup).
type CleanupSystem struct {
	world *ecs.World
	log   *zap.Logger

	destroyed int
}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{log: zap.NewNop()}
}

func (s *CleanupSystem) Slots() []service.Slot {
	return []service.Slot{
		service.InjectNamed("world", &s.world),
		service.InjectNamed("log", &s.log),
	}
}

func (s *CleanupSystem) Initialise() {
	if s.world == nil {
		s.log.Warn("cleanup system has no world, destroy queue will not be flushed")
	}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if s.world == nil {
		return
	}
	s.destroyed += s.world.FlushDestroyQueue()
}

// Destroyed returns the total number of entities flushed so far.
func (s *CleanupSystem) Destroyed() int { return s.destroyed }
