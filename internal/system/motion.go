package system

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/component"
	"github.com/l1jgo/sysmgr/internal/core/ecs"
	"github.com/l1jgo/sysmgr/internal/core/service"
)

// MotionSystem integrates Position by Velocity every tick.
// Phase 2 (Update), the default phase.
type MotionSystem struct {
	stores *component.Stores
}

func NewMotionSystem() *MotionSystem {
	return &MotionSystem{}
}

func (s *MotionSystem) Slots() []service.Slot {
	return []service.Slot{service.InjectNamed("stores", &s.stores)}
}

func (s *MotionSystem) Initialise() {}

func (s *MotionSystem) Update(dt time.Duration) {
	if s.stores == nil {
		return
	}
	sec := dt.Seconds()
	ecs.Each2(s.stores.Positions, s.stores.Velocities, func(_ ecs.EntityID, p *component.Position, v *component.Velocity) {
		p.X += v.DX * sec
		p.Y += v.DY * sec
	})
}
