package system

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/core/event"
	"github.com/l1jgo/sysmgr/internal/core/service"
	coresys "github.com/l1jgo/sysmgr/internal/core/system"
)

// EventDispatchSystem rotates the bus buffers at tick start and delivers
// last tick's events. Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus       *event.Bus
	delivered int
}

func NewEventDispatchSystem() *EventDispatchSystem {
	return &EventDispatchSystem{}
}

func (s *EventDispatchSystem) Slots() []service.Slot {
	return []service.Slot{service.InjectNamed("bus", &s.bus)}
}

func (s *EventDispatchSystem) Initialise() {}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	if s.bus == nil {
		return
	}
	s.bus.SwapBuffers()
	s.delivered += s.bus.DispatchAll()
}

// Delivered returns the total number of events dispatched.
func (s *EventDispatchSystem) Delivered() int { return s.delivered }
