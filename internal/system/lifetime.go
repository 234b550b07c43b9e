package system

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/component"
	"github.com/l1jgo/sysmgr/internal/core/ecs"
	"github.com/l1jgo/sysmgr/internal/core/event"
	"github.com/l1jgo/sysmgr/internal/core/service"
	coresys "github.com/l1jgo/sysmgr/internal/core/system"
	"go.uber.org/zap"
)

// LifetimeSystem counts down Lifetime components and queues expired
// entities for destruction. Phase 3 (PostUpdate).
//
// It is also an event handler: spawn events are tallied, destroy events
// from other systems are forwarded to the world's destroy queue.
type LifetimeSystem struct {
	world  *ecs.World
	stores *component.Stores
	bus    *event.Bus
	log    *zap.Logger

	spawned int
	expired []ecs.EntityID
}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{log: zap.NewNop()}
}

func (s *LifetimeSystem) Slots() []service.Slot {
	return []service.Slot{
		service.InjectNamed("world", &s.world),
		service.InjectNamed("stores", &s.stores),
		service.InjectNamed("bus", &s.bus),
		service.InjectNamed("log", &s.log),
	}
}

func (s *LifetimeSystem) SubscribeEvents(b *event.Bus) {
	event.Subscribe(b, func(event.EntitySpawned) {
		s.spawned++
	})
	event.Subscribe(b, func(ev event.EntityDestroyed) {
		if s.world != nil && ev.Reason != "expired" {
			s.world.MarkForDestruction(ev.EntityID)
		}
	})
}

func (s *LifetimeSystem) Initialise() {
	s.expired = make([]ecs.EntityID, 0, 32)
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *LifetimeSystem) Update(dt time.Duration) {
	if s.world == nil || s.stores == nil {
		return
	}
	s.expired = s.expired[:0]
	for id, l := range s.stores.Lifetimes.All() {
		l.Remaining -= dt
		if l.Remaining <= 0 {
			s.expired = append(s.expired, id)
		}
	}
	for _, id := range s.expired {
		// Drop the component now so the entity is not expired twice
		// before CleanupSystem flushes it.
		s.stores.Lifetimes.Remove(id)
		s.world.MarkForDestruction(id)
		if s.bus != nil {
			event.Emit(s.bus, event.EntityDestroyed{EntityID: id, Reason: "expired"})
		}
	}
	if len(s.expired) > 0 {
		s.log.Debug("entities expired", zap.Int("count", len(s.expired)))
	}
}

// Spawned returns the number of EntitySpawned events seen.
func (s *LifetimeSystem) Spawned() int { return s.spawned }
