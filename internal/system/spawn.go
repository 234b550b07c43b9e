package system

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/component"
	"github.com/l1jgo/sysmgr/internal/core/ecs"
	"github.com/l1jgo/sysmgr/internal/core/event"
)

// SpawnMover creates an entity with position and velocity. A positive ttl
// adds a Lifetime. bus may be nil.
func SpawnMover(w *ecs.World, st *component.Stores, bus *event.Bus, pos component.Position, vel component.Velocity, ttl time.Duration) ecs.EntityID {
	id := w.CreateEntity()
	st.Positions.Set(id, &pos)
	st.Velocities.Set(id, &vel)
	if ttl > 0 {
		st.Lifetimes.Set(id, &component.Lifetime{Remaining: ttl})
	}
	if bus != nil {
		event.Emit(bus, event.EntitySpawned{EntityID: id})
	}
	return id
}
