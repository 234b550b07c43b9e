package component

import "github.com/l1jgo/sysmgr/internal/core/ecs"

// Stores bundles the component stores shared by builtin systems. It is
// published to the service locator as a single singleton.
type Stores struct {
	Positions  *ecs.PtrComponentStore[Position]
	Velocities *ecs.PtrComponentStore[Velocity]
	Lifetimes  *ecs.PtrComponentStore[Lifetime]
}

// NewStores creates the stores and registers them with w so destroyed
// entities are removed from each.
func NewStores(w *ecs.World) *Stores {
	s := &Stores{
		Positions:  ecs.NewPtrComponentStore[Position](),
		Velocities: ecs.NewPtrComponentStore[Velocity](),
		Lifetimes:  ecs.NewPtrComponentStore[Lifetime](),
	}
	w.Registry().Register(s.Positions)
	w.Registry().Register(s.Velocities)
	w.Registry().Register(s.Lifetimes)
	return s
}
