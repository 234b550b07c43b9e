package component

import "time"

// Lifetime counts down until LifetimeSystem destroys the entity.
// Pure data, all mutations happen in systems.
type Lifetime struct {
	Remaining time.Duration
}
