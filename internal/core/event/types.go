package event

import "github.com/l1jgo/sysmgr/internal/core/ecs"

type EntitySpawned struct {
	EntityID ecs.EntityID
}

type EntityDestroyed struct {
	EntityID ecs.EntityID
	Reason   string
}

// Signal is an untyped named event, used by scripted systems.
type Signal struct {
	Name    string
	Payload string
}
