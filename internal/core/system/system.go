package system

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/core/discovery"
	"github.com/l1jgo/sysmgr/internal/core/event"
	"github.com/l1jgo/sysmgr/internal/core/service"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain input queues
	PhasePreUpdate               // 1: process last tick's events
	PhaseUpdate                  // 2: game logic
	PhasePostUpdate              // 3: expiry, spawn, visibility
	PhaseOutput                  // 4: build outbound state
	PhasePersist                 // 5: flush + batch save
	PhaseCleanup                 // 6: destroy queued entities
)

// System is the interface every component system implements.
// Initialise is called once, after dependency slots are filled.
type System interface {
	Initialise()
}

// Updater systems are ticked by the Runner.
type Updater interface {
	System
	Update(dt time.Duration)
}

// Renderer systems are called once per frame. alpha is the fraction of a
// tick elapsed since the last update.
type Renderer interface {
	System
	Render(alpha float64)
}

// Phased lets an Updater pick its tick phase. Updaters without it run in
// PhaseUpdate.
type Phased interface {
	Phase() Phase
}

// Injectable systems declare the shared services they need.
type Injectable interface {
	Slots() []service.Slot
}

// EventSystem accepts event handler systems at registration time.
type EventSystem interface {
	RegisterEventHandler(h event.Handler)
}

// Discoverer finds types by tag.
type Discoverer interface {
	FindTaggedTypes(tag string) []discovery.TypeDescriptor
}

// PhaseOf returns the phase an updater runs in.
func PhaseOf(u Updater) Phase {
	if p, ok := u.(Phased); ok {
		return p.Phase()
	}
	return PhaseUpdate
}

// Capabilities lists the capability names s implements, for logs and the
// boot manifest.
func Capabilities(s System) []string {
	caps := make([]string, 0, 3)
	if _, ok := s.(Updater); ok {
		caps = append(caps, "update")
	}
	if _, ok := s.(Renderer); ok {
		caps = append(caps, "render")
	}
	if _, ok := s.(event.Handler); ok {
		caps = append(caps, "event")
	}
	return caps
}
