package scripting

import (
	"time"

	"github.com/l1jgo/sysmgr/internal/core/event"
	coresys "github.com/l1jgo/sysmgr/internal/core/system"
	lua "github.com/yuin/gopher-lua"
)

type scriptDef struct {
	name   string
	source string
	tags   []string
	phase  int // -1 when unset

	initialise *lua.LFunction
	update     *lua.LFunction
	render     *lua.LFunction
	onSignal   *lua.LFunction
}

// wrap picks the Go type matching the hooks the script defined, so
// capability checks on the instance see exactly those hooks.
func (d *scriptDef) wrap(s *scriptSystem) coresys.System {
	u := scriptUpdate{s}
	r := scriptRender{s}
	ev := scriptEvents{s}
	switch hasU, hasR, hasE := d.update != nil, d.render != nil, d.onSignal != nil; {
	case hasU && hasR && hasE:
		return &updateRenderEventScript{s, u, r, ev}
	case hasU && hasR:
		return &updateRenderScript{s, u, r}
	case hasU && hasE:
		return &updateEventScript{s, u, ev}
	case hasR && hasE:
		return &renderEventScript{s, r, ev}
	case hasU:
		return &updateScript{s, u}
	case hasR:
		return &renderScript{s, r}
	case hasE:
		return &eventScript{s, ev}
	default:
		return &plainScript{s}
	}
}

// scriptSystem is the state shared by every wrapper type.
type scriptSystem struct {
	eng *Engine
	def *scriptDef
}

func (s *scriptSystem) Initialise() {
	s.eng.call(s.def, "initialise", s.def.initialise)
}

// Name returns the name given to register_system.
func (s *scriptSystem) Name() string { return s.def.name }

type scriptUpdate struct{ s *scriptSystem }

func (m scriptUpdate) Update(dt time.Duration) {
	m.s.eng.call(m.s.def, "update", m.s.def.update, lua.LNumber(dt.Seconds()))
}

// Phase is only meaningful for updaters, so it lives here.
func (m scriptUpdate) Phase() coresys.Phase {
	if m.s.def.phase < 0 {
		return coresys.PhaseUpdate
	}
	return coresys.Phase(m.s.def.phase)
}

type scriptRender struct{ s *scriptSystem }

func (m scriptRender) Render(alpha float64) {
	m.s.eng.call(m.s.def, "render", m.s.def.render, lua.LNumber(alpha))
}

type scriptEvents struct{ s *scriptSystem }

func (m scriptEvents) SubscribeEvents(b *event.Bus) {
	event.Subscribe(b, func(sig event.Signal) {
		m.s.eng.call(m.s.def, "on_signal", m.s.def.onSignal, lua.LString(sig.Name), lua.LString(sig.Payload))
	})
}

type (
	plainScript  struct{ *scriptSystem }
	updateScript struct {
		*scriptSystem
		scriptUpdate
	}
	renderScript struct {
		*scriptSystem
		scriptRender
	}
	eventScript struct {
		*scriptSystem
		scriptEvents
	}
	updateRenderScript struct {
		*scriptSystem
		scriptUpdate
		scriptRender
	}
	updateEventScript struct {
		*scriptSystem
		scriptUpdate
		scriptEvents
	}
	renderEventScript struct {
		*scriptSystem
		scriptRender
		scriptEvents
	}
	updateRenderEventScript struct {
		*scriptSystem
		scriptUpdate
		scriptRender
		scriptEvents
	}
)
