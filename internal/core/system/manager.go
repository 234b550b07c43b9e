package system

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/l1jgo/sysmgr/internal/core/discovery"
	"github.com/l1jgo/sysmgr/internal/core/event"
	"github.com/l1jgo/sysmgr/internal/core/service"
	"go.uber.org/zap"
)

var systemType = reflect.TypeOf((*System)(nil)).Elem()

type registration struct {
	name string
	sys  System
}

// Manager owns every registered component system and the per-capability
// dispatch lists derived from them at registration time.
//
// Manager is not safe for concurrent use: registration happens during boot,
// enumeration afterwards from the game loop.
type Manager struct {
	locator *service.Locator
	log     *zap.Logger
	filter  func(id string) bool

	named             map[string]System
	store             []registration
	updateSubscribers []Updater
	renderSubscribers []Renderer
	version           uint64
}

// NewManager creates an empty manager. loc supplies the event system at
// registration and every dependency slot at Initialise.
func NewManager(loc *service.Locator, log *zap.Logger) *Manager {
	return &Manager{
		locator:           loc,
		log:               log,
		named:             make(map[string]System),
		store:             make([]registration, 0, 32),
		updateSubscribers: make([]Updater, 0, 16),
		renderSubscribers: make([]Renderer, 0, 8),
	}
}

// SetFilter restricts LoadSystems to ids for which f returns true.
// Direct Register calls are not filtered.
func (m *Manager) SetFilter(f func(id string) bool) {
	m.filter = f
}

// LoadSystems instantiates every type d reports under discovery.TagSystem
// and registers it as "<namespace>:<SimpleName>". Types that are not
// systems or fail to construct are logged and skipped. Returns the number
// of systems registered.
func (m *Manager) LoadSystems(namespace string, d Discoverer) int {
	loaded := 0
	for _, desc := range d.FindTaggedTypes(discovery.TagSystem) {
		id := namespace + ":" + desc.SimpleName()
		if desc.Type != nil && !desc.Type.Implements(systemType) {
			m.log.Error("cannot load system",
				zap.String("system", id),
				zap.Error(fmt.Errorf("%s: %w", desc.Type, discovery.ErrNotSystem)))
			continue
		}
		if m.filter != nil && !m.filter(id) {
			m.log.Debug("system disabled", zap.String("system", id))
			continue
		}

		v, err := desc.Instantiate()
		if err != nil {
			m.log.Error("failed to load system", zap.String("system", id), zap.Error(err))
			continue
		}
		sys, ok := v.(System)
		if !ok || sys == nil {
			m.log.Error("cannot load system",
				zap.String("system", id),
				zap.Error(fmt.Errorf("%T: %w", v, discovery.ErrNotSystem)))
			continue
		}

		m.Register(sys, id)
		loaded++
		m.log.Debug("loaded system", zap.String("system", id))
	}
	return loaded
}

// Register adds s under name and classifies it into the dispatch lists.
// A duplicate name replaces the lookup entry; the earlier instance stays in
// All and in any dispatch list it joined.
func (m *Manager) Register(s System, name string) {
	if s == nil {
		panic("system: Register called with nil system " + name)
	}

	m.store = append(m.store, registration{name: name, sys: s})
	if u, ok := s.(Updater); ok {
		m.updateSubscribers = append(m.updateSubscribers, u)
	}
	if r, ok := s.(Renderer); ok {
		m.renderSubscribers = append(m.renderSubscribers, r)
	}
	if h, ok := s.(event.Handler); ok {
		m.registerEventHandler(h, name)
	}

	if _, exists := m.named[name]; exists {
		m.log.Warn("system name reused, lookup now points at newer instance", zap.String("system", name))
	}
	m.named[name] = s
	m.version++
}

func (m *Manager) registerEventHandler(h event.Handler, name string) {
	events, ok := service.Get[EventSystem](m.locator)
	if !ok {
		m.log.Error("no event system available for event handler", zap.String("system", name))
		return
	}
	events.RegisterEventHandler(h)
}

// Initialise fills the dependency slots of every registered system from the
// locator, then calls its Initialise hook. Slots with no registered value
// are left untouched. Calling Initialise twice initialises every system twice.
func (m *Manager) Initialise() {
	for _, r := range m.store {
		if inj, ok := r.sys.(Injectable); ok {
			m.inject(r, inj.Slots())
		}
		r.sys.Initialise()
		m.log.Debug("initialised system",
			zap.String("system", r.name),
			zap.String("caps", strings.Join(Capabilities(r.sys), ",")))
	}
}

func (m *Manager) inject(r registration, slots []service.Slot) {
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		value, ok := m.locator.Resolve(slot.Type())
		if !ok {
			continue
		}
		if err := slot.Assign(value); err != nil {
			m.log.Error("failed to inject value",
				zap.String("slot", slot.String()),
				zap.String("value", fmt.Sprintf("%T", value)),
				zap.String("system", r.name),
				zap.Error(err))
		}
	}
}

// Get returns the system registered under name.
func (m *Manager) Get(name string) (System, bool) {
	s, ok := m.named[name]
	return s, ok
}

// All yields every registered system in registration order. The sequence
// reads the current registrations each time it is ranged over.
func (m *Manager) All() iter.Seq[System] {
	return func(yield func(System) bool) {
		for _, r := range m.store {
			if !yield(r.sys) {
				return
			}
		}
	}
}

// Entries yields registration name and system pairs in registration order.
func (m *Manager) Entries() iter.Seq2[string, System] {
	return func(yield func(string, System) bool) {
		for _, r := range m.store {
			if !yield(r.name, r.sys) {
				return
			}
		}
	}
}

// UpdateSubscribers yields updaters in registration order.
func (m *Manager) UpdateSubscribers() iter.Seq[Updater] {
	return func(yield func(Updater) bool) {
		for _, u := range m.updateSubscribers {
			if !yield(u) {
				return
			}
		}
	}
}

// RenderSubscribers yields renderers in registration order.
func (m *Manager) RenderSubscribers() iter.Seq[Renderer] {
	return func(yield func(Renderer) bool) {
		for _, r := range m.renderSubscribers {
			if !yield(r) {
				return
			}
		}
	}
}

// Names returns registration names in order, duplicates included.
func (m *Manager) Names() []string {
	names := make([]string, len(m.store))
	for i, r := range m.store {
		names[i] = r.name
	}
	return names
}

func (m *Manager) Len() int { return len(m.store) }

// Version changes on every Register and Clear.
func (m *Manager) Version() uint64 { return m.version }

// Clear drops every registration. No shutdown hook is called.
func (m *Manager) Clear() {
	clear(m.named)
	clear(m.store)
	clear(m.updateSubscribers)
	clear(m.renderSubscribers)
	m.store = m.store[:0]
	m.updateSubscribers = m.updateSubscribers[:0]
	m.renderSubscribers = m.renderSubscribers[:0]
	m.version++
}
