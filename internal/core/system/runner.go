package system

import (
	"sort"
	"time"
)

// Runner executes a manager's update subscribers in phase order each tick
// and its render subscribers once per frame.
type Runner struct {
	mgr     *Manager
	systems []Updater
	version uint64
	sorted  bool
}

func NewRunner(mgr *Manager) *Runner {
	return &Runner{
		mgr:     mgr,
		systems: make([]Updater, 0, 16),
	}
}

func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
}

// TickPhase only runs the systems of the given phase. Used to poll input
// between full ticks without running the rest of the pipeline.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if PhaseOf(s) == phase {
			s.Update(dt)
		}
	}
}

// Frame renders every render subscriber in registration order.
func (r *Runner) Frame(alpha float64) {
	for s := range r.mgr.RenderSubscribers() {
		s.Render(alpha)
	}
}

// ensureSorted rebuilds the phase order whenever the manager's
// registrations changed. Registration order is kept within a phase.
func (r *Runner) ensureSorted() {
	if r.sorted && r.version == r.mgr.Version() {
		return
	}
	r.systems = r.systems[:0]
	for u := range r.mgr.UpdateSubscribers() {
		r.systems = append(r.systems, u)
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return PhaseOf(r.systems[i]) < PhaseOf(r.systems[j])
	})
	r.version = r.mgr.Version()
	r.sorted = true
}
