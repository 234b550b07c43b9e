package component

import (
	"testing"

	"github.com/l1jgo/sysmgr/internal/core/ecs"
)

func TestNewStoresRegistersWithWorld(t *testing.T) {
	w := ecs.NewWorld()
	st := NewStores(w)
	if w.Registry().Len() != 3 {
		t.Fatalf("Expected 3 registered stores, got %d", w.Registry().Len())
	}

	id := w.CreateEntity()
	st.Positions.Set(id, &Position{X: 1})
	st.Velocities.Set(id, &Velocity{DX: 1})
	st.Lifetimes.Set(id, &Lifetime{})

	w.MarkForDestruction(id)
	w.FlushDestroyQueue()
	if st.Positions.Has(id) || st.Velocities.Has(id) || st.Lifetimes.Has(id) {
		t.Error("destroyed entity kept components")
	}
}
