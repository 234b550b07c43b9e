package ecs

import "testing"

type pos struct{ X, Y int }
type tag struct{}

func TestEntityPoolReuse(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first entity must not be the zero id")
	}
	b := p.Create()
	if p.Live() != 2 {
		t.Errorf("Expected 2 live, got %d", p.Live())
	}

	p.Destroy(a)
	if p.Alive(a) {
		t.Error("destroyed entity still alive")
	}
	p.Destroy(a) // stale, no-op
	if p.Live() != 1 {
		t.Errorf("Expected 1 live, got %d", p.Live())
	}

	c := p.Create()
	if c.Index() != a.Index() || c.Generation() == a.Generation() {
		t.Errorf("Expected index reuse with new generation, got a=%x c=%x", a, c)
	}
	if !p.Alive(b) || !p.Alive(c) {
		t.Error("live entities reported dead")
	}
}

func TestEntityPoolGenerationWrapSkipsZero(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.gens[a.Index()] = ^uint32(0)
	last := NewEntityID(a.Index(), ^uint32(0))

	p.Destroy(last)
	c := p.Create()
	if c.Generation() != 1 || c.IsZero() {
		t.Errorf("Expected wrapped generation 1, got %d (id %x)", c.Generation(), c)
	}
	if p.Alive(last) {
		t.Error("wrapped id still alive")
	}
	if p.Alive(0) {
		t.Error("zero id must never be alive")
	}
}

func TestWorldFlushDestroyQueue(t *testing.T) {
	w := NewWorld()
	positions := NewPtrComponentStore[pos]()
	w.Registry().Register(positions)

	a := w.CreateEntity()
	b := w.CreateEntity()
	positions.Set(a, &pos{1, 2})
	positions.Set(b, &pos{3, 4})

	w.MarkForDestruction(a)
	w.MarkForDestruction(a)
	if w.PendingDestruction() != 2 {
		t.Errorf("Expected 2 pending, got %d", w.PendingDestruction())
	}
	if n := w.FlushDestroyQueue(); n != 1 {
		t.Errorf("Expected 1 destroyed, got %d", n)
	}
	if positions.Has(a) || !positions.Has(b) {
		t.Error("components not cleaned up correctly")
	}
	if w.EntityCount() != 1 {
		t.Errorf("Expected 1 entity, got %d", w.EntityCount())
	}
}

func TestEach2(t *testing.T) {
	positions := NewPtrComponentStore[pos]()
	tags := NewPtrComponentStore[tag]()
	pool := NewEntityPool()
	a, b, c := pool.Create(), pool.Create(), pool.Create()
	positions.Set(a, &pos{})
	positions.Set(b, &pos{})
	positions.Set(c, &pos{})
	tags.Set(b, &tag{})

	var seen []EntityID
	Each2(positions, tags, func(id EntityID, _ *pos, _ *tag) {
		seen = append(seen, id)
	})
	if len(seen) != 1 || seen[0] != b {
		t.Errorf("Each2 visited %v, want [%v]", seen, b)
	}
}

func TestRegistryDeduplicatesStores(t *testing.T) {
	r := NewRegistry()
	s := NewPtrComponentStore[pos]()
	r.Register(s)
	r.Register(s)
	if r.Len() != 1 {
		t.Errorf("Expected 1 store, got %d", r.Len())
	}
}
