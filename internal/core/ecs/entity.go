package ecs

// EntityID packs a slot index (low 32 bits) with the slot's generation (high
// 32 bits). Generations are never zero, so the zero EntityID means "none".
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }
func (id EntityID) IsZero() bool       { return id == 0 }

// EntityPool hands out entity ids. Destroying an id bumps its slot's
// generation, which invalidates every copy of the old id, and parks the slot
// for reuse by a later Create.
type EntityPool struct {
	gens []uint32 // current generation per slot
	free []uint32 // destroyed slots, reused LIFO
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		gens: make([]uint32, 0, 1024),
		free: make([]uint32, 0, 256),
	}
}

func (p *EntityPool) Create() EntityID {
	if n := len(p.free); n > 0 {
		idx := p.free[n-1]
		p.free = p.free[:n-1]
		return NewEntityID(idx, p.gens[idx])
	}
	idx := uint32(len(p.gens))
	p.gens = append(p.gens, 1)
	return NewEntityID(idx, 1)
}

// Alive reports whether id still names its slot's current occupant.
func (p *EntityPool) Alive(id EntityID) bool {
	idx := int(id.Index())
	return idx < len(p.gens) && p.gens[idx] == id.Generation()
}

// Live returns the number of allocated, not yet destroyed entities.
func (p *EntityPool) Live() int {
	return len(p.gens) - len(p.free)
}

// Destroy retires id. Stale or unknown ids are ignored.
func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return
	}
	idx := id.Index()
	p.gens[idx]++
	if p.gens[idx] == 0 {
		p.gens[idx] = 1
	}
	p.free = append(p.free, idx)
}
