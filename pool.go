package ember

import "errors"

var (
	// ErrInvalidCapacity is returned when a pool or emitter is configured
	// with a non-positive particle capacity.
	ErrInvalidCapacity = errors.New("ember: particle capacity must be positive")
	// ErrNoTextures is returned when a ParticleSystem is configured without
	// any textures to draw from.
	ErrNoTextures = errors.New("ember: particle system needs at least one texture")
)

// ParticlePool is a fixed-capacity arena of Particle records plus a stack of
// free indices. Acquire and release never allocate.
//
// Every index is either on the free stack or held by exactly one caller.
// Releasing an index that is not currently acquired corrupts the pool; the
// owning ParticleEmitter is the only caller that pairs the two.
type ParticlePool struct {
	items []Particle
	free  []int
}

// NewParticlePool preallocates capacity particles and seeds the free stack
// with every index.
func NewParticlePool(capacity int) (*ParticlePool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	p := &ParticlePool{
		items: make([]Particle, capacity),
		free:  make([]int, capacity),
	}
	// Seed in reverse so the first acquisitions hand out low indices.
	for i := range p.free {
		p.free[i] = capacity - 1 - i
	}
	return p, nil
}

// Capacity returns the fixed number of particle slots.
func (p *ParticlePool) Capacity() int {
	return len(p.items)
}

// Free returns the number of slots on the free stack.
func (p *ParticlePool) Free() int {
	return len(p.free)
}

// TryAcquire pops a free slot. ok is false when the pool is exhausted; that
// is the only "pool full" signal.
func (p *ParticlePool) TryAcquire() (index int, particle *Particle, ok bool) {
	n := len(p.free)
	if n == 0 {
		return -1, nil, false
	}
	index = p.free[n-1]
	p.free = p.free[:n-1]
	return index, &p.items[index], true
}

// Release marks the particle at index inactive and returns the slot to the
// free stack. Out-of-range indices are ignored.
func (p *ParticlePool) Release(index int) {
	if index < 0 || index >= len(p.items) {
		return
	}
	p.items[index].active = false
	p.free = append(p.free, index)
}

// At returns the particle record at index for in-place mutation.
func (p *ParticlePool) At(index int) *Particle {
	return &p.items[index]
}
