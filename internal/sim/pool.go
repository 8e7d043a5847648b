package sim

import "fmt"

// Handle identifies a slot in a Pool. NoHandle marks an entity without one.
type Handle int

// NoHandle is the zero-value stand-in for "not pooled".
const NoHandle Handle = -1

// Pool is a fixed arena of reusable slots plus a free list. Acquire pops a
// free index, Release pushes it back; the total slot count never changes, so
// Live()+Pooled() == Cap() holds at all times.
type Pool[T any] struct {
	slots []T
	live  []bool
	free  []int
}

// NewPool allocates a pool with capacity slots, all free.
func NewPool[T any](capacity int) *Pool[T] {
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		slots: make([]T, capacity),
		live:  make([]bool, capacity),
		free:  make([]int, 0, capacity),
	}
	// Pushed in reverse so the lowest index is handed out first.
	for i := capacity - 1; i >= 0; i-- {
		p.free = append(p.free, i)
	}
	return p
}

// Acquire removes one free slot from the pool.
func (p *Pool[T]) Acquire() (Handle, error) {
	n := len(p.free)
	if n == 0 {
		return NoHandle, ErrPoolExhausted
	}
	idx := p.free[n-1]
	p.free = p.free[:n-1]
	p.live[idx] = true
	return Handle(idx), nil
}

// Release returns h to the pool and zeroes its slot.
func (p *Pool[T]) Release(h Handle) error {
	idx := int(h)
	if idx < 0 || idx >= len(p.slots) || !p.live[idx] {
		return fmt.Errorf("%w: %d", ErrHandleNotLive, idx)
	}
	var zero T
	p.slots[idx] = zero
	p.live[idx] = false
	p.free = append(p.free, idx)
	return nil
}

// Slot returns the payload held by a live handle, or nil.
func (p *Pool[T]) Slot(h Handle) *T {
	idx := int(h)
	if idx < 0 || idx >= len(p.slots) || !p.live[idx] {
		return nil
	}
	return &p.slots[idx]
}

// Live returns the number of handed-out slots.
func (p *Pool[T]) Live() int { return len(p.slots) - len(p.free) }

// Pooled returns the number of free slots.
func (p *Pool[T]) Pooled() int { return len(p.free) }

// Cap returns the fixed slot count.
func (p *Pool[T]) Cap() int { return len(p.slots) }

// PoolStat is a point-in-time view of one pool.
type PoolStat struct {
	Name   string
	Live   int
	Pooled int
	Cap    int
}

func statOf[T any](name string, p *Pool[T]) PoolStat {
	return PoolStat{Name: name, Live: p.Live(), Pooled: p.Pooled(), Cap: p.Cap()}
}
