package emu

import (
	"sync"
	"sync/atomic"
)

// Group is the cooperating-group context visible to every lane of one group.
// Local is the group-local staging memory, one slot per lane.
type Group struct {
	Local []uint32

	barrier *barrier
}

func newGroup(size int, withBarrier bool) *Group {
	g := &Group{Local: make([]uint32, size)}
	if withBarrier {
		g.barrier = newBarrier(size)
	}
	return g
}

// Barrier blocks until every lane of the group has reached it. Writes to
// Local made before the barrier are visible to all lanes after it.
func (g *Group) Barrier() {
	if g.barrier == nil {
		panic("emu: kernel uses Barrier but was registered without barrier support")
	}
	g.barrier.await()
}

// runConcurrent executes fn(lid) for every lane on its own goroutine and
// joins them all.
func (g *Group) runConcurrent(fn func(lid int)) {
	var wg sync.WaitGroup
	for lid := 0; lid < len(g.Local); lid++ {
		wg.Add(1)
		go func(lid int) {
			defer wg.Done()
			fn(lid)
		}(lid)
	}
	wg.Wait()
}

// Invocation is the per-lane view of one dispatch, mirroring the builtins a
// data-parallel kernel receives: global/local lane indices, group identity,
// the read-only input, and the shared accumulator.
type Invocation struct {
	Global    int
	Local     int
	GroupID   int
	GroupSize int
	In        []uint32
	N         int
	Group     *Group

	acc *uint32
}

// AtomicAdd folds v into the shared result accumulator.
func (inv *Invocation) AtomicAdd(v uint32) {
	atomic.AddUint32(inv.acc, v)
}

// barrier is a reusable cyclic barrier for a fixed number of parties.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	phase   int
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *barrier) await() {
	b.mu.Lock()
	defer b.mu.Unlock()

	phase := b.phase
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.phase++
		b.cond.Broadcast()
		return
	}
	for b.phase == phase {
		b.cond.Wait()
	}
}
