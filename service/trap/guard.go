package trap

import "sync"

// InterruptGuard is a sync.Locker that masks interrupts on the hart while
// held, so state shared with trap handlers is never observed half updated.
// The embedded mutex keeps hosted (multi-goroutine) use safe as well.
type InterruptGuard struct {
	hart  Hart
	mux   sync.Mutex
	saved bool
}

// NewInterruptGuard returns a guard masking interrupts on hart.
func NewInterruptGuard(hart Hart) *InterruptGuard {
	return &InterruptGuard{hart: hart}
}

// Lock disables interrupts and enters the critical section.
func (g *InterruptGuard) Lock() {
	g.mux.Lock()
	g.saved = g.hart.DisableInterrupts()
}

// Unlock restores the interrupt flag seen at Lock and leaves the critical
// section.
func (g *InterruptGuard) Unlock() {
	g.hart.RestoreInterrupts(g.saved)
	g.mux.Unlock()
}

var _ sync.Locker = (*InterruptGuard)(nil)
