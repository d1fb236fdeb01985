package sim

import (
	"runtime"
	"sync"
	"time"

	"github.com/viant/batchos/service/trap"
)

// DefaultTick bounds how long WaitForInterrupt idles with nothing pending.
const DefaultTick = 10 * time.Millisecond

// Hart simulates the machine-mode control registers of one hart.
type Hart struct {
	mux     sync.Mutex
	mcause  uint64
	mtval   uint64
	mtvec   uintptr
	mode    trap.VectorMode
	mie     uint64
	enabled bool
	fault   *trap.Fault
	wake    chan struct{}
	halted  chan struct{}
	once    sync.Once
	tick    time.Duration
}

// New returns a hart with interrupts disabled and every source masked.
func New() *Hart {
	return &Hart{
		wake:   make(chan struct{}, 1),
		halted: make(chan struct{}),
		tick:   DefaultTick,
	}
}

// WithTick sets the idle tick.
func (h *Hart) WithTick(tick time.Duration) *Hart {
	h.tick = tick
	return h
}

// Raise latches cause and the trap value as if the hardware had trapped,
// and wakes a waiting hart.
func (h *Hart) Raise(cause trap.Cause, tval uint64) {
	h.mux.Lock()
	h.mcause = cause.Raw()
	h.mtval = tval
	h.mux.Unlock()
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *Hart) Cause() trap.Cause {
	h.mux.Lock()
	defer h.mux.Unlock()
	return trap.DecodeMCause(h.mcause)
}

func (h *Hart) TrapValue() uint64 {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.mtval
}

func (h *Hart) SetTrapVector(entry uintptr, mode trap.VectorMode) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.mtvec = entry
	h.mode = mode
}

func (h *Hart) EnableInterrupts() {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.enabled = true
}

func (h *Hart) DisableInterrupts() bool {
	h.mux.Lock()
	defer h.mux.Unlock()
	prev := h.enabled
	h.enabled = false
	return prev
}

func (h *Hart) RestoreInterrupts(enabled bool) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.enabled = enabled
}

func (h *Hart) Unmask(source trap.Interrupt) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.mie |= source.Bit()
}

func (h *Hart) Mask(source trap.Interrupt) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.mie &^= source.Bit()
}

func (h *Hart) WaitForInterrupt() {
	timer := time.NewTimer(h.tick)
	defer timer.Stop()
	select {
	case <-h.wake:
	case <-h.halted:
	case <-timer.C:
	}
}

// Halt records fault, signals Halted and terminates the calling goroutine.
func (h *Hart) Halt(fault *trap.Fault) {
	h.mux.Lock()
	if h.fault == nil {
		h.fault = fault
	}
	h.mux.Unlock()
	h.once.Do(func() { close(h.halted) })
	runtime.Goexit()
}

// Halted is closed once the hart halts.
func (h *Hart) Halted() <-chan struct{} {
	return h.halted
}

// Fault returns the fault the hart halted with, if any.
func (h *Hart) Fault() *trap.Fault {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.fault
}

// TrapVector returns the installed trap entry and mode.
func (h *Hart) TrapVector() (uintptr, trap.VectorMode) {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.mtvec, h.mode
}

// InterruptsEnabled reports the global interrupt-enable flag.
func (h *Hart) InterruptsEnabled() bool {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.enabled
}

// Enabled reports whether source is unmasked.
func (h *Hart) Enabled(source trap.Interrupt) bool {
	h.mux.Lock()
	defer h.mux.Unlock()
	return h.mie&source.Bit() != 0
}

var _ trap.Hart = (*Hart)(nil)
