package trap

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/davecgh/go-spew/spew"
	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/log"
)

// ErrAlreadyInitialized is returned by a second Init.
var ErrAlreadyInitialized = errors.New("trap: dispatcher already initialized")

// Dispatcher classifies traps and routes them to their handlers. It keeps no
// state between traps apart from statistics.
type Dispatcher struct {
	hart            Hart
	logger          hclog.Logger
	device          DeviceHandler
	breakpointWidth uint64
	initialized     atomic.Bool
	stats           Stats
}

// New creates a dispatcher for hart.
func New(hart Hart, options ...Option) *Dispatcher {
	ret := &Dispatcher{
		hart:            hart,
		logger:          log.Discard(),
		breakpointWidth: DefaultBreakpointWidth,
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.Named("trap")
	return ret
}

// Init installs entry as the trap vector, sets the global interrupt-enable
// flag and enables the timer, software and external sources. It must run
// exactly once, before any task executes.
func (d *Dispatcher) Init(entry uintptr) error {
	if !d.initialized.CompareAndSwap(false, true) {
		return ErrAlreadyInitialized
	}
	d.hart.SetTrapVector(entry, VectorDirect)
	d.hart.EnableInterrupts()
	for _, source := range Sources {
		d.hart.Unmask(source)
	}
	d.logger.Info("interrupt handling initialized", "vector", fmt.Sprintf("%#x", entry))
	return nil
}

// Initialized reports whether Init has run.
func (d *Dispatcher) Initialized() bool {
	return d.initialized.Load()
}

// Guard returns a new interrupt guard for the dispatcher's hart.
func (d *Dispatcher) Guard() *InterruptGuard {
	return NewInterruptGuard(d.hart)
}

// Stats returns the trap counters.
func (d *Dispatcher) Stats() *Stats {
	return &d.stats
}

// Handle is the trap entry point. Recoverable traps return with frame
// updated for resumption; fatal exceptions halt the hart and never return.
func (d *Dispatcher) Handle(frame *Frame) {
	cause := d.hart.Cause()
	d.stats.record(cause)
	if cause.Interrupt {
		d.handleInterrupt(cause.Source(), frame)
		return
	}
	d.handleException(cause.Exception(), frame)
}

func (d *Dispatcher) handleException(kind Exception, frame *Frame) {
	if kind == Breakpoint {
		d.logger.Info("breakpoint", "pc", fmt.Sprintf("%#x", frame.PC))
		frame.AdvancePC(d.breakpointWidth)
		return
	}

	fault := &Fault{Cause: ExceptionCause(kind), PC: frame.PC}
	if kind.hasTrapValue() {
		fault.Value = d.hart.TrapValue()
		fault.HasValue = true
	}
	d.Halt(fault, frame)
}

// Halt reports fault and stops the hart. frame may be nil for faults raised
// outside trap context.
func (d *Dispatcher) Halt(fault *Fault, frame *Frame) {
	args := []interface{}{"pc", fmt.Sprintf("%#x", fault.PC)}
	if fault.Reason == "" {
		args = append(args, "kind", fault.Cause.String())
	}
	if fault.HasValue {
		args = append(args, "tval", fmt.Sprintf("%#x", fault.Value))
	}
	d.logger.Error(fault.Error(), args...)
	if frame != nil && d.logger.IsDebug() {
		d.logger.Debug("trap frame", "frame", spew.Sdump(frame))
	}
	d.hart.Halt(fault)
	panic(fault)
}

func (d *Dispatcher) handleInterrupt(source Interrupt, frame *Frame) {
	switch source {
	case MachineTimer:
		d.hart.Mask(MachineTimer)
		d.logger.Info("timer interrupt")
	case MachineSoft:
		d.hart.Mask(MachineSoft)
		d.logger.Info("software interrupt")
	case MachineExternal:
		d.logger.Info("external interrupt")
		if d.device != nil {
			d.device(frame)
		}
	default:
		d.logger.Warn("unhandled interrupt", "source", source.String())
	}
}
