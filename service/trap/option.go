package trap

import hclog "github.com/hashicorp/go-hclog"

// DefaultBreakpointWidth is the size of the compressed c.ebreak instruction.
const DefaultBreakpointWidth = 2

// DeviceHandler receives external interrupts.
type DeviceHandler func(frame *Frame)

// Option customises a Dispatcher.
type Option func(d *Dispatcher)

// WithLogger sets the diagnostic logger.
func WithLogger(logger hclog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithBreakpointWidth sets how far the PC advances past a breakpoint.
func WithBreakpointWidth(width uint64) Option {
	return func(d *Dispatcher) {
		if width > 0 {
			d.breakpointWidth = width
		}
	}
}

// WithDeviceHandler sets the handler external interrupts are passed to.
func WithDeviceHandler(handler DeviceHandler) Option {
	return func(d *Dispatcher) {
		d.device = handler
	}
}
