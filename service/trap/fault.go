package trap

import "fmt"

// Fault describes an unrecoverable exception.
type Fault struct {
	Cause    Cause
	PC       uint64
	Value    uint64
	HasValue bool
	Reason   string
}

// NewFault returns a fault raised by kernel code rather than hardware, for
// example heap exhaustion.
func NewFault(reason string) *Fault {
	return &Fault{Reason: reason}
}

func (f *Fault) Error() string {
	if f.Reason != "" {
		return "fatal: " + f.Reason
	}
	if f.HasValue {
		return fmt.Sprintf("%v at %#x: %#x", f.Cause, f.PC, f.Value)
	}
	return fmt.Sprintf("%v at %#x", f.Cause, f.PC)
}
