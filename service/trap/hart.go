package trap

// VectorMode selects how the hardware dispatches through the trap vector.
type VectorMode uint8

const (
	VectorDirect   VectorMode = 0
	VectorVectored VectorMode = 1
)

// Hart is the privileged-state capability of one hardware execution context.
type Hart interface {
	// Cause decodes the trap cause register.
	Cause() Cause
	// TrapValue reads the trap-value (fault address) register.
	TrapValue() uint64
	// SetTrapVector installs the trap entry address.
	SetTrapVector(entry uintptr, mode VectorMode)
	// EnableInterrupts sets the global interrupt-enable flag.
	EnableInterrupts()
	// DisableInterrupts clears the global interrupt-enable flag and returns
	// its previous value.
	DisableInterrupts() bool
	// RestoreInterrupts sets the global interrupt-enable flag to enabled.
	RestoreInterrupts(enabled bool)
	// Unmask sets the enable bit of source.
	Unmask(source Interrupt)
	// Mask clears the enable bit of source.
	Mask(source Interrupt)
	// WaitForInterrupt idles the hart until an interrupt is pending.
	WaitForInterrupt()
	// Halt stops the hart for good. Implementations must not return.
	Halt(fault *Fault)
}
