package trap

import "fmt"

const interruptBit = uint64(1) << 63

// Exception is a synchronous trap code.
type Exception uint64

const (
	InstructionMisaligned Exception = 0
	InstructionFault      Exception = 1
	IllegalInstruction    Exception = 2
	Breakpoint            Exception = 3
	LoadMisaligned        Exception = 4
	LoadFault             Exception = 5
	StoreMisaligned       Exception = 6
	StoreFault            Exception = 7
	UserEnvCall           Exception = 8
	SupervisorEnvCall     Exception = 9
	MachineEnvCall        Exception = 11
	InstructionPageFault  Exception = 12
	LoadPageFault         Exception = 13
	StorePageFault        Exception = 15
)

func (e Exception) String() string {
	switch e {
	case InstructionMisaligned:
		return "InstructionMisaligned"
	case InstructionFault:
		return "InstructionFault"
	case IllegalInstruction:
		return "IllegalInstruction"
	case Breakpoint:
		return "Breakpoint"
	case LoadMisaligned:
		return "LoadMisaligned"
	case LoadFault:
		return "LoadFault"
	case StoreMisaligned:
		return "StoreMisaligned"
	case StoreFault:
		return "StoreFault"
	case UserEnvCall:
		return "UserEnvCall"
	case SupervisorEnvCall:
		return "SupervisorEnvCall"
	case MachineEnvCall:
		return "MachineEnvCall"
	case InstructionPageFault:
		return "InstructionPageFault"
	case LoadPageFault:
		return "LoadPageFault"
	case StorePageFault:
		return "StorePageFault"
	}
	return fmt.Sprintf("Exception(%d)", uint64(e))
}

// hasTrapValue reports whether the hardware records a faulting address or
// instruction in the trap-value register for e.
func (e Exception) hasTrapValue() bool {
	switch e {
	case InstructionMisaligned, InstructionFault, IllegalInstruction,
		LoadMisaligned, LoadFault, StoreMisaligned, StoreFault,
		InstructionPageFault, LoadPageFault, StorePageFault:
		return true
	}
	return false
}

// Interrupt is an asynchronous trap source.
type Interrupt uint64

const (
	SupervisorSoft     Interrupt = 1
	MachineSoft        Interrupt = 3
	SupervisorTimer    Interrupt = 5
	MachineTimer       Interrupt = 7
	SupervisorExternal Interrupt = 9
	MachineExternal    Interrupt = 11
)

// Sources lists the interrupt sources the dispatcher enables at Init.
var Sources = []Interrupt{MachineExternal, MachineTimer, MachineSoft}

func (i Interrupt) String() string {
	switch i {
	case SupervisorSoft:
		return "SupervisorSoft"
	case MachineSoft:
		return "MachineSoft"
	case SupervisorTimer:
		return "SupervisorTimer"
	case MachineTimer:
		return "MachineTimer"
	case SupervisorExternal:
		return "SupervisorExternal"
	case MachineExternal:
		return "MachineExternal"
	}
	return fmt.Sprintf("Interrupt(%d)", uint64(i))
}

// Bit returns the enable/pending bit of the source.
func (i Interrupt) Bit() uint64 {
	return uint64(1) << uint64(i)
}

// Cause is a decoded trap cause.
type Cause struct {
	Interrupt bool
	Code      uint64
}

// DecodeMCause decodes a 64-bit mcause value.
func DecodeMCause(raw uint64) Cause {
	return Cause{Interrupt: raw&interruptBit != 0, Code: raw &^ interruptBit}
}

// ExceptionCause returns the cause of a synchronous exception.
func ExceptionCause(e Exception) Cause {
	return Cause{Code: uint64(e)}
}

// InterruptCause returns the cause of an interrupt.
func InterruptCause(i Interrupt) Cause {
	return Cause{Interrupt: true, Code: uint64(i)}
}

// Raw encodes c as an mcause value.
func (c Cause) Raw() uint64 {
	if c.Interrupt {
		return c.Code | interruptBit
	}
	return c.Code
}

// Exception returns the exception code; only meaningful when !Interrupt.
func (c Cause) Exception() Exception {
	return Exception(c.Code)
}

// Source returns the interrupt source; only meaningful when Interrupt.
func (c Cause) Source() Interrupt {
	return Interrupt(c.Code)
}

func (c Cause) String() string {
	if c.Interrupt {
		return c.Source().String()
	}
	return c.Exception().String()
}
