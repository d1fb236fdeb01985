package trap

// Frame is the register state captured by the trap entry stub. It is owned
// by the stub for the duration of Handle.
type Frame struct {
	Regs  [32]uint64 // x0-x31
	FRegs [32]uint64 // f0-f31
	PC    uint64
}

// AdvancePC moves the saved program counter past an instruction of width
// bytes so the trapped context resumes after it.
func (f *Frame) AdvancePC(width uint64) {
	f.PC += width
}
