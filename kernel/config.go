package kernel

import (
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/service/executor"
	"github.com/viant/batchos/service/memory"
	"github.com/viant/batchos/service/trap"
)

const (
	// DescriptorSize is the heap slot reserved per task descriptor.
	DescriptorSize uintptr = 64
	// DescriptorAlign is the alignment of a descriptor slot.
	DescriptorAlign uintptr = 8
	// DefaultTrapVector is the trap entry installed when none is configured.
	DefaultTrapVector uintptr = 0x80000100
)

// Config is what the kernel needs to boot.
type Config struct {
	Resources       resource.Requirement
	HeapStart       uintptr
	HeapSize        uintptr
	TrapVector      uintptr
	BreakpointWidth uint64
	LogLevel        string
	Workload        executor.SyntheticConfig
	Tasks           []*task.Task
}

// DefaultConfig returns the standard machine layout with no tasks.
func DefaultConfig() *Config {
	return &Config{
		Resources:       resource.Requirement{CPU: 4, Memory: 1024},
		HeapStart:       memory.HeapStart,
		HeapSize:        memory.HeapSize,
		TrapVector:      DefaultTrapVector,
		BreakpointWidth: trap.DefaultBreakpointWidth,
		LogLevel:        "info",
		Workload:        executor.DefaultSyntheticConfig(),
	}
}
