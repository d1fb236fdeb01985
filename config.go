package batchos

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/batchos/kernel"
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/policy"
	"github.com/viant/batchos/service/executor"
	"github.com/viant/batchos/service/memory"
	"github.com/viant/batchos/service/trap"
	"github.com/viant/batchos/tracing"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the machine and its batch.
// Fields left out of a loaded document keep their DefaultConfig values.
type Config struct {
	Resources resource.Requirement     `json:"resources" yaml:"resources"`
	Heap      HeapConfig               `json:"heap" yaml:"heap"`
	Trap      TrapConfig               `json:"trap" yaml:"trap"`
	Workload  executor.SyntheticConfig `json:"workload" yaml:"workload"`
	Log       LogConfig                `json:"log" yaml:"log"`
	Tracing   tracing.Config           `json:"tracing" yaml:"tracing"`
	Policy    *policy.Config           `json:"policy,omitempty" yaml:"policy,omitempty"`
	Tasks     []*TaskConfig            `json:"tasks" yaml:"tasks"`
}

// HeapConfig places the kernel heap.
type HeapConfig struct {
	Start uint64 `json:"start" yaml:"start"`
	Size  uint64 `json:"size" yaml:"size"`
}

// TrapConfig configures trap handling.
type TrapConfig struct {
	Vector          uint64 `json:"vector" yaml:"vector"`
	BreakpointWidth uint64 `json:"breakpointWidth" yaml:"breakpointWidth"`
}

// LogConfig configures the console logger.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// TaskConfig describes one task submitted at boot.
type TaskConfig struct {
	Name        string               `json:"name" yaml:"name"`
	Arguments   []string             `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Priority    uint32               `json:"priority" yaml:"priority"`
	Requirement resource.Requirement `json:"requirement" yaml:"requirement"`
}

// DefaultConfig returns the demo machine: 4 CPUs, 1024KB of memory and two
// tasks.
func DefaultConfig() *Config {
	return &Config{
		Resources: resource.Requirement{CPU: 4, Memory: 1024},
		Heap:      HeapConfig{Start: uint64(memory.HeapStart), Size: uint64(memory.HeapSize)},
		Trap:      TrapConfig{Vector: uint64(kernel.DefaultTrapVector), BreakpointWidth: trap.DefaultBreakpointWidth},
		Workload:  executor.DefaultSyntheticConfig(),
		Log:       LogConfig{Level: "info"},
		Tracing:   tracing.Config{Service: "batchos"},
		Tasks: []*TaskConfig{
			{Name: "task1", Arguments: []string{"arg1"}, Priority: 1, Requirement: resource.Requirement{CPU: 1, Memory: 256}},
			{Name: "task2", Arguments: []string{"arg2"}, Priority: 2, Requirement: resource.Requirement{CPU: 1, Memory: 512}},
		},
	}
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Resources.IsZero() {
		return fmt.Errorf("resources must not be zero")
	}
	if c.Heap.Size == 0 {
		return fmt.Errorf("heap.size must be > 0")
	}
	if c.Heap.Start+c.Heap.Size < c.Heap.Start {
		return fmt.Errorf("heap overflows the address space: start=%#x size=%#x", c.Heap.Start, c.Heap.Size)
	}
	if c.Workload.ProgressEvery == 0 {
		return fmt.Errorf("workload.progressEvery must be > 0")
	}
	names := map[string]bool{}
	for i, item := range c.Tasks {
		if item == nil || item.Name == "" {
			return fmt.Errorf("tasks[%d].name was empty", i)
		}
		if names[item.Name] {
			return fmt.Errorf("tasks[%d].name %v was duplicated", i, item.Name)
		}
		names[item.Name] = true
	}
	return nil
}

// KernelConfig converts c into a kernel configuration with fresh task
// descriptors.
func (c *Config) KernelConfig() *kernel.Config {
	ret := &kernel.Config{
		Resources:       c.Resources,
		HeapStart:       uintptr(c.Heap.Start),
		HeapSize:        uintptr(c.Heap.Size),
		TrapVector:      uintptr(c.Trap.Vector),
		BreakpointWidth: c.Trap.BreakpointWidth,
		LogLevel:        c.Log.Level,
		Workload:        c.Workload,
	}
	for _, item := range c.Tasks {
		ret.Tasks = append(ret.Tasks, task.New(item.Name, item.Priority, item.Requirement, item.Arguments...))
	}
	return ret
}

// LoadConfig reads a YAML configuration from URL (any scheme supported by
// afs) over DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
