package kernel

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/viant/batchos/log"
	"github.com/viant/batchos/service/batch"
	"github.com/viant/batchos/service/console"
	"github.com/viant/batchos/service/executor"
	"github.com/viant/batchos/service/memory"
	"github.com/viant/batchos/service/resource"
	"github.com/viant/batchos/service/scheduler"
	"github.com/viant/batchos/service/trap"
)

// ErrBooted is returned by a second Boot.
var ErrBooted = errors.New("kernel: already booted")

// Kernel owns the machine's services after boot.
type Kernel struct {
	config       *Config
	hart         trap.Hart
	console      console.Console
	space        memory.AddressSpace
	logger       hclog.Logger
	work         executor.Work
	batchOptions []batch.Option

	dispatcher *trap.Dispatcher
	heap       *memory.Bump
	runner     *batch.Runner
	booted     bool
}

// New creates a kernel for hart, logging to con.
func New(hart trap.Hart, con console.Console, config *Config, options ...Option) *Kernel {
	if config == nil {
		config = DefaultConfig()
	}
	ret := &Kernel{config: config, hart: hart, console: con}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Boot brings the machine up in order: console, traps, address space, heap,
// batch runner, task descriptors. It then runs the batch to completion.
// Heap exhaustion while placing descriptors halts the hart.
func (k *Kernel) Boot(ctx context.Context) (*batch.Summary, error) {
	if k.booted {
		return nil, ErrBooted
	}
	k.booted = true

	if err := k.initConsole(); err != nil {
		return nil, err
	}
	k.dispatcher = trap.New(k.hart,
		trap.WithLogger(k.logger),
		trap.WithBreakpointWidth(k.config.BreakpointWidth),
		trap.WithDeviceHandler(k.onExternal),
	)
	if err := k.dispatcher.Init(k.config.TrapVector); err != nil {
		return nil, errors.Wrap(err, "trap init")
	}
	if k.space == nil {
		k.space = memory.NewIdentity(k.logger)
	}
	if err := k.space.Init(); err != nil {
		return nil, errors.Wrap(err, "address space init")
	}
	k.heap = memory.NewBump(k.config.HeapStart, k.config.HeapSize)
	k.logger.Info("heap initialized", "start", fmt.Sprintf("%#x", k.config.HeapStart), "size", k.config.HeapSize)

	k.runner = k.newRunner()
	k.logger.Info("batch system initialized", "cpu", k.config.Resources.CPU, "memory", k.config.Resources.Memory)

	k.logger.Info("submitting tasks", "count", len(k.config.Tasks))
	for _, descriptor := range k.config.Tasks {
		addr, err := k.heap.Allocate(DescriptorSize, DescriptorAlign)
		if err != nil {
			k.dispatcher.Halt(trap.NewFault(errors.Wrapf(err, "task %v descriptor", descriptor.Name).Error()), nil)
		}
		k.logger.Trace("descriptor placed", "task", descriptor.Name, "addr", fmt.Sprintf("%#x", addr))
		if err := k.runner.Submit(ctx, descriptor); err != nil {
			k.logger.Warn("task not submitted", "task", descriptor.Name, "error", err)
		}
	}

	k.logger.Info("running batch system")
	summary, err := k.runner.Run(ctx)
	if err != nil {
		return summary, errors.Wrap(err, "batch run")
	}
	k.logger.Info("all tasks completed", "completed", summary.Completed, "failed", summary.Failed,
		"total", summary.Total(), "remaining", summary.Remaining)
	k.logger.Info("trap statistics", "counts", k.dispatcher.Stats().Snapshot())
	return summary, nil
}

func (k *Kernel) initConsole() error {
	if initializer, ok := k.console.(console.Initializer); ok {
		if err := initializer.Init(); err != nil {
			return errors.Wrap(err, "console init")
		}
	}
	if k.logger == nil {
		k.logger = log.New(console.NewWriter(k.console), k.config.LogLevel)
	}
	k.logger.Info("console initialized")
	return nil
}

func (k *Kernel) newRunner() *batch.Runner {
	work := k.work
	if work == nil {
		work = executor.Synthetic(k.config.Workload, k.logger.Named("executor"))
	}
	manager := resource.New(k.config.Resources,
		resource.WithLocker(k.dispatcher.Guard()),
		resource.WithLogger(k.logger))
	options := []batch.Option{
		batch.WithLogger(k.logger),
		batch.WithSchedulerOptions(scheduler.WithLocker(k.dispatcher.Guard())),
		batch.WithExecutor(executor.New(executor.WithWork(work), executor.WithLogger(k.logger))),
	}
	return batch.New(manager, append(options, k.batchOptions...)...)
}

// onExternal drains console input on an external interrupt.
func (k *Kernel) onExternal(frame *trap.Frame) {
	for {
		b, ok := k.console.ReadByte()
		if !ok {
			return
		}
		k.logger.Debug("console input", "byte", fmt.Sprintf("%#02x", b))
	}
}

// Trap is the trap entry for frame.
func (k *Kernel) Trap(frame *trap.Frame) {
	k.dispatcher.Handle(frame)
}

// Idle waits for interrupts until ctx is done.
func (k *Kernel) Idle(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		k.hart.WaitForInterrupt()
	}
}

// Dispatcher returns the trap dispatcher; nil before Boot.
func (k *Kernel) Dispatcher() *trap.Dispatcher {
	return k.dispatcher
}

// Runner returns the batch runner; nil before Boot.
func (k *Kernel) Runner() *batch.Runner {
	return k.runner
}

// Heap returns the kernel heap; nil before Boot.
func (k *Kernel) Heap() *memory.Bump {
	return k.heap
}
