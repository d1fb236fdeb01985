package kernel

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/service/batch"
	"github.com/viant/batchos/service/console"
	"github.com/viant/batchos/service/trap"
	"github.com/viant/batchos/service/trap/sim"
)

func demoConfig() *Config {
	cfg := DefaultConfig()
	cfg.Workload.IterationsPerPriority = 100
	cfg.Workload.ProgressEvery = 50
	cfg.Tasks = []*task.Task{
		task.New("task1", 1, resource.Requirement{CPU: 1, Memory: 256}, "arg1"),
		task.New("task2", 2, resource.Requirement{CPU: 1, Memory: 512}, "arg2"),
	}
	return cfg
}

func TestKernel_Boot(t *testing.T) {
	hart := sim.New()
	con := console.NewBuffer()
	k := New(hart, con, demoConfig())

	summary, err := k.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &batch.Summary{Completed: 2}, summary)
	assert.Equal(t, 0, k.Runner().Status().Queued)
	assert.Equal(t, resource.Requirement{CPU: 4, Memory: 1024}, k.Runner().Status().Available)

	entry, mode := hart.TrapVector()
	assert.Equal(t, DefaultTrapVector, entry)
	assert.Equal(t, trap.VectorDirect, mode)
	assert.True(t, hart.InterruptsEnabled())
	assert.EqualValues(t, 2*DescriptorSize, k.Heap().Used())

	output := con.String()
	for _, expect := range []string{"console initialized", "interrupt handling initialized",
		"memory management initialized", "heap initialized", "task submitted", "all tasks completed"} {
		assert.Contains(t, output, expect)
	}
	assert.Less(t, strings.Index(output, "console initialized"), strings.Index(output, "interrupt handling initialized"))
	assert.Less(t, strings.Index(output, "interrupt handling initialized"), strings.Index(output, "memory management initialized"))

	_, err = k.Boot(context.Background())
	assert.ErrorIs(t, err, ErrBooted)
}

func TestKernel_BootLogsTrapStatistics(t *testing.T) {
	hart := sim.New()
	con := console.NewBuffer()
	var k *Kernel
	k = New(hart, con, demoConfig(), WithWork(func(ctx context.Context, t *task.Task) error {
		hart.Raise(trap.ExceptionCause(trap.Breakpoint), 0)
		k.Trap(&trap.Frame{PC: 0x80000000})
		return nil
	}))

	summary, err := k.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, map[string]uint64{"Breakpoint": 2}, k.Dispatcher().Stats().Snapshot())

	output := con.String()
	assert.Contains(t, output, "trap statistics")
	assert.Contains(t, output, "Breakpoint")
	assert.Less(t, strings.Index(output, "all tasks completed"), strings.Index(output, "trap statistics"))
}

func TestKernel_BootHaltsOnHeapExhaustion(t *testing.T) {
	hart := sim.New()
	cfg := demoConfig()
	cfg.HeapSize = DescriptorSize
	k := New(hart, console.NewBuffer(), cfg)

	returned := make(chan struct{})
	go func() {
		_, _ = k.Boot(context.Background())
		close(returned)
	}()

	select {
	case <-hart.Halted():
	case <-returned:
		t.Fatal("boot returned after heap exhaustion")
	case <-time.After(2 * time.Second):
		t.Fatal("hart did not halt")
	}
	fault := hart.Fault()
	require.NotNil(t, fault)
	assert.Contains(t, fault.Error(), "task2 descriptor")
	assert.Equal(t, 1, k.Runner().Status().Queued)
}

func TestKernel_ExternalInterruptDrainsConsole(t *testing.T) {
	hart := sim.New()
	con := console.NewBuffer()
	k := New(hart, con, DefaultConfig())
	_, err := k.Boot(context.Background())
	require.NoError(t, err)

	con.Feed([]byte("ab"))
	hart.Raise(trap.InterruptCause(trap.MachineExternal), 0)
	k.Trap(&trap.Frame{PC: 0x80000000})

	_, ok := con.ReadByte()
	assert.False(t, ok)
	assert.EqualValues(t, 1, k.Dispatcher().Stats().Count(trap.InterruptCause(trap.MachineExternal)))
}

func TestKernel_Idle(t *testing.T) {
	hart := sim.New().WithTick(time.Millisecond)
	k := New(hart, console.NewBuffer(), DefaultConfig())
	_, err := k.Boot(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, k.Idle(ctx), context.DeadlineExceeded)
}
