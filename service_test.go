package batchos

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/batchos/kernel"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/policy"
	"github.com/viant/batchos/service/batch"
	"github.com/viant/batchos/service/console"
	"github.com/viant/batchos/service/event"
	"github.com/viant/batchos/service/trap/sim"
)

func quickConfig() *Config {
	cfg := DefaultConfig()
	cfg.Workload.IterationsPerPriority = 10
	cfg.Workload.ProgressEvery = 5
	return cfg
}

func TestService_Boot(t *testing.T) {
	con := console.NewBuffer()
	var mux sync.Mutex
	var events []string
	srv := New(
		WithConfig(quickConfig()),
		WithHart(sim.New()),
		WithConsole(con),
		WithEventHandler(func(e *event.Event[task.Task]) {
			mux.Lock()
			events = append(events, e.Context.TaskName+":"+e.Context.EventType)
			mux.Unlock()
		}),
	)
	defer srv.Close()

	summary, err := srv.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &batch.Summary{Completed: 2}, summary)
	assert.Contains(t, con.String(), "all tasks completed")

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(events) == 6
	}, time.Second, 5*time.Millisecond)
	mux.Lock()
	assert.Equal(t, "task2:started", events[2])
	mux.Unlock()

	_, err = srv.Boot(context.Background())
	assert.ErrorIs(t, err, kernel.ErrBooted)
}

func TestService_Policy(t *testing.T) {
	cfg := quickConfig()
	cfg.Policy = &policy.Config{BlockList: []string{"task1"}}
	srv := New(WithConfig(cfg), WithConsole(console.NewBuffer()))

	summary, err := srv.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Completed)

	tasks, err := srv.Kernel().Runner().Tasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task2", tasks[0].Name)
}

func TestService_Work(t *testing.T) {
	var ran []string
	srv := New(WithConfig(quickConfig()), WithConsole(console.NewBuffer()),
		WithWork(func(ctx context.Context, t *task.Task) error {
			ran = append(ran, t.Name)
			return nil
		}))
	_, err := srv.Boot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"task2", "task1"}, ran)
}

func TestService_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Heap.Size = 0
	_, err := New(WithConfig(cfg), WithConsole(console.NewBuffer())).Boot(context.Background())
	assert.Error(t, err)
	assert.Error(t, New().Idle(context.Background()))
}
