package executor

import (
	"context"
	"errors"
	"testing"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
)

func runningTask(t *testing.T, name string, priority uint32) *task.Task {
	ret := task.New(name, priority, resource.Requirement{CPU: 1, Memory: 1})
	require.NoError(t, ret.Queue())
	require.NoError(t, ret.Start())
	return ret
}

func TestService_Execute(t *testing.T) {
	boom := errors.New("boom")
	var testCases = []struct {
		description string
		work        Work
		expectErr   error
	}{
		{
			description: "work succeeds",
			work:        func(ctx context.Context, t *task.Task) error { return nil },
		},
		{
			description: "work fails",
			work:        func(ctx context.Context, t *task.Task) error { return boom },
			expectErr:   boom,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var observed []error
			srv := New(WithWork(testCase.work), WithListener(func(t *task.Task, err error) {
				observed = append(observed, err)
			}))
			err := srv.Execute(context.Background(), runningTask(t, "t", 1))
			assert.Equal(t, testCase.expectErr, err)
			assert.Equal(t, []error{testCase.expectErr}, observed)
		})
	}
}

func TestService_Execute_NotRunning(t *testing.T) {
	srv := New()
	err := srv.Execute(context.Background(), task.New("t", 1, resource.Requirement{}))
	assert.ErrorIs(t, err, ErrNotRunning)
}

type progressSink struct {
	hclog.Logger
	percents []interface{}
}

func (p *progressSink) Debug(msg string, args ...interface{}) {
	if msg == "progress" {
		p.percents = append(p.percents, args[3])
	}
}

func TestSynthetic(t *testing.T) {
	sink := &progressSink{Logger: hclog.NewNullLogger()}
	work := Synthetic(SyntheticConfig{IterationsPerPriority: 10, ProgressEvery: 5}, sink)

	require.NoError(t, work(context.Background(), runningTask(t, "t", 2)))
	assert.Equal(t, []interface{}{uint64(0), uint64(25), uint64(50), uint64(75)}, sink.percents)
}

func TestSynthetic_IgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink := &progressSink{Logger: hclog.NewNullLogger()}
	work := Synthetic(SyntheticConfig{IterationsPerPriority: 10, ProgressEvery: 5}, sink)

	assert.NoError(t, work(ctx, runningTask(t, "t", 1)))
	assert.Len(t, sink.percents, 2)
}
