package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/service/dao"
	"github.com/viant/batchos/service/dao/criteria"
)

func terminal(t *testing.T, name string, failed bool) *task.Task {
	ret := task.New(name, 1, resource.Requirement{CPU: 1})
	require.NoError(t, ret.Queue())
	require.NoError(t, ret.Start())
	if failed {
		require.NoError(t, ret.Fail(assert.AnError))
	} else {
		require.NoError(t, ret.Complete())
	}
	return ret
}

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()
	t1 := terminal(t, "task1", false)
	t2 := terminal(t, "task2", true)
	t3 := terminal(t, "task3", false)
	for _, item := range []*task.Task{t1, t2, t3} {
		require.NoError(t, srv.Save(ctx, item))
	}

	loaded, err := srv.Load(ctx, t2.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusFailed, loaded.Status)
	loaded.Name = "changed"
	again, _ := srv.Load(ctx, t2.ID)
	assert.Equal(t, "task2", again.Name)

	var testCases = []struct {
		description string
		parameters  []*dao.Parameter
		expect      []string
	}{
		{description: "all", expect: []string{"task1", "task2", "task3"}},
		{description: "completed", parameters: []*dao.Parameter{dao.NewParameter(criteria.StatusParameter, "completed")}, expect: []string{"task1", "task3"}},
		{description: "any of", parameters: []*dao.Parameter{dao.NewParameter(criteria.StatusParameter, "failed", "running")}, expect: []string{"task2"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			items, err := srv.List(ctx, testCase.parameters...)
			require.NoError(t, err)
			var names []string
			for _, item := range items {
				names = append(names, item.Name)
			}
			assert.Equal(t, testCase.expect, names)
		})
	}

	require.NoError(t, srv.Delete(ctx, t1.ID))
	_, err = srv.Load(ctx, t1.ID)
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, srv.Delete(ctx, t1.ID), dao.ErrNotFound)
	assert.ErrorIs(t, srv.Save(ctx, nil), dao.ErrNilEntity)
	_, err = srv.Load(ctx, "")
	assert.ErrorIs(t, err, dao.ErrInvalidID)
}
