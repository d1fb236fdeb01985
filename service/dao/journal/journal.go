// Package journal records tasks that reached a terminal status.
package journal

import (
	"context"

	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/service/dao"
	"github.com/viant/batchos/service/dao/criteria"
	"github.com/viant/batchos/service/dao/store"
)

// Service is an in-memory task journal. Saved and returned tasks are copies.
type Service struct {
	store *store.MemoryStore[string, task.Task]
}

var _ dao.Service[string, task.Task] = (*Service)(nil)

// New creates an empty journal.
func New() *Service {
	return &Service{store: store.NewMemoryStore[string, task.Task](func(t *task.Task) string { return t.ID })}
}

func (s *Service) Save(ctx context.Context, t *task.Task) error {
	if t == nil {
		return dao.ErrNilEntity
	}
	return s.store.Save(ctx, t.Clone())
}

func (s *Service) Load(ctx context.Context, id string) (*task.Task, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	t, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	return s.store.Delete(ctx, id)
}

// List returns journaled tasks in the order they were first saved,
// filtered by criteria.StatusParameter.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*task.Task, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	var ret []*task.Task
	for _, t := range all {
		if criteria.FilterByStatus(string(t.Status), parameters) {
			ret = append(ret, t.Clone())
		}
	}
	return ret, nil
}
