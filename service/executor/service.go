package executor

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/log"
	"github.com/viant/batchos/model/task"
)

// Work performs a task. A returned error marks the task failed.
type Work func(ctx context.Context, t *task.Task) error

// Listener is invoked once a task's work returns, whether or not it failed.
type Listener func(t *task.Task, err error)

// Option is used to customise the executor instance.
type Option func(*Service)

// WithWork sets the function executed for every task.
func WithWork(work Work) Option {
	return func(s *Service) {
		s.work = work
	}
}

// WithListener sets the listener invoked after every executed task. Passing
// nil disables the callback.
func WithListener(l Listener) Option {
	return func(s *Service) {
		s.listener = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service runs a running task to completion. Execution is never preempted.
type Service struct {
	work     Work
	listener Listener
	logger   hclog.Logger
}

// Execute runs t's work and returns its error. t must be running.
func (s *Service) Execute(ctx context.Context, t *task.Task) error {
	if t.Status != task.StatusRunning {
		return fmt.Errorf("task %v is %v: %w", t.Name, t.Status, ErrNotRunning)
	}
	if s.work == nil {
		return ErrNoWork
	}
	s.logger.Info("starting execution", "task", t.Name, "priority", t.Priority, "resources", t.Requirement.String())
	err := s.work(ctx, t)
	if err != nil {
		s.logger.Warn("execution failed", "task", t.Name, "error", err)
	} else {
		s.logger.Info("execution completed", "task", t.Name)
	}
	if s.listener != nil {
		s.listener(t, err)
	}
	return err
}

// New creates an executor. Without WithWork it runs DefaultSynthetic.
func New(options ...Option) *Service {
	ret := &Service{logger: log.Discard()}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.Named("executor")
	if ret.work == nil {
		ret.work = Synthetic(DefaultSyntheticConfig(), ret.logger)
	}
	return ret
}
