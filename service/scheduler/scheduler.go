package scheduler

import (
	"sync"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/log"
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
	rsrc "github.com/viant/batchos/service/resource"
)

// Pool is the authoritative capacity the scheduler selects against.
type Pool interface {
	Available() resource.Requirement
	Reserve(r resource.Requirement) (*rsrc.Lease, bool)
}

// Dispatch is a task removed from the queue together with its reserved
// capacity. Lease is nil when the pool refused the reservation.
type Dispatch struct {
	Task  *task.Task
	Lease *rsrc.Lease
}

// Reserved reports whether the task holds its capacity.
func (d *Dispatch) Reserved() bool {
	return d != nil && d.Lease != nil
}

// Scheduler is an arrival-ordered task queue with priority selection.
type Scheduler struct {
	pool   Pool
	queue  []*task.Task
	mux    sync.Locker
	logger hclog.Logger
}

// Option customises a Scheduler.
type Option func(s *Scheduler)

// WithLocker replaces the default mutex protecting the queue.
func WithLocker(locker sync.Locker) Option {
	return func(s *Scheduler) {
		if locker != nil {
			s.mux = locker
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a scheduler over pool.
func New(pool Pool, options ...Option) *Scheduler {
	ret := &Scheduler{
		pool:   pool,
		mux:    &sync.Mutex{},
		logger: log.Discard(),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.Named("scheduler")
	return ret
}

// Add appends aTask to the back of the queue and marks it queued.
func (s *Scheduler) Add(aTask *task.Task) error {
	if err := aTask.Queue(); err != nil {
		return err
	}
	s.mux.Lock()
	s.queue = append(s.queue, aTask)
	s.mux.Unlock()
	s.logger.Debug("task queued", "task", aTask.Name, "id", aTask.ID, "priority", aTask.Priority)
	return nil
}

// ScheduleNext removes and returns the highest-priority feasible task, the
// earliest arrival winning ties. Lower-priority tasks that fit are dispatched
// ahead of higher-priority tasks that do not. It returns nil, leaving the
// queue untouched, when nothing is feasible.
func (s *Scheduler) ScheduleNext() *Dispatch {
	s.mux.Lock()
	defer s.mux.Unlock()

	available := s.pool.Available()
	idx := s.selectFeasible(available)
	if idx < 0 {
		return nil
	}
	selected := s.queue[idx]
	s.queue = append(s.queue[:idx], s.queue[idx+1:]...)
	if err := selected.Start(); err != nil {
		s.logger.Error("failed to start task", "task", selected.Name, "error", err)
	}

	ret := &Dispatch{Task: selected}
	lease, ok := s.pool.Reserve(selected.Requirement)
	if !ok {
		s.logger.Warn("reservation refused by pool", "task", selected.Name,
			"required", selected.Requirement.String(), "available", s.pool.Available().String())
		return ret
	}
	ret.Lease = lease
	s.logger.Debug("task dispatched", "task", selected.Name, "priority", selected.Priority,
		"available", s.pool.Available().String())
	return ret
}

// selectFeasible returns the queue index of the first task holding the
// strictly highest priority among those fitting available, or -1.
func (s *Scheduler) selectFeasible(available resource.Requirement) int {
	best := -1
	for i, candidate := range s.queue {
		if !candidate.Requirement.Fits(available) {
			continue
		}
		if best == -1 || candidate.Priority > s.queue[best].Priority {
			best = i
		}
	}
	return best
}

// QueueLength returns the number of queued tasks.
func (s *Scheduler) QueueLength() int {
	s.mux.Lock()
	defer s.mux.Unlock()
	return len(s.queue)
}

// PeekHighestFeasiblePriority returns the priority ScheduleNext would pick
// right now without dispatching anything.
func (s *Scheduler) PeekHighestFeasiblePriority() (uint32, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	idx := s.selectFeasible(s.pool.Available())
	if idx < 0 {
		return 0, false
	}
	return s.queue[idx].Priority, true
}

// Available returns the pool's free capacity.
func (s *Scheduler) Available() resource.Requirement {
	return s.pool.Available()
}

// Pending returns copies of the queued tasks in arrival order.
func (s *Scheduler) Pending() []*task.Task {
	s.mux.Lock()
	defer s.mux.Unlock()
	ret := make([]*task.Task, 0, len(s.queue))
	for _, queued := range s.queue {
		ret = append(ret, queued.Clone())
	}
	return ret
}
