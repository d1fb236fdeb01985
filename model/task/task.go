package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/viant/batchos/internal/clock"
	"github.com/viant/batchos/internal/idgen"
	"github.com/viant/batchos/model/resource"
)

// ErrInvalidTransition is returned when a status change is not permitted from
// the task's current status.
var ErrInvalidTransition = errors.New("task: invalid status transition")

// Task is a unit of batch work. Everything except the status fields is fixed
// once the task has been queued.
type Task struct {
	ID          string               `json:"id" yaml:"id,omitempty"`
	Name        string               `json:"name" yaml:"name"`
	Arguments   []string             `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Priority    uint32               `json:"priority" yaml:"priority"`
	Requirement resource.Requirement `json:"requirement" yaml:"requirement"`

	Status      Status     `json:"status" yaml:"-"`
	Error       string     `json:"error,omitempty" yaml:"-"`
	SubmittedAt time.Time  `json:"submittedAt" yaml:"-"`
	StartedAt   *time.Time `json:"startedAt,omitempty" yaml:"-"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"-"`
}

// New creates a task descriptor with a generated ID.
func New(name string, priority uint32, requirement resource.Requirement, args ...string) *Task {
	return &Task{
		ID:          idgen.New(),
		Name:        name,
		Arguments:   args,
		Priority:    priority,
		Requirement: requirement,
	}
}

// Validate checks that the descriptor can be submitted.
func (t *Task) Validate() error {
	if t == nil {
		return fmt.Errorf("task was nil")
	}
	if t.Name == "" {
		return fmt.Errorf("task name was empty")
	}
	if t.Status != StatusNew {
		return fmt.Errorf("task %v was already %v: %w", t.Name, t.Status, ErrInvalidTransition)
	}
	return nil
}

// Queue marks the task as waiting in the scheduler queue.
func (t *Task) Queue() error {
	if t.Status != StatusNew {
		return t.invalid(StatusQueued)
	}
	if t.ID == "" {
		t.ID = idgen.New()
	}
	t.SubmittedAt = clock.Now()
	t.Status = StatusQueued
	return nil
}

// Start marks the task as dispatched.
func (t *Task) Start() error {
	if t.Status != StatusQueued {
		return t.invalid(StatusRunning)
	}
	now := clock.Now()
	t.StartedAt = &now
	t.Status = StatusRunning
	return nil
}

// Complete marks the task as successfully executed.
func (t *Task) Complete() error {
	if t.Status != StatusRunning {
		return t.invalid(StatusCompleted)
	}
	now := clock.Now()
	t.CompletedAt = &now
	t.Status = StatusCompleted
	return nil
}

// Fail marks the task as failed. Both queued and running tasks can fail.
func (t *Task) Fail(err error) error {
	if t.Status != StatusRunning && t.Status != StatusQueued {
		return t.invalid(StatusFailed)
	}
	now := clock.Now()
	t.CompletedAt = &now
	if err != nil {
		t.Error = err.Error()
	}
	t.Status = StatusFailed
	return nil
}

// Duration returns how long the task ran, or zero when it never started or
// has not finished.
func (t *Task) Duration() time.Duration {
	if t.StartedAt == nil || t.CompletedAt == nil {
		return 0
	}
	return t.CompletedAt.Sub(*t.StartedAt)
}

// Clone returns a copy that shares no mutable state with t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	ret := *t
	ret.Arguments = append([]string(nil), t.Arguments...)
	if t.StartedAt != nil {
		started := *t.StartedAt
		ret.StartedAt = &started
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		ret.CompletedAt = &completed
	}
	return &ret
}

func (t *Task) String() string {
	return fmt.Sprintf("%v(priority=%d, %v, status=%v)", t.Name, t.Priority, t.Requirement, t.Status)
}

func (t *Task) invalid(to Status) error {
	return fmt.Errorf("task %v: %v -> %v: %w", t.Name, t.Status, to, ErrInvalidTransition)
}
