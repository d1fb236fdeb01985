package batch

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/internal/idgen"
	"github.com/viant/batchos/log"
	"github.com/viant/batchos/model/resource"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/policy"
	"github.com/viant/batchos/progress"
	"github.com/viant/batchos/service/dao"
	"github.com/viant/batchos/service/dao/criteria"
	"github.com/viant/batchos/service/dao/journal"
	"github.com/viant/batchos/service/event"
	"github.com/viant/batchos/service/executor"
	rsrc "github.com/viant/batchos/service/resource"
	"github.com/viant/batchos/service/scheduler"
	"github.com/viant/batchos/tracing"
)

// ErrAllocationFailed marks a task whose capacity could not be reserved at
// dispatch.
var ErrAllocationFailed = errors.New("resource allocation failed")

// Pool is the capacity a Runner schedules against; the resource manager
// satisfies it.
type Pool interface {
	scheduler.Pool
	Total() resource.Requirement
}

// Runner is the batch system: a scheduler over a resource pool plus the
// executor that runs dispatched tasks.
type Runner struct {
	runID            string
	pool             Pool
	scheduler        *scheduler.Scheduler
	schedulerOptions []scheduler.Option
	executor         *executor.Service
	policy           *policy.Policy
	publisher        *event.Publisher[task.Task]
	journal          dao.Service[string, task.Task]
	progress         *progress.Progress
	logger           hclog.Logger
}

// New creates a runner over pool.
func New(pool Pool, options ...Option) *Runner {
	ret := &Runner{pool: pool, logger: log.Discard()}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.Named("batch")
	if ret.runID == "" {
		ret.runID = idgen.New()
	}
	ret.scheduler = scheduler.New(pool, append([]scheduler.Option{scheduler.WithLogger(ret.logger)}, ret.schedulerOptions...)...)
	if ret.executor == nil {
		ret.executor = executor.New(executor.WithLogger(ret.logger))
	}
	if ret.journal == nil {
		ret.journal = journal.New()
	}
	if ret.progress == nil {
		ret.progress = progress.New(ret.runID, nil)
	}
	return ret
}

// RunID returns the run identifier.
func (r *Runner) RunID() string {
	return r.runID
}

// Scheduler returns the runner's scheduler.
func (r *Runner) Scheduler() *scheduler.Scheduler {
	return r.scheduler
}

// Progress returns the runner's counters.
func (r *Runner) Progress() *progress.Progress {
	return r.progress
}

// Submit admits t and queues it. A task whose requirement exceeds the pool
// total is accepted but will never be dispatched.
func (r *Runner) Submit(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := r.policy.Admit(ctx, t.Name, t.Arguments); err != nil {
		r.logger.Warn("task rejected", "task", t.Name, "error", err)
		r.publish(ctx, t, event.TypeRejected)
		return err
	}
	if total := r.pool.Total(); !t.Requirement.Fits(total) {
		r.logger.Warn("task can never be scheduled", "task", t.Name,
			"required", t.Requirement.String(), "total", total.String())
	}
	if err := r.scheduler.Add(t); err != nil {
		return fmt.Errorf("failed to queue task %v: %w", t.Name, err)
	}
	r.progress.Update(progress.Delta{Total: 1, Pending: 1})
	r.logger.Info("task submitted", "task", t.Name, "id", t.ID, "priority", t.Priority,
		"resources", t.Requirement.String())
	r.publish(ctx, t, event.TypeQueued)
	return nil
}

// Run dispatches queued tasks until nothing feasible remains or ctx is done.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	r.logger.Info("starting batch execution")
	summary := &Summary{}
	for {
		if err := ctx.Err(); err != nil {
			summary.Remaining = r.scheduler.QueueLength()
			return summary, err
		}
		status := r.Status()
		r.logger.Info("status", "queued", status.Queued, "cpu", status.Available.CPU,
			"memory", status.Available.Memory, "next", r.nextPriority(status))

		dispatch := r.scheduler.ScheduleNext()
		if dispatch == nil {
			summary.Remaining = r.scheduler.QueueLength()
			r.logger.Info("no more tasks to execute", "completed", summary.Completed,
				"failed", summary.Failed, "total", summary.Total(), "remaining", summary.Remaining)
			return summary, nil
		}
		r.progress.Update(progress.Delta{Pending: -1, Running: 1})
		r.publish(ctx, dispatch.Task, event.TypeStarted)

		if !dispatch.Reserved() {
			r.logger.Error("failed to allocate resources", "task", dispatch.Task.Name,
				"required", dispatch.Task.Requirement.String())
			r.finish(ctx, dispatch.Task, ErrAllocationFailed)
			summary.Failed++
			continue
		}

		err := r.execute(ctx, dispatch.Task)
		if releaseErr := dispatch.Lease.Release(); releaseErr != nil {
			r.logger.Error("failed to release resources", "task", dispatch.Task.Name, "error", releaseErr)
		}
		r.finish(ctx, dispatch.Task, err)
		if err != nil {
			summary.Failed++
			continue
		}
		summary.Completed++
	}
}

func (r *Runner) nextPriority(status Status) string {
	if !status.HasNext {
		return "none"
	}
	return strconv.FormatUint(uint64(status.NextPriority), 10)
}

func (r *Runner) execute(ctx context.Context, t *task.Task) error {
	ctx, span := tracing.StartSpan(ctx, "task "+t.Name)
	span.WithAttributes(map[string]string{
		"task.id":       t.ID,
		"task.priority": strconv.FormatUint(uint64(t.Priority), 10),
		"task.cpu":      strconv.FormatUint(t.Requirement.CPU, 10),
		"task.memory":   strconv.FormatUint(t.Requirement.Memory, 10),
	})
	err := r.executor.Execute(ctx, t)
	tracing.EndSpan(span, err)
	return err
}

func (r *Runner) finish(ctx context.Context, t *task.Task, err error) {
	eventType := event.TypeCompleted
	delta := progress.Delta{Running: -1, Completed: 1}
	if err != nil {
		eventType = event.TypeFailed
		delta = progress.Delta{Running: -1, Failed: 1}
		if failErr := t.Fail(err); failErr != nil {
			r.logger.Error("failed to mark task failed", "task", t.Name, "error", failErr)
		}
	} else if completeErr := t.Complete(); completeErr != nil {
		r.logger.Error("failed to mark task completed", "task", t.Name, "error", completeErr)
	}
	r.progress.Update(delta)
	if saveErr := r.journal.Save(ctx, t); saveErr != nil {
		r.logger.Warn("failed to journal task", "task", t.Name, "error", saveErr)
	}
	r.publish(ctx, t, eventType)
}

func (r *Runner) publish(ctx context.Context, t *task.Task, eventType string) {
	if r.publisher == nil {
		return
	}
	eventCtx := &event.Context{
		RunID:       r.runID,
		TaskID:      t.ID,
		TaskName:    t.Name,
		EventType:   eventType,
		TimeTakenMs: int(t.Duration().Milliseconds()),
	}
	if err := r.publisher.Publish(ctx, event.NewEvent(eventCtx, *t.Clone())); err != nil {
		r.logger.Debug("failed to publish task event", "task", t.Name, "type", eventType, "error", err)
	}
}

// Status returns queued count, available capacity and the priority that
// would be dispatched next.
func (r *Runner) Status() Status {
	ret := Status{Queued: r.scheduler.QueueLength(), Available: r.pool.Available()}
	ret.NextPriority, ret.HasNext = r.scheduler.PeekHighestFeasiblePriority()
	return ret
}

// Task returns a copy of the task with id, whether queued or terminal.
func (r *Runner) Task(ctx context.Context, id string) (*task.Task, error) {
	ret, err := r.journal.Load(ctx, id)
	if err == nil || !errors.Is(err, dao.ErrNotFound) {
		return ret, err
	}
	for _, pending := range r.scheduler.Pending() {
		if pending.ID == id {
			return pending, nil
		}
	}
	return nil, err
}

// Tasks lists queued and terminal tasks, optionally restricted to statuses.
// Queued tasks come first in arrival order.
func (r *Runner) Tasks(ctx context.Context, statuses ...task.Status) ([]*task.Task, error) {
	var parameters []*dao.Parameter
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, status := range statuses {
			values[i] = string(status)
		}
		parameters = append(parameters, &dao.Parameter{Name: criteria.StatusParameter, Value: values})
	}
	var ret []*task.Task
	for _, pending := range r.scheduler.Pending() {
		if criteria.FilterByStatus(string(pending.Status), parameters) {
			ret = append(ret, pending)
		}
	}
	terminal, err := r.journal.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	return append(ret, terminal...), nil
}

var _ Pool = (*rsrc.Manager)(nil)
