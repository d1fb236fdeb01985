package batch

import (
	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/model/task"
	"github.com/viant/batchos/policy"
	"github.com/viant/batchos/progress"
	"github.com/viant/batchos/service/dao"
	"github.com/viant/batchos/service/event"
	"github.com/viant/batchos/service/executor"
	"github.com/viant/batchos/service/scheduler"
)

// Option customises a Runner.
type Option func(r *Runner)

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithExecutor sets the task executor.
func WithExecutor(executor *executor.Service) Option {
	return func(r *Runner) {
		r.executor = executor
	}
}

// WithSchedulerOptions passes options to the runner's scheduler.
func WithSchedulerOptions(options ...scheduler.Option) Option {
	return func(r *Runner) {
		r.schedulerOptions = append(r.schedulerOptions, options...)
	}
}

// WithPolicy sets the admission policy.
func WithPolicy(p *policy.Policy) Option {
	return func(r *Runner) {
		r.policy = p
	}
}

// WithPublisher sets where task lifecycle events are published.
func WithPublisher(publisher *event.Publisher[task.Task]) Option {
	return func(r *Runner) {
		r.publisher = publisher
	}
}

// WithJournal sets the store terminal tasks are saved to.
func WithJournal(journal dao.Service[string, task.Task]) Option {
	return func(r *Runner) {
		r.journal = journal
	}
}

// WithProgress sets the counters tracker.
func WithProgress(p *progress.Progress) Option {
	return func(r *Runner) {
		r.progress = p
	}
}

// WithRunID sets the identifier stamped on events and progress.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}
