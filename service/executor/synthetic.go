package executor

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/log"
	"github.com/viant/batchos/model/task"
)

// SyntheticConfig sizes the built-in busy loop.
type SyntheticConfig struct {
	IterationsPerPriority uint64 `yaml:"iterationsPerPriority" json:"iterationsPerPriority"`
	ProgressEvery         uint64 `yaml:"progressEvery" json:"progressEvery"`
}

// DefaultSyntheticConfig returns 50000 iterations per priority unit with a
// progress marker every 5000.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{IterationsPerPriority: 50000, ProgressEvery: 5000}
}

// Synthetic returns work that spins priority*IterationsPerPriority times and
// reports percent progress every ProgressEvery iterations. A dispatched task
// runs to completion; ctx is not consulted.
func Synthetic(cfg SyntheticConfig, logger hclog.Logger) Work {
	logger = log.OrDiscard(logger)
	if cfg.ProgressEvery == 0 {
		cfg.ProgressEvery = DefaultSyntheticConfig().ProgressEvery
	}
	return func(_ context.Context, t *task.Task) error {
		iterations := uint64(t.Priority) * cfg.IterationsPerPriority
		var sink uint64
		for i := uint64(0); i < iterations; i++ {
			if i%cfg.ProgressEvery == 0 {
				logger.Debug("progress", "task", t.Name, "percent", i*100/iterations)
			}
			sink += i
		}
		_ = sink
		return nil
	}
}
