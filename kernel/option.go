package kernel

import (
	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/service/batch"
	"github.com/viant/batchos/service/executor"
	"github.com/viant/batchos/service/memory"
)

// Option customises a Kernel.
type Option func(k *Kernel)

// WithLogger replaces the console logger.
func WithLogger(logger hclog.Logger) Option {
	return func(k *Kernel) {
		k.logger = logger
	}
}

// WithAddressSpace replaces the identity-mapped address space.
func WithAddressSpace(space memory.AddressSpace) Option {
	return func(k *Kernel) {
		k.space = space
	}
}

// WithWork replaces the synthetic workload.
func WithWork(work executor.Work) Option {
	return func(k *Kernel) {
		k.work = work
	}
}

// WithBatchOptions passes options to the batch runner.
func WithBatchOptions(options ...batch.Option) Option {
	return func(k *Kernel) {
		k.batchOptions = append(k.batchOptions, options...)
	}
}
