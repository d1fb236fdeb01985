package memory

import (
	"sync/atomic"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/log"
)

// AddressSpace sets up translation for the kernel.
type AddressSpace interface {
	Init() error
}

// Identity is an identity-mapped address space.
type Identity struct {
	initialized atomic.Bool
	logger      hclog.Logger
}

// NewIdentity returns an uninitialized identity address space.
func NewIdentity(logger hclog.Logger) *Identity {
	return &Identity{logger: log.OrDiscard(logger).Named("memory")}
}

// Init runs once; later calls are no-ops.
func (s *Identity) Init() error {
	if s.initialized.Swap(true) {
		return nil
	}
	s.logger.Info("memory management initialized", "mode", "identity", "pageSize", PageSize)
	return nil
}

// Initialized reports whether Init has run.
func (s *Identity) Initialized() bool {
	return s.initialized.Load()
}
