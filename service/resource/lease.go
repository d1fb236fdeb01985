package resource

import (
	"errors"
	"sync/atomic"

	"github.com/viant/batchos/model/resource"
)

// ErrLeaseReleased is returned when a lease is released more than once.
var ErrLeaseReleased = errors.New("resource: lease already released")

// Lease is capacity held on behalf of one dispatched task.
type Lease struct {
	manager     *Manager
	requirement resource.Requirement
	released    atomic.Bool
}

// Requirement returns the leased capacity.
func (l *Lease) Requirement() resource.Requirement {
	return l.requirement
}

// Released reports whether the capacity has been returned.
func (l *Lease) Released() bool {
	return l.released.Load()
}

// Release returns the leased capacity to the pool exactly once.
func (l *Lease) Release() error {
	if !l.released.CompareAndSwap(false, true) {
		return ErrLeaseReleased
	}
	l.manager.Release(l.requirement)
	return nil
}
