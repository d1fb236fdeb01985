package resource

import (
	"sync"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/viant/batchos/log"
	"github.com/viant/batchos/model/resource"
)

// Manager grants and releases capacity atomically across all dimensions.
type Manager struct {
	pool   resource.Pool
	mux    sync.Locker
	logger hclog.Logger
}

// New creates a manager with all of total available.
func New(total resource.Requirement, options ...Option) *Manager {
	ret := &Manager{
		pool:   resource.NewPool(total),
		mux:    &sync.Mutex{},
		logger: log.Discard(),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.Named("resource")
	return ret
}

// Allocate decrements the available capacity by r when every dimension fits.
// Otherwise the pool is left untouched and false is returned.
func (m *Manager) Allocate(r resource.Requirement) bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	if !r.Fits(m.pool.Available) {
		m.logger.Debug("allocation refused", "requested", r.String(), "available", m.pool.Available.String())
		return false
	}
	m.pool.Available = m.pool.Available.Sub(r)
	m.logger.Trace("allocated", "requested", r.String(), "available", m.pool.Available.String())
	return true
}

// Release returns r to the pool. Every call must match exactly one prior
// successful Allocate of the same requirement; the pool is not clamped to
// its total.
func (m *Manager) Release(r resource.Requirement) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.pool.Available = m.pool.Available.Add(r)
	if !m.pool.Consistent() {
		m.logger.Warn("release exceeded pool total", "released", r.String(),
			"available", m.pool.Available.String(), "total", m.pool.Total.String())
		return
	}
	m.logger.Trace("released", "released", r.String(), "available", m.pool.Available.String())
}

// Reserve allocates r and wraps the allocation in a single-use lease.
func (m *Manager) Reserve(r resource.Requirement) (*Lease, bool) {
	if !m.Allocate(r) {
		return nil, false
	}
	return &Lease{manager: m, requirement: r}, true
}

// Available returns a snapshot of the free capacity.
func (m *Manager) Available() resource.Requirement {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.pool.Available
}

// Total returns the pool capacity.
func (m *Manager) Total() resource.Requirement {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.pool.Total
}

// Pool returns a snapshot of total and available capacity.
func (m *Manager) Pool() resource.Pool {
	m.mux.Lock()
	defer m.mux.Unlock()
	return m.pool
}
