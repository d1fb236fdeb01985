package resource

import (
	"sync"

	hclog "github.com/hashicorp/go-hclog"
)

// Option customises a Manager.
type Option func(m *Manager)

// WithLocker replaces the default mutex protecting the pool. Kernels running
// on real hardware pass an interrupt guard so trap handlers never observe a
// partially updated pool.
func WithLocker(locker sync.Locker) Option {
	return func(m *Manager) {
		if locker != nil {
			m.mux = locker
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger hclog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
