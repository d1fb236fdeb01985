package resource

// Pool is a snapshot of total and currently available capacity.
type Pool struct {
	Total     Requirement `json:"total" yaml:"total"`
	Available Requirement `json:"available" yaml:"available"`
}

// NewPool returns a pool with all of total available.
func NewPool(total Requirement) Pool {
	return Pool{Total: total, Available: total}
}

// InUse returns the capacity currently allocated.
func (p Pool) InUse() Requirement {
	return p.Total.Sub(p.Available)
}

// Consistent reports whether 0 <= available <= total holds in every
// dimension.
func (p Pool) Consistent() bool {
	return p.Available.Fits(p.Total)
}
