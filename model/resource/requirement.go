package resource

import "fmt"

// Requirement describes capacity in every tracked dimension. Memory is
// expressed in KiB.
type Requirement struct {
	CPU    uint64 `json:"cpu" yaml:"cpu"`
	Memory uint64 `json:"memory" yaml:"memory"`
}

// Fits reports whether every dimension of r is less than or equal to the
// corresponding dimension of available.
func (r Requirement) Fits(available Requirement) bool {
	return r.CPU <= available.CPU && r.Memory <= available.Memory
}

// Add returns the component-wise sum.
func (r Requirement) Add(other Requirement) Requirement {
	return Requirement{CPU: r.CPU + other.CPU, Memory: r.Memory + other.Memory}
}

// Sub returns the component-wise difference. Callers must check Fits first;
// the result wraps otherwise.
func (r Requirement) Sub(other Requirement) Requirement {
	return Requirement{CPU: r.CPU - other.CPU, Memory: r.Memory - other.Memory}
}

// IsZero reports whether no capacity is requested.
func (r Requirement) IsZero() bool {
	return r.CPU == 0 && r.Memory == 0
}

func (r Requirement) String() string {
	return fmt.Sprintf("cpu=%d memory=%dKB", r.CPU, r.Memory)
}
