package batch

import (
	"fmt"

	"github.com/viant/batchos/model/resource"
)

// Status is a point-in-time view of the runner.
type Status struct {
	Queued       int
	Available    resource.Requirement
	NextPriority uint32
	HasNext      bool
}

func (s Status) String() string {
	if !s.HasNext {
		return fmt.Sprintf("queued=%d available=(%v)", s.Queued, s.Available)
	}
	return fmt.Sprintf("queued=%d available=(%v) next=%d", s.Queued, s.Available, s.NextPriority)
}

// Summary reports the outcome of Run.
type Summary struct {
	Completed int
	Failed    int
	// Remaining counts tasks left queued because they never became feasible.
	Remaining int
}

// Total returns the number of tasks that reached a terminal status.
func (s *Summary) Total() int {
	return s.Completed + s.Failed
}
