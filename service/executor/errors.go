package executor

import "errors"

var (
	ErrNoWork     = errors.New("executor: no work function")
	ErrNotRunning = errors.New("executor: task is not running")
)
