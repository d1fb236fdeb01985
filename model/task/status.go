package task

// Status represents the current state of a task
type Status string

const (
	StatusNew       Status = ""
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) String() string {
	if s == StatusNew {
		return "new"
	}
	return string(s)
}
