package event

import (
	"time"

	"github.com/viant/batchos/internal/clock"
)

// Task lifecycle event types.
const (
	TypeQueued    = "queued"
	TypeStarted   = "started"
	TypeCompleted = "completed"
	TypeFailed    = "failed"
	TypeRejected  = "rejected"
)

// Context identifies what an event is about.
type Context struct {
	RunID       string `json:"runID"`
	TaskID      string `json:"taskID"`
	TaskName    string `json:"taskName"`
	EventType   string `json:"eventType"`
	TimeTakenMs int    `json:"timeTakenMs,omitempty"`
}

// Event carries data of type T with its context.
type Event[T any] struct {
	Context   *Context               `json:"context"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata"`
	Data      T                      `json:"data"`
}

// NewEvent creates an event.
func NewEvent[T any](context *Context, data T) *Event[T] {
	return &Event[T]{
		Context:   context,
		CreatedAt: clock.Now(),
		Metadata:  make(map[string]interface{}),
		Data:      data,
	}
}
