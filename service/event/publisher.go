package event

import (
	"context"

	"github.com/viant/batchos/internal/clock"
	"github.com/viant/batchos/service/messaging"
	"github.com/viant/batchos/service/messaging/memory"
)

// Publisher publishes events of type T over a messaging queue.
type Publisher[T any] struct {
	queue messaging.Queue[Event[T]]
}

// NewPublisher creates a publisher over queue.
func NewPublisher[T any](queue messaging.Queue[Event[T]]) *Publisher[T] {
	return &Publisher[T]{queue: queue}
}

// NewMemoryPublisher creates a publisher backed by a memory queue.
func NewMemoryPublisher[T any](config memory.Config) *Publisher[T] {
	return NewPublisher[T](memory.NewQueue[Event[T]](config))
}

// Publish stamps and enqueues event.
func (p *Publisher[T]) Publish(ctx context.Context, event *Event[T]) error {
	event.CreatedAt = clock.Now()
	return p.queue.Publish(ctx, event)
}

// Consume waits for the next event and acknowledges it.
func (p *Publisher[T]) Consume(ctx context.Context) (*Event[T], error) {
	msg, err := p.queue.Consume(ctx)
	if err != nil || msg == nil {
		return nil, err
	}
	if err = msg.Ack(); err != nil {
		return nil, err
	}
	return msg.T(), nil
}
