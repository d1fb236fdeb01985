package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/batchos/service/messaging/memory"
)

func TestPublisher(t *testing.T) {
	publisher := NewMemoryPublisher[string](memory.DefaultConfig())
	ctx := context.Background()

	require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{TaskName: "task1", EventType: TypeQueued}, "payload")))
	actual, err := publisher.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "payload", actual.Data)
	assert.Equal(t, TypeQueued, actual.Context.EventType)
	assert.False(t, actual.CreatedAt.IsZero())
}

func TestListener(t *testing.T) {
	publisher := NewMemoryPublisher[int](memory.DefaultConfig())
	ctx := context.Background()

	var mux sync.Mutex
	var received []int
	listener := NewListener(publisher, func(e *Event[int]) {
		mux.Lock()
		received = append(received, e.Data)
		mux.Unlock()
	})
	listener.Start(ctx)
	for i := 1; i <= 3; i++ {
		require.NoError(t, publisher.Publish(ctx, NewEvent(&Context{EventType: TypeCompleted}, i)))
	}

	assert.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(received) == 3
	}, time.Second, 5*time.Millisecond)
	listener.Stop()
	listener.Stop()

	mux.Lock()
	defer mux.Unlock()
	assert.Equal(t, []int{1, 2, 3}, received)
}
