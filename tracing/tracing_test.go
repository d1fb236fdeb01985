package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("batchos", "0.0.1", fname))

	ctx, span := StartSpan(context.Background(), "task1")
	span.WithAttributes(map[string]string{"task.priority": "1"})
	_, child := StartSpan(ctx, "child")
	EndSpan(child, errors.New("failed"))
	EndSpan(span, nil)

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "task1")
	assert.Contains(t, string(data), "task.priority")
}

func TestEndSpan_Nil(t *testing.T) {
	EndSpan(nil, nil)
	var span *Span
	assert.Nil(t, span.WithAttributes(map[string]string{"k": "v"}))
}
