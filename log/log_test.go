package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Setenv("TRACE", "")
	testCases := []struct {
		name      string
		level     string
		expectOut bool
	}{
		{name: "info passes info", level: "info", expectOut: true},
		{name: "warn drops info", level: "warn", expectOut: false},
		{name: "unknown defaults to info", level: "loud", expectOut: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, tc.level)
			logger.Info("hello", "k", "v")
			if tc.expectOut {
				assert.Contains(t, buf.String(), "hello")
				assert.Contains(t, buf.String(), "k=v")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestNew_TraceEnv(t *testing.T) {
	t.Setenv("TRACE", "1")
	buf := &bytes.Buffer{}
	logger := New(buf, "error")
	logger.Trace("deep")
	assert.Contains(t, buf.String(), "deep")
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))
	logger := Discard()
	assert.Equal(t, logger, OrDiscard(logger))
}
