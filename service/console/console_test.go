package console

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewStream(strings.NewReader("ok"), out)

	_, err := fmt.Fprintf(NewWriter(c), "boot %d\n", 1)
	require.NoError(t, err)
	assert.Equal(t, "boot 1\n", out.String())

	var received []byte
	assert.Eventually(t, func() bool {
		if b, ok := c.ReadByte(); ok {
			received = append(received, b)
		}
		return len(received) == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, "ok", string(received))
	_, ok := c.ReadByte()
	assert.False(t, ok)
}

func TestStream_ReadDoesNotBlock(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := NewStream(r, &bytes.Buffer{})

	_, ok := c.ReadByte()
	assert.False(t, ok)

	go func() { _, _ = w.Write([]byte("z")) }()
	var b byte
	assert.Eventually(t, func() bool {
		b, ok = c.ReadByte()
		return ok
	}, time.Second, time.Millisecond)
	assert.EqualValues(t, 'z', b)
}

func TestStream_TransmitOnly(t *testing.T) {
	c := NewStream(nil, &bytes.Buffer{})
	_, ok := c.ReadByte()
	assert.False(t, ok)
}

func TestBuffer(t *testing.T) {
	c := NewBuffer()
	n, err := NewWriter(c).Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", c.String())

	_, ok := c.ReadByte()
	assert.False(t, ok)
	c.Feed([]byte("x"))
	b, ok := c.ReadByte()
	assert.True(t, ok)
	assert.EqualValues(t, 'x', b)
}

type failingConsole struct {
	after int
}

func (f *failingConsole) WriteByte(b byte) error {
	if f.after == 0 {
		return errors.New("transmit fault")
	}
	f.after--
	return nil
}

func (f *failingConsole) ReadByte() (byte, bool) { return 0, false }

func TestWriter_PartialWrite(t *testing.T) {
	n, err := NewWriter(&failingConsole{after: 3}).Write([]byte("abcdef"))
	assert.Error(t, err)
	assert.Equal(t, 3, n)
}
