package console

import (
	"bufio"
	"bytes"
	"io"
	"sync"
)

// Console is a serial byte sink with optional receive.
type Console interface {
	// WriteByte blocks until the transmitter accepts b.
	WriteByte(b byte) error
	// ReadByte returns the next received byte, or false when none is ready.
	ReadByte() (byte, bool)
}

// Initializer is implemented by consoles that need device setup before use.
type Initializer interface {
	Init() error
}

// receiveBuffer bounds the bytes read ahead of ReadByte.
const receiveBuffer = 256

// Stream is a console over an io.Reader/io.Writer pair. Input is pumped
// from the reader by a background goroutine so ReadByte never blocks, which
// keeps it safe to call from trap context.
type Stream struct {
	mux      sync.Mutex
	received chan byte
	writer   io.Writer
	buf      [1]byte
}

// NewStream returns a console reading from r and writing to w. r may be nil
// for a transmit-only console.
func NewStream(r io.Reader, w io.Writer) *Stream {
	ret := &Stream{writer: w}
	if r != nil {
		ret.received = make(chan byte, receiveBuffer)
		go ret.pump(bufio.NewReader(r))
	}
	return ret
}

func (s *Stream) pump(reader *bufio.Reader) {
	defer close(s.received)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return
		}
		s.received <- b
	}
}

func (s *Stream) WriteByte(b byte) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.buf[0] = b
	_, err := s.writer.Write(s.buf[:])
	return err
}

func (s *Stream) ReadByte() (byte, bool) {
	if s.received == nil {
		return 0, false
	}
	select {
	case b, ok := <-s.received:
		return b, ok
	default:
		return 0, false
	}
}

// Buffer is an in-memory console; written bytes are retained and Feed queues
// bytes for ReadByte.
type Buffer struct {
	mux    sync.Mutex
	output bytes.Buffer
	input  []byte
}

// NewBuffer returns an empty buffer console.
func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) WriteByte(c byte) error {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.output.WriteByte(c)
}

func (b *Buffer) ReadByte() (byte, bool) {
	b.mux.Lock()
	defer b.mux.Unlock()
	if len(b.input) == 0 {
		return 0, false
	}
	c := b.input[0]
	b.input = b.input[1:]
	return c, true
}

// Feed queues data as received input.
func (b *Buffer) Feed(data []byte) {
	b.mux.Lock()
	defer b.mux.Unlock()
	b.input = append(b.input, data...)
}

// String returns everything written so far.
func (b *Buffer) String() string {
	b.mux.Lock()
	defer b.mux.Unlock()
	return b.output.String()
}
