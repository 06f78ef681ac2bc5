package transport

import (
	"bytes"
	"io"
	"net"
	"strings"
)

// memStream replays a canned response and records what was written.
type memStream struct {
	io.Reader
	written bytes.Buffer
	closed  bool
}

func newMemStream(response string) *memStream {
	return &memStream{Reader: strings.NewReader(response)}
}

func (m *memStream) Write(p []byte) (int, error) { return m.written.Write(p) }
func (m *memStream) Close() error                { m.closed = true; return nil }
func (m *memStream) Raw() net.Conn               { return nil }

// countingWriter records every single Write call.
type countingWriter struct {
	bytes.Buffer
	writes int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.writes++
	return c.Buffer.Write(p)
}
