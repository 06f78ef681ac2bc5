package transport

import (
	"bufio"
	"crypto/tls"
	"io"
	"net"
)

// Stream is the duplex byte stream a single request is written to and its
// response read from. It is either [*Plain] or [*Secure].
type Stream interface {
	io.ReadWriteCloser
	// Raw returns the underlying socket.
	Raw() net.Conn
}

type Plain struct {
	net.Conn
}

func NewPlain(c net.Conn) *Plain {
	return &Plain{c}
}

func (p *Plain) Raw() net.Conn { return p.Conn }

// Secure owns both the TLS session and the socket under it. The handshake
// happens on the first Read or Write.
type Secure struct {
	*tls.Conn
	sock net.Conn
}

func NewSecure(c *tls.Conn, sock net.Conn) *Secure {
	return &Secure{c, sock}
}

func (s *Secure) Raw() net.Conn { return s.sock }

// buffered serves reads from the bufio.Reader the response head was parsed
// with, so bytes read ahead of the body are not lost.
type buffered struct {
	br *bufio.Reader
	Stream
}

func (b *buffered) Read(p []byte) (int, error) {
	return b.br.Read(p)
}

type bodyCloser struct {
	io.Reader
	close func() error
}

func (b bodyCloser) Close() error {
	return b.close()
}
