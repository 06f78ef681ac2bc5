package dialer

import (
	"net"
	"time"

	"github.com/frankli0324/go-fetch/internal/http"
)

// deadlineConn re-arms the read or write deadline before every operation,
// turning absolute deadlines into per-operation timeouts.
type deadlineConn struct {
	net.Conn
	read, write time.Duration
}

// withTimeouts leaves c untouched when neither timeout is set. A zero
// timeout is never turned into a deadline.
func withTimeouts(c net.Conn, t http.Timeouts) net.Conn {
	if t.Read <= 0 && t.Write <= 0 {
		return c
	}
	return &deadlineConn{c, t.Read, t.Write}
}

func (c *deadlineConn) Read(p []byte) (int, error) {
	if c.read > 0 {
		if err := c.Conn.SetReadDeadline(time.Now().Add(c.read)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Read(p)
}

func (c *deadlineConn) Write(p []byte) (int, error) {
	if c.write > 0 {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.write)); err != nil {
			return 0, err
		}
	}
	return c.Conn.Write(p)
}
