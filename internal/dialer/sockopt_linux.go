//go:build linux
// +build linux

package dialer

import (
	"syscall"
	"time"

	"github.com/frankli0324/go-fetch/internal/http"
	"golang.org/x/sys/unix"
)

// control makes the kernel give up on unacknowledged data after the write
// timeout too, so a stalled peer is also noticed outside of Write calls.
func control(t http.Timeouts) func(network, address string, c syscall.RawConn) error {
	ms := int(t.Write / time.Millisecond)
	if ms <= 0 {
		return nil
	}
	return func(_, _ string, c syscall.RawConn) error {
		var serr error
		if err := c.Control(func(fd uintptr) {
			serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_USER_TIMEOUT, ms)
		}); err != nil {
			return err
		}
		return serr
	}
}
