//go:build !linux
// +build !linux

package dialer

import (
	"syscall"

	"github.com/frankli0324/go-fetch/internal/http"
)

func control(http.Timeouts) func(network, address string, c syscall.RawConn) error {
	return nil
}
