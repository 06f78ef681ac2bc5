package internal_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"

	"github.com/frankli0324/go-fetch/internal/http"
	"github.com/frankli0324/go-fetch/internal/transport"
)

// hop is one scripted connection: the response it replays and everything
// the client wrote to it.
type hop struct {
	response string

	url      *url.URL
	timeouts http.Timeouts
	written  bytes.Buffer
	closed   bool
}

type hopStream struct {
	io.Reader
	h *hop
}

func (s *hopStream) Write(p []byte) (int, error) { return s.h.written.Write(p) }
func (s *hopStream) Close() error                { s.h.closed = true; return nil }
func (s *hopStream) Raw() net.Conn               { return nil }

// TestDialer hands out one scripted hop per Dial.
type TestDialer struct {
	hops  []*hop
	dials int
}

func newTestDialer(responses ...string) *TestDialer {
	d := &TestDialer{}
	for _, r := range responses {
		d.hops = append(d.hops, &hop{response: r})
	}
	return d
}

// Dial implements dialer.Dialer.
func (d *TestDialer) Dial(ctx context.Context, u *url.URL, t http.Timeouts) (transport.Stream, error) {
	if d.dials >= len(d.hops) {
		return nil, fmt.Errorf("unexpected dial #%d to %s", d.dials+1, u)
	}
	h := d.hops[d.dials]
	d.dials++
	h.url, h.timeouts = u, t
	return &hopStream{strings.NewReader(h.response), h}, nil
}

func redirect(status int, location string, extra ...string) string {
	return fmt.Sprintf("HTTP/1.1 %d Redirect\r\nLocation: %s\r\n%sContent-Length: 0\r\n\r\n",
		status, location, strings.Join(extra, ""))
}

const okResponse = "HTTP/1.1 200 OK\r\nContent-Length: 2\r\nConnection: close\r\n\r\nok"
