package http

import (
	"io"
	"net/url"
	"time"
)

// Timeouts of zero mean no timeout.
type Timeouts struct {
	Connect time.Duration
	Read    time.Duration // applied to every single read on the stream
	Write   time.Duration // applied to every single write on the stream
}

type Request struct {
	Method string
	URL    string
	Body   interface{}
	Header Header

	Timeouts
}

type Response struct {
	Proto      string
	Status     string
	StatusCode int
	Header     Header

	// URL is the location of the final hop of the redirect chain.
	URL *url.URL

	ContentLength int64
	Body          io.ReadCloser

	stream io.ReadWriteCloser
}

// Attach hands the transport stream over to the response.
func (r *Response) Attach(s io.ReadWriteCloser) {
	r.stream = s
}

// Stream returns the transport stream the response was read from, positioned
// right after the response head. Reading from it bypasses Body framing.
func (r *Response) Stream() io.ReadWriteCloser {
	return r.stream
}

// Redirect reports whether the response asks the client to go somewhere else.
func (r *Response) Redirect() (location string, ok bool) {
	if r.StatusCode < 300 || r.StatusCode > 399 {
		return "", false
	}
	return r.Header.Lookup("Location")
}
