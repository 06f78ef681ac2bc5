package http

import "errors"

// every error returned by a request chain either wraps one of these, or is
// an I/O error from the underlying stream.
var (
	ErrUnknownScheme     = errors.New("unknown scheme")
	ErrDNSFailed         = errors.New("dns lookup failed")
	ErrConnectionFailed  = errors.New("connection failed")
	ErrBadURL            = errors.New("bad url")
	ErrTooManyRedirects  = errors.New("too many redirects")
	ErrMalformedResponse = errors.New("malformed HTTP response")
	ErrBodyConsumed      = errors.New("request body already consumed")
)
