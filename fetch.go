// Package fetch is a synchronous HTTP/1.1 client. Every call dials a fresh
// connection for each hop of its redirect chain and hands the last
// connection over to the returned [Response].
package fetch

import (
	"github.com/frankli0324/go-fetch/internal"
	"github.com/frankli0324/go-fetch/internal/cookie"
	"github.com/frankli0324/go-fetch/internal/http"
)

type Client = internal.Client
type Option = internal.Option

type Request = http.Request
type Response = http.Response
type Header = http.Header
type Field = http.Field
type Timeouts = http.Timeouts
type Payload = http.Payload

type Cookie = http.Cookie
type Jar = cookie.Jar

const DefaultMaxRedirects = internal.DefaultMaxRedirects

var (
	NewClient        = internal.NewClient
	WithDialer       = internal.WithDialer
	WithJar          = internal.WithJar
	WithMaxRedirects = internal.WithMaxRedirects
	WithLogger       = internal.WithLogger

	NewJar        = cookie.NewJar
	NewPayload    = http.NewPayload
	ReaderPayload = http.ReaderPayload
	Empty         = http.Empty
)

var (
	ErrUnknownScheme     = http.ErrUnknownScheme
	ErrDNSFailed         = http.ErrDNSFailed
	ErrConnectionFailed  = http.ErrConnectionFailed
	ErrBadURL            = http.ErrBadURL
	ErrTooManyRedirects  = http.ErrTooManyRedirects
	ErrMalformedResponse = http.ErrMalformedResponse
	ErrBodyConsumed      = http.ErrBodyConsumed
)
