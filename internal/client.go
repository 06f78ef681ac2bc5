package internal

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/frankli0324/go-fetch/internal/cookie"
	"github.com/frankli0324/go-fetch/internal/dialer"
	"github.com/frankli0324/go-fetch/internal/http"
	"github.com/frankli0324/go-fetch/internal/transport"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxRedirects = 5

var defaultDialer = &dialer.Connector{}

// Client sends requests and follows redirects. The zero value is usable: it
// dials with a plain [dialer.Connector], keeps no cookies and follows up to
// [DefaultMaxRedirects] redirects.
type Client struct {
	dialer       dialer.Dialer
	jar          *cookie.Jar
	maxRedirects *int
	logger       *zap.Logger
}

type Option func(*Client)

func NewClient(opts ...Option) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithDialer(d dialer.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithJar shares j with every request made by the client. The client never
// locks j.
func WithJar(j *cookie.Jar) Option {
	return func(c *Client) { c.jar = j }
}

// WithMaxRedirects sets the redirect budget of every call, 0 refuses to
// follow any redirect.
func WithMaxRedirects(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(c *Client) { c.maxRedirects = &n }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func (c *Client) Jar() *cookie.Jar {
	return c.jar
}

func (c *Client) dial(ctx context.Context, u *url.URL, t http.Timeouts) (transport.Stream, error) {
	if c.dialer != nil {
		return c.dialer.Dial(ctx, u, t)
	}
	return defaultDialer.Dial(ctx, u, t)
}

func (c *Client) budget() int {
	if c.maxRedirects != nil {
		return *c.maxRedirects
	}
	return DefaultMaxRedirects
}

func (c *Client) log() *zap.Logger {
	if c.logger != nil {
		return c.logger
	}
	return zap.NewNop()
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.CtxDo(context.Background(), req)
}

// CtxDo sends req and follows redirects. ctx bounds name resolution and
// connecting only; reads and writes are bounded by req.Timeouts.
//
// The returned response owns the connection, the caller must close its Body.
func (c *Client) CtxDo(ctx context.Context, req *http.Request) (*http.Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", http.ErrBadURL, err)
	}
	payload, err := http.NewPayload(req.Body)
	if err != nil {
		return nil, err
	}
	method := req.Method
	if method == "" {
		method = "GET"
	}
	return c.follow(ctx, req, method, u, payload)
}

// follow runs one hop per iteration. Each hop opens a new connection; the
// previous one is closed before the next is dialed.
func (c *Client) follow(ctx context.Context, req *http.Request, method string, u *url.URL, payload http.Payload) (*http.Response, error) {
	log := c.log().With(zap.String("chain", uuid.NewString()))
	header := req.Header
	for budget := c.budget(); ; budget-- {
		log.Debug("sending request", zap.String("method", method), zap.Stringer("url", u), zap.Int("redirects_left", budget))
		resp, s, err := c.attempt(ctx, req, header, method, u, payload, log)
		if err != nil {
			return nil, err
		}

		location, ok := resp.Redirect()
		if !ok {
			// the payload can be empty now depending on redirects
			if err := transport.SendPayload(s, header, payload); err != nil {
				s.Close()
				return nil, err
			}
			resp.URL = u
			return resp, nil
		}
		s.Close()

		if budget <= 0 {
			return nil, fmt.Errorf("%w: last location %q", http.ErrTooManyRedirects, location)
		}
		next, err := u.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("%w: bad redirection: %s", http.ErrBadURL, location)
		}

		switch resp.StatusCode {
		case 301, 302, 303:
			if err := payload.Drain(); err != nil {
				return nil, err
			}
			// the body is gone, so are the fields describing it
			method, payload = "GET", http.Empty
			header = req.Header.Without("Content-Length", "Transfer-Encoding")
		default: // 307, 308 and the rest keep method and payload
		}
		log.Debug("following redirect", zap.Int("status", resp.StatusCode), zap.Stringer("location", next))
		u = next
	}
}

// attempt connects, sends the prelude and reads the response head. On error
// the stream is already closed.
func (c *Client) attempt(ctx context.Context, req *http.Request, header http.Header, method string, u *url.URL, p http.Payload, log *zap.Logger) (*http.Response, transport.Stream, error) {
	host := u.Hostname()
	path := u.Path
	if path == "" {
		path = "/"
	}

	s, err := c.dial(ctx, u, req.Timeouts)
	if err != nil {
		return nil, nil, err
	}

	fields := append(header.Clone(), framingFields(header, p)...)
	fields = append(fields, cookie.Match(c.jar, host, path, u.Scheme == "https")...)
	if err := transport.WritePrelude(s, method, u.RequestURI(), u.Host, fields); err != nil {
		s.Close()
		return nil, nil, err
	}

	resp, err := transport.ReadResponse(s, method)
	if err != nil {
		s.Close()
		return nil, nil, err
	}
	// squirrel away cookies, redirect or not
	cookie.Store(c.jar, host, resp.Header.Values("Set-Cookie"), log)
	return resp, s, nil
}

// framingFields declares the framing SendPayload is going to use, unless the
// caller already did.
func framingFields(h http.Header, p http.Payload) http.Header {
	if h.Has("Content-Length") || h.Has("Transfer-Encoding") {
		return nil
	}
	switch f, size := transport.DecideFraming(h, p); {
	case f == transport.FramingChunked:
		return http.Header{{"Transfer-Encoding", "chunked"}}
	case size > 0:
		return http.Header{{"Content-Length", strconv.FormatInt(size, 10)}}
	}
	return nil
}
