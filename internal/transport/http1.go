package transport

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/frankli0324/go-fetch/internal/http"
	"github.com/frankli0324/go-fetch/internal/transport/chunked"
	"golang.org/x/net/http/httpguts"
)

// WritePrelude writes the request line and header part of an http 1.1
// request in a single Write, e.g.:
//
//	GET / HTTP/1.1\r\n
//	Host: www.google.com\r\n
//	X-Xx-Yy: cccccc\r\n
//	\r\n
//
// fields are written in order and as given. The Host field is only added if
// fields doesn't carry one already.
func WritePrelude(w io.Writer, method, requestURI, host string, fields http.Header) error {
	if !httpguts.ValidHeaderFieldName(method) {
		return fmt.Errorf("invalid method %q", method)
	}
	var buf bytes.Buffer
	buf.WriteString(method)
	buf.WriteByte(' ')
	buf.WriteString(requestURI)
	buf.WriteString(" HTTP/1.1\r\n")

	if !fields.Has("Host") {
		if !httpguts.ValidHostHeader(host) {
			return fmt.Errorf("invalid host %q", host)
		}
		buf.WriteString("Host: ")
		buf.WriteString(host)
		buf.WriteString("\r\n")
	}
	for _, f := range fields {
		if !httpguts.ValidHeaderFieldName(f.Name) {
			return fmt.Errorf("invalid header field name %q", f.Name)
		}
		if !httpguts.ValidHeaderFieldValue(f.Value) {
			return fmt.Errorf("invalid header field value for %q", f.Name)
		}
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(f.Value)
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// ReadResponse reads the status line and header fields from s. Interim 1xx
// responses, except 101, are skipped. The returned response owns s: its Body
// is framed according to the response head and closing it closes s.
func ReadResponse(s Stream, method string) (*http.Response, error) {
	br := bufio.NewReader(s)
	tp := textproto.NewReader(br)
	for {
		resp := &http.Response{}
		if err := readHead(tp, resp); err != nil {
			return nil, err
		}
		if resp.StatusCode >= 100 && resp.StatusCode < 200 && resp.StatusCode != 101 {
			continue
		}
		bs := &buffered{br, s}
		resp.Attach(bs)
		if err := readTransfer(br, method, resp, bs.Close); err != nil {
			return nil, err
		}
		return resp, nil
	}
}

func readHead(tp *textproto.Reader, resp *http.Response) (err error) {
	line, err := tp.ReadLine()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	proto, status, ok := strings.Cut(line, " ")
	if !ok {
		return http.ErrMalformedResponse
	}
	resp.Proto = proto
	resp.Status = strings.TrimLeft(status, " ")

	statusCode, _, _ := strings.Cut(resp.Status, " ")
	if len(statusCode) != 3 {
		return fmt.Errorf("%w: status code %q", http.ErrMalformedResponse, statusCode)
	}
	resp.StatusCode, err = strconv.Atoi(statusCode)
	if err != nil || resp.StatusCode < 0 {
		return fmt.Errorf("%w: status code %q", http.ErrMalformedResponse, statusCode)
	}

	// unlike ReadMIMEHeader, keep the order fields arrived in
	for {
		line, err := tp.ReadContinuedLine()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
		if line == "" {
			return nil
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok || !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("%w: header line %q", http.ErrMalformedResponse, line)
		}
		resp.Header.Add(name, textproto.TrimString(value))
	}
}

func readTransfer(r *bufio.Reader, method string, resp *http.Response, closer func() error) error {
	contentLens := resp.Header.Values("Content-Length")

	// Hardening against HTTP request smuggling, taken from standard library
	if len(contentLens) > 1 {
		// Per RFC 7230 Section 3.3.2
		first := textproto.TrimString(contentLens[0])
		for _, ct := range contentLens[1:] {
			if first != textproto.TrimString(ct) {
				return fmt.Errorf("http: message cannot contain multiple Content-Length headers; got %q", contentLens)
			}
		}
	}

	cl := int64(-1)
	if len(contentLens) > 0 {
		n, err := strconv.ParseUint(textproto.TrimString(contentLens[0]), 10, 63)
		if err == nil {
			cl = int64(n)
		}
	}

	switch {
	case method == "HEAD", resp.StatusCode == 204, resp.StatusCode == 304,
		resp.StatusCode >= 100 && resp.StatusCode < 200:
		resp.ContentLength = 0
		if method == "HEAD" {
			resp.ContentLength = cl
		}
		resp.Body = bodyCloser{eof{}, closer}
	case isChunked(resp.Header.Get("Transfer-Encoding")):
		resp.ContentLength = -1
		resp.Body = bodyCloser{chunked.NewReader(r), closer}
	case cl >= 0:
		resp.ContentLength = cl
		resp.Body = bodyCloser{io.LimitReader(r, cl), closer}
	default: // read until the server closes the connection
		resp.ContentLength = -1
		resp.Body = bodyCloser{r, closer}
	}
	return nil
}

// isChunked reports whether chunked is the final transfer coding.
func isChunked(te string) bool {
	if te == "" {
		return false
	}
	codings := strings.Split(te, ",")
	return strings.EqualFold(textproto.TrimString(codings[len(codings)-1]), "chunked")
}

type eof struct{}

func (eof) Read([]byte) (int, error) { return 0, io.EOF }
