package transport

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/frankli0324/go-fetch/internal/http"
	"github.com/frankli0324/go-fetch/internal/transport/chunked"
)

// ChunkSize is both the largest payload sent with fixed framing when no
// framing is requested explicitly, and the copy buffer size.
const ChunkSize = 1024 * 1024

type Framing int

const (
	// FramingFixed copies the payload verbatim.
	FramingFixed Framing = iota
	// FramingChunked applies the chunked transfer coding.
	FramingChunked
	// FramingRaw copies the payload verbatim because the caller set a
	// transfer coding other than chunked, which is not ours to apply.
	FramingRaw
)

// DecideFraming picks how p is written after a prelude carrying h:
//
//  1. an explicit Transfer-Encoding is obeyed
//  2. a size known from p, or else from Content-Length, of at most
//     [ChunkSize] is sent as is
//  3. everything else is chunked since it can be really big
func DecideFraming(h http.Header, p http.Payload) (Framing, int64) {
	if te, ok := h.Lookup("Transfer-Encoding"); ok {
		if strings.EqualFold(strings.TrimSpace(te), "chunked") {
			return FramingChunked, -1
		}
		return FramingRaw, -1
	}
	size := p.Size()
	if size < 0 {
		if cl, ok := h.Lookup("Content-Length"); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(cl), 10, 64)
			if err != nil || n < 0 {
				n = 0
			}
			size = n
		}
	}
	if size < 0 || size > ChunkSize {
		return FramingChunked, size
	}
	return FramingFixed, size
}

// SendPayload streams p into w using the framing picked by [DecideFraming].
func SendPayload(w io.Writer, h http.Header, p http.Payload) error {
	r, err := p.Open()
	if err != nil {
		return err
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close() // request body is ALWAYS closed
	}

	switch f, _ := DecideFraming(h, p); f {
	case FramingChunked:
		bw := bufio.NewWriterSize(w, ChunkSize+32) // room for a chunk and its framing
		cw := chunked.NewWriter(bw)
		if err := pipe(r, cw); err != nil {
			return err
		}
		return cw.Close()
	default:
		return pipe(r, w)
	}
}

func pipe(r io.Reader, w io.Writer) error {
	buf := make([]byte, ChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
