package http

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Payload is a request body that can be read exactly once. A nil reader
// means the payload is empty.
type Payload struct {
	r    io.Reader
	size int64 // -1 if unknown
	used *bool
}

// Empty is the payload without any content.
var Empty = Payload{size: 0}

// NewPayload wraps a request body. Size is inferred wherever possible, an
// [io.Reader] is inspected for a Size() or Len() method.
func NewPayload(body interface{}) (Payload, error) {
	switch b := body.(type) {
	case nil:
		return Empty, nil
	case Payload:
		return b, nil
	case string:
		return newPayload(strings.NewReader(b), int64(len(b))), nil
	case []byte:
		return newPayload(bytes.NewReader(b), int64(len(b))), nil
	case *bytes.Buffer: // consumes the buffer, unlike http.NewRequest
		return newPayload(b, int64(b.Len())), nil
	case *bytes.Reader:
		return newPayload(b, int64(b.Len())), nil
	case *strings.Reader:
		return newPayload(b, int64(b.Len())), nil
	case io.Reader:
		size := int64(-1)
		if sizer, ok := b.(interface{ Size() int64 }); ok {
			size = sizer.Size()
		} else if l, ok := b.(interface{ Len() int }); ok {
			size = int64(l.Len())
		}
		return newPayload(b, size), nil
	default:
		return Payload{}, fmt.Errorf("unsupported body type: %T", body)
	}
}

// ReaderPayload wraps r with a caller-declared size, -1 if unknown.
func ReaderPayload(r io.Reader, size int64) Payload {
	if size < 0 {
		size = -1
	}
	return newPayload(r, size)
}

func newPayload(r io.Reader, size int64) Payload {
	return Payload{r: r, size: size, used: new(bool)}
}

// Size returns the known payload size, or -1.
func (p Payload) Size() int64 {
	return p.size
}

func (p Payload) IsEmpty() bool {
	return p.r == nil
}

// Open returns the payload content. Every copy of a non-empty Payload
// shares the same underlying reader, so only the first Open succeeds.
func (p Payload) Open() (io.Reader, error) {
	if p.r == nil {
		return eofReader{}, nil
	}
	if *p.used {
		return nil, ErrBodyConsumed
	}
	*p.used = true
	return p.r, nil
}

// Drain discards whatever is left of the payload and closes it if possible.
func (p Payload) Drain() error {
	r, err := p.Open()
	if err != nil {
		if err == ErrBodyConsumed {
			return nil
		}
		return err
	}
	_, err = io.Copy(io.Discard, r)
	if c, ok := r.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }
