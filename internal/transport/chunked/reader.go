package chunked

import (
	"bufio"
	"errors"
	"io"
)

var errMalformed = errors.New("malformed chunked encoding")

func NewReader(r io.Reader) io.Reader {
	var br *bufio.Reader
	if v, ok := r.(*bufio.Reader); ok {
		br = v
	} else {
		br = bufio.NewReader(r)
	}
	return &reader{br: br}
}

// br must not be embedded, io.Copy would pick up its WriteTo and skip decoding
type reader struct {
	br                             *bufio.Reader
	currentChunk                   io.Reader
	currentCount, currentChunkSize int64
	done                           bool
}

func (c *reader) readLine() ([]byte, error) {
	var line []byte
	for {
		part, isPref, err := c.br.ReadLine()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line = append(line, part...)
		if len(line) > 4096 {
			return nil, errors.New("http chunk line too long")
		}
		if !isPref {
			return line, nil
		}
	}
}

func (c *reader) readChunkHeader() (len uint64, err error) {
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	cnt := 0
	for _, b := range line {
		if b == ';' || b == ' ' || b == '\t' { // chunk extensions are ignored
			break
		}
		cnt++
		switch {
		case '0' <= b && b <= '9':
			b = b - '0'
		case 'a' <= b && b <= 'f':
			b = b - 'a' + 10
		case 'A' <= b && b <= 'F':
			b = b - 'A' + 10
		default:
			return 0, errors.New("invalid byte in chunk length")
		}
		len <<= 4
		len |= uint64(b)
	}
	if cnt == 0 {
		return 0, errMalformed
	}
	if cnt >= 16 {
		return 0, errors.New("http chunk length too large")
	}
	return
}

// skipTrailers reads trailer fields up to and including the blank line.
func (c *reader) skipTrailers() error {
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		if len(line) == 0 {
			return nil
		}
	}
}

func (c *reader) Read(p []byte) (n int, err error) {
	if c.done {
		return 0, io.EOF
	}
	if c.currentChunk == nil {
		l, err := c.readChunkHeader()
		if err != nil {
			return n, err
		}
		if l == 0 {
			if err := c.skipTrailers(); err != nil {
				return 0, err
			}
			c.done = true
			return 0, io.EOF
		}
		c.currentChunk = io.LimitReader(c.br, int64(l))
		c.currentChunkSize = int64(l)
	}
	n, err = c.currentChunk.Read(p)
	c.currentCount += int64(n)
	if err == io.EOF || c.currentCount == c.currentChunkSize {
		if c.currentCount != c.currentChunkSize {
			return n, io.ErrUnexpectedEOF
		}
		err = nil
		dr, _ := c.br.ReadByte()
		dn, err := c.br.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return n, err
		}
		if dr != '\r' || dn != '\n' {
			return n, errMalformed
		}
		c.currentChunk = nil
		c.currentCount = 0
	}
	return
}
