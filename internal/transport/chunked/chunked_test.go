package chunked

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterFraming(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = w.Write(nil)
	require.NoError(t, err)
	_, err = w.Write(bytes.Repeat([]byte("a"), 26))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, "5\r\nhello\r\n1a\r\n"+strings.Repeat("a", 26)+"\r\n0\r\n\r\n", buf.String())
}

func TestWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Close())
	assert.Equal(t, "0\r\n\r\n", buf.String())
}

func TestReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write([]byte("first "))
	w.Write([]byte("second"))
	w.Close()
	buf.WriteString("HTTP/1.1 200 OK\r\n") // bytes after the body stay unread

	br := bytesReader(&buf)
	err := iotest.TestReader(NewReader(br), []byte("first second"))
	assert.NoError(t, err)
}

func TestReaderExtensionsAndTrailers(t *testing.T) {
	in := "4;name=value\r\nwiki\r\n5\r\npedia\r\n0\r\nExpires: never\r\n\r\n"
	b, err := io.ReadAll(NewReader(strings.NewReader(in)))
	require.NoError(t, err)
	assert.Equal(t, "wikipedia", string(b))
}

func TestReaderMalformed(t *testing.T) {
	cases := map[string]string{
		"BadHex":      "zz\r\nabc\r\n0\r\n\r\n",
		"MissingCRLF": "3\r\nabcXX0\r\n\r\n",
		"Truncated":   "a\r\nabc",
		"EmptySize":   "\r\nabc",
	}
	for name, in := range cases {
		in := in
		t.Run(name, func(t *testing.T) {
			_, err := io.ReadAll(NewReader(strings.NewReader(in)))
			assert.Error(t, err)
		})
	}
}

func bytesReader(b *bytes.Buffer) io.Reader {
	return iotest.HalfReader(b)
}
