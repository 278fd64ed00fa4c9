package server_ops

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
)

var (
	rawColonSpace = []byte(": ")
	rawCrlf       = []byte("\r\n")

	httpV11 = []byte("HTTP/1.1")
)

// WriteResponseHead writes the status line, every header field and the blank
// line terminating the head in a single write. An empty message, or one
// holding a line break, is replaced with the reason phrase of code.
func WriteResponseHead(writer io.Writer, code specs.StatusCode, message string, header *specs.Header) (int64, error) {
	if !code.IsValid() {
		code = specs.StatusCodeOK
	}
	if message == "" || strings.ContainsAny(message, "\r\n") {
		message = code.Detail()
	}

	// Headline
	var buf bytes.Buffer
	buf.Write(httpV11)
	buf.WriteByte(' ')
	buf.Write(strconv.AppendUint(nil, uint64(code), 10))
	buf.WriteByte(' ')
	buf.WriteString(message)
	buf.Write(rawCrlf)

	// Headers
	if header != nil {
		for key, value := range header.All() {
			buf.WriteString(key)
			buf.Write(rawColonSpace)
			buf.WriteString(value)
			buf.Write(rawCrlf)
		}
	}

	buf.Write(rawCrlf)

	i, err := buf.WriteTo(writer)
	if err != nil {
		return i, errors.Wrap(err, "write response head")
	}
	return i, nil
}
