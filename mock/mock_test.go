package mock

import (
	"io"
	"net"
	"testing"

	"github.com/oesand/ember/specs"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestRequestBuilder_Bytes(t *testing.T) {
	raw := DefaultRequest().
		Method(specs.HttpMethodPost).
		Path("/submit").
		ConfHeader(func(header *specs.Header) {
			header.Set("host", "example.com")
		}).
		Body([]byte("a=1")).
		Bytes()

	assert.Check(t, is.Equal(string(raw), "POST /submit HTTP/1.1\r\nHost: example.com\r\n\r\na=1"))
}

func TestConn_RecordsWrites(t *testing.T) {
	conn := DefaultRequest().Conn()

	buf := make([]byte, 64)
	n, err := conn.Read(buf)
	assert.NilError(t, err)
	assert.Check(t, is.Equal(string(buf[:n]), "GET / HTTP/1.1\r\n\r\n"))

	_, err = conn.Read(buf)
	assert.Check(t, is.ErrorIs(err, io.EOF))

	_, err = conn.Write([]byte("abc"))
	assert.NilError(t, err)
	assert.Check(t, is.Equal(conn.Written(), "abc"))
	assert.Check(t, is.Equal(conn.Writes(), 1))

	assert.NilError(t, conn.Close())
	assert.Check(t, conn.Closed())
	_, err = conn.Write([]byte("late"))
	assert.Check(t, is.ErrorIs(err, net.ErrClosed))
}
