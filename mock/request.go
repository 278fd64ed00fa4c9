package mock

import (
	"bytes"
	"net"

	"github.com/oesand/ember/specs"
)

// DefaultRequest creates a new RequestBuilder for "GET / HTTP/1.1".
func DefaultRequest() *RequestBuilder {
	return &RequestBuilder{
		method:  specs.HttpMethodGet,
		path:    "/",
		version: "HTTP/1.1",
		remoteAddr: &net.TCPAddr{
			IP:   net.IPv4(127, 0, 0, 1),
			Port: 8080,
		},
		header: specs.NewHeader(),
	}
}

// RequestBuilder is used to build the raw bytes of a request.
type RequestBuilder struct {
	method     specs.HttpMethod
	path       string
	version    string
	remoteAddr net.Addr
	header     *specs.Header
	body       []byte
}

// Method sets the HTTP method for the request.
func (b *RequestBuilder) Method(method specs.HttpMethod) *RequestBuilder {
	b.method = method
	return b
}

// Path sets the request target.
func (b *RequestBuilder) Path(path string) *RequestBuilder {
	b.path = path
	return b
}

// Version sets the protocol token of the request line.
func (b *RequestBuilder) Version(version string) *RequestBuilder {
	b.version = version
	return b
}

// Addr sets the remote address reported by Conn.
func (b *RequestBuilder) Addr(addr net.Addr) *RequestBuilder {
	b.remoteAddr = addr
	return b
}

// Header returns the header for the request.
func (b *RequestBuilder) Header() *specs.Header {
	if b.header == nil {
		b.header = specs.NewHeader()
	}
	return b.header
}

// ConfHeader applies a configuration function to the request header.
func (b *RequestBuilder) ConfHeader(conf func(*specs.Header)) *RequestBuilder {
	conf(b.Header())
	return b
}

// WebSocket adds the headers of an opening handshake with key.
func (b *RequestBuilder) WebSocket(key string) *RequestBuilder {
	return b.ConfHeader(func(header *specs.Header) {
		header.Set("Upgrade", "websocket")
		header.Set("Connection", "Upgrade")
		header.Set("Sec-WebSocket-Key", key)
		header.Set("Sec-WebSocket-Version", "13")
	})
}

// Body sets the body following the request head.
func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	b.body = body
	return b
}

// Bytes renders the request line, headers, blank line and body.
func (b *RequestBuilder) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(string(b.method))
	buf.WriteByte(' ')
	buf.WriteString(b.path)
	buf.WriteByte(' ')
	buf.WriteString(b.version)
	buf.WriteString("\r\n")
	buf.Write(b.Header().Bytes())
	buf.WriteString("\r\n")
	buf.Write(b.body)
	return buf.Bytes()
}

// Conn returns a connection whose reads return the rendered request.
func (b *RequestBuilder) Conn() *Conn {
	return NewConn(b.remoteAddr, b.Bytes())
}
