package mock

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"
)

// NewConn creates an in-memory connection. Reads consume input and then
// return io.EOF; writes are recorded.
func NewConn(remoteAddr net.Addr, input []byte) *Conn {
	if remoteAddr == nil {
		remoteAddr = &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8080}
	}
	return &Conn{
		remoteAddr: remoteAddr,
		input:      bytes.NewReader(input),
	}
}

// Conn is a net.Conn recording everything written to it.
type Conn struct {
	remoteAddr net.Addr

	mu      sync.Mutex
	input   *bytes.Reader
	written bytes.Buffer
	writes  int
	closed  bool
}

func (c *Conn) Read(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}
	if c.input.Len() == 0 {
		return 0, io.EOF
	}
	return c.input.Read(b)
}

func (c *Conn) Write(b []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}
	c.writes++
	return c.written.Write(b)
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return net.ErrClosed
	}
	c.closed = true
	return nil
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written.String()
}

// Writes returns the number of Write calls.
func (c *Conn) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writes
}

func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 80}
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.remoteAddr
}

func (c *Conn) SetDeadline(time.Time) error      { return nil }
func (c *Conn) SetReadDeadline(time.Time) error  { return nil }
func (c *Conn) SetWriteDeadline(time.Time) error { return nil }
