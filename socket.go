package ember

import (
	"bytes"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oesand/ember/internal"
	"github.com/oesand/ember/internal/catch"
	"github.com/oesand/ember/internal/encoding"
	"github.com/oesand/ember/internal/metrics"
	"github.com/oesand/ember/internal/server_ops"
	"github.com/oesand/ember/specs"
	"github.com/oesand/ember/ws"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http/httpguts"
)

// SocketConfig carries the engine settings a socket needs.
type SocketConfig struct {
	ServerName        string
	WebSocketReadSize int
	Logger            *logrus.Entry
}

// NewHTTPSocket wraps an accepted connection whose first read returned data.
// The socket owns conn until it is closed, denied or upgraded.
func NewHTTPSocket(conn net.Conn, data []byte, config SocketConfig) *HTTPSocket {
	client := ParseClient(data, conn.RemoteAddr())

	logger := config.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	logger = logger.WithFields(logrus.Fields{
		"remote": conn.RemoteAddr().String(),
		"method": string(client.Method()),
		"path":   client.Path(),
	})

	serverName := config.ServerName
	if serverName == "" {
		serverName = DefaultServerName
	}

	socket := &HTTPSocket{
		conn:        conn,
		data:        data,
		client:      client,
		logger:      logger,
		wsReadSize:  config.WebSocketReadSize,
		status:      specs.StatusCodeOK,
		message:     specs.StatusCodeOK.Detail(),
		contentCode: encoding.Negotiate(client.Header("accept-encoding")),
		header: specs.NewHeader(func(header *specs.Header) {
			header.Set("Content-Type", "text/html")
			header.Set("Transfer-Encoding", "chunked")
			header.Set("Connection", "keep-alive")
			header.Set("Keep-Alive", "timeout=5")
			header.Set("Server", serverName)
			header.Set("Date", time.Now().UTC().Format(specs.TimeFormat))
		}),
	}
	socket.compress = socket.contentCode == specs.ContentEncodingGzip

	return socket
}

// transport owner of an HTTPSocket
const (
	socketOpen int32 = iota
	socketUpgraded
	socketClosed
)

// HTTPSocket writes the response of one connection. Headers can change until
// the first body write sends them; every body write is sent as one chunk.
type HTTPSocket struct {
	_ internal.NoCopy

	conn       net.Conn
	data       []byte
	client     *Client
	logger     *logrus.Entry
	wsReadSize int

	// state changes without mu only from open to closed, in Deny
	state atomic.Int32

	mu          sync.Mutex
	status      specs.StatusCode
	message     string
	header      *specs.Header
	compress    bool
	contentCode string
	headersSent bool
	bodyless    bool
	session     *ws.Session

	chunked    io.WriteCloser
	compressor encoding.Compressor
	compressed bytes.Buffer
}

func (socket *HTTPSocket) Client() *Client {
	return socket.client
}

func (socket *HTTPSocket) Logger() *logrus.Entry {
	return socket.logger
}

// Conn returns the underlying connection, or nil once it was upgraded.
func (socket *HTTPSocket) Conn() net.Conn {
	if socket.inert() {
		return nil
	}
	return socket.conn
}

// Data returns the bytes of the first read, or nil once upgraded.
func (socket *HTTPSocket) Data() []byte {
	if socket.inert() {
		return nil
	}
	return socket.data
}

func (socket *HTTPSocket) IsWebSocket() bool {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	return socket.session != nil
}

func (socket *HTTPSocket) HeadersSent() bool {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	return socket.headersSent
}

// Status returns the status code and message that are or will be sent.
func (socket *HTTPSocket) Status() (specs.StatusCode, string) {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	return socket.status, socket.message
}

// Header returns the current value of a response header.
func (socket *HTTPSocket) Header(name string) string {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	return socket.header.Get(name)
}

// SetHeader stores a response header. It reports false once the headers were
// sent, after an upgrade, or when name or value is not a valid header field.
func (socket *HTTPSocket) SetHeader(name, value string) bool {
	if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return false
	}

	socket.mu.Lock()
	defer socket.mu.Unlock()

	if socket.headersSent || socket.inert() {
		return false
	}
	socket.header.Set(name, value)
	return true
}

// WriteHead merges status, message and headers into the pending head.
// A zero status keeps the current one; an empty message with a new status
// takes the reason phrase of that status. A message that is not a valid
// field value is ignored. It does nothing once headers are sent.
func (socket *HTTPSocket) WriteHead(status specs.StatusCode, message string, headers map[string]string) {
	if !httpguts.ValidHeaderFieldValue(message) {
		message = ""
	}

	socket.mu.Lock()
	defer socket.mu.Unlock()

	if socket.headersSent || socket.inert() {
		return
	}

	if status != specs.StatusCodeUndefined {
		socket.status = status
		if message == "" {
			socket.message = status.Detail()
		}
	}
	if message != "" {
		socket.message = message
	}
	for name, value := range headers {
		if httpguts.ValidHeaderFieldName(name) && httpguts.ValidHeaderFieldValue(value) {
			socket.header.Set(name, value)
		}
	}
}

// SetCompress turns response compression on or off. It is on by default
// only when the client accepts gzip; turning it on otherwise uses the
// negotiated br or deflate encoding. Compression only applies when the client
// advertised a supported encoding. It reports false once the headers were sent.
func (socket *HTTPSocket) SetCompress(compress bool) bool {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	if socket.headersSent || socket.inert() {
		return false
	}
	socket.compress = compress
	return true
}

// SetEncoding selects the content encoding and turns compression on. It
// reports false once the headers were sent or when the encoding is unknown or
// not accepted by the client.
func (socket *HTTPSocket) SetEncoding(contentEncoding string) bool {
	contentEncoding = strings.ToLower(strings.TrimSpace(contentEncoding))
	if !encoding.IsKnownEncoding(contentEncoding) ||
		!encoding.Accepts(socket.client.Header("accept-encoding"), contentEncoding) {
		return false
	}

	socket.mu.Lock()
	defer socket.mu.Unlock()

	if socket.headersSent || socket.inert() {
		return false
	}
	socket.contentCode = contentEncoding
	socket.compress = true
	return true
}

// Encoding returns the content encoding the body is or will be sent with,
// or "" for none.
func (socket *HTTPSocket) Encoding() string {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	if !socket.compress {
		return ""
	}
	return socket.contentCode
}

// WriteText sends text as one chunk, sending the headers first if needed.
func (socket *HTTPSocket) WriteText(text string) error {
	return socket.WriteBuffer([]byte(text))
}

// WriteBuffer sends payload as one chunk, sending the headers first if needed.
// It does nothing after an upgrade. The payload is dropped when the status
// forbids a body.
func (socket *HTTPSocket) WriteBuffer(payload []byte) error {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	switch socket.state.Load() {
	case socketUpgraded:
		return nil
	case socketClosed:
		return specs.ErrClosed
	}

	if err := socket.flushHead(); err != nil {
		return err
	}
	return socket.writeChunk(payload)
}

// Close sends the terminating chunk and closes the connection.
// It does nothing after an upgrade.
func (socket *HTTPSocket) Close() error {
	return socket.CloseBuffer(nil)
}

// CloseText sends text as the last chunk and closes the connection.
func (socket *HTTPSocket) CloseText(text string) error {
	return socket.CloseBuffer([]byte(text))
}

// CloseBuffer sends payload as the last chunk, when not empty, and closes the
// connection.
func (socket *HTTPSocket) CloseBuffer(payload []byte) error {
	socket.mu.Lock()
	defer socket.mu.Unlock()

	switch socket.state.Load() {
	case socketUpgraded:
		return nil
	case socketClosed:
		return specs.ErrClosed
	}

	err := socket.flushHead()
	if err == nil && len(payload) > 0 {
		err = socket.writeChunk(payload)
	}
	if err == nil && socket.compressor != nil {
		if err = socket.compressor.Close(); err == nil {
			err = socket.emitCompressed()
		}
	}
	if err == nil && socket.chunked != nil {
		err = catch.CatchCommonErr(socket.chunked.Close())
	}

	if !socket.state.CompareAndSwap(socketOpen, socketClosed) {
		// denied while writing
		if err == nil {
			err = specs.ErrClosed
		}
		return err
	}
	if closeErr := socket.conn.Close(); err == nil && closeErr != nil {
		err = errors.Wrap(closeErr, "close connection")
	}
	return err
}

// Deny closes the connection without sending anything, without waiting
// for a write in progress; that write fails. It does nothing after an upgrade.
func (socket *HTTPSocket) Deny() {
	if socket.state.CompareAndSwap(socketOpen, socketClosed) {
		socket.conn.Close()
	}
}

// WebSocket upgrades the connection with the opening handshake and returns
// the session. The subscribers run before the session reads its first frame.
// When the handshake fails the socket is left usable for a plain response.
// Further calls return the same session.
func (socket *HTTPSocket) WebSocket(subscribers ...func(*ws.Session)) (*ws.Session, error) {
	socket.mu.Lock()
	if socket.session != nil {
		defer socket.mu.Unlock()
		return socket.session, nil
	}
	// the socket stays inert while the handshake is written and the
	// subscribers run, without holding mu
	if err := socket.upgradable(); err != nil {
		socket.mu.Unlock()
		return nil, err
	}
	socket.mu.Unlock()

	session, err := ws.Upgrade(socket.conn, socket.client.Header("sec-websocket-key"), ws.Config{
		ReadSize: socket.wsReadSize,
		Logger:   socket.logger,
	}, subscribers...)

	socket.mu.Lock()
	defer socket.mu.Unlock()

	if err != nil {
		socket.state.Store(socketOpen)
		socket.logger.WithError(err).Debug("websocket handshake failed")
		return nil, err
	}
	socket.session = session
	return session, nil
}

// upgradable moves the socket to the upgraded state when it may upgrade.
// It must be called with mu held.
func (socket *HTTPSocket) upgradable() error {
	switch {
	case socket.state.Load() == socketUpgraded:
		return specs.ErrUpgraded
	case socket.state.Load() == socketClosed:
		return specs.ErrClosed
	case socket.headersSent:
		return specs.ErrHeadersSent
	case !socket.client.IsValid():
		metrics.Upgrades.WithValues("failed").Inc()
		return ws.ErrInvalidClient
	case !socket.state.CompareAndSwap(socketOpen, socketUpgraded):
		return specs.ErrClosed
	}
	return nil
}

func (socket *HTTPSocket) inert() bool {
	return socket.state.Load() == socketUpgraded
}

// must be called with mu held
func (socket *HTTPSocket) flushHead() error {
	if socket.headersSent {
		return nil
	}
	socket.headersSent = true

	if !socket.status.AllowsBody() {
		socket.bodyless = true
		socket.header.Del("Transfer-Encoding")
		_, err := server_ops.WriteResponseHead(socket.conn, socket.status, socket.message, socket.header)
		return catch.CatchCommonErr(errors.Cause(err))
	}

	socket.chunked = encoding.NewChunkedWriter(socket.conn)
	if socket.compress && socket.contentCode != "" {
		compressor, err := encoding.NewWriter(socket.contentCode, &socket.compressed)
		if err != nil {
			return err
		}
		socket.compressor = compressor
		socket.header.Set("Content-Encoding", socket.contentCode)
	}

	_, err := server_ops.WriteResponseHead(socket.conn, socket.status, socket.message, socket.header)
	return catch.CatchCommonErr(errors.Cause(err))
}

// must be called with mu held, after flushHead
func (socket *HTTPSocket) writeChunk(payload []byte) error {
	if socket.bodyless {
		return nil
	}
	if socket.compressor == nil {
		if _, err := socket.chunked.Write(payload); err != nil {
			return catch.CatchCommonErr(err)
		}
		metrics.ResponseBytes.Inc(float64(len(payload)))
		return nil
	}

	if _, err := socket.compressor.Write(payload); err != nil {
		return err
	}
	if err := socket.compressor.Flush(); err != nil {
		return err
	}
	return socket.emitCompressed()
}

func (socket *HTTPSocket) emitCompressed() error {
	defer socket.compressed.Reset()

	if _, err := socket.chunked.Write(socket.compressed.Bytes()); err != nil {
		return catch.CatchCommonErr(err)
	}
	metrics.ResponseBytes.Inc(float64(socket.compressed.Len()))
	return nil
}
