package ember

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/oesand/ember/events"
	"github.com/oesand/ember/internal/catch"
	"github.com/oesand/ember/internal/metrics"
	"github.com/oesand/ember/internal/stream"
	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Engine accepts connections, reads each request once and emits an
// HTTPSocket for it with the "connection" event.
// Fields must be set before Start or Serve.
type Engine struct {
	// Host to listen on. If empty, DefaultHost is used.
	Host string

	// Port to listen on. If zero, DefaultPort is used.
	// Start updates it when called with a port.
	Port int

	// ReadSize is the size of the single read that holds the whole request.
	// If zero, DefaultReadSize is used.
	ReadSize int

	// WebSocketReadSize is the read size of upgraded sessions.
	// If zero, DefaultWebSocketReadSize is used.
	WebSocketReadSize int

	// Server name for sending in response headers.
	ServerName string

	Logger *logrus.Entry

	events events.Registry[*HTTPSocket]

	mutex    sync.Mutex
	listener net.Listener
	serving  sync.WaitGroup
}

// On registers a listener for event. Listeners of the same event run in
// registration order. A panicking "connection" listener is logged, the
// connection is denied and the listeners after it are skipped.
func (engine *Engine) On(event string, listener func(*HTTPSocket)) {
	engine.events.On(event, listener)
}

// OnConnection registers a listener for every accepted connection.
func (engine *Engine) OnConnection(listener func(*HTTPSocket)) {
	engine.On(EventConnection, listener)
}

func (engine *Engine) logger() *logrus.Entry {
	if engine.Logger != nil {
		return engine.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Start listens on Host and Port, or on the given port which then replaces
// Port, and serves in the background. Any listener of a previous Start or
// Serve is closed first.
func (engine *Engine) Start(port ...int) error {
	engine.mutex.Lock()
	if len(port) > 0 {
		engine.Port = port[0]
	}
	addr := engine.address()
	engine.mutex.Unlock()

	engine.closeListener()

	config := net.ListenConfig{Control: setReuseAddr}
	listener, err := config.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", addr)
	}

	// registered before returning so Addr and Stop see it
	engine.replaceListener(listener)
	go func() {
		if err := engine.serve(listener); err != nil && !errors.Is(err, specs.ErrClosed) {
			engine.logger().WithError(err).Error("engine stopped accepting")
		}
	}()
	return nil
}

// Serve accepts connections on listener until it is closed, replacing the
// active listener. It returns specs.ErrClosed after Stop or a later Start.
func (engine *Engine) Serve(listener net.Listener) error {
	if listener == nil {
		panic("nil listener")
	}
	engine.replaceListener(listener)
	return engine.serve(listener)
}

// Stop closes the active listener and waits for its accept loop to return.
// Connections already accepted are not interrupted.
func (engine *Engine) Stop() {
	engine.closeListener()
	engine.serving.Wait()
}

// Addr returns the address of the active listener, or nil.
func (engine *Engine) Addr() net.Addr {
	engine.mutex.Lock()
	defer engine.mutex.Unlock()

	if engine.listener == nil {
		return nil
	}
	return engine.listener.Addr()
}

func (engine *Engine) address() string {
	host := engine.Host
	if host == "" {
		host = DefaultHost
	}
	port := engine.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (engine *Engine) replaceListener(listener net.Listener) {
	engine.mutex.Lock()
	previous := engine.listener
	engine.listener = listener
	engine.serving.Add(1)
	engine.mutex.Unlock()

	if previous != nil && previous != listener {
		previous.Close()
	}
}

func (engine *Engine) closeListener() {
	engine.mutex.Lock()
	listener := engine.listener
	engine.listener = nil
	engine.mutex.Unlock()

	if listener != nil {
		listener.Close()
	}
}

func (engine *Engine) serve(listener net.Listener) error {
	defer engine.serving.Done()

	logger := engine.logger().WithField("addr", listener.Addr().String())
	logger.Info("engine listening")

	var attemptDelay time.Duration
	for {
		conn, err := listener.Accept()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				if attemptDelay == 0 {
					attemptDelay = 5 * time.Millisecond
				} else if maxDelay := 1 * time.Second; attemptDelay >= maxDelay {
					attemptDelay = maxDelay
				} else {
					attemptDelay *= 2
				}

				logger.WithError(err).Warnf("accept failed, retrying in %v", attemptDelay)
				time.Sleep(attemptDelay)
				continue
			}

			if errors.Is(err, net.ErrClosed) {
				logger.Info("engine listener closed")
				return specs.ErrClosed
			}
			return errors.Wrap(err, "accept")
		}

		attemptDelay = 0
		go engine.handle(conn)
	}
}

func (engine *Engine) handle(conn net.Conn) {
	metrics.ConnectionsAccepted.Inc()

	readSize := engine.ReadSize
	if readSize <= 0 {
		readSize = DefaultReadSize
	}

	buf := stream.DefaultBufferPool.Get(readSize)
	n, err := conn.Read(buf)
	data := make([]byte, n)
	copy(data, buf[:n])
	stream.DefaultBufferPool.Put(buf)

	socket := NewHTTPSocket(conn, data, SocketConfig{
		ServerName:        engine.ServerName,
		WebSocketReadSize: engine.WebSocketReadSize,
		Logger:            engine.logger(),
	})
	logger := socket.Logger()

	// an empty or failed read is an empty request
	if err != nil && !catch.IsCommonNetReadError(err) {
		logger.WithError(err).Warn("request read failed")
	}
	if client := socket.Client(); !client.IsValid() {
		metrics.InvalidRequests.Inc()
		logger.WithError(client.Err()).Debug("invalid request")
	}

	if engine.events.Len(EventConnection) == 0 {
		logger.Debug("no connection listener, denying")
		socket.Deny()
		return
	}

	defer func() {
		if r := recover(); r != nil {
			metrics.ListenerPanics.Inc()
			logger.WithField("panic", r).Error("connection listener panicked")
			socket.Deny()
		}
	}()

	engine.events.Emit(EventConnection, socket)
}
