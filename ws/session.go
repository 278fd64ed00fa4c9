package ws

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/oesand/ember/events"
	"github.com/oesand/ember/internal"
	"github.com/oesand/ember/internal/catch"
	"github.com/oesand/ember/internal/metrics"
	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Event names emitted by a Session.
const (
	EventFrame     = "frame"
	EventError     = "error"
	EventEmitError = "emit-err"
)

// Config tunes a session created by Upgrade.
type Config struct {
	// ReadSize is the size of the single read performed per frame.
	// If zero, DefaultReadSize is used.
	ReadSize int

	Logger *logrus.Entry
}

// Upgrade completes the opening handshake on conn and returns a listening
// session. The subscribers run after the handshake is written and before the
// read loop starts, so listeners registered there see every frame.
// On failure conn is left untouched and may still carry a plain HTTP response.
func Upgrade(conn net.Conn, challengeKey string, config Config, subscribers ...func(*Session)) (*Session, error) {
	if err := WriteHandshake(conn, challengeKey); err != nil {
		metrics.Upgrades.WithValues("failed").Inc()
		return nil, err
	}
	metrics.Upgrades.WithValues("ok").Inc()

	session := newSession(conn, config)
	session.ready.Store(true)
	// a subscriber calling Close clears listening and the loop exits at once
	session.listening.Store(true)
	for _, subscribe := range subscribers {
		if subscribe != nil {
			subscribe(session)
		}
	}

	go session.listen()

	return session, nil
}

func newSession(conn net.Conn, config Config) *Session {
	logger := config.Logger
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	session := &Session{
		conn:   conn,
		logger: logger,
		done:   make(chan struct{}),
	}

	readSize := config.ReadSize
	if readSize <= 0 {
		readSize = DefaultReadSize
	}
	session.readSize.Store(int64(readSize))

	return session
}

// Session is an upgraded websocket connection. It owns the connection: one
// read loop parses a frame per read and emits it, send operations write one
// unfragmented frame each.
type Session struct {
	_ internal.NoCopy

	conn   net.Conn
	logger *logrus.Entry

	readSize  atomic.Int64
	ready     atomic.Bool
	listening atomic.Bool
	closing   atomic.Bool
	ended     atomic.Bool

	errMu sync.Mutex
	err   error

	writeMu sync.Mutex
	done    chan struct{}

	frames events.Registry[Frame]
	errs   events.Registry[error]
}

// OnFrame registers a listener for every parsed frame.
func (session *Session) OnFrame(listener func(Frame)) {
	session.frames.On(EventFrame, listener)
}

// OnError registers a listener for the error that ended the read loop.
func (session *Session) OnError(listener func(error)) {
	session.errs.On(EventError, listener)
}

// OnEmitError registers a listener for panics raised by other listeners.
func (session *Session) OnEmitError(listener func(error)) {
	session.errs.On(EventEmitError, listener)
}

func (session *Session) Ready() bool {
	return session.ready.Load()
}

func (session *Session) Listening() bool {
	return session.listening.Load()
}

func (session *Session) Closing() bool {
	return session.closing.Load()
}

// Err returns the error that ended the read loop, if any.
func (session *Session) Err() error {
	session.errMu.Lock()
	defer session.errMu.Unlock()

	return session.err
}

func (session *Session) ReadSize() int {
	return int(session.readSize.Load())
}

// SetReadSize changes the read size starting with the next read.
func (session *Session) SetReadSize(size int) {
	if size > 0 {
		session.readSize.Store(int64(size))
	}
}

func (session *Session) RemoteAddr() net.Addr {
	return session.conn.RemoteAddr()
}

// Done is closed once the read loop has returned.
func (session *Session) Done() <-chan struct{} {
	return session.done
}

func (session *Session) SendText(text string) error {
	return session.writeFrame(OpText, []byte(text))
}

func (session *Session) SendBinary(payload []byte) error {
	return session.writeFrame(OpBinary, payload)
}

func (session *Session) Ping(payload []byte) error {
	return session.writeFrame(OpPing, payload)
}

func (session *Session) Pong(payload []byte) error {
	return session.writeFrame(OpPong, payload)
}

// Close writes a close frame and stops the read loop after the read in
// flight. The connection stays open, see End. A zero code sends
// specs.WebSocketCloseGoingAway.
func (session *Session) Close(code specs.WebSocketClose, message string) error {
	if code == 0 {
		code = specs.WebSocketCloseGoingAway
	}
	if err := session.writeFrame(OpClose, ClosePayload(code, []byte(message))); err != nil {
		return err
	}
	session.closing.Store(true)
	session.listening.Store(false)
	return nil
}

// End sends a going-away close frame unless one was already sent and closes
// the connection.
func (session *Session) End() error {
	var closeErr error
	if !session.closing.Load() {
		closeErr = session.Close(specs.WebSocketCloseGoingAway, "")
	}
	if session.ended.Swap(true) {
		return specs.ErrClosed
	}
	session.listening.Store(false)

	if err := session.conn.Close(); err != nil {
		return errors.Wrap(err, "ws: close connection")
	}
	return closeErr
}

func (session *Session) writeFrame(opcode Opcode, payload []byte) error {
	if opcode.IsControl() && len(payload) > maxControlPayload {
		return ErrControlTooLarge
	}

	session.writeMu.Lock()
	defer session.writeMu.Unlock()

	if session.ended.Load() {
		return specs.ErrClosed
	}

	if _, err := session.conn.Write(BuildFrame(opcode, payload)); err != nil {
		return catch.CatchCommonErr(err)
	}
	metrics.FramesSent.WithValues(opcode.String()).Inc()
	return nil
}

func (session *Session) listen() {
	defer close(session.done)

	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()

	var buf []byte
	for session.listening.Load() {
		size := session.ReadSize()
		if len(buf) != size {
			buf = make([]byte, size)
		}

		n, err := session.conn.Read(buf)
		if n == 0 {
			if err == nil {
				err = ErrNoData
			}
			session.fail(err)
			return
		}

		frame, _, err := ParseFrame(buf[:n])
		if err != nil {
			session.fail(err)
			return
		}
		metrics.FramesReceived.WithValues(frame.Name()).Inc()

		if err = session.frames.EmitSafe(EventFrame, frame); err != nil {
			session.emitError(err)
		}
	}
}

func (session *Session) fail(err error) {
	session.listening.Store(false)

	session.errMu.Lock()
	session.err = err
	session.errMu.Unlock()

	if catch.IsCommonNetReadError(err) {
		session.logger.WithError(err).Debug("websocket read loop ended")
	} else {
		session.logger.WithError(err).Warn("websocket read loop failed")
	}

	if !session.ended.Swap(true) {
		session.conn.Close()
	}

	if emitErr := session.errs.EmitSafe(EventError, err); emitErr != nil {
		session.emitError(emitErr)
	}
}

func (session *Session) emitError(err error) {
	session.logger.WithError(err).Error("websocket listener panicked")
	if emitErr := session.errs.EmitSafe(EventEmitError, err); emitErr != nil {
		session.logger.WithError(emitErr).Error("websocket emit-err listener panicked")
	}
}
