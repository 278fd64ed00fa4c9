package router

import (
	"strings"

	"github.com/oesand/ember"
	"github.com/oesand/ember/specs"
	"github.com/oesand/ember/ws"
	"golang.org/x/net/http/httpguts"
)

// EchoPlugin upgrades websocket requests and answers every text frame with
// "client said: <text>". The text "!ping" sends a ping and "!close" starts the
// close handshake. Plain requests get "hello".
type EchoPlugin struct{}

func (plugin *EchoPlugin) Serve(socket *ember.HTTPSocket, request *Request) error {
	if !IsWebSocketRequest(request.Client) {
		if err := socket.WriteText("hello"); err != nil {
			return err
		}
		return socket.Close()
	}

	logger := socket.Logger()
	_, err := socket.WebSocket(func(session *ws.Session) {
		session.OnFrame(func(frame ws.Frame) {
			echoFrame(session, frame)
		})
		session.OnError(func(err error) {
			logger.WithError(err).Debug("echo session ended")
		})
		session.OnEmitError(func(err error) {
			logger.WithError(err).Warn("echo listener failed")
		})
	})
	if err != nil {
		socket.WriteHead(specs.StatusCodeBadRequest, "", nil)
		return socket.CloseText("websocket handshake failed")
	}
	return nil
}

func echoFrame(session *ws.Session, frame ws.Frame) {
	switch frame.Opcode() {
	case ws.OpPing:
		session.Pong(frame.Payload())
	case ws.OpText:
		switch text := frame.Text(); text {
		case "!ping":
			session.Ping([]byte("crazy"))
		case "!close":
			session.Close(specs.WebSocketCloseGoingAway, "Closing because of close command")
		default:
			session.SendText("client said: " + text)
		}
	case ws.OpClose:
		if session.Closing() {
			// acknowledgement of our own close
			session.End()
			return
		}
		code, ok := frame.CloseCode()
		if !ok {
			session.Close(specs.WebSocketCloseProtocolError, "Client initiated closure. Cannot read closure code")
		} else {
			session.Close(code, "Client initiated closure")
		}
		session.End()
	}
}

// IsWebSocketRequest reports whether client asks for a websocket upgrade.
func IsWebSocketRequest(client *ember.Client) bool {
	return strings.EqualFold(client.Header("upgrade"), "websocket") &&
		httpguts.HeaderValuesContainsToken([]string{client.Header("connection")}, "upgrade")
}
