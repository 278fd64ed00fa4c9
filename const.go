package ember

import "github.com/oesand/ember/ws"

const (
	// DefaultServerName default value for Engine.ServerName parameter
	DefaultServerName = "ember"

	// DefaultHost default value for Engine.Host parameter
	DefaultHost = "0.0.0.0"

	// DefaultPort default value for Engine.Port parameter
	DefaultPort = 80

	// DefaultReadSize default value for Engine.ReadSize parameter.
	// The first read of every connection is parsed as the whole request.
	DefaultReadSize = 10 * 1024

	// DefaultWebSocketReadSize default value for Engine.WebSocketReadSize parameter
	DefaultWebSocketReadSize = ws.DefaultReadSize

	// EventConnection is emitted by the Engine with every accepted HTTPSocket.
	EventConnection = "connection"
)
