package ws

import "github.com/oesand/ember/specs"

const (
	// DefaultReadSize is the size of the single read a session performs per frame.
	DefaultReadSize = 10 * 1024

	maxControlPayload = 125
)

var (
	ErrIncompleteFrame = specs.NewOpError("ws", "incomplete frame")
	ErrNoData          = specs.NewOpError("ws", "could not read frame")
	ErrMissingKey      = specs.NewOpError("ws", "client has no websocket key")
	ErrInvalidClient   = specs.NewOpError("ws", "client is not valid")
	ErrControlTooLarge = specs.NewOpError("ws", "control frame payload exceeds 125 bytes")

	acceptBaseKey = []byte("258EAFA5-E914-47DA-95CA-C5AB0DC85B11")
)
