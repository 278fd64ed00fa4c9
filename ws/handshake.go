package ws

import (
	"crypto/sha1"
	"encoding/base64"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ComputeAcceptKey derives the Sec-WebSocket-Accept value from the client's
// Sec-WebSocket-Key. Surrounding whitespace of the key is ignored.
func ComputeAcceptKey(challengeKey string) string {
	h := sha1.New() // (CWE-326) -- https://datatracker.ietf.org/doc/html/rfc6455#page-54
	h.Write([]byte(strings.TrimSpace(challengeKey)))
	h.Write(acceptBaseKey)
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// WriteHandshake writes the 101 Switching Protocols response for challengeKey.
func WriteHandshake(writer io.Writer, challengeKey string) error {
	if strings.TrimSpace(challengeKey) == "" {
		return ErrMissingKey
	}

	response := "HTTP/1.1 101 Switching Protocols\r\n" +
		"Upgrade: websocket\r\n" +
		"Connection: Upgrade\r\n" +
		"Sec-WebSocket-Accept: " + ComputeAcceptKey(challengeKey) + "\r\n" +
		"\r\n"

	if _, err := io.WriteString(writer, response); err != nil {
		return errors.Wrap(err, "ws: write handshake")
	}
	return nil
}
