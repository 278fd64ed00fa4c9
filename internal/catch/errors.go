package catch

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/oesand/ember/specs"
)

// IsCommonNetReadError reports errors that end a read because the peer went
// away, the connection was closed locally or a deadline expired.
func IsCommonNetReadError(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	} else if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
		return true
	} else if operr, ok := err.(*net.OpError); ok && operr.Op == "read" {
		return true
	}
	return false
}

// CatchCommonErr maps timeouts, cancellations and closed connections to the
// specs sentinels.
func CatchCommonErr(err error) error {
	if err == nil {
		return nil
	}
	if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
		return specs.ErrTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return specs.ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return specs.ErrCancelled
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return specs.ErrClosed
	}
	return err
}
