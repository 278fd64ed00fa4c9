package specs

var (
	ErrClosed        = NewOpError("conn", "use of closed connection")
	ErrTimeout       = NewOpError("conn", "i/o timeout")
	ErrCancelled     = NewOpError("context", "cancelled")
	ErrInvalidFormat = NewOpError("parsing", "invalid format")
	ErrHeadersSent   = NewOpError("write", "headers already sent")
	ErrUpgraded      = NewOpError("write", "connection upgraded to websocket")
)
