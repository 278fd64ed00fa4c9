package specs

import "strconv"

// WebSocketClose is a close status code carried by a websocket close frame.
type WebSocketClose uint16

const (
	WebSocketCloseNormal              WebSocketClose = 1000
	WebSocketCloseGoingAway           WebSocketClose = 1001
	WebSocketCloseProtocolError       WebSocketClose = 1002
	WebSocketCloseUnsupportedData     WebSocketClose = 1003
	WebSocketCloseNoStatusReceived    WebSocketClose = 1005
	WebSocketCloseAbnormal            WebSocketClose = 1006
	WebSocketCloseInvalidPayloadData  WebSocketClose = 1007
	WebSocketClosePolicyViolation     WebSocketClose = 1008
	WebSocketCloseMessageTooBig       WebSocketClose = 1009
	WebSocketCloseMandatoryExtension  WebSocketClose = 1010
	WebSocketCloseInternalServerError WebSocketClose = 1011
	WebSocketCloseServiceRestart      WebSocketClose = 1012
	WebSocketCloseTryAgainLater       WebSocketClose = 1013
	WebSocketCloseTLSHandshake        WebSocketClose = 1015
)

// String returns a short human readable name of the close code.
func (code WebSocketClose) String() string {
	switch code {
	case WebSocketCloseNormal:
		return "normal"
	case WebSocketCloseGoingAway:
		return "going away"
	case WebSocketCloseProtocolError:
		return "protocol error"
	case WebSocketCloseUnsupportedData:
		return "unsupported data"
	case WebSocketCloseNoStatusReceived:
		return "no status"
	case WebSocketCloseAbnormal:
		return "abnormal closure"
	case WebSocketCloseInvalidPayloadData:
		return "invalid payload data"
	case WebSocketClosePolicyViolation:
		return "policy violation"
	case WebSocketCloseMessageTooBig:
		return "message too big"
	case WebSocketCloseMandatoryExtension:
		return "mandatory extension missing"
	case WebSocketCloseInternalServerError:
		return "internal server error"
	case WebSocketCloseServiceRestart:
		return "service restart"
	case WebSocketCloseTryAgainLater:
		return "try again later"
	case WebSocketCloseTLSHandshake:
		return "tls handshake error"
	}
	return "code " + strconv.FormatUint(uint64(code), 10)
}
