package specs

import "strconv"

type StatusCode uint16

const (
	StatusCodeUndefined StatusCode = 0

	StatusCodeContinue           StatusCode = 100
	StatusCodeSwitchingProtocols StatusCode = 101
	StatusCodeProcessing         StatusCode = 102
	StatusCodeEarlyHints         StatusCode = 103

	StatusCodeOK                   StatusCode = 200
	StatusCodeCreated              StatusCode = 201
	StatusCodeAccepted             StatusCode = 202
	StatusCodeNonAuthoritativeInfo StatusCode = 203
	StatusCodeNoContent            StatusCode = 204
	StatusCodeResetContent         StatusCode = 205
	StatusCodePartialContent       StatusCode = 206
	StatusCodeMultiStatus          StatusCode = 207
	StatusCodeAlreadyReported      StatusCode = 208
	StatusCodeIMUsed               StatusCode = 226

	StatusCodeMultipleChoices   StatusCode = 300
	StatusCodeMovedPermanently  StatusCode = 301
	StatusCodeFound             StatusCode = 302
	StatusCodeSeeOther          StatusCode = 303
	StatusCodeNotModified       StatusCode = 304
	StatusCodeUseProxy          StatusCode = 305
	StatusCodeTemporaryRedirect StatusCode = 307
	StatusCodePermanentRedirect StatusCode = 308

	StatusCodeBadRequest                   StatusCode = 400
	StatusCodeUnauthorized                 StatusCode = 401
	StatusCodePaymentRequired              StatusCode = 402
	StatusCodeForbidden                    StatusCode = 403
	StatusCodeNotFound                     StatusCode = 404
	StatusCodeMethodNotAllowed             StatusCode = 405
	StatusCodeNotAcceptable                StatusCode = 406
	StatusCodeProxyAuthRequired            StatusCode = 407
	StatusCodeRequestTimeout               StatusCode = 408
	StatusCodeConflict                     StatusCode = 409
	StatusCodeGone                         StatusCode = 410
	StatusCodeLengthRequired               StatusCode = 411
	StatusCodePreconditionFailed           StatusCode = 412
	StatusCodeRequestEntityTooLarge        StatusCode = 413
	StatusCodeRequestURITooLong            StatusCode = 414
	StatusCodeUnsupportedMediaType         StatusCode = 415
	StatusCodeRequestedRangeNotSatisfiable StatusCode = 416
	StatusCodeExpectationFailed            StatusCode = 417
	StatusCodeTeapot                       StatusCode = 418
	StatusCodeMisdirectedRequest           StatusCode = 421
	StatusCodeUnprocessableEntity          StatusCode = 422
	StatusCodeLocked                       StatusCode = 423
	StatusCodeFailedDependency             StatusCode = 424
	StatusCodeTooEarly                     StatusCode = 425
	StatusCodeUpgradeRequired              StatusCode = 426
	StatusCodePreconditionRequired         StatusCode = 428
	StatusCodeTooManyRequests              StatusCode = 429
	StatusCodeRequestHeaderFieldsTooLarge  StatusCode = 431
	StatusCodeUnavailableForLegalReasons   StatusCode = 451

	StatusCodeInternalServerError           StatusCode = 500
	StatusCodeNotImplemented                StatusCode = 501
	StatusCodeBadGateway                    StatusCode = 502
	StatusCodeServiceUnavailable            StatusCode = 503
	StatusCodeGatewayTimeout                StatusCode = 504
	StatusCodeHTTPVersionNotSupported       StatusCode = 505
	StatusCodeVariantAlsoNegotiates         StatusCode = 506
	StatusCodeInsufficientStorage           StatusCode = 507
	StatusCodeLoopDetected                  StatusCode = 508
	StatusCodeNotExtended                   StatusCode = 510
	StatusCodeNetworkAuthenticationRequired StatusCode = 511
)

func (status StatusCode) IsReplyable() bool {
	noContent := (100 <= status && status < 200) || status == 204 || (300 <= status && status < 400)
	return !noContent
}

// AllowsBody reports whether a response with this status may carry a body.
// Informational responses, 204 and 304 never do.
func (status StatusCode) AllowsBody() bool {
	return !(100 <= status && status < 200) && status != StatusCodeNoContent && status != StatusCodeNotModified
}

func (status StatusCode) IsValid() bool {
	return 100 <= status && status < 600
}

// Formatted renders the code and its reason phrase, e.g. "404 Not Found".
func (status StatusCode) Formatted() string {
	return strconv.FormatUint(uint64(status), 10) + " " + status.Detail()
}

// Detail returns the reason phrase sent after the code in a status line.
func (code StatusCode) Detail() string {
	switch code {
	case StatusCodeContinue:
		return "Continue"
	case StatusCodeSwitchingProtocols:
		return "Switching Protocols"
	case StatusCodeProcessing:
		return "Processing"
	case StatusCodeEarlyHints:
		return "Early Hints"
	case StatusCodeOK:
		return "OK"
	case StatusCodeCreated:
		return "Created"
	case StatusCodeAccepted:
		return "Accepted"
	case StatusCodeNonAuthoritativeInfo:
		return "Non-Authoritative Information"
	case StatusCodeNoContent:
		return "No Content"
	case StatusCodeResetContent:
		return "Reset Content"
	case StatusCodePartialContent:
		return "Partial Content"
	case StatusCodeMultiStatus:
		return "Multi-Status"
	case StatusCodeAlreadyReported:
		return "Already Reported"
	case StatusCodeIMUsed:
		return "I'm Used"
	case StatusCodeMultipleChoices:
		return "Multiple Choices"
	case StatusCodeMovedPermanently:
		return "Moved Permanently"
	case StatusCodeFound:
		return "Found"
	case StatusCodeSeeOther:
		return "See Other"
	case StatusCodeNotModified:
		return "Not Modified"
	case StatusCodeUseProxy:
		return "Use Proxy"
	case StatusCodeTemporaryRedirect:
		return "Temporary Redirect"
	case StatusCodePermanentRedirect:
		return "Permanent Redirect"
	case StatusCodeBadRequest:
		return "Bad Request"
	case StatusCodeUnauthorized:
		return "Unauthorized"
	case StatusCodePaymentRequired:
		return "Payment Required"
	case StatusCodeForbidden:
		return "Forbidden"
	case StatusCodeNotFound:
		return "Not Found"
	case StatusCodeMethodNotAllowed:
		return "Method Not Allowed"
	case StatusCodeNotAcceptable:
		return "Not Acceptable"
	case StatusCodeProxyAuthRequired:
		return "Proxy Auth Required"
	case StatusCodeRequestTimeout:
		return "Request Timeout"
	case StatusCodeConflict:
		return "Conflict"
	case StatusCodeGone:
		return "Gone"
	case StatusCodeLengthRequired:
		return "Length Required"
	case StatusCodePreconditionFailed:
		return "Precondition Failed"
	case StatusCodeRequestEntityTooLarge:
		return "Request Entity Too Large"
	case StatusCodeRequestURITooLong:
		return "Request URI Too Long"
	case StatusCodeUnsupportedMediaType:
		return "Unsupported Media Type"
	case StatusCodeRequestedRangeNotSatisfiable:
		return "Requested Range Not Satisfiable"
	case StatusCodeExpectationFailed:
		return "Expectation Failed"
	case StatusCodeTeapot:
		return "I'm a teapot"
	case StatusCodeMisdirectedRequest:
		return "Misdirected Request"
	case StatusCodeUnprocessableEntity:
		return "Unprocessable Entity"
	case StatusCodeLocked:
		return "Locked"
	case StatusCodeFailedDependency:
		return "Failed Dependency"
	case StatusCodeTooEarly:
		return "Too Early"
	case StatusCodeUpgradeRequired:
		return "Upgrade Required"
	case StatusCodePreconditionRequired:
		return "Precondition Required"
	case StatusCodeTooManyRequests:
		return "Too Many Requests"
	case StatusCodeRequestHeaderFieldsTooLarge:
		return "Request Header Fields Too Large"
	case StatusCodeUnavailableForLegalReasons:
		return "Unavailable For Legal Reasons"
	case StatusCodeInternalServerError:
		return "Internal Server Error"
	case StatusCodeNotImplemented:
		return "Not Implemented"
	case StatusCodeBadGateway:
		return "Bad Gateway"
	case StatusCodeServiceUnavailable:
		return "Service Unavailable"
	case StatusCodeGatewayTimeout:
		return "Gateway Timeout"
	case StatusCodeHTTPVersionNotSupported:
		return "HTTP Version Not Supported"
	case StatusCodeVariantAlsoNegotiates:
		return "Variant Also Negotiates"
	case StatusCodeInsufficientStorage:
		return "Insufficient Storage"
	case StatusCodeLoopDetected:
		return "Loop Detected"
	case StatusCodeNotExtended:
		return "Not Extended"
	case StatusCodeNetworkAuthenticationRequired:
		return "Network Authentication Required"
	}
	return ""
}
