package specs

// TimeFormat is the layout of the Date response header.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

var (
	directColonSpace = []byte(": ")
	directCrlf       = []byte("\r\n")
)
