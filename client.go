package ember

import (
	"maps"
	"net"
	"strings"

	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// Client is the parsed request of a connection.
// It is built once by ParseClient and never modified.
type Client struct {
	valid bool
	err   error

	headers map[string]string
	method  specs.HttpMethod
	path    string
	version string
	addr    net.Addr
	data    string
}

// ParseClient parses raw as a complete request: the request line, the header
// lines and everything after the first blank line as the body.
// It never fails; malformed input gives a Client with IsValid false and Err set.
func ParseClient(raw []byte, addr net.Addr) *Client {
	client := &Client{
		headers: map[string]string{},
		addr:    addr,
	}

	head, body, found := strings.Cut(string(raw), "\r\n\r\n")
	if !found {
		client.err = errors.Wrap(specs.ErrInvalidFormat, "missing end of request head")
		return client
	}
	client.data = body

	requestLine, headerLines, _ := strings.Cut(head, "\r\n")
	for _, line := range strings.Split(headerLines, "\r\n") {
		name, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}
		// last one wins
		client.headers[strings.ToLower(name)] = value
	}

	method, path, version, ok := parseRequestLine(requestLine)
	if !ok {
		client.err = errors.Wrapf(specs.ErrInvalidFormat, "malformed request line %q", requestLine)
		return client
	}
	client.method = specs.HttpMethod(method)
	client.path = path
	client.version = version
	client.valid = true

	return client
}

// parse request line: GET /index.html HTTP/1.1
func parseRequestLine(line string) (method, path, version string, ok bool) {
	parts := strings.Split(line, " ")
	if len(parts) < 3 {
		return
	}
	method, path, version = parts[0], parts[1], parts[2]
	ok = method != "" && path != "" && version != ""
	return
}

// IsValid reports whether method, path and version were all present.
func (client *Client) IsValid() bool {
	return client.valid
}

// Err describes why the request could not be parsed.
func (client *Client) Err() error {
	return client.err
}

// Header returns the value of the named header. Names are case-insensitive.
func (client *Client) Header(name string) string {
	return client.headers[strings.ToLower(name)]
}

func (client *Client) HasHeader(name string) bool {
	_, has := client.headers[strings.ToLower(name)]
	return has
}

// Headers returns a copy of every header keyed by lower-cased name.
func (client *Client) Headers() map[string]string {
	return maps.Clone(client.headers)
}

func (client *Client) Method() specs.HttpMethod {
	return client.method
}

func (client *Client) Path() string {
	return client.path
}

// Version is the protocol token of the request line, e.g. "HTTP/1.1".
func (client *Client) Version() string {
	return client.version
}

func (client *Client) Addr() net.Addr {
	return client.addr
}

// Data is whatever followed the request head in the same read.
func (client *Client) Data() string {
	return client.data
}

// Host returns the host header without port, converted to its ASCII form.
// Hosts that are not valid domain names are returned lower-cased.
func (client *Client) Host() string {
	return NormalizeHost(client.Header("host"))
}

// NormalizeHost strips the port from host and converts it to the lower-cased
// ASCII form used for lookups.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}
	return strings.ToLower(host)
}
