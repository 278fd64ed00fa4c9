package router

import (
	"net"
	"strings"

	"github.com/oesand/ember"
)

// CleanPath collapses runs of dots and slashes, turns "./" into "/" and drops
// trailing slashes, so the result never leaves the site directory.
// The root path is returned as "".
func CleanPath(path string) string {
	var b strings.Builder
	b.Grow(len(path))

	var prev byte
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '.' && prev == '.' {
			continue
		}
		b.WriteByte(c)
		prev = c
	}

	cleaned := strings.ReplaceAll(b.String(), "./", "/")

	b.Reset()
	prev = 0
	for i := 0; i < len(cleaned); i++ {
		c := cleaned[i]
		if c == '/' && prev == '/' {
			continue
		}
		b.WriteByte(c)
		prev = c
	}

	return strings.TrimRight(b.String(), "/")
}

// isLoopback reports whether addr is a loopback TCP peer.
func isLoopback(addr net.Addr) bool {
	tcpAddr, ok := addr.(*net.TCPAddr)
	return ok && tcpAddr.IP.IsLoopback()
}

// target returns the scheme and normalized host a request was sent to.
// Requests from a local reverse proxy carrying x-real-ip are routed by the
// forwarded host and scheme.
func target(client *ember.Client) (scheme, host string, proxied bool) {
	if isLoopback(client.Addr()) && client.Header("x-real-ip") != "" {
		scheme = client.Header("x-scheme")
		if scheme == "" {
			scheme = "http"
		}
		return scheme, ember.NormalizeHost(client.Header("x-forwarded-host")), true
	}
	return "http", client.Host(), false
}
