package router

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oesand/ember"
	"github.com/oesand/ember/mock"
	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	assert.NilError(t, os.MkdirAll(filepath.Dir(name), 0o755))
	assert.NilError(t, os.WriteFile(name, []byte(content), 0o644))
}

// newTestSites lays out a root with the default site "0" and the site
// "blog" for blog.example.
func newTestSites(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, ConfigFileName), `
default = "0"

[hosts]
"blog.example" = "blog"
`)
	writeFile(t, filepath.Join(root, "0", "index.html"), "<h1>home</h1>")
	writeFile(t, filepath.Join(root, "0", "style.css"), "body{}")
	writeFile(t, filepath.Join(root, "0", "notes.unknownext"), "?")
	writeFile(t, filepath.Join(root, "0", "handler.ts"), "export default 1")
	writeFile(t, filepath.Join(root, "0", "docs", "docs.txt"), "docs by name")
	writeFile(t, filepath.Join(root, "0", "empty", "nested", "x.html"), "deep")
	writeFile(t, filepath.Join(root, "blog", "index.html"), "<h1>blog</h1>")
	writeFile(t, filepath.Join(root, "blog", "errors", "404.html"), "<p>lost</p>")
	return root
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	root := newTestSites(t)
	config, err := LoadConfig(filepath.Join(root, ConfigFileName))
	assert.NilError(t, err)
	router, err := New(root, config, quietLogger())
	assert.NilError(t, err)
	return router
}

func handle(router *Router, remote net.Addr, request *mock.RequestBuilder) *mock.Conn {
	conn := mock.NewConn(remote, nil)
	socket := ember.NewHTTPSocket(conn, request.Bytes(), ember.SocketConfig{Logger: quietLogger()})
	router.Handle(socket)
	return conn
}

func get(path, host string) *mock.RequestBuilder {
	return mock.DefaultRequest().Path(path).ConfHeader(func(header *specs.Header) {
		header.Set("Host", host)
	})
}

func response(t *testing.T, conn *mock.Conn) (status string, head string, body string) {
	t.Helper()
	head, body, found := strings.Cut(conn.Written(), "\r\n\r\n")
	assert.Assert(t, found, "no response in %q", conn.Written())
	status, _, _ = strings.Cut(head, "\r\n")
	return status, head, body
}

func TestRouter_ServesIndex(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/", "/index.html", "//"} {
		t.Run(path, func(t *testing.T) {
			conn := handle(router, nil, get(path, "localhost"))
			status, head, body := response(t, conn)
			assert.Check(t, is.Equal(status, "HTTP/1.1 200 OK"))
			assert.Check(t, is.Contains(head, "Content-Type: text/html\r\n"))
			assert.Check(t, is.Equal(body, "d\r\n<h1>home</h1>\r\n0\r\n\r\n"))
			assert.Check(t, conn.Closed())
		})
	}
}

func TestRouter_ContentTypeByExtension(t *testing.T) {
	router := newTestRouter(t)

	conn := handle(router, nil, get("/style.css", "localhost"))
	_, head, _ := response(t, conn)
	assert.Check(t, is.Contains(head, "Content-Type: text/css\r\n"))
}

func TestRouter_UnknownExtensionIsNoContent(t *testing.T) {
	router := newTestRouter(t)

	conn := handle(router, nil, get("/notes.unknownext", "localhost"))
	status, head, body := response(t, conn)
	assert.Check(t, is.Equal(status, "HTTP/1.1 204 No Content"))
	assert.Check(t, !strings.Contains(head, "Transfer-Encoding"))
	assert.Check(t, is.Equal(body, ""))
	assert.Check(t, conn.Closed())
}

func TestRouter_DirectoryByName(t *testing.T) {
	router := newTestRouter(t)

	conn := handle(router, nil, get("/docs/", "localhost"))
	status, _, body := response(t, conn)
	assert.Check(t, is.Equal(status, "HTTP/1.1 200 OK"))
	assert.Check(t, is.Contains(body, "docs by name"))
}

func TestRouter_DirectoryWithoutIndexConflicts(t *testing.T) {
	router := newTestRouter(t)

	conn := handle(router, nil, get("/empty", "localhost"))
	status, _, body := response(t, conn)
	assert.Check(t, is.Equal(status, "HTTP/1.1 409 Conflict"))
	assert.Check(t, is.Equal(body, "8\r\nconflict\r\n0\r\n\r\n"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	tests := []string{"/missing.html", "/handler.ts", "/../../etc/passwd"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			conn := handle(router, nil, get(path, "localhost"))
			status, _, body := response(t, conn)
			assert.Check(t, is.Equal(status, "HTTP/1.1 404 Not found"))
			assert.Check(t, is.Contains(body, path+" not found\n"))
		})
	}
}

func TestRouter_HostSelectsSite(t *testing.T) {
	router := newTestRouter(t)

	conn := handle(router, nil, get("/", "Blog.Example:8080"))
	_, _, body := response(t, conn)
	assert.Check(t, is.Contains(body, "<h1>blog</h1>"))

	conn = handle(router, nil, get("/nothing", "blog.example"))
	status, head, body := response(t, conn)
	assert.Check(t, is.Equal(status, "HTTP/1.1 404 Not found"))
	assert.Check(t, is.Contains(head, "Content-Type: text/html\r\n"))
	assert.Check(t, is.Contains(body, "<p>lost</p>"))
}

func TestRouter_ForwardedHostFromLocalProxy(t *testing.T) {
	router := newTestRouter(t)
	request := get("/", "localhost").ConfHeader(func(header *specs.Header) {
		header.Set("X-Real-IP", "203.0.113.7")
		header.Set("X-Forwarded-Host", "blog.example")
		header.Set("X-Scheme", "https")
	})

	local := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 5000}
	_, _, body := response(t, handle(router, local, request))
	assert.Check(t, is.Contains(body, "<h1>blog</h1>"))

	// forwarding headers from remote peers are ignored
	remote := &net.TCPAddr{IP: net.IPv4(203, 0, 113, 7), Port: 5000}
	_, _, body = response(t, handle(router, remote, request))
	assert.Check(t, is.Contains(body, "<h1>home</h1>"))
}

func TestRouter_InvalidClient(t *testing.T) {
	router := newTestRouter(t)

	conn := handle(router, nil, mock.DefaultRequest().Path(""))
	status, _, body := response(t, conn)
	assert.Check(t, is.Equal(status, "HTTP/1.1 400 Bad Request"))
	assert.Check(t, is.Equal(body, "1a\r\nCannot read client request\r\n0\r\n\r\n"))
}

func TestRouter_PluginFailure(t *testing.T) {
	router := newTestRouter(t)
	var seen *Request
	err := router.Register("/fail/", PluginFunc(func(socket *ember.HTTPSocket, request *Request) error {
		seen = request
		return errors.New("plugin exploded")
	}))
	assert.NilError(t, err)

	conn := handle(router, nil, get("/fail?x=1", "localhost"))
	status, _, body := response(t, conn)
	assert.Check(t, is.Equal(status, "HTTP/1.1 500 Internal Server Error"))
	assert.Check(t, is.Equal(body, "5\r\nerror\r\n0\r\n\r\n"))
	assert.Check(t, is.Equal(seen.Path, "/fail"))
	assert.Check(t, is.Equal(seen.Query, "x=1"))
	assert.Check(t, is.Equal(seen.Site, "0"))
}

func TestRouter_PatternPlugins(t *testing.T) {
	router := newTestRouter(t)

	var params []map[string]string
	record := PluginFunc(func(socket *ember.HTTPSocket, request *Request) error {
		params = append(params, request.Params)
		return socket.CloseText(request.Path)
	})
	assert.NilError(t, router.Register("/rooms/{id}", record))
	assert.NilError(t, router.Register("/posts/{year:[0-9]{4}}/{slug}", record))
	assert.NilError(t, router.Register("/files/{*}", record))
	assert.NilError(t, router.Register("/rooms/lobby", record))

	for _, path := range []string{"/rooms/42", "/posts/2024/hello", "/files/a/b.txt", "/rooms/lobby"} {
		status, _, _ := response(t, handle(router, nil, get(path, "localhost")))
		assert.Check(t, is.Equal(status, "HTTP/1.1 200 OK"), path)
	}
	assert.Check(t, is.DeepEqual(params, []map[string]string{
		{"id": "42"},
		{"year": "2024", "slug": "hello"},
		{"*": "a/b.txt"},
		nil,
	}))

	// the year placeholder needs four digits and files fall through
	status, _, _ := response(t, handle(router, nil, get("/posts/24/hello", "localhost")))
	assert.Check(t, is.Equal(status, "HTTP/1.1 404 Not found"))
}

func TestRouter_RegisterInvalidPattern(t *testing.T) {
	router := newTestRouter(t)
	noop := PluginFunc(func(*ember.HTTPSocket, *Request) error { return nil })

	assert.Check(t, is.ErrorContains(router.Register("/a/{}", noop), "unnamed placeholder"))
	assert.Check(t, is.ErrorContains(router.Register("/a/{x}/{x}", noop), "repeats"))
	assert.Check(t, is.ErrorContains(router.Register("/a/{x:(y|z)}", noop), "must not capture"))
}

func TestNew_UnknownPlugin(t *testing.T) {
	config := (&Config{Plugins: map[string]string{"/x": "nope"}}).withDefaults()
	_, err := New(t.TempDir(), config, nil)
	assert.Check(t, is.ErrorContains(err, `unknown plugin "nope"`))
}

func TestCleanPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/", ""},
		{"/a/b/", "/a/b"},
		{"//a///b", "/a/b"},
		{"/a/../b", "/a/b"},
		{"/../../etc/passwd", "/etc/passwd"},
		{"/file...html", "/file.html"},
		{"/./a/.", "/a/."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Check(t, is.Equal(CleanPath(tt.path), tt.expected))
		})
	}
}
