package router

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/oesand/ember"
	"github.com/oesand/ember/specs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// New creates a router serving the site directories under root. The plugins
// named in config are registered on their paths.
func New(root string, config *Config, logger *logrus.Entry) (*Router, error) {
	if config == nil {
		config = (&Config{}).withDefaults()
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	router := &Router{
		root:    root,
		config:  config,
		logger:  logger,
		plugins: map[string]Plugin{},
	}
	for pluginPath, name := range config.Plugins {
		plugin, err := Builtin(name)
		if err != nil {
			return nil, errors.Wrapf(err, "plugin for %s", pluginPath)
		}
		if err = router.Register(pluginPath, plugin); err != nil {
			return nil, err
		}
	}
	return router, nil
}

// Router answers every connection from a directory tree chosen by host.
type Router struct {
	root   string
	config *Config
	logger *logrus.Entry

	mu       sync.RWMutex
	plugins  map[string]Plugin
	patterns []patternPlugin
}

type patternPlugin struct {
	pattern *pattern
	plugin  Plugin
}

// Register serves requests for path with plugin on every site. Paths with
// placeholders, such as "/rooms/{id}", are tried in registration order after
// the plain paths and pass the placeholder values in Request.Params.
func (router *Router) Register(path string, plugin Plugin) error {
	path = CleanPath(path)

	router.mu.Lock()
	defer router.mu.Unlock()

	if !isPattern(path) {
		router.plugins[path] = plugin
		return nil
	}

	compiled, err := compilePattern(path)
	if err != nil {
		return err
	}
	for i, registered := range router.patterns {
		if registered.pattern.path == path {
			router.patterns[i].plugin = plugin
			return nil
		}
	}
	router.patterns = append(router.patterns, patternPlugin{pattern: compiled, plugin: plugin})
	return nil
}

func (router *Router) plugin(path string) (Plugin, map[string]string, bool) {
	router.mu.RLock()
	defer router.mu.RUnlock()

	if plugin, has := router.plugins[path]; has {
		return plugin, nil, true
	}
	for _, registered := range router.patterns {
		if params, ok := registered.pattern.match(path); ok {
			return registered.plugin, params, true
		}
	}
	return nil, nil, false
}

// Handle answers one connection. It is meant as the engine's connection
// listener.
func (router *Router) Handle(socket *ember.HTTPSocket) {
	client := socket.Client()
	logger := socket.Logger()

	if !client.IsValid() {
		logger.WithError(client.Err()).Debug("answering invalid request")
		router.respond(socket, specs.StatusCodeBadRequest, "Bad Request", "Cannot read client request")
		return
	}

	request, err := router.resolve(client)
	if err != nil {
		logger.WithError(err).Debug("answering unparseable request target")
		router.respond(socket, specs.StatusCodeBadRequest, "Bad Request", "Cannot read client request")
		return
	}
	logger = logger.WithFields(logrus.Fields{"host": request.Host, "site": request.Site})

	if err = router.serve(socket, request); err != nil {
		logger.WithError(err).Error("request failed")
		if socket.HeadersSent() {
			socket.Close()
			return
		}
		router.respondError(socket, request, specs.StatusCodeInternalServerError, "Internal Server Error", "error")
	}
}

func (router *Router) resolve(client *ember.Client) (*Request, error) {
	uri, err := url.ParseRequestURI(client.Path())
	if err != nil {
		return nil, errors.Wrap(err, "parse request target")
	}

	scheme, host, proxied := target(client)
	request := &Request{
		Client:  client,
		Scheme:  scheme,
		Host:    host,
		Proxied: proxied,
		Site:    router.config.Site(host),
		Path:    CleanPath(uri.Path),
		Query:   uri.RawQuery,
	}
	request.File = filepath.Join(router.root, request.Site, filepath.FromSlash(request.Path))
	return request, nil
}

func (router *Router) serve(socket *ember.HTTPSocket, request *Request) error {
	if plugin, params, has := router.plugin(request.Path); has {
		request.Params = params
		return plugin.Serve(socket, request)
	}

	if strings.HasSuffix(request.File, ".ts") {
		return router.notFound(socket, request)
	}

	stat, err := os.Stat(request.File)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return router.notFound(socket, request)
	case err != nil:
		return errors.Wrap(err, "stat")
	case stat.IsDir():
		return router.directory(socket, request)
	}
	return router.file(socket, request.File)
}

// directory serves the first file starting with "index." or with the name of
// the directory itself.
func (router *Router) directory(socket *ember.HTTPSocket, request *Request) error {
	entries, err := os.ReadDir(request.File)
	if err != nil {
		return errors.Wrap(err, "read directory")
	}

	prefixes := []string{"index."}
	if last := path.Base(request.Path); request.Path != "" && last != "/" {
		prefixes = append(prefixes, last)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasSuffix(entry.Name(), ".ts") {
			continue
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(entry.Name(), prefix) {
				return router.file(socket, filepath.Join(request.File, entry.Name()))
			}
		}
	}

	return router.respondError(socket, request, specs.StatusCodeConflict, "Conflict", "conflict")
}

func (router *Router) file(socket *ember.HTTPSocket, name string) error {
	content, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "read file")
	}

	contentType, known := specs.ContentTypeByExtension(strings.TrimPrefix(filepath.Ext(name), "."))
	if !known {
		socket.WriteHead(specs.StatusCodeNoContent, "", nil)
		return socket.Close()
	}

	socket.SetHeader("Content-Type", contentType)
	return socket.CloseBuffer(content)
}

func (router *Router) notFound(socket *ember.HTTPSocket, request *Request) error {
	return router.respondError(socket, request, specs.StatusCodeNotFound, "Not found", request.Client.Path()+" not found\n")
}

// respondError serves errors/<code>.html of the site when present, and the
// plain text body otherwise.
func (router *Router) respondError(socket *ember.HTTPSocket, request *Request, code specs.StatusCode, message, body string) error {
	page := filepath.Join(router.root, request.Site, "errors", strconv.Itoa(int(code))+".html")
	if content, err := os.ReadFile(page); err == nil {
		socket.WriteHead(code, message, nil)
		socket.SetHeader("Content-Type", specs.ContentTypeHTML)
		return socket.CloseBuffer(content)
	}
	return router.respond(socket, code, message, body)
}

func (router *Router) respond(socket *ember.HTTPSocket, code specs.StatusCode, message, body string) error {
	socket.WriteHead(code, message, nil)
	return socket.CloseText(body)
}
