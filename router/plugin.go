package router

import (
	"github.com/oesand/ember"
	"github.com/pkg/errors"
)

// Request is what the router resolved for a connection.
type Request struct {
	Client *ember.Client

	Scheme  string
	Host    string
	Proxied bool

	// Site is the site directory name selected for Host.
	Site string

	// Path is the cleaned request path, "" for the site root.
	Path  string
	Query string

	// Params holds the placeholder values of a matched plugin pattern.
	Params map[string]string

	// File is the location of Path on disk.
	File string
}

// Plugin serves the requests of a registered path in place of the file tree.
// A returned error answers 500 when nothing was sent yet.
type Plugin interface {
	Serve(socket *ember.HTTPSocket, request *Request) error
}

// PluginFunc adapts a function to Plugin.
type PluginFunc func(socket *ember.HTTPSocket, request *Request) error

func (fn PluginFunc) Serve(socket *ember.HTTPSocket, request *Request) error {
	return fn(socket, request)
}

// Builtin returns the built-in plugin registered under name in the
// [plugins] table of the site configuration.
func Builtin(name string) (Plugin, error) {
	switch name {
	case "echo":
		return &EchoPlugin{}, nil
	case "metrics":
		return &MetricsPlugin{}, nil
	}
	return nil, errors.Errorf("unknown plugin %q", name)
}
