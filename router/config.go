package router

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// ConfigFileName is the site configuration file looked up in the root.
const ConfigFileName = "sites.toml"

// DefaultSite is served for unknown hosts when the config names none.
const DefaultSite = "0"

// Config maps hosts to site directories and paths to built-in plugins.
//
//	default = "0"
//
//	[hosts]
//	"example.com" = "example"
//
//	[plugins]
//	"/ws" = "echo"
//	"/metrics" = "metrics"
type Config struct {
	Default string            `toml:"default"`
	Hosts   map[string]string `toml:"hosts"`
	Plugins map[string]string `toml:"plugins"`
}

// LoadConfig reads a site configuration file. A missing file gives the
// default configuration.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.withDefaults(), nil
	} else if err != nil {
		return nil, errors.Wrap(err, "read site config")
	}

	if err = toml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "parse site config %s", path)
	}
	return config.withDefaults(), nil
}

func (config *Config) withDefaults() *Config {
	if config.Default == "" {
		config.Default = DefaultSite
	}
	if config.Hosts == nil {
		config.Hosts = map[string]string{}
	}
	if config.Plugins == nil {
		config.Plugins = map[string]string{}
	}
	return config
}

// Site returns the site directory name for a normalized host.
func (config *Config) Site(host string) string {
	if site, has := config.Hosts[host]; has && site != "" {
		return site
	}
	return config.Default
}
