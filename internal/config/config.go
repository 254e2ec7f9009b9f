// Package config loads the optional portmaint configuration file from the
// XDG config directory. A missing file yields the defaults; a malformed one
// is an error.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/portmaint/portmaint/pkg/errors"
	"github.com/portmaint/portmaint/pkg/maint"
)

// FileName is the configuration file name under the config directory.
const FileName = "config.toml"

// Config is the on-disk configuration.
type Config struct {
	// PortDir is the default portage tree root.
	PortDir string `toml:"portdir"`

	Bugz   Bugz         `toml:"bugz"`
	Policy Policy       `toml:"policy"`
	Cache  CacheBackend `toml:"cache"`
	Serve  Serve        `toml:"serve"`
}

// Bugz configures the external bugz command.
type Bugz struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Policy overrides the maintainer classification policy. Empty fields keep
// the defaults.
type Policy struct {
	Domain       string   `toml:"domain"`
	ProxyHerd    string   `toml:"proxy_herd"`
	Unmaintained []string `toml:"unmaintained"`
	NoMaintainer string   `toml:"no_maintainer"`
}

// CacheBackend selects where metadata scans are cached.
type CacheBackend struct {
	// Backend is "file" (default), "redis" or "none".
	Backend string `toml:"backend"`

	Redis Redis `toml:"redis"`
}

// Redis holds connection settings for the redis cache backend.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Serve configures the report HTTP server.
type Serve struct {
	Listen string `toml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PortDir: "/usr/portage",
		Bugz:    Bugz{Command: "bugz"},
		Cache:   CacheBackend{Backend: "file"},
		Serve:   Serve{Listen: "localhost:8542"},
	}
}

// Path returns the configuration file path using the XDG standard
// (~/.config/portmaint/config.toml).
func Path(appName string) (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}

// Load reads the configuration file at path on top of the defaults. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// MaintPolicy translates the policy overrides into a classification policy.
func (c *Config) MaintPolicy() maint.Policy {
	p := maint.DefaultPolicy()
	if c.Policy.Domain != "" {
		p.Domain = c.Policy.Domain
	}
	if c.Policy.ProxyHerd != "" {
		p.ProxyHerd = c.Policy.ProxyHerd
	}
	if len(c.Policy.Unmaintained) > 0 {
		p.Unmaintained = c.Policy.Unmaintained
	}
	if c.Policy.NoMaintainer != "" {
		p.NoMaintainer = c.Policy.NoMaintainer
	}
	return p
}
