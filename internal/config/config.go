// Package config loads visible's configuration file and supplies defaults.
// Command-line flags override anything read here.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/mj1618/visible/internal/platform"
	"gopkg.in/yaml.v3"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "visible"

	// FileName is the config file looked up under each XDG config dir.
	FileName = "config.yaml"

	// DefaultViewport matches a common laptop window. Geometry depends on
	// it, so captures made with different viewports do not compare.
	DefaultViewport = "1280x800"

	// DefaultNavigateTimeout bounds navigation plus page load.
	DefaultNavigateTimeout = 30 * time.Second

	DefaultTransport = "stdio"
	DefaultPort      = 8080

	// DefaultSessionTTL is how long the MCP server keeps an idle page open
	// for reuse.
	DefaultSessionTTL = 30 * time.Second

	// DefaultConcurrency bounds parallel classification in verify.
	DefaultConcurrency = 8
)

// Config is the decoded config file.
type Config struct {
	Format  string  `yaml:"format"`
	Browser Browser `yaml:"browser"`
	Serve   Serve   `yaml:"serve"`
	Verify  Verify  `yaml:"verify"`
}

// Browser configures the chrome backend.
type Browser struct {
	RemoteURL       string        `yaml:"remote_url"`
	Bin             string        `yaml:"bin"`
	Headless        bool          `yaml:"headless"`
	Stealth         bool          `yaml:"stealth"`
	Viewport        string        `yaml:"viewport"`
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`
}

// Serve configures the MCP server.
type Serve struct {
	Transport  string        `yaml:"transport"`
	Port       int           `yaml:"port"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// Verify configures the fixture verifier.
type Verify struct {
	Concurrency int `yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Browser: Browser{
			Headless:        true,
			Viewport:        DefaultViewport,
			NavigateTimeout: DefaultNavigateTimeout,
		},
		Serve: Serve{
			Transport:  DefaultTransport,
			Port:       DefaultPort,
			SessionTTL: DefaultSessionTTL,
		},
		Verify: Verify{Concurrency: DefaultConcurrency},
	}
}

// Path returns the first config file found in the XDG config directories.
func Path() (string, error) {
	return xdg.SearchConfigFile(filepath.Join(AppName, FileName))
}

// Load reads the config at path, or the XDG config file when path is
// empty. A missing XDG file is not an error; a missing explicit path is.
// The returned string is the file actually read ("" for defaults only).
func Load(path string) (Config, string, error) {
	if path == "" {
		found, err := Path()
		if err != nil {
			return Default(), "", nil
		}
		path = found
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, "", fmt.Errorf("%s: %w", path, err)
	}
	return cfg, path, nil
}

// Decode reads YAML over the defaults, so absent keys keep their default.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that would only fail later, deep inside a
// command.
func (c Config) Validate() error {
	if _, err := platform.ParseViewport(c.Browser.Viewport); err != nil {
		return err
	}
	if c.Verify.Concurrency < 1 {
		return fmt.Errorf("verify.concurrency must be at least 1, got %d", c.Verify.Concurrency)
	}
	if c.Serve.SessionTTL < 0 {
		return fmt.Errorf("serve.session_ttl must not be negative")
	}
	return nil
}

// OpenOptions converts the browser section into platform options.
func (c Config) OpenOptions() platform.OpenOptions {
	vp, _ := platform.ParseViewport(c.Browser.Viewport)
	return platform.OpenOptions{
		RemoteURL:       c.Browser.RemoteURL,
		Bin:             c.Browser.Bin,
		Headless:        c.Browser.Headless,
		Stealth:         c.Browser.Stealth,
		Viewport:        vp,
		NavigateTimeout: c.Browser.NavigateTimeout,
	}
}
