// Package config loads the zscene configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/zscene/config.toml
// (~/.config/zscene/config.toml when XDG_CONFIG_HOME is unset). Every key is
// optional; a missing file at the default location yields [Default].
//
//	[render]
//	width = 480
//	height = 480
//	zoom = 2
//	background = "none"
//	formats = ["svg", "png"]
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	namespace = "staging"
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//
// Command-line flags override values from the file, and the file overrides
// the built-in defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/zscene/pkg/errors"
	"github.com/matzehuels/zscene/pkg/pipeline"
)

const (
	appName  = "zscene"
	fileName = "config.toml"

	// DefaultAddr is the address the preview server listens on.
	DefaultAddr = "localhost:8080"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// RenderConfig holds render defaults. Zero values leave the pipeline
// defaults in place.
type RenderConfig struct {
	Width      int      `toml:"width,omitempty"`
	Height     int      `toml:"height,omitempty"`
	Zoom       float64  `toml:"zoom,omitempty"`
	Background string   `toml:"background,omitempty"`
	Formats    []string `toml:"formats,omitempty"`
	Centered   *bool    `toml:"centered,omitempty"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir,omitempty"`
	RedisURL string        `toml:"redis_url,omitempty"`
	TTL      time.Duration `toml:"ttl,omitempty"`

	// Namespace prefixes every key, so several deployments can share one
	// Redis database.
	Namespace string `toml:"namespace,omitempty"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Cache:  CacheConfig{Backend: BackendFile},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// Path returns the default configuration file path.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads the configuration at path. An empty path means [Path]; a file
// missing there is not an error, while a missing explicit path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config")
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of [Default] and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func Parse(text string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	r := c.Render
	if r.Width != 0 || r.Height != 0 {
		w, h := r.Width, r.Height
		if w == 0 {
			w = pipeline.DefaultWidth
		}
		if h == 0 {
			h = pipeline.DefaultHeight
		}
		if err := errors.ValidateSize(w, h); err != nil {
			return err
		}
	}
	if r.Zoom != 0 {
		if err := errors.ValidateZoom(r.Zoom); err != nil {
			return err
		}
	}
	if err := pipeline.ValidateFormats(r.Formats); err != nil {
		return err
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache backend %q requires redis_url", BackendRedis)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be %s, %s or %s)",
			c.Cache.Backend, BackendFile, BackendRedis, BackendNone)
	}
	if strings.ContainsAny(c.Cache.Namespace, ": ") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache namespace %q must not contain ':' or spaces", c.Cache.Namespace)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	return nil
}

// ApplyRender fills the unset render fields of opts from the file.
func (c *Config) ApplyRender(opts *pipeline.Options) {
	r := c.Render
	if opts.Width == 0 {
		opts.Width = r.Width
	}
	if opts.Height == 0 {
		opts.Height = r.Height
	}
	if opts.Zoom == 0 {
		opts.Zoom = r.Zoom
	}
	if opts.Background == "" {
		opts.Background = r.Background
	}
	if len(opts.Formats) == 0 && len(r.Formats) > 0 {
		opts.Formats = slices.Clone(r.Formats)
	}
	if opts.Centered == nil && r.Centered != nil {
		centered := *r.Centered
		opts.Centered = &centered
	}
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
