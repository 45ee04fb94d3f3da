// Package config loads coursebuild settings from an optional TOML file.
// Every field has a default, so the tools run without any file at all.
// Moodle credentials are never read from or written to the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when no --config flag is given, if it exists.
const DefaultPath = "coursebuild.toml"

// Config is the full settings tree.
type Config struct {
	Moodle Moodle `toml:"moodle"`
	Images Images `toml:"images"`
	Output Output `toml:"output"`
	Log    Log    `toml:"log"`
}

// Moodle describes the remote course site.
type Moodle struct {
	BaseURL           string  `toml:"base_url"`
	UserAgent         string  `toml:"user_agent"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 = unlimited
	DefaultCourseID   string  `toml:"default_course_id"`
}

// Timeout returns the HTTP timeout as a duration.
func (m Moodle) Timeout() time.Duration {
	return time.Duration(m.TimeoutSeconds) * time.Second
}

// Images holds the resizer presets.
type Images struct {
	Widths []int `toml:"widths"`
}

// Output holds where files are written.
type Output struct {
	Dir string `toml:"dir"`
}

// Log selects the logger mode ("dev" or "prod").
type Log struct {
	Mode string `toml:"mode"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Moodle: Moodle{
			BaseURL:        "https://online.tiffin.edu",
			UserAgent:      "coursebuild/1.0",
			TimeoutSeconds: 30,
		},
		Images: Images{Widths: []int{400, 800, 1900}},
		Log:    Log{Mode: "dev"},
	}
}

// Load returns Default overlaid with the TOML file at path. An empty path
// tries DefaultPath and silently falls back to defaults when it is absent;
// an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later and obscurely.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Moodle.BaseURL, "http://") && !strings.HasPrefix(c.Moodle.BaseURL, "https://") {
		return fmt.Errorf("moodle.base_url must include scheme, got %q", c.Moodle.BaseURL)
	}
	if c.Moodle.TimeoutSeconds <= 0 {
		return fmt.Errorf("moodle.timeout_seconds must be positive, got %d", c.Moodle.TimeoutSeconds)
	}
	if c.Moodle.RequestsPerSecond < 0 {
		return fmt.Errorf("moodle.requests_per_second must not be negative")
	}
	if len(c.Images.Widths) == 0 {
		return fmt.Errorf("images.widths must list at least one width")
	}
	for _, w := range c.Images.Widths {
		if w <= 0 {
			return fmt.Errorf("images.widths must be positive, got %d", w)
		}
	}
	return nil
}
