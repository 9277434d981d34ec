// Package config loads switchboard settings.
//
// Settings come from three layers, later layers overriding earlier ones:
// built-in defaults, a TOML file, and SWITCHBOARD_* environment variables.
//
//	cfg, err := config.Load(path, config.EnvPrefix)
//
// A missing file is not an error. Unknown keys in the file are.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "SWITCHBOARD_"

// Config is the full configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Dispatch DispatchConfig `toml:"dispatch"`
	Gesture  GestureConfig  `toml:"gesture"`
	Host     HostConfig     `toml:"host"`
	Plugins  PluginsConfig  `toml:"plugins"`
	Overlay  OverlayConfig  `toml:"overlay"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is trace, debug, info, warn, error or off.
	Level string `toml:"level"`

	// Format is text or json.
	Format string `toml:"format"`

	// File receives log output. Empty means stderr, except under the
	// terminal host, which discards logs without a file.
	File string `toml:"file"`
}

// DispatchConfig configures the deferred press queue.
type DispatchConfig struct {
	// DelayTicks is how many frames a tapped control waits before it runs.
	DelayTicks int `toml:"delay_ticks"`
}

// GestureConfig configures tap and drag discrimination.
type GestureConfig struct {
	DragThresholdMS       int `toml:"drag_threshold_ms"`
	DragThresholdDistance int `toml:"drag_threshold_distance"`
}

// HostConfig configures the frame loop.
type HostConfig struct {
	FPS             int  `toml:"fps"`
	MenuOpenOnStart bool `toml:"menu_open_on_start"`
}

// PluginsConfig configures extension loading.
type PluginsConfig struct {
	Dir   string `toml:"dir"`
	Watch bool   `toml:"watch"`
}

// OverlayConfig sets the initial panel geometry.
type OverlayConfig struct {
	X     int `toml:"x"`
	Y     int `toml:"y"`
	Width int `toml:"width"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Dispatch: DispatchConfig{
			DelayTicks: 2,
		},
		Gesture: GestureConfig{
			DragThresholdMS:       150,
			DragThresholdDistance: 4,
		},
		Host: HostConfig{
			FPS:             60,
			MenuOpenOnStart: true,
		},
		Plugins: PluginsConfig{
			Dir:   "plugins",
			Watch: true,
		},
		Overlay: OverlayConfig{
			X:     1,
			Y:     1,
			Width: 28,
		},
	}
}

// Load builds a configuration from defaults, the file at path (if any) and
// the environment, then validates it.
func Load(path, envPrefix string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(envPrefix); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile overlays the TOML file at path onto c. A missing file leaves c
// unchanged.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // a missing file leaves the defaults
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.decode(path, data)
}

func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			perr.Message = "unknown keys:\n" + serr.String()
		}
		return perr
	}
	return nil
}

// Marshal encodes c as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
