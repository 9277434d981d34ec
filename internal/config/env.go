package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// envSetter applies one environment value.
type envSetter func(c *Config, value string) error

// envFields maps variable names, without the prefix, to setters.
var envFields = map[string]envSetter{
	"LOG_LEVEL":  stringField(func(c *Config) *string { return &c.Log.Level }),
	"LOG_FORMAT": stringField(func(c *Config) *string { return &c.Log.Format }),
	"LOG_FILE":   stringField(func(c *Config) *string { return &c.Log.File }),

	"DISPATCH_DELAY_TICKS": intField(func(c *Config) *int { return &c.Dispatch.DelayTicks }),

	"GESTURE_DRAG_THRESHOLD_MS":       intField(func(c *Config) *int { return &c.Gesture.DragThresholdMS }),
	"GESTURE_DRAG_THRESHOLD_DISTANCE": intField(func(c *Config) *int { return &c.Gesture.DragThresholdDistance }),

	"HOST_FPS":                intField(func(c *Config) *int { return &c.Host.FPS }),
	"HOST_MENU_OPEN_ON_START": boolField(func(c *Config) *bool { return &c.Host.MenuOpenOnStart }),

	"PLUGINS_DIR":   stringField(func(c *Config) *string { return &c.Plugins.Dir }),
	"PLUGINS_WATCH": boolField(func(c *Config) *bool { return &c.Plugins.Watch }),

	"OVERLAY_X":     intField(func(c *Config) *int { return &c.Overlay.X }),
	"OVERLAY_Y":     intField(func(c *Config) *int { return &c.Overlay.Y }),
	"OVERLAY_WIDTH": intField(func(c *Config) *int { return &c.Overlay.Width }),
}

func stringField(field func(*Config) *string) envSetter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

func intField(field func(*Config) *int) envSetter {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func boolField(field func(*Config) *bool) envSetter {
	return func(c *Config, value string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// ApplyEnv overrides settings from environment variables named
// prefix + field, for example SWITCHBOARD_DISPATCH_DELAY_TICKS.
func (c *Config) ApplyEnv(prefix string) error {
	return c.applyEnv(prefix, os.LookupEnv)
}

func (c *Config) applyEnv(prefix string, lookup func(string) (string, bool)) error {
	for name, set := range envFields {
		value, ok := lookup(prefix + name)
		if !ok {
			continue
		}
		if err := set(c, value); err != nil {
			return fmt.Errorf("environment %s%s: %w", prefix, name, err)
		}
	}
	return nil
}
