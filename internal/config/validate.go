package config

import "slices"

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "error", "off"}
	logFormats = []string{"text", "json"}
)

// Limits enforced by Validate.
const (
	MaxDelayTicks   = 120
	MaxFPS          = 240
	MinOverlayWidth = 8
)

// Validate checks every setting and returns a *ValidationError listing all
// problems, or nil.
func (c Config) Validate() error {
	var fields []FieldError
	check := func(ok bool, path, msg string, value any) {
		if !ok {
			fields = append(fields, FieldError{Path: path, Message: msg, Value: value})
		}
	}

	check(slices.Contains(logLevels, c.Log.Level), "log.level",
		"must be one of trace, debug, info, warn, error, off", c.Log.Level)
	check(slices.Contains(logFormats, c.Log.Format), "log.format",
		"must be text or json", c.Log.Format)

	check(c.Dispatch.DelayTicks >= 1 && c.Dispatch.DelayTicks <= MaxDelayTicks,
		"dispatch.delay_ticks", "must be between 1 and 120", c.Dispatch.DelayTicks)

	check(c.Gesture.DragThresholdMS >= 0, "gesture.drag_threshold_ms",
		"must not be negative", c.Gesture.DragThresholdMS)
	check(c.Gesture.DragThresholdDistance >= 0, "gesture.drag_threshold_distance",
		"must not be negative", c.Gesture.DragThresholdDistance)

	check(c.Host.FPS >= 1 && c.Host.FPS <= MaxFPS, "host.fps",
		"must be between 1 and 240", c.Host.FPS)

	check(!c.Plugins.Watch || c.Plugins.Dir != "", "plugins.dir",
		"required when plugins.watch is set", c.Plugins.Dir)

	check(c.Overlay.X >= 0, "overlay.x", "must not be negative", c.Overlay.X)
	check(c.Overlay.Y >= 0, "overlay.y", "must not be negative", c.Overlay.Y)
	check(c.Overlay.Width >= MinOverlayWidth, "overlay.width",
		"must be at least 8", c.Overlay.Width)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
