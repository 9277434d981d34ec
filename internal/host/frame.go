package host

import (
	"fmt"
	"time"

	"github.com/dshills/switchboard/internal/backend"
)

// Frame advances the host by one frame of length dt.
func (c *Context) Frame(dt time.Duration) {
	c.reloadChanged()

	if c.pointerDown {
		c.onGesture(c.Gesture.Update(c.clock.Now()))
	}

	if id, ran := c.Runner.Tick(); id != "" {
		c.logger.Trace("deferred press", "id", id, "ran", ran)
	}

	c.Registry.UpdateHeldControls(dt)
	c.render()
}

// reloadChanged reloads extensions changed on disk and honors a pending
// reload request.
func (c *Context) reloadChanged() {
	if c.reloadRequested.Swap(false) {
		c.ReloadPlugins()
	}
	if c.watcher == nil {
		return
	}
	for _, name := range c.watcher.Drain() {
		if err := c.Plugins.Reload(name); err != nil {
			c.logger.Warn("plugin reload failed", "plugin", name, "error", err)
			continue
		}
		c.logger.Info("plugin reloaded", "plugin", name)
	}
}

func (c *Context) render() {
	if c.backend == nil {
		return
	}

	c.backend.Clear()
	if c.menuOpen.Load() {
		c.Layout.Arrange(c.Registry.GetVisible())
		c.Layout.Draw(c.backend, c.theme)
	} else {
		c.Layout.Arrange(nil)
	}
	c.drawStatus()
	c.backend.Show()
}

func (c *Context) drawStatus() {
	w, h := c.backend.Size()
	if h < 1 {
		return
	}
	menu := "esc: open menu"
	if c.menuOpen.Load() {
		menu = "esc: close menu"
	}
	status := fmt.Sprintf(" %s  ctrl+r: reload  ctrl+q: quit  %d controls", menu, c.Registry.Len())
	backend.DrawText(c.backend, 0, h-1, status, c.theme.Disabled, w)
}
