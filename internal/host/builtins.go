package host

import (
	"fmt"

	"github.com/dshills/switchboard/internal/button"
)

// Owner owns the controls the host registers itself.
const Owner = "host"

// Built-in control ids.
const (
	CloseMenuID = "host.menu.close"
	LockPanelID = "host.panel.lock"
	ReloadID    = "host.plugins.reload"
)

func (c *Context) registerBuiltins() error {
	builtins := []*button.Builder{
		button.NewBuilder(CloseMenuID, Owner).
			Name("Close Menu").
			Description("Hide the panel").
			Category(button.CategoryMenu).
			Priority(button.MaxPriority).
			Key('x').
			OriginalKeybind("Escape").
			OnPress(func() error {
				c.SetMenuOpen(false)
				return nil
			}),

		button.NewBuilder(LockPanelID, Owner).
			Name("Lock Panel").
			Description("Stop the panel from being dragged").
			Category(button.CategoryMenu).
			Mode(button.ModeToggle).
			Priority(button.MaxPriority).
			Key('l').
			OnToggle(func(on bool) error {
				c.panelLocked.Store(on)
				return nil
			}),

		button.NewBuilder(ReloadID, Owner).
			Name("Reload Plugins").
			Description("Reload every extension from disk").
			Category(button.CategoryDebug).
			CooldownMS(500).
			Key('r').
			OriginalKeybind("Ctrl+R").
			OnPress(func() error {
				c.reloadRequested.Store(true)
				return nil
			}),
	}

	for _, b := range builtins {
		d := b.Build()
		if !c.Registry.Register(d) {
			return fmt.Errorf("register built-in control %q", d.ID)
		}
	}
	return nil
}

// ReloadPlugins reloads every loaded extension and loads new ones. It must
// not run inside an extension callback; the built-in control defers it to
// the next frame.
func (c *Context) ReloadPlugins() {
	for _, name := range c.Plugins.Loaded() {
		if err := c.Plugins.Reload(name); err != nil {
			c.logger.Error("plugin reload failed", "plugin", name, "error", err)
		}
	}
	if err := c.Plugins.LoadAll(); err != nil {
		c.logger.Error("plugin load failed", "error", err)
	}
}
