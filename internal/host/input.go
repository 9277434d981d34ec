package host

import (
	"github.com/dshills/switchboard/internal/backend"
	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/gesture"
	"github.com/dshills/switchboard/internal/overlay"
)

// HandleEvent routes one backend event. It returns ErrQuit when the user
// asked to exit.
func (c *Context) HandleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return c.handleKey(ev)
	case backend.EventMouse:
		c.handleMouse(ev)
	case backend.EventResize:
		c.Layout.SetScreen(ev.Width, ev.Height)
	case backend.EventFocus:
		if !ev.Focused {
			c.handleFocusLost()
		}
	case backend.EventClosed:
		return ErrQuit
	}
	return nil
}

func (c *Context) handleKey(ev backend.Event) error {
	switch ev.Key {
	case backend.KeyCtrlC, backend.KeyCtrlQ:
		return ErrQuit
	case backend.KeyCtrlR:
		c.reloadRequested.Store(true)
	case backend.KeyEscape:
		c.SetMenuOpen(!c.menuOpen.Load())
	case backend.KeyRune:
		if c.menuOpen.Load() {
			c.pressShortcut(ev.Rune)
		}
	}
	return nil
}

// pressShortcut defers the visible control whose key hint is r. Hold
// controls need a release and are pointer-only.
func (c *Context) pressShortcut(r rune) {
	for _, it := range c.Layout.Items() {
		v := it.View
		if v.Hints.Key != r {
			continue
		}
		if v.Mode == button.ModeHold {
			c.logger.Debug("shortcut ignored for hold control", "id", v.ID)
			return
		}
		c.Queue.Enqueue(v.ID)
		return
	}
}

// handleMouse turns button-state mouse events into pointer transitions.
// Only the left button drives gestures.
func (c *Context) handleMouse(ev backend.Event) {
	pos := gesture.Position{X: ev.MouseX, Y: ev.MouseY}
	now := c.clock.Now()

	switch {
	case ev.MouseButton == backend.MouseLeft && !c.pointerDown:
		c.pointerDown = true
		c.pointerPos = pos
		c.onGesture(c.Gesture.PointerDown(pos, now))

	case ev.MouseButton == backend.MouseLeft:
		if pos != c.pointerPos {
			c.pointerPos = pos
			c.onGesture(c.Gesture.PointerMove(pos, now))
		}

	case ev.MouseButton == backend.MouseNone && c.pointerDown:
		c.pointerDown = false
		c.pointerPos = pos
		c.onGesture(c.Gesture.PointerUp(pos, now))
		c.releaseHolding()
	}
}

func (c *Context) onGesture(g gesture.Gesture) {
	switch g.Kind {
	case gesture.Press:
		c.onPress(g.Target)

	case gesture.Tap:
		c.onTap(g.Target)

	case gesture.DragStart, gesture.DragMove, gesture.DragEnd:
		if !c.panelLocked.Load() {
			c.Layout.MoveBy(g.Delta)
		}

	case gesture.Cancel:
		c.releaseHolding()
	}
}

// onPress triggers Hold controls the moment the pointer goes down; every
// other control waits for the tap.
func (c *Context) onPress(target string) {
	if target == overlay.HandleTarget {
		return
	}
	v, ok := c.Registry.Get(target)
	if !ok || v.Mode != button.ModeHold {
		return
	}
	// A failing OnPress still leaves the control held.
	c.Registry.Trigger(target, false)
	if v, ok := c.Registry.Get(target); ok && v.Held {
		c.holding = target
	}
}

// onTap defers a press. Hold controls already ran on Press.
func (c *Context) onTap(target string) {
	if target == overlay.HandleTarget {
		return
	}
	if v, ok := c.Registry.Get(target); ok && v.Mode == button.ModeHold {
		return
	}
	c.Queue.Enqueue(target)
}

func (c *Context) releaseHolding() {
	if c.holding == "" {
		return
	}
	c.Registry.Release(c.holding)
	c.holding = ""
}

func (c *Context) handleFocusLost() {
	c.Gesture.Invalidate()
	c.pointerDown = false
	c.holding = ""
	if n := c.Registry.ReleaseAllHeld(); n > 0 {
		c.logger.Debug("focus lost, released held controls", "count", n)
	}
}
