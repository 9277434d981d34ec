// Package overlay lays out visible controls as a draggable panel.
//
// The panel is a one-row handle followed by one row per control, in the
// order the registry returns them. Layout implements gesture.HitTester so
// the gesture controller can resolve presses to control ids.
package overlay

import (
	"sync"

	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/gesture"
)

// HandleTarget is the hit-test target of the drag handle.
const HandleTarget = "overlay.handle"

// MinWidth is the narrowest panel that still shows a label.
const MinWidth = 8

// Rect is a cell rectangle.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p gesture.Position) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Item is one laid-out control.
type Item struct {
	View button.View
	Rect Rect
}

// Layout positions the panel and its controls.
type Layout struct {
	mu      sync.Mutex
	origin  gesture.Position
	width   int
	screenW int
	screenH int
	items   []Item
}

// NewLayout creates a panel at origin with the given width.
func NewLayout(origin gesture.Position, width int) *Layout {
	if width < MinWidth {
		width = MinWidth
	}
	return &Layout{origin: origin, width: width}
}

// SetScreen records the screen size and re-clamps the panel.
func (l *Layout) SetScreen(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.screenW, l.screenH = width, height
	l.clamp()
	l.place()
}

// Arrange replaces the laid-out controls.
func (l *Layout) Arrange(views []button.View) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make([]Item, len(views))
	for i, v := range views {
		l.items[i].View = v
	}
	l.clamp()
	l.place()
}

// MoveBy shifts the panel by delta, keeping it on screen.
func (l *Layout) MoveBy(delta gesture.Position) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.origin = l.origin.Add(delta)
	l.clamp()
	l.place()
}

// Origin returns the top-left cell of the panel.
func (l *Layout) Origin() gesture.Position {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.origin
}

// Handle returns the handle rectangle.
func (l *Layout) Handle() Rect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Rect{X: l.origin.X, Y: l.origin.Y, W: l.width, H: 1}
}

// Items returns a copy of the laid-out controls.
func (l *Layout) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := make([]Item, len(l.items))
	copy(items, l.items)
	return items
}

// Bounds returns the rectangle covering the handle and every control.
func (l *Layout) Bounds() Rect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Rect{X: l.origin.X, Y: l.origin.Y, W: l.width, H: 1 + len(l.items)}
}

// HitTest returns the control id or HandleTarget under pos.
func (l *Layout) HitTest(pos gesture.Position) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if (Rect{X: l.origin.X, Y: l.origin.Y, W: l.width, H: 1}).Contains(pos) {
		return HandleTarget, true
	}
	for _, it := range l.items {
		if it.Rect.Contains(pos) {
			return it.View.ID, true
		}
	}
	return "", false
}

// clamp keeps the panel on screen when the screen size is known.
// Caller holds l.mu.
func (l *Layout) clamp() {
	if l.screenW <= 0 || l.screenH <= 0 {
		return
	}
	maxX := l.screenW - l.width
	maxY := l.screenH - (1 + len(l.items))
	l.origin.X = clampInt(l.origin.X, 0, maxX)
	l.origin.Y = clampInt(l.origin.Y, 0, maxY)
}

// place recomputes item rectangles from the origin. Caller holds l.mu.
func (l *Layout) place() {
	for i := range l.items {
		l.items[i].Rect = Rect{X: l.origin.X, Y: l.origin.Y + 1 + i, W: l.width, H: 1}
	}
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ gesture.HitTester = (*Layout)(nil)
