package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/switchboard/internal/backend"
	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/gesture"
)

func views() []button.View {
	return []button.View{
		{ID: "menu", Name: "Menu", Mode: button.ModeMomentary, Enabled: true},
		{ID: "sprint", Name: "Sprint", Mode: button.ModeToggle, Toggled: true, Enabled: true},
		{ID: "charge", Name: "Charge", Mode: button.ModeHold, Enabled: false, Hints: button.Hints{Key: 'c'}},
	}
}

func TestHitTest(t *testing.T) {
	l := NewLayout(gesture.Position{X: 2, Y: 1}, 12)
	l.Arrange(views())

	tests := []struct {
		pos    gesture.Position
		target string
		ok     bool
	}{
		{gesture.Position{X: 2, Y: 1}, HandleTarget, true},
		{gesture.Position{X: 13, Y: 1}, HandleTarget, true},
		{gesture.Position{X: 14, Y: 1}, "", false},
		{gesture.Position{X: 5, Y: 2}, "menu", true},
		{gesture.Position{X: 5, Y: 3}, "sprint", true},
		{gesture.Position{X: 5, Y: 4}, "charge", true},
		{gesture.Position{X: 5, Y: 5}, "", false},
		{gesture.Position{X: 1, Y: 2}, "", false},
	}
	for _, tt := range tests {
		target, ok := l.HitTest(tt.pos)
		assert.Equal(t, tt.ok, ok, "pos %v", tt.pos)
		assert.Equal(t, tt.target, target, "pos %v", tt.pos)
	}
}

func TestMoveByClampsToScreen(t *testing.T) {
	l := NewLayout(gesture.Position{X: 0, Y: 0}, 10)
	l.Arrange(views())
	l.SetScreen(40, 20)

	l.MoveBy(gesture.Position{X: 5, Y: 3})
	assert.Equal(t, gesture.Position{X: 5, Y: 3}, l.Origin())

	l.MoveBy(gesture.Position{X: 100, Y: 100})
	assert.Equal(t, gesture.Position{X: 30, Y: 16}, l.Origin())

	l.MoveBy(gesture.Position{X: -100, Y: -100})
	assert.Equal(t, gesture.Position{}, l.Origin())

	items := l.Items()
	require.Len(t, items, 3)
	assert.Equal(t, Rect{X: 0, Y: 1, W: 10, H: 1}, items[0].Rect)
}

func TestSetScreenReclamps(t *testing.T) {
	l := NewLayout(gesture.Position{X: 50, Y: 50}, 10)
	l.Arrange(views())
	l.SetScreen(30, 10)
	assert.Equal(t, gesture.Position{X: 20, Y: 6}, l.Origin())
	assert.Equal(t, Rect{X: 20, Y: 6, W: 10, H: 4}, l.Bounds())
}

func TestLabel(t *testing.T) {
	vs := views()
	assert.Equal(t, "  Menu", Label(vs[0]))
	assert.Equal(t, "● Sprint", Label(vs[1]))
	assert.Equal(t, "▷ [c] Charge", Label(vs[2]))

	vs[0].Hints.Icon = "☰"
	assert.Equal(t, "  ☰ Menu", Label(vs[0]))
}

func TestDraw(t *testing.T) {
	b := backend.NewNullBackend(30, 6)
	l := NewLayout(gesture.Position{X: 1, Y: 0}, 14)
	l.Arrange(views())
	l.Draw(b, DefaultTheme())

	assert.Equal(t, " "+Title, b.Row(0))
	assert.Equal(t, "   Menu", b.Row(1))
	assert.Equal(t, " ● Sprint", b.Row(2))
	assert.Equal(t, " ▷ [c] Charge", b.Row(3))
	assert.True(t, b.GetCell(3, 3).Style.Dim, "disabled control is dimmed")
	assert.True(t, b.GetCell(3, 2).Style.HasForeground, "active control is highlighted")
}
