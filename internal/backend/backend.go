// Package backend abstracts the terminal the host draws the overlay on.
package backend

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/switchboard/internal/button"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventResize
	EventFocus
	// EventClosed is returned by PollEvent once the backend has shut down.
	EventClosed
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune
	Mod  ModMask

	// Mouse event fields
	MouseX, MouseY int
	MouseButton    MouseButton

	// Resize event fields
	Width, Height int

	// Focus event fields
	Focused bool
}

// Key represents a keyboard key.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // printable; see Event.Rune
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyCtrlC
	KeyCtrlQ
	KeyCtrlR
)

// ModMask represents modifier key state.
type ModMask int

const (
	ModNone  ModMask = 0
	ModShift ModMask = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has returns true if the mask contains the given modifier.
func (m ModMask) Has(mod ModMask) bool {
	return m&mod != 0
}

// MouseButton is the button state carried by a mouse event. MouseNone on
// a mouse event means every button is up.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// Style is the look of one cell.
type Style struct {
	Foreground button.Color
	Background button.Color

	// HasForeground and HasBackground select the terminal default when unset.
	HasForeground bool
	HasBackground bool

	Bold    bool
	Dim     bool
	Reverse bool
}

// DefaultStyle uses the terminal's default colors.
func DefaultStyle() Style {
	return Style{}
}

// WithForeground returns s with the foreground set.
func (s Style) WithForeground(c button.Color) Style {
	s.Foreground = c
	s.HasForeground = true
	return s
}

// WithBackground returns s with the background set.
func (s Style) WithBackground(c button.Color) Style {
	s.Background = c
	s.HasBackground = true
	return s
}

// Cell is one screen position.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell in the default style.
func EmptyCell() Cell {
	return Cell{Rune: ' '}
}

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend. Must be called before any other method.
	Init() error

	// Shutdown releases resources and restores terminal state. PollEvent
	// returns EventClosed afterwards.
	Shutdown()

	// Size returns the current dimensions.
	Size() (width, height int)

	// SetCell sets a single cell. Positions outside the screen are ignored.
	SetCell(x, y int, cell Cell)

	// Clear clears the screen with the default style.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// PollEvent waits for and returns the next event.
	PollEvent() Event

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(event Event)
}

// DrawText writes s starting at x, y, clipped to maxWidth cells when
// maxWidth is positive. It returns the number of cells used.
func DrawText(b Backend, x, y int, s string, style Style, maxWidth int) int {
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if maxWidth > 0 && used+w > maxWidth {
			break
		}
		b.SetCell(x+used, y, Cell{Rune: r, Style: style})
		if w == 2 {
			b.SetCell(x+used+1, y, Cell{Rune: 0, Style: style})
		}
		used += w
	}
	return used
}

// Fill sets every cell in the rectangle.
func Fill(b Backend, x, y, w, h int, cell Cell) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.SetCell(col, row, cell)
		}
	}
}
