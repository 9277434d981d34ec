package backend

import (
	"strings"
	"sync"
)

// NullBackend is an in-memory backend for tests and headless runs.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]Cell
	shows         int
	events        chan Event
	closeOnce     sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.cells = blank(width, height)
	return b
}

func blank(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
		for j := range cells[i] {
			cells[i][j] = EmptyCell()
		}
	}
	return cells
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.closeOnce.Do(func() { close(b.events) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		b.cells[y][x] = cell
	}
}

// GetCell returns the cell at the given position.
func (b *NullBackend) GetCell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return EmptyCell()
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = blank(b.width, b.height)
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

func (b *NullBackend) PollEvent() Event {
	ev, ok := <-b.events
	if !ok {
		return Event{Type: EventClosed}
	}
	return ev
}

func (b *NullBackend) PostEvent(event Event) {
	defer func() {
		// Posting after Shutdown is a no-op.
		_ = recover()
	}()
	select {
	case b.events <- event:
	default:
		// full queue: drop rather than block the test
	}
}

// Row returns the text of row y with trailing spaces trimmed.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Resize simulates a terminal resize and queues the resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.cells = blank(width, height)
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
