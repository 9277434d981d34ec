package gesture

import (
	"sync"
	"time"
)

// Position is a screen cell.
type Position struct {
	X int
	Y int
}

// Add returns p moved by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from other to p.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// IsZero reports whether p is the origin.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	dx := p.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Config holds the drag thresholds.
type Config struct {
	// DragThresholdTime is how long a press must last before it can drag.
	DragThresholdTime time.Duration

	// DragThresholdDistance is how far, in cells, the pointer must move
	// from its start before a press can drag.
	DragThresholdDistance int
}

// DefaultConfig returns the default thresholds.
func DefaultConfig() Config {
	return Config{
		DragThresholdTime:     150 * time.Millisecond,
		DragThresholdDistance: 4,
	}
}

// HitTester maps a position to a target id.
type HitTester interface {
	HitTest(pos Position) (target string, ok bool)
}

// HitTestFunc adapts a function to HitTester.
type HitTestFunc func(pos Position) (string, bool)

// HitTest calls f.
func (f HitTestFunc) HitTest(pos Position) (string, bool) {
	return f(pos)
}

// State is the controller state.
type State uint8

const (
	StateIdle State = iota
	StatePressedWaiting
	StateDragging
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePressedWaiting:
		return "pressed-waiting"
	case StateDragging:
		return "dragging"
	default:
		return "idle"
	}
}

// Kind is the outcome of feeding one event to the controller.
type Kind uint8

const (
	// None means the event changed nothing worth reporting.
	None Kind = iota
	// Press means a pointer went down over a target.
	Press
	// Tap means the press ended before becoming a drag.
	Tap
	// DragStart means the press crossed both thresholds.
	DragStart
	// DragMove reports motion during a drag.
	DragMove
	// DragEnd means the pointer was released during a drag.
	DragEnd
	// Cancel means a pending press or drag was invalidated.
	Cancel
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Tap:
		return "tap"
	case DragStart:
		return "drag-start"
	case DragMove:
		return "drag-move"
	case DragEnd:
		return "drag-end"
	case Cancel:
		return "cancel"
	default:
		return "none"
	}
}

// Gesture describes what an event meant.
type Gesture struct {
	Kind Kind

	// Target is the id hit when the press began.
	Target string

	// Start is where the press began.
	Start Position

	// Position is the latest pointer position.
	Position Position

	// Delta is the motion not yet reported by an earlier gesture of the
	// same press. Summing Delta over DragStart, DragMove and DragEnd gives
	// Position minus Start.
	Delta Position
}

// Controller discriminates taps from drags.
type Controller struct {
	mu     sync.Mutex
	config Config
	hit    HitTester

	state     State
	target    string
	startTime time.Time
	startPos  Position
	current   Position
	reported  Position
}

// NewController creates a controller. A nil HitTester accepts every press
// with an empty target.
func NewController(config Config, hit HitTester) *Controller {
	if hit == nil {
		hit = HitTestFunc(func(Position) (string, bool) { return "", true })
	}
	return &Controller{config: config, hit: hit}
}

// Config returns the thresholds in use.
func (c *Controller) Config() Config {
	return c.config
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PointerDown starts a press if pos hits a target and no press is active.
func (c *Controller) PointerDown(pos Position, t time.Time) Gesture {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIdle {
		return Gesture{}
	}
	target, ok := c.hit.HitTest(pos)
	if !ok {
		return Gesture{}
	}

	c.state = StatePressedWaiting
	c.target = target
	c.startTime = t
	c.startPos = pos
	c.current = pos
	c.reported = pos
	return c.gesture(Press)
}

// PointerMove records motion. It returns DragStart when the press crosses
// both thresholds and DragMove for motion while dragging.
func (c *Controller) PointerMove(pos Position, t time.Time) Gesture {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StatePressedWaiting:
		c.current = pos
		return c.checkThreshold(t)
	case StateDragging:
		if pos == c.current {
			return Gesture{}
		}
		c.current = pos
		return c.report(DragMove)
	}
	return Gesture{}
}

// PointerUp ends the press with Tap or DragEnd. A press that crossed both
// thresholds without a move or Update in between ends as a drag carrying
// the full motion.
func (c *Controller) PointerUp(pos Position, t time.Time) Gesture {
	c.mu.Lock()
	defer c.mu.Unlock()

	var g Gesture
	switch c.state {
	case StatePressedWaiting:
		c.current = pos
		if c.crossed(t) {
			g = c.report(DragEnd)
		} else {
			g = c.gesture(Tap)
		}
	case StateDragging:
		c.current = pos
		g = c.report(DragEnd)
	default:
		return Gesture{}
	}
	c.reset()
	return g
}

// Update re-checks the thresholds without new motion, so a press that has
// already moved far enough starts dragging once enough time has passed.
func (c *Controller) Update(t time.Time) Gesture {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePressedWaiting {
		return Gesture{}
	}
	return c.checkThreshold(t)
}

// Invalidate abandons any press in progress. It returns Cancel if there was
// one; neither Tap nor DragEnd is produced.
func (c *Controller) Invalidate() Gesture {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle {
		return Gesture{}
	}
	g := c.gesture(Cancel)
	c.reset()
	return g
}

// checkThreshold moves PressedWaiting to Dragging. Caller holds c.mu.
func (c *Controller) checkThreshold(t time.Time) Gesture {
	if !c.crossed(t) {
		return Gesture{}
	}
	c.state = StateDragging
	return c.report(DragStart)
}

// crossed reports whether the press has passed both drag thresholds at t.
// Caller holds c.mu.
func (c *Controller) crossed(t time.Time) bool {
	return t.Sub(c.startTime) >= c.config.DragThresholdTime &&
		c.current.Distance(c.startPos) > c.config.DragThresholdDistance
}

// report builds a gesture carrying the unreported motion. Caller holds c.mu.
func (c *Controller) report(kind Kind) Gesture {
	g := c.gesture(kind)
	g.Delta = c.current.Sub(c.reported)
	c.reported = c.current
	return g
}

func (c *Controller) gesture(kind Kind) Gesture {
	return Gesture{
		Kind:     kind,
		Target:   c.target,
		Start:    c.startPos,
		Position: c.current,
	}
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.target = ""
	c.startTime = time.Time{}
	c.startPos = Position{}
	c.current = Position{}
	c.reported = Position{}
}
