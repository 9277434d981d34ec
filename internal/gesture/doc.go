// Package gesture tells a tap from a drag on a single pointer stream.
//
// The Controller consumes raw pointer down, move and up events together
// with their timestamps and decides, exactly once per press, whether the
// press was a tap or the start of a drag:
//
//	c := gesture.NewController(gesture.DefaultConfig(), layout)
//	g := c.PointerDown(pos, now)   // Press if pos hits a target
//	g = c.PointerMove(pos2, later) // DragStart once both thresholds pass
//	g = c.PointerUp(pos2, later)   // Tap or DragEnd
//
// # States
//
//   - Idle: no press in progress.
//   - PressedWaiting: a press landed on a target; the decision is pending.
//   - Dragging: the thresholds were crossed; every later motion is a drag.
//
// A press becomes a drag only when it has lasted at least DragThresholdTime
// and the pointer has moved more than DragThresholdDistance cells from where
// it went down. Releasing earlier is a tap. Invalidate abandons the press
// without producing either outcome.
//
// # Thread Safety
//
// Controller is safe for concurrent use.
package gesture
