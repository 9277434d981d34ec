package interaction

import (
	"time"

	"github.com/dshills/switchboard/internal/button"
)

// StepKind identifies which callback a plan step invokes.
type StepKind uint8

const (
	StepPress StepKind = iota
	StepToggle
	StepHold
	StepRelease
)

// String returns the callback name.
func (k StepKind) String() string {
	switch k {
	case StepPress:
		return "on_press"
	case StepToggle:
		return "on_toggle"
	case StepHold:
		return "on_hold"
	case StepRelease:
		return "on_release"
	default:
		return "unknown"
	}
}

// Step is a single callback invocation.
type Step struct {
	Kind StepKind
	call func() error
}

// Plan is the result of a transition: the callbacks to run, in order.
type Plan struct {
	Steps []Step

	// Flipped is set when a toggle state actually changed.
	Flipped bool

	// On is the toggle state after the transition.
	On bool
}

// Empty reports whether the plan has nothing to run.
func (p Plan) Empty() bool {
	return len(p.Steps) == 0
}

func (p *Plan) add(kind StepKind, call func() error) {
	if call == nil {
		return
	}
	p.Steps = append(p.Steps, Step{Kind: kind, call: call})
}

// Machine holds the runtime state of one control.
//
// Machine is not safe for concurrent use; the registry guards it with its
// own lock.
type Machine struct {
	state         State
	callbacks     button.Callbacks
	enabled       bool
	lastTriggered time.Time
}

// NewMachine creates an idle, enabled machine.
func NewMachine(mode button.Mode, callbacks button.Callbacks) *Machine {
	return &Machine{
		state:     NewState(mode),
		callbacks: callbacks,
		enabled:   true,
	}
}

// State returns the current state variant.
func (m *Machine) State() State {
	return m.state
}

// Enabled returns the externally set enabled flag.
func (m *Machine) Enabled() bool {
	return m.enabled
}

// SetEnabled sets the enabled flag. It reports whether the flag changed.
func (m *Machine) SetEnabled(enabled bool) bool {
	if m.enabled == enabled {
		return false
	}
	m.enabled = enabled
	return true
}

// LastTriggered returns the time of the last accepted press.
func (m *Machine) LastTriggered() time.Time {
	return m.lastTriggered
}

// Toggled returns the toggle state. Always false outside Toggle mode.
func (m *Machine) Toggled() bool {
	if s, ok := m.state.(Toggle); ok {
		return s.On
	}
	return false
}

// Held reports whether a Hold control is held.
func (m *Machine) Held() bool {
	if s, ok := m.state.(Hold); ok {
		return s.Held
	}
	return false
}

// HoldDuration returns the time held so far. Zero outside Hold mode.
func (m *Machine) HoldDuration() time.Duration {
	if s, ok := m.state.(Hold); ok {
		return s.Duration
	}
	return 0
}

// CanPress checks the press guards. predicateOK is the result of the
// descriptor's enabled predicate, evaluated by the caller without locks held.
func (m *Machine) CanPress(now time.Time, cooldown time.Duration, predicateOK bool) Rejection {
	if !m.enabled || !predicateOK {
		return RejectDisabled
	}
	if cooldown > 0 && !m.lastTriggered.IsZero() && now.Sub(m.lastTriggered) < cooldown {
		return RejectCooldown
	}
	return RejectNone
}

// Press applies an accepted press. Callers must check CanPress first.
func (m *Machine) Press(now time.Time) Plan {
	m.lastTriggered = now

	var plan Plan
	switch s := m.state.(type) {
	case Momentary:
		plan.add(StepPress, m.callbacks.OnPress)

	case Toggle:
		s.On = !s.On
		m.state = s
		plan.Flipped = true
		plan.On = s.On
		if cb := m.callbacks.OnToggle; cb != nil {
			on := s.On
			plan.add(StepToggle, func() error { return cb(on) })
		}
		// on_press fires after on_toggle on every press.
		plan.add(StepPress, m.callbacks.OnPress)

	case Hold:
		if !s.Held {
			s.Held = true
			s.Duration = 0
			m.state = s
		}
		plan.add(StepPress, m.callbacks.OnPress)
	}
	return plan
}

// Update advances a held control by dt.
func (m *Machine) Update(dt time.Duration) Plan {
	var plan Plan
	s, ok := m.state.(Hold)
	if !ok || !s.Held {
		return plan
	}
	if dt < 0 {
		dt = 0
	}
	s.Duration += dt
	m.state = s
	if cb := m.callbacks.OnHold; cb != nil {
		plan.add(StepHold, func() error { return cb(dt) })
	}
	return plan
}

// Release returns a held control to idle. The second return value is false
// if the control was not held.
func (m *Machine) Release() (Plan, bool) {
	var plan Plan
	s, ok := m.state.(Hold)
	if !ok || !s.Held {
		return plan, false
	}
	m.state = Hold{}
	plan.add(StepRelease, m.callbacks.OnRelease)
	return plan, true
}

// SetToggle forces the toggle state without cooldown or press callbacks.
// OnToggle is planned only when invoke is set and the state changed.
// The second return value is false outside Toggle mode.
func (m *Machine) SetToggle(on, invoke bool) (Plan, bool) {
	var plan Plan
	s, ok := m.state.(Toggle)
	if !ok {
		return plan, false
	}
	plan.On = on
	if s.On == on {
		return plan, true
	}
	m.state = Toggle{On: on}
	plan.Flipped = true
	if invoke {
		if cb := m.callbacks.OnToggle; cb != nil {
			plan.add(StepToggle, func() error { return cb(on) })
		}
	}
	return plan, true
}
