// Package interaction implements the per-control interaction state machine.
//
// Each registered control owns a Machine whose State is one of three
// variants: Momentary, Toggle or Hold. Only the Hold variant carries a hold
// duration and only the Toggle variant carries an on/off flag, so the fields
// that matter for a mode cannot be read through another mode by accident.
//
// Transitions never run callbacks directly. They return a Plan listing the
// callbacks to invoke, which the registry executes after releasing its lock.
// The transition itself is already applied when the plan is returned, so a
// failing callback cannot leave the machine half way between states.
package interaction

import (
	"time"

	"github.com/dshills/switchboard/internal/button"
)

// State is the mode specific runtime state of a control.
// The set of implementations is closed.
type State interface {
	Mode() button.Mode
	sealed()
}

// Momentary is the state of a momentary control. It has no data.
type Momentary struct{}

// Toggle is the state of a toggle control.
type Toggle struct {
	On bool
}

// Hold is the state of a hold control.
type Hold struct {
	Held     bool
	Duration time.Duration
}

func (Momentary) Mode() button.Mode { return button.ModeMomentary }
func (Toggle) Mode() button.Mode    { return button.ModeToggle }
func (Hold) Mode() button.Mode      { return button.ModeHold }

func (Momentary) sealed() {}
func (Toggle) sealed()    {}
func (Hold) sealed()      {}

// NewState returns the idle state for a mode.
func NewState(mode button.Mode) State {
	switch mode {
	case button.ModeToggle:
		return Toggle{}
	case button.ModeHold:
		return Hold{}
	default:
		return Momentary{}
	}
}

// Rejection explains why a press was not accepted.
type Rejection uint8

const (
	// RejectNone means the press is accepted.
	RejectNone Rejection = iota
	// RejectDisabled means the control or its enabled predicate is off.
	RejectDisabled
	// RejectCooldown means the cooldown has not elapsed.
	RejectCooldown
)

// String returns the rejection reason.
func (r Rejection) String() string {
	switch r {
	case RejectNone:
		return "none"
	case RejectDisabled:
		return "disabled"
	case RejectCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}
