package button

import (
	"fmt"
	"time"
)

// Priority bounds. Higher priorities sort first.
const (
	MinPriority     = 0
	MaxPriority     = 1000
	DefaultPriority = 500
)

// Callbacks are the extension supplied actions of a control.
// At least one of OnPress, OnToggle or OnHold must be set.
//
// Callbacks run with the registry unlocked and may call back into it.
// A returned error or a panic marks the trigger as failed; it never
// propagates into the host loop.
type Callbacks struct {
	// OnPress runs on every accepted press, in every mode.
	OnPress func() error

	// OnHold runs once per frame while a Hold control is held.
	OnHold func(dt time.Duration) error

	// OnRelease runs when a held Hold control is released.
	OnRelease func() error

	// OnToggle runs with the new state when a Toggle control flips.
	OnToggle func(on bool) error
}

// HasAction reports whether at least one action callback is present.
func (c Callbacks) HasAction() bool {
	return c.OnPress != nil || c.OnToggle != nil || c.OnHold != nil
}

// Descriptor describes a control submitted to the registry.
type Descriptor struct {
	// Identity. Fixed for the lifetime of a registration.
	ID          string
	Owner       string
	Name        string
	Description string
	Category    Category
	Mode        Mode

	// Priority orders controls; clamped to [MinPriority, MaxPriority].
	Priority int

	// Cooldown is the minimum time between accepted presses.
	Cooldown time.Duration

	// Visible reports whether the control should be shown. Nil means always.
	Visible func() bool

	// Enabled reports whether the control accepts presses. Nil means always.
	// This is independent of the enabled flag set through the registry.
	Enabled func() bool

	Callbacks Callbacks
	Hints     Hints

	// OriginalKeybind documents the host input this control replaces,
	// for example "Ctrl+M". Used only for conflict reporting.
	OriginalKeybind string
}

// Validate checks the registration requirements.
func (d *Descriptor) Validate() error {
	if d.ID == "" {
		return ErrEmptyID
	}
	if d.Owner == "" {
		return ErrEmptyOwner
	}
	if !d.Category.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidCategory, d.Category)
	}
	if !d.Mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, d.Mode)
	}
	if !d.Callbacks.HasAction() {
		return ErrNoAction
	}
	return nil
}

// Normalize clamps priority and cooldown and fills a default name.
func (d *Descriptor) Normalize() {
	d.Priority = ClampPriority(d.Priority)
	if d.Cooldown < 0 {
		d.Cooldown = 0
	}
	if d.Name == "" {
		d.Name = d.ID
	}
}

// IsVisible evaluates the visibility predicate.
func (d *Descriptor) IsVisible() bool {
	return d.Visible == nil || d.Visible()
}

// IsEnabled evaluates the enabled predicate.
func (d *Descriptor) IsEnabled() bool {
	return d.Enabled == nil || d.Enabled()
}

// ClampPriority clamps p to [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// View is a read-only snapshot of a registered control.
type View struct {
	ID              string
	Owner           string
	Name            string
	Description     string
	Category        Category
	Mode            Mode
	Priority        int
	Cooldown        time.Duration
	Hints           Hints
	OriginalKeybind string

	// Runtime state at the time of the snapshot.
	Enabled       bool
	Toggled       bool
	Held          bool
	HoldDuration  time.Duration
	LastTriggered time.Time
}

// Label returns the name with the shortcut key, if any.
func (v View) Label() string {
	if v.Hints.Key != 0 {
		return "[" + string(v.Hints.Key) + "] " + v.Name
	}
	return v.Name
}
