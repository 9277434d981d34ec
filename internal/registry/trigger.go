package registry

import (
	"sort"
	"time"

	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/interaction"
)

// Trigger presses a control. It returns false if the control is unknown,
// hidden, disabled, cooling down, or if one of its callbacks failed.
// Rejections are silent apart from trace logging.
func (r *Registry) Trigger(id string, programmatic bool) bool {
	r.mu.Lock()
	e, ok := r.byID[id]
	var desc button.Descriptor
	if ok {
		desc = e.desc
	}
	r.mu.Unlock()

	if !ok {
		r.logger.Trace("trigger rejected", "id", id, "reason", "unknown")
		return false
	}

	// Predicates are extension code and run unlocked.
	if !r.predicate(desc.Visible, id, "visible") {
		r.logger.Trace("trigger rejected", "id", id, "reason", "hidden")
		return false
	}
	enabledOK := r.predicate(desc.Enabled, id, "enabled")

	r.mu.Lock()
	if r.byID[id] != e {
		// Replaced or removed while the predicates ran.
		r.mu.Unlock()
		r.logger.Trace("trigger rejected", "id", id, "reason", "replaced")
		return false
	}
	now := r.clock.Now()
	if rej := e.machine.CanPress(now, desc.Cooldown, enabledOK); rej != interaction.RejectNone {
		r.mu.Unlock()
		r.logger.Trace("trigger rejected", "id", id, "reason", rej.String())
		return false
	}
	plan := e.machine.Press(now)
	view := e.view()
	r.mu.Unlock()

	if err := interaction.Run(plan, id, r.logger.With("owner", desc.Owner)); err != nil {
		return false
	}

	r.publish(Triggered{Button: view, Programmatic: programmatic})
	if plan.Flipped {
		r.publish(Toggled{Button: view, On: plan.On})
	}
	return true
}

// Release returns a held Hold control to idle and runs its OnRelease.
// It returns false if the control is unknown or not held.
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	e, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	plan, released := e.machine.Release()
	view := e.view()
	owner := e.desc.Owner
	r.mu.Unlock()

	if !released {
		return false
	}
	_ = interaction.Run(plan, id, r.logger.With("owner", owner))
	r.publish(Released{Button: view})
	return true
}

// SetEnabled sets a control's enabled flag. Disabling a held control
// releases it. Returns false if the id is unknown.
func (r *Registry) SetEnabled(id string, enabled bool) bool {
	r.mu.Lock()
	e, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	changed := e.machine.SetEnabled(enabled)
	var (
		plan     interaction.Plan
		released bool
	)
	if !enabled {
		plan, released = e.machine.Release()
	}
	view := e.view()
	owner := e.desc.Owner
	r.mu.Unlock()

	if released {
		_ = interaction.Run(plan, id, r.logger.With("owner", owner))
		r.publish(Released{Button: view})
	}
	if changed {
		r.publish(EnabledChanged{Button: view})
	}
	return true
}

// SetToggleState forces the state of a Toggle control, bypassing cooldown.
// OnToggle runs only when invokeCallback is set and the state changed.
// Returns false if the id is unknown, the control is not a Toggle, or the
// callback failed.
func (r *Registry) SetToggleState(id string, toggled, invokeCallback bool) bool {
	r.mu.Lock()
	e, ok := r.byID[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	plan, ok := e.machine.SetToggle(toggled, invokeCallback)
	view := e.view()
	owner := e.desc.Owner
	r.mu.Unlock()

	if !ok {
		return false
	}
	err := interaction.Run(plan, id, r.logger.With("owner", owner))
	if plan.Flipped {
		r.publish(Toggled{Button: view, On: plan.On})
	}
	return err == nil
}

type pending struct {
	id    string
	owner string
	plan  interaction.Plan
	view  button.View
}

// UpdateHeldControls advances every held control by dt, running OnHold
// once per held control.
func (r *Registry) UpdateHeldControls(dt time.Duration) {
	r.mu.Lock()
	var work []pending
	for _, id := range r.heldIDs() {
		e := r.byID[id]
		work = append(work, pending{id: id, owner: e.desc.Owner, plan: e.machine.Update(dt)})
	}
	r.mu.Unlock()

	for _, w := range work {
		_ = interaction.Run(w.plan, w.id, r.logger.With("owner", w.owner))
	}
}

// ReleaseAllHeld releases every held control, for example when the host
// loses input focus. It returns the number of controls released.
func (r *Registry) ReleaseAllHeld() int {
	r.mu.Lock()
	var work []pending
	for _, id := range r.heldIDs() {
		e := r.byID[id]
		plan, _ := e.machine.Release()
		work = append(work, pending{id: id, owner: e.desc.Owner, plan: plan, view: e.view()})
	}
	r.mu.Unlock()

	for _, w := range work {
		_ = interaction.Run(w.plan, w.id, r.logger.With("owner", w.owner))
		r.publish(Released{Button: w.view})
	}
	return len(work)
}

// heldIDs returns the ids of held controls in sorted order. Caller holds r.mu.
func (r *Registry) heldIDs() []string {
	var ids []string
	for id, e := range r.byID {
		if e.machine.Held() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// predicate evaluates an optional extension predicate. A nil predicate is
// true; a panicking one is false.
func (r *Registry) predicate(fn func() bool, id, name string) (result bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("button predicate panicked", "id", id, "predicate", name, "panic", rec)
			result = false
		}
	}()
	return fn()
}
