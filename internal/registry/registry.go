// Package registry is the central authority for registered controls.
//
// The Registry owns every descriptor together with its interaction state
// machine, an owner index and a category index. Extensions mutate it only
// through Register, Unregister and the trigger/state operations, and read it
// only through View snapshots.
//
// # Locking
//
// A single mutex guards the three maps. Descriptor predicates, callbacks and
// event handlers are extension code that may call back into the registry, so
// none of them ever runs while the mutex is held: operations copy what they
// need under the lock, release it, and only then evaluate predicates, run
// callbacks and publish events.
package registry

import (
	"sort"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/event"
	"github.com/dshills/switchboard/internal/interaction"
)

// entry is one registered control.
type entry struct {
	desc    button.Descriptor
	machine *interaction.Machine
}

func (e *entry) view() button.View {
	m := e.machine
	return button.View{
		ID:              e.desc.ID,
		Owner:           e.desc.Owner,
		Name:            e.desc.Name,
		Description:     e.desc.Description,
		Category:        e.desc.Category,
		Mode:            e.desc.Mode,
		Priority:        e.desc.Priority,
		Cooldown:        e.desc.Cooldown,
		Hints:           e.desc.Hints,
		OriginalKeybind: e.desc.OriginalKeybind,
		Enabled:         m.Enabled(),
		Toggled:         m.Toggled(),
		Held:            m.Held(),
		HoldDuration:    m.HoldDuration(),
		LastTriggered:   m.LastTriggered(),
	}
}

type idSet map[string]struct{}

// Registry stores controls and coordinates their interaction.
type Registry struct {
	mu         sync.Mutex
	byID       map[string]*entry
	byOwner    map[string]idSet
	byCategory map[button.Category]idSet

	clock  interaction.Clock
	logger hclog.Logger
	bus    event.Bus
}

// Option configures a Registry.
type Option func(*Registry)

// WithClock sets the clock used for cooldowns.
func WithClock(c interaction.Clock) Option {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l hclog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithBus publishes events on an existing bus.
func WithBus(b event.Bus) Option {
	return func(r *Registry) {
		if b != nil {
			r.bus = b
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		byID:       make(map[string]*entry),
		byOwner:    make(map[string]idSet),
		byCategory: make(map[button.Category]idSet),
		clock:      interaction.SystemClock{},
		logger:     hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.bus == nil {
		r.bus = event.NewBus()
	}
	return r
}

// Bus returns the bus the registry publishes on.
func (r *Registry) Bus() event.Bus {
	return r.bus
}

// Register adds a control, or replaces the control with the same id.
// It returns false without changing anything if the descriptor has no id,
// no owner, or no action callback. A replaced control starts from fresh
// runtime state.
func (r *Registry) Register(desc button.Descriptor) bool {
	if err := desc.Validate(); err != nil {
		r.logger.Warn("button registration rejected", "id", desc.ID, "owner", desc.Owner, "error", err)
		return false
	}
	desc.Normalize()

	e := &entry{
		desc:    desc,
		machine: interaction.NewMachine(desc.Mode, desc.Callbacks),
	}

	r.mu.Lock()
	old, isUpdate := r.byID[desc.ID]
	if isUpdate {
		r.unindex(old)
		if old.desc.Owner != desc.Owner {
			r.logger.Warn("button id taken over by another owner",
				"id", desc.ID, "previous_owner", old.desc.Owner, "owner", desc.Owner)
		}
	}
	r.byID[desc.ID] = e
	addTo(r.byOwner, desc.Owner, desc.ID)
	addTo(r.byCategory, desc.Category, desc.ID)
	view := e.view()
	r.mu.Unlock()

	r.logger.Debug("button registered", "id", desc.ID, "owner", desc.Owner, "update", isUpdate)
	r.publish(Registered{Button: view, IsUpdate: isUpdate})
	r.publish(Changed{})
	return true
}

// Unregister removes a control. It returns false if the id is unknown.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	e, ok := r.byID[id]
	if ok {
		r.remove(e)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	r.publish(Unregistered{ID: id, Owner: e.desc.Owner})
	r.publish(Changed{})
	return true
}

// UnregisterAllFromOwner removes every control registered by owner and
// returns how many were removed.
func (r *Registry) UnregisterAllFromOwner(owner string) int {
	r.mu.Lock()
	ids := sortedIDs(r.byOwner[owner])
	for _, id := range ids {
		r.remove(r.byID[id])
	}
	r.mu.Unlock()

	if len(ids) == 0 {
		return 0
	}

	r.logger.Debug("owner controls removed", "owner", owner, "count", len(ids))
	for _, id := range ids {
		r.publish(Unregistered{ID: id, Owner: owner})
	}
	r.publish(Changed{})
	return len(ids)
}

// remove deletes e from all indices. Caller holds r.mu.
func (r *Registry) remove(e *entry) {
	delete(r.byID, e.desc.ID)
	r.unindex(e)
}

// unindex removes e from the secondary indices. Caller holds r.mu.
func (r *Registry) unindex(e *entry) {
	removeFrom(r.byOwner, e.desc.Owner, e.desc.ID)
	removeFrom(r.byCategory, e.desc.Category, e.desc.ID)
}

func (r *Registry) publish(ev event.Event) {
	if err := r.bus.Publish(ev); err != nil {
		r.logger.Error("event publish failed", "topic", ev.Topic().String(), "error", err)
	}
}

// Get returns a snapshot of one control.
func (r *Registry) Get(id string) (button.View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return button.View{}, false
	}
	return e.view(), true
}

// Len returns the number of registered controls.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

// Owners returns every owner with at least one control, sorted.
func (r *Registry) Owners() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	owners := make([]string, 0, len(r.byOwner))
	for owner := range r.byOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

func addTo[K comparable](index map[K]idSet, key K, id string) {
	set, ok := index[key]
	if !ok {
		set = make(idSet)
		index[key] = set
	}
	set[id] = struct{}{}
}

func removeFrom[K comparable](index map[K]idSet, key K, id string) {
	set, ok := index[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(index, key)
	}
}

func sortedIDs(set idSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
