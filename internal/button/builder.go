package button

import (
	"fmt"
	"time"
)

// Builder constructs a Descriptor with chained setters.
type Builder struct {
	d Descriptor
}

// NewBuilder starts a descriptor for the given id and owner.
func NewBuilder(id, owner string) *Builder {
	return &Builder{
		d: Descriptor{
			ID:       id,
			Owner:    owner,
			Priority: DefaultPriority,
		},
	}
}

// Name sets the display name.
func (b *Builder) Name(name string) *Builder {
	b.d.Name = name
	return b
}

// Description sets the long description.
func (b *Builder) Description(desc string) *Builder {
	b.d.Description = desc
	return b
}

// Category sets the category.
func (b *Builder) Category(c Category) *Builder {
	b.d.Category = c
	return b
}

// Mode sets the interaction mode.
func (b *Builder) Mode(m Mode) *Builder {
	b.d.Mode = m
	return b
}

// Priority sets the priority. Out of range values are clamped on registration.
func (b *Builder) Priority(p int) *Builder {
	b.d.Priority = p
	return b
}

// CooldownMS sets the cooldown in milliseconds.
func (b *Builder) CooldownMS(ms int) *Builder {
	b.d.Cooldown = time.Duration(ms) * time.Millisecond
	return b
}

// Cooldown sets the cooldown.
func (b *Builder) Cooldown(d time.Duration) *Builder {
	b.d.Cooldown = d
	return b
}

// VisibleWhen sets the visibility predicate.
func (b *Builder) VisibleWhen(fn func() bool) *Builder {
	b.d.Visible = fn
	return b
}

// EnabledWhen sets the enabled predicate.
func (b *Builder) EnabledWhen(fn func() bool) *Builder {
	b.d.Enabled = fn
	return b
}

// OnPress sets the press callback.
func (b *Builder) OnPress(fn func() error) *Builder {
	b.d.Callbacks.OnPress = fn
	return b
}

// OnHold sets the per-frame hold callback.
func (b *Builder) OnHold(fn func(dt time.Duration) error) *Builder {
	b.d.Callbacks.OnHold = fn
	return b
}

// OnRelease sets the release callback.
func (b *Builder) OnRelease(fn func() error) *Builder {
	b.d.Callbacks.OnRelease = fn
	return b
}

// OnToggle sets the toggle callback.
func (b *Builder) OnToggle(fn func(on bool) error) *Builder {
	b.d.Callbacks.OnToggle = fn
	return b
}

// Icon sets the icon hint.
func (b *Builder) Icon(icon string) *Builder {
	b.d.Hints.Icon = icon
	return b
}

// Tint sets the tint hint.
func (b *Builder) Tint(c Color) *Builder {
	b.d.Hints.Tint = c
	return b
}

// Key sets the shortcut hint.
func (b *Builder) Key(r rune) *Builder {
	b.d.Hints.Key = r
	return b
}

// OriginalKeybind documents the host binding this control stands in for.
func (b *Builder) OriginalKeybind(doc string) *Builder {
	b.d.OriginalKeybind = doc
	return b
}

// Build returns the descriptor. It is validated by the registry.
func (b *Builder) Build() Descriptor {
	return b.d
}

// MustBuild returns the descriptor or panics if it is invalid.
// Intended for built-in controls declared at startup.
func (b *Builder) MustBuild() Descriptor {
	if err := b.d.Validate(); err != nil {
		panic(fmt.Sprintf("button %q: %v", b.d.ID, err))
	}
	return b.d
}
