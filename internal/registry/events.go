package registry

import (
	"github.com/dshills/switchboard/internal/button"
	"github.com/dshills/switchboard/internal/event/topic"
)

// Topics published by the registry.
const (
	TopicRegistered     topic.Topic = "button.registered"
	TopicUnregistered   topic.Topic = "button.unregistered"
	TopicTriggered      topic.Topic = "button.triggered"
	TopicToggled        topic.Topic = "button.toggled"
	TopicReleased       topic.Topic = "button.released"
	TopicEnabledChanged topic.Topic = "button.enabled"
	TopicChanged        topic.Topic = "registry.changed"
)

// Registered is published after a successful Register.
type Registered struct {
	Button button.View

	// IsUpdate is set when an existing id was replaced.
	IsUpdate bool
}

// Unregistered is published once per removed control.
type Unregistered struct {
	ID    string
	Owner string
}

// Triggered is published after a press was accepted and its callbacks succeeded.
type Triggered struct {
	Button       button.View
	Programmatic bool
}

// Toggled is published when a Toggle control actually changed state.
type Toggled struct {
	Button button.View
	On     bool
}

// Released is published when a held control returns to idle.
type Released struct {
	Button button.View
}

// EnabledChanged is published when SetEnabled changed the flag.
type EnabledChanged struct {
	Button button.View
}

// Changed is published after any mutation that adds or removes controls.
type Changed struct{}

func (Registered) Topic() topic.Topic     { return TopicRegistered }
func (Unregistered) Topic() topic.Topic   { return TopicUnregistered }
func (Triggered) Topic() topic.Topic      { return TopicTriggered }
func (Toggled) Topic() topic.Topic        { return TopicToggled }
func (Released) Topic() topic.Topic       { return TopicReleased }
func (EnabledChanged) Topic() topic.Topic { return TopicEnabledChanged }
func (Changed) Topic() topic.Topic        { return TopicChanged }
