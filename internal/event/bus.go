package event

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/switchboard/internal/event/topic"
)

// Event is anything published on the bus.
type Event interface {
	Topic() topic.Topic
}

// Handler processes events.
type Handler interface {
	Handle(ev Event)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ev Event)

// Handle calls f(ev).
func (f HandlerFunc) Handle(ev Event) {
	f(ev)
}

// PanicHandler is called when a handler panics.
type PanicHandler func(ev Event, sub Subscription, recovered any)

// Subscription identifies a registered handler.
type Subscription struct {
	ID      string
	Pattern topic.Topic
}

// Stats are cumulative delivery counters.
type Stats struct {
	Published     uint64
	Delivered     uint64
	HandlerPanics uint64
	Subscribers   int
}

// Bus is the event bus interface.
type Bus interface {
	Publish(ev Event) error
	Subscribe(pattern topic.Topic, h Handler) (Subscription, error)
	SubscribeFunc(pattern topic.Topic, fn HandlerFunc) (Subscription, error)
	Unsubscribe(sub Subscription) error
	Stats() Stats
}

// BusOption configures a bus.
type BusOption func(*bus)

// WithPanicHandler sets the callback invoked when a handler panics.
func WithPanicHandler(h PanicHandler) BusOption {
	return func(b *bus) {
		b.panicHandler = h
	}
}

type subscriber struct {
	sub     Subscription
	handler Handler
}

type bus struct {
	mu   sync.Mutex
	subs []subscriber

	panicHandler PanicHandler

	published atomic.Uint64
	delivered atomic.Uint64
	panics    atomic.Uint64
}

// NewBus creates a synchronous bus.
func NewBus(opts ...BusOption) Bus {
	b := &bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers h for events whose topic matches pattern.
func (b *bus) Subscribe(pattern topic.Topic, h Handler) (Subscription, error) {
	if h == nil {
		return Subscription{}, ErrNilHandler
	}
	if !pattern.IsValid() {
		return Subscription{}, ErrInvalidTopic
	}

	sub := Subscription{ID: uuid.NewString(), Pattern: pattern}

	b.mu.Lock()
	b.subs = append(b.subs, subscriber{sub: sub, handler: h})
	b.mu.Unlock()

	return sub, nil
}

// SubscribeFunc registers a function handler.
func (b *bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc) (Subscription, error) {
	if fn == nil {
		return Subscription{}, ErrNilHandler
	}
	return b.Subscribe(pattern, fn)
}

// Unsubscribe removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.sub.ID == sub.ID {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers ev to every matching subscriber before returning.
func (b *bus) Publish(ev Event) error {
	if ev == nil || !ev.Topic().IsValid() || ev.Topic().IsWildcard() {
		return ErrInvalidEvent
	}
	b.published.Add(1)

	b.mu.Lock()
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	t := ev.Topic()
	for _, s := range subs {
		if !t.Matches(s.sub.Pattern) {
			continue
		}
		if b.deliver(ev, s) {
			b.delivered.Add(1)
		}
	}
	return nil
}

func (b *bus) deliver(ev Event, s subscriber) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			b.panics.Add(1)
			if b.panicHandler != nil {
				b.panicHandler(ev, s.sub, r)
			}
		}
	}()
	s.handler.Handle(ev)
	return true
}

// Stats returns delivery counters.
func (b *bus) Stats() Stats {
	b.mu.Lock()
	n := len(b.subs)
	b.mu.Unlock()

	return Stats{
		Published:     b.published.Load(),
		Delivered:     b.delivered.Load(),
		HandlerPanics: b.panics.Load(),
		Subscribers:   n,
	}
}
