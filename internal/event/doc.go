// Package event provides the synchronous observer bus used by the registry
// to announce changes.
//
// Every event carries a dotted topic (see package topic). Subscribers
// register a handler for a topic pattern and receive matching events in the
// publisher's goroutine, in subscription order:
//
//	bus := event.NewBus()
//	sub, _ := bus.SubscribeFunc("button.*", func(ev event.Event) {
//	    log.Printf("%s", ev.Topic())
//	})
//	defer bus.Unsubscribe(sub)
//
// # Delivery
//
// Delivery is synchronous and ordered: Publish returns only after every
// matching handler has run. There is no queue and no worker pool, so events
// are observed in exactly the order the causing operations completed.
//
// The subscriber list is copied before delivery. Handlers may subscribe,
// unsubscribe or publish from inside a handler without deadlocking.
//
// # Panics
//
// A panicking handler is recovered, counted in Stats and reported to the
// configured panic handler. Delivery continues with the next subscriber.
package event
