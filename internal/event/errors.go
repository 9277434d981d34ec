package event

import "errors"

// Sentinel errors for the event bus.
var (
	// ErrInvalidEvent is returned when an event is nil or has an invalid topic.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidTopic is returned when a subscription pattern is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
