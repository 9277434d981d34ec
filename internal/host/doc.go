// Package host drives switchboard inside a terminal frame loop.
//
// A Context owns every collaborator explicitly: the registry, the deferred
// dispatch queue and its runner, the gesture controller, the overlay
// layout, the conflict resolver and the plugin manager. There is no
// package-level state; two Contexts never share anything.
//
// All registry callbacks, Lua states and layout changes are driven from
// the goroutine that calls HandleEvent and Frame. Run provides that
// goroutine: a poller feeds backend events into a channel, and a ticker
// at the configured frame rate drives Frame.
//
// Frame order:
//
//  1. reload extensions reported by the plugin watcher
//  2. promote a long press to a drag
//  3. run a due deferred press
//  4. advance held controls
//  5. render the panel
package host
