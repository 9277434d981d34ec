// Package button defines the data model for virtual controls that extensions
// register with the switchboard registry.
//
// A control is described by a Descriptor: an immutable identity (ID, owner,
// name, category, interaction mode), configuration that may be replaced by
// re-registering the same ID (priority, cooldown, predicates, callbacks,
// visual hints), and runtime state that only the registry mutates.
//
// # Building Descriptors
//
// Extensions usually construct descriptors with the fluent Builder:
//
//	desc := button.NewBuilder("mymod.open-map", "mymod").
//	    Name("Open Map").
//	    Category(button.CategoryMenu).
//	    Mode(button.ModeMomentary).
//	    CooldownMS(250).
//	    OnPress(func() error {
//	        return openMap()
//	    }).
//	    Build()
//
//	if !reg.Register(desc) {
//	    // validation failed, see logs
//	}
//
// # Views
//
// The registry never hands out descriptors. Queries return View values:
// read-only snapshots of identity, configuration scalars and runtime flags
// (toggled, held, enabled). Callbacks and predicates are not reachable
// through a View.
package button
