// Package plugin loads Lua extensions that contribute controls to the
// registry.
//
// An extension lives in its own directory under the plugin root:
//
//	plugins/
//	  sprint/
//	    plugin.yaml
//	    init.lua
//
// plugin.yaml names the extension and its entry file:
//
//	name: sprint
//	version: 1.0.0
//	displayName: Sprint Toggle
//	main: init.lua
//
// Each loaded extension gets its own sandboxed Lua state with the ks table
// installed. Every control it registers is owned by the extension name, so
// Unload removes them all with a single owner cascade.
//
// Lua states are single-threaded. Load, Unload and Reload must run on the
// goroutine that drives the registry callbacks; the Watcher only reports
// which extensions changed.
package plugin
