// Package api exposes switchboard to extension scripts as the ks Lua table.
//
// Installed modules:
//
//	ks.button.register{ id = "mod.a", name = "Open Menu", mode = "toggle",
//	    on_toggle = function(on) ... end }
//	ks.button.unregister(id)
//	ks.button.trigger(id)
//	ks.button.release(id)
//	ks.button.set_enabled(id, enabled)
//	ks.button.set_toggled(id, on [, invoke])
//	ks.button.is_toggled(id)
//	ks.button.list()
//	ks.log.info(msg, ...)  -- also debug, warn, error
//
// Every control registered through ks.button is owned by the extension that
// registered it, and ids owned by another extension or the host cannot be
// replaced or modified. trigger and release work on any control. Lua errors
// raised inside callbacks surface as failed triggers.
package api

import (
	lua "github.com/yuin/gopher-lua"
)

// Module is one field of the ks table.
type Module interface {
	// Name is the field name under ks.
	Name() string

	// Table builds the module table.
	Table(L *lua.LState) *lua.LTable
}

// Install sets the global ks table to hold the given modules.
func Install(L *lua.LState, modules ...Module) {
	ks := L.NewTable()
	for _, m := range modules {
		L.SetField(ks, m.Name(), m.Table(L))
	}
	L.SetGlobal("ks", ks)
}

// getTableString gets a string field from a Lua table.
func getTableString(L *lua.LState, tbl *lua.LTable, field string) string {
	val := L.GetField(tbl, field)
	if str, ok := val.(lua.LString); ok {
		return string(str)
	}
	return ""
}

// getTableInt gets an int field from a Lua table, or def when absent.
func getTableInt(L *lua.LState, tbl *lua.LTable, field string, def int) int {
	val := L.GetField(tbl, field)
	if num, ok := val.(lua.LNumber); ok {
		return int(num)
	}
	return def
}

// getTableFunc gets a function field from a Lua table, or nil.
func getTableFunc(L *lua.LState, tbl *lua.LTable, field string) *lua.LFunction {
	if fn, ok := L.GetField(tbl, field).(*lua.LFunction); ok {
		return fn
	}
	return nil
}
