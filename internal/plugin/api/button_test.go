package api

import (
	"bytes"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/switchboard/internal/button"
	plua "github.com/dshills/switchboard/internal/plugin/lua"
	"github.com/dshills/switchboard/internal/registry"
)

func setup(t *testing.T, owner string, reg *registry.Registry) *plua.State {
	t.Helper()
	state := plua.NewState()
	t.Cleanup(state.Close)
	Install(state.L,
		NewButtonModule(reg, state, owner, nil),
		NewLogModule(hclog.NewNullLogger()),
	)
	return state
}

func TestRegisterFromLua(t *testing.T) {
	reg := registry.New()
	state := setup(t, "sprint-mod", reg)

	require.NoError(t, state.DoString(`
		toggles = {}
		ok = ks.button.register{
			id = "sprint.toggle",
			name = "Sprint",
			category = "combat",
			mode = "toggle",
			priority = 700,
			cooldown_ms = 0,
			key = "s",
			keybind = "Shift",
			tint = 0x00ff00,
			on_toggle = function(on) table.insert(toggles, on) end,
		}
	`))
	assert.Equal(t, lua.LTrue, state.GetGlobal("ok"))

	v, found := reg.Get("sprint.toggle")
	require.True(t, found)
	assert.Equal(t, "sprint-mod", v.Owner)
	assert.Equal(t, "Sprint", v.Name)
	assert.Equal(t, button.CategoryCombat, v.Category)
	assert.Equal(t, button.ModeToggle, v.Mode)
	assert.Equal(t, 700, v.Priority)
	assert.Equal(t, 's', v.Hints.Key)
	assert.Equal(t, button.RGB(0, 0xff, 0), v.Hints.Tint)
	assert.Equal(t, "Shift", v.OriginalKeybind)

	require.True(t, reg.Trigger("sprint.toggle", false))
	require.True(t, reg.Trigger("sprint.toggle", false))
	require.NoError(t, state.DoString(`n = #toggles; first = toggles[1]; second = toggles[2]`))
	assert.Equal(t, lua.LNumber(2), state.GetGlobal("n"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("first"))
	assert.Equal(t, lua.LFalse, state.GetGlobal("second"))
}

func TestRegisterValidation(t *testing.T) {
	reg := registry.New()
	state := setup(t, "mod", reg)

	assert.Error(t, state.DoString(`ks.button.register{ name = "no id" }`))
	assert.Error(t, state.DoString(`ks.button.register{ id = "x", mode = "spin", on_press = function() end }`))
	assert.Error(t, state.DoString(`ks.button.register{ id = "x", category = "weather", on_press = function() end }`))

	require.NoError(t, state.DoString(`ok = ks.button.register{ id = "x" }`))
	assert.Equal(t, lua.LFalse, state.GetGlobal("ok"), "no action callback")
	assert.Equal(t, 0, reg.Len())
}

func TestLuaErrorFailsTrigger(t *testing.T) {
	reg := registry.New()
	state := setup(t, "mod", reg)

	require.NoError(t, state.DoString(`
		ks.button.register{ id = "bad", on_press = function() error("broken") end }
	`))
	assert.False(t, reg.Trigger("bad", false))
}

func TestPredicates(t *testing.T) {
	reg := registry.New()
	state := setup(t, "mod", reg)

	require.NoError(t, state.DoString(`
		shown = false
		ks.button.register{
			id = "p",
			on_press = function() end,
			visible = function() return shown end,
			enabled = function() error("oops") end,
		}
	`))
	assert.Empty(t, reg.GetVisible())

	require.NoError(t, state.DoString(`shown = true`))
	assert.Len(t, reg.GetVisible(), 1)
	assert.False(t, reg.Trigger("p", false), "failing enabled predicate counts as disabled")
}

func TestOwnershipAndQueries(t *testing.T) {
	reg := registry.New()
	require.True(t, reg.Register(button.NewBuilder("other.btn", "other").
		Mode(button.ModeToggle).
		OnToggle(func(bool) error { return nil }).
		Build()))

	state := setup(t, "mine", reg)
	require.NoError(t, state.DoString(`
		ks.button.register{ id = "mine.a", mode = "toggle", on_toggle = function() end }
		ks.button.register{ id = "mine.b", on_press = function() end }

		foreign_unreg = ks.button.unregister("other.btn")
		foreign_enable = ks.button.set_enabled("other.btn", false)
		foreign_toggle = ks.button.set_toggled("other.btn", true)
		foreign_trigger = ks.button.trigger("other.btn")
		foreign_state = ks.button.is_toggled("other.btn")

		own_toggle = ks.button.set_toggled("mine.a", true)
		own_state = ks.button.is_toggled("mine.a")
		own_disable = ks.button.set_enabled("mine.b", false)

		local l = ks.button.list()
		count = #l
		first = l[1].id

		own_unreg = ks.button.unregister("mine.b")
	`))

	assert.Equal(t, lua.LFalse, state.GetGlobal("foreign_unreg"))
	assert.Equal(t, lua.LFalse, state.GetGlobal("foreign_enable"))
	assert.Equal(t, lua.LFalse, state.GetGlobal("foreign_toggle"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("foreign_trigger"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("foreign_state"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("own_toggle"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("own_state"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("own_disable"))
	assert.Equal(t, lua.LNumber(2), state.GetGlobal("count"))
	assert.Equal(t, lua.LString("mine.a"), state.GetGlobal("first"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("own_unreg"))

	_, ok := reg.Get("other.btn")
	assert.True(t, ok)
	_, ok = reg.Get("mine.b")
	assert.False(t, ok)
}

func TestRegisterRefusesForeignID(t *testing.T) {
	reg := registry.New()
	var hostPresses int
	require.True(t, reg.Register(button.NewBuilder("host.menu.close", "host").
		OnPress(func() error { hostPresses++; return nil }).
		Build()))

	state := setup(t, "intruder", reg)
	require.NoError(t, state.DoString(`
		hijacked = ks.button.register{ id = "host.menu.close", on_press = function() end }
	`))
	assert.Equal(t, lua.LFalse, state.GetGlobal("hijacked"))

	v, ok := reg.Get("host.menu.close")
	require.True(t, ok)
	assert.Equal(t, "host", v.Owner)
	require.True(t, reg.Trigger("host.menu.close", false))
	assert.Equal(t, 1, hostPresses)
}

func TestReRegisterOwnID(t *testing.T) {
	reg := registry.New()
	state := setup(t, "mod", reg)
	require.NoError(t, state.DoString(`
		first = ks.button.register{ id = "mod.a", name = "Old", on_press = function() end }
		second = ks.button.register{ id = "mod.a", name = "New", on_press = function() end }
	`))
	assert.Equal(t, lua.LTrue, state.GetGlobal("second"))
	v, _ := reg.Get("mod.a")
	assert.Equal(t, "New", v.Name)
}

func TestTriggerAndReleaseHold(t *testing.T) {
	reg := registry.New()
	state := setup(t, "mod", reg)
	require.NoError(t, state.DoString(`
		released = 0
		ks.button.register{ id = "mod.charge", mode = "hold",
			on_hold = function(dt) end,
			on_release = function() released = released + 1 end }

		pressed = ks.button.trigger("mod.charge")
		first = ks.button.release("mod.charge")
		again = ks.button.release("mod.charge")
		unknown = ks.button.release("nope")
	`))
	assert.Equal(t, lua.LTrue, state.GetGlobal("pressed"))
	assert.Equal(t, lua.LTrue, state.GetGlobal("first"))
	assert.Equal(t, lua.LFalse, state.GetGlobal("again"))
	assert.Equal(t, lua.LFalse, state.GetGlobal("unknown"))
	assert.Equal(t, lua.LNumber(1), state.GetGlobal("released"))

	v, _ := reg.Get("mod.charge")
	assert.False(t, v.Held)
}

func TestNestedTriggerFromCallback(t *testing.T) {
	reg := registry.New()
	state := setup(t, "mod", reg)

	require.NoError(t, state.DoString(`
		hits = 0
		ks.button.register{ id = "inner", on_press = function() hits = hits + 1 end }
		ks.button.register{ id = "outer", on_press = function()
			ks.button.trigger("inner")
			ks.button.register{ id = "spawned", on_press = function() end }
		end }
	`))
	require.True(t, reg.Trigger("outer", false))
	assert.Equal(t, lua.LNumber(1), state.GetGlobal("hits"))
	_, ok := reg.Get("spawned")
	assert.True(t, ok)
}

func TestLogModule(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Debug})
	state := plua.NewState()
	defer state.Close()
	Install(state.L, NewLogModule(logger))

	require.NoError(t, state.DoString(`ks.log.warn("low", "ammo", 3)`))
	assert.Contains(t, buf.String(), "[WARN]")
	assert.Contains(t, buf.String(), "low ammo 3")
}
