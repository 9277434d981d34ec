package api

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/switchboard/internal/button"
	plua "github.com/dshills/switchboard/internal/plugin/lua"
)

// Provider is the registry surface exposed to extensions.
// *registry.Registry satisfies it.
type Provider interface {
	Register(desc button.Descriptor) bool
	Unregister(id string) bool
	Trigger(id string, programmatic bool) bool
	Release(id string) bool
	SetEnabled(id string, enabled bool) bool
	SetToggleState(id string, toggled, invokeCallback bool) bool
	Get(id string) (button.View, bool)
	GetByOwner(owner string) []button.View
}

// ButtonModule implements ks.button for one extension.
type ButtonModule struct {
	provider Provider
	state    *plua.State
	owner    string
	logger   hclog.Logger
}

// NewButtonModule creates the ks.button module. Controls it registers are
// owned by owner, and their Lua callbacks run on state.
func NewButtonModule(provider Provider, state *plua.State, owner string, logger hclog.Logger) *ButtonModule {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ButtonModule{
		provider: provider,
		state:    state,
		owner:    owner,
		logger:   logger,
	}
}

// Name returns the module name.
func (m *ButtonModule) Name() string {
	return "button"
}

// Table builds the module table.
func (m *ButtonModule) Table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "register", L.NewFunction(m.register))
	L.SetField(mod, "unregister", L.NewFunction(m.unregister))
	L.SetField(mod, "trigger", L.NewFunction(m.trigger))
	L.SetField(mod, "release", L.NewFunction(m.release))
	L.SetField(mod, "set_enabled", L.NewFunction(m.setEnabled))
	L.SetField(mod, "set_toggled", L.NewFunction(m.setToggled))
	L.SetField(mod, "is_toggled", L.NewFunction(m.isToggled))
	L.SetField(mod, "list", L.NewFunction(m.list))
	return mod
}

// register(opts) -> bool
// opts must include id and at least one of on_press, on_toggle, on_hold.
// An id already owned by someone else is refused.
func (m *ButtonModule) register(L *lua.LState) int {
	opts := L.CheckTable(1)

	id := getTableString(L, opts, "id")
	if id == "" {
		L.ArgError(1, "id is required")
		return 0
	}
	if v, ok := m.provider.Get(id); ok && v.Owner != m.owner {
		m.logger.Warn("register refused, id owned by another extension", "id", id, "owner", v.Owner)
		L.Push(lua.LFalse)
		return 1
	}

	category, ok := button.ParseCategory(getTableString(L, opts, "category"))
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown category %q", getTableString(L, opts, "category")))
		return 0
	}
	mode, ok := button.ParseMode(getTableString(L, opts, "mode"))
	if !ok {
		L.ArgError(1, fmt.Sprintf("unknown mode %q", getTableString(L, opts, "mode")))
		return 0
	}

	b := button.NewBuilder(id, m.owner).
		Name(getTableString(L, opts, "name")).
		Description(getTableString(L, opts, "description")).
		Category(category).
		Mode(mode).
		Priority(getTableInt(L, opts, "priority", button.DefaultPriority)).
		CooldownMS(getTableInt(L, opts, "cooldown_ms", 0)).
		Icon(getTableString(L, opts, "icon")).
		Tint(button.Color(getTableInt(L, opts, "tint", 0))).
		OriginalKeybind(getTableString(L, opts, "keybind"))

	if key := getTableString(L, opts, "key"); key != "" {
		r, _ := utf8.DecodeRuneInString(key)
		b.Key(r)
	}

	if fn := getTableFunc(L, opts, "on_press"); fn != nil {
		b.OnPress(func() error { return m.call(id, "on_press", fn) })
	}
	if fn := getTableFunc(L, opts, "on_hold"); fn != nil {
		b.OnHold(func(dt time.Duration) error {
			return m.call(id, "on_hold", fn, lua.LNumber(dt.Seconds()))
		})
	}
	if fn := getTableFunc(L, opts, "on_release"); fn != nil {
		b.OnRelease(func() error { return m.call(id, "on_release", fn) })
	}
	if fn := getTableFunc(L, opts, "on_toggle"); fn != nil {
		b.OnToggle(func(on bool) error { return m.call(id, "on_toggle", fn, lua.LBool(on)) })
	}
	if fn := getTableFunc(L, opts, "visible"); fn != nil {
		b.VisibleWhen(m.predicate(id, "visible", fn))
	}
	if fn := getTableFunc(L, opts, "enabled"); fn != nil {
		b.EnabledWhen(m.predicate(id, "enabled", fn))
	}

	L.Push(lua.LBool(m.provider.Register(b.Build())))
	return 1
}

// call runs a Lua callback on the owning state.
func (m *ButtonModule) call(id, name string, fn *lua.LFunction, args ...lua.LValue) error {
	if _, err := m.state.Call(fn, args...); err != nil {
		return fmt.Errorf("%s %s: %w", id, name, err)
	}
	return nil
}

// predicate adapts a Lua function to a Go predicate. Errors count as false.
func (m *ButtonModule) predicate(id, name string, fn *lua.LFunction) func() bool {
	return func() bool {
		results, err := m.state.Call(fn)
		if err != nil {
			m.logger.Warn("button predicate failed", "id", id, "predicate", name, "error", err)
			return false
		}
		return len(results) > 0 && lua.LVAsBool(results[0])
	}
}

// owns reports whether id is registered by this extension.
func (m *ButtonModule) owns(id string) bool {
	v, ok := m.provider.Get(id)
	return ok && v.Owner == m.owner
}

// unregister(id) -> bool
// Only controls owned by the calling extension can be removed.
func (m *ButtonModule) unregister(L *lua.LState) int {
	id := L.CheckString(1)
	if !m.owns(id) {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(m.provider.Unregister(id)))
	return 1
}

// trigger(id) -> bool
// Presses any control programmatically.
func (m *ButtonModule) trigger(L *lua.LState) int {
	id := L.CheckString(1)
	L.Push(lua.LBool(m.provider.Trigger(id, true)))
	return 1
}

// release(id) -> bool
// Ends a hold started with trigger. False if the control is not held.
func (m *ButtonModule) release(L *lua.LState) int {
	id := L.CheckString(1)
	L.Push(lua.LBool(m.provider.Release(id)))
	return 1
}

// set_enabled(id, enabled) -> bool
func (m *ButtonModule) setEnabled(L *lua.LState) int {
	id := L.CheckString(1)
	enabled := L.CheckBool(2)
	if !m.owns(id) {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(m.provider.SetEnabled(id, enabled)))
	return 1
}

// set_toggled(id, on [, invoke]) -> bool
func (m *ButtonModule) setToggled(L *lua.LState) int {
	id := L.CheckString(1)
	on := L.CheckBool(2)
	invoke := L.OptBool(3, false)
	if !m.owns(id) {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(m.provider.SetToggleState(id, on, invoke)))
	return 1
}

// is_toggled(id) -> bool
func (m *ButtonModule) isToggled(L *lua.LState) int {
	id := L.CheckString(1)
	v, ok := m.provider.Get(id)
	L.Push(lua.LBool(ok && v.Toggled))
	return 1
}

// list() -> {buttons...}
// Lists the controls registered by this extension.
func (m *ButtonModule) list(L *lua.LState) int {
	result := L.NewTable()
	for i, v := range m.provider.GetByOwner(m.owner) {
		tbl := L.NewTable()
		L.SetField(tbl, "id", lua.LString(v.ID))
		L.SetField(tbl, "name", lua.LString(v.Name))
		L.SetField(tbl, "category", lua.LString(v.Category.String()))
		L.SetField(tbl, "mode", lua.LString(v.Mode.String()))
		L.SetField(tbl, "priority", lua.LNumber(v.Priority))
		L.SetField(tbl, "enabled", lua.LBool(v.Enabled))
		L.SetField(tbl, "toggled", lua.LBool(v.Toggled))
		L.SetField(tbl, "held", lua.LBool(v.Held))
		result.RawSetInt(i+1, tbl)
	}
	L.Push(result)
	return 1
}
