package api

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	lua "github.com/yuin/gopher-lua"
)

// LogModule implements ks.log on top of an hclog logger.
type LogModule struct {
	logger hclog.Logger
}

// NewLogModule creates the ks.log module.
func NewLogModule(logger hclog.Logger) *LogModule {
	return &LogModule{logger: logger}
}

// Name returns the module name.
func (m *LogModule) Name() string {
	return "log"
}

// Table builds the module table.
func (m *LogModule) Table(L *lua.LState) *lua.LTable {
	mod := L.NewTable()
	L.SetField(mod, "debug", L.NewFunction(m.emit(hclog.Debug)))
	L.SetField(mod, "info", L.NewFunction(m.emit(hclog.Info)))
	L.SetField(mod, "warn", L.NewFunction(m.emit(hclog.Warn)))
	L.SetField(mod, "error", L.NewFunction(m.emit(hclog.Error)))
	return mod
}

func (m *LogModule) emit(level hclog.Level) lua.LGFunction {
	return func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			parts = append(parts, L.ToStringMeta(L.Get(i)).String())
		}
		m.logger.Log(level, strings.Join(parts, " "))
		return 0
	}
}
