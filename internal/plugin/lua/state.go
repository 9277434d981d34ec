// Package lua runs extension scripts in a restricted gopher-lua state.
package lua

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	lua "github.com/yuin/gopher-lua"
)

// DefaultExecutionTimeout bounds every top-level call into Lua.
const DefaultExecutionTimeout = 2 * time.Second

// removedGlobals are base-library functions that reach the filesystem.
var removedGlobals = []string{"dofile", "loadfile", "require", "module"}

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua states are not goroutine-safe. A State must only be used from
// the goroutine that owns it; in switchboard that is the host frame loop.
// Calls may nest (Lua calling Go calling Lua), which is why State holds no
// lock.
type State struct {
	L *lua.LState

	timeout time.Duration
	logger  hclog.Logger

	depth  int
	cancel context.CancelFunc
	closed bool
}

// StateOption customizes NewState.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout for top-level calls. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger routes Lua print output to logger.
func WithLogger(logger hclog.Logger) StateOption {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewState returns a sandboxed state with print routed to the logger.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultExecutionTimeout,
		logger:  hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true,
	})
	s.L = L
	openSafeLibraries(L)
	for _, name := range removedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(s.print))
	return s
}

// openSafeLibraries loads base, table, string and math. Anything that
// reaches the filesystem, the process or other goroutines is left out.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	s.logger.Info(strings.Join(parts, "\t"))
	return 0
}

// DoFile runs the script at path under the execution timeout.
func (s *State) DoFile(path string) error {
	return s.run(func() error { return s.L.DoFile(path) })
}

// DoString executes a Lua chunk.
func (s *State) DoString(code string) error {
	return s.run(func() error { return s.L.DoString(code) })
}

// Call calls fn with args and returns its results.
func (s *State) Call(fn lua.LValue, args ...lua.LValue) ([]lua.LValue, error) {
	if fn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("not a function (got %s)", fn.Type())
	}

	var results []lua.LValue
	err := s.run(func() error {
		top := s.L.GetTop()
		s.L.Push(fn)
		for _, arg := range args {
			s.L.Push(arg)
		}
		if err := s.L.PCall(len(args), lua.MultRet, nil); err != nil {
			return err
		}
		n := s.L.GetTop() - top
		results = make([]lua.LValue, n)
		for i := 0; i < n; i++ {
			results[i] = s.L.Get(top + i + 1)
		}
		s.L.Pop(n)
		return nil
	})
	return results, err
}

// run executes fn with panic recovery. The outermost call installs the
// execution timeout.
func (s *State) run(fn func() error) (err error) {
	if s.closed {
		return ErrStateClosed
	}

	if s.depth == 0 && s.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		s.cancel = cancel
		s.L.SetContext(ctx)
	}
	s.depth++

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		s.depth--
		if s.depth == 0 && s.cancel != nil {
			ctx := s.L.Context()
			s.L.RemoveContext()
			s.cancel()
			s.cancel = nil
			if err != nil && ctx != nil && ctx.Err() == context.DeadlineExceeded {
				err = fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
			}
		}
	}()
	return fn()
}

// SetGlobal assigns a Lua global.
func (s *State) SetGlobal(name string, value lua.LValue) {
	if s.closed {
		return
	}
	s.L.SetGlobal(name, value)
}

// GetGlobal reads a Lua global.
func (s *State) GetGlobal(name string) lua.LValue {
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// IsClosed reports whether Close has run.
func (s *State) IsClosed() bool {
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.L.Close()
}
