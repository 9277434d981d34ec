package lua

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	lua "github.com/yuin/gopher-lua"
)

func TestSandboxHidesUnsafeLibraries(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "dofile", "loadfile", "require"} {
		if v := s.GetGlobal(name); v != lua.LNil {
			t.Errorf("global %q is available: %s", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs", "pcall"} {
		if v := s.GetGlobal(name); v == lua.LNil {
			t.Errorf("global %q is missing", name)
		}
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Output: &buf, Level: hclog.Info})
	s := NewState(WithLogger(logger))
	defer s.Close()

	if err := s.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("hello\t42")) {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestCall(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function add(a, b) return a + b, "ok" end`); err != nil {
		t.Fatalf("DoString: %v", err)
	}

	results, err := s.Call(s.GetGlobal("add"), lua.LNumber(2), lua.LNumber(3))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(results) != 2 || results[0] != lua.LNumber(5) || results[1] != lua.LString("ok") {
		t.Errorf("results = %v", results)
	}
	if top := s.L.GetTop(); top != 0 {
		t.Errorf("stack not balanced, top = %d", top)
	}

	if _, err := s.Call(lua.LString("nope")); err == nil {
		t.Error("Call on a string should fail")
	}
}

func TestCallError(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function boom() error("kaboom") end`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	_, err := s.Call(s.GetGlobal("boom"))
	if err == nil || !bytes.Contains([]byte(err.Error()), []byte("kaboom")) {
		t.Errorf("Call error = %v, want kaboom", err)
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString = %v, want ErrExecutionTimeout", err)
	}

	// The state stays usable after a timeout.
	if err := s.DoString(`x = 1`); err != nil {
		t.Errorf("DoString after timeout: %v", err)
	}
}

func TestClosedState(t *testing.T) {
	s := NewState()
	s.Close()
	s.Close()

	if !s.IsClosed() {
		t.Error("IsClosed = false")
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString = %v, want ErrStateClosed", err)
	}
}
