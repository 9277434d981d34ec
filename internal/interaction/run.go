package interaction

import (
	"fmt"
	"runtime/debug"

	"github.com/hashicorp/go-hclog"
)

// CallbackError reports a failed extension callback.
type CallbackError struct {
	// ID is the control whose callback failed.
	ID string

	// Step is the callback that failed.
	Step StepKind

	// Err is the returned error, or a PanicError.
	Err error
}

// Error implements the error interface.
func (e *CallbackError) Error() string {
	return fmt.Sprintf("button %s: %s: %v", e.ID, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallbackError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a panicking callback.
type PanicError struct {
	Value any
	Stack string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run executes a plan's steps in order. Every step runs even if an earlier
// one failed. Failures are logged with the control id and the first one is
// returned as a *CallbackError.
func Run(plan Plan, id string, logger hclog.Logger) error {
	var first error
	for _, step := range plan.Steps {
		if err := runStep(step); err != nil {
			cbErr := &CallbackError{ID: id, Step: step.Kind, Err: err}
			if logger != nil {
				logger.Error("button callback failed", "id", id, "callback", step.Kind.String(), "error", err)
			}
			if first == nil {
				first = cbErr
			}
		}
	}
	return first
}

func runStep(step Step) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: string(debug.Stack())}
		}
	}()
	return step.call()
}
