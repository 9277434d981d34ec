package host

import "errors"

// Host errors.
var (
	// ErrQuit is returned by HandleEvent when the user asked to exit.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("host already running")
)
