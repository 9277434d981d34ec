package plugin

import (
	"errors"
	"fmt"
)

// Plugin errors.
var (
	// ErrNotFound is returned when no extension with the name exists.
	ErrNotFound = errors.New("plugin not found")

	// ErrAlreadyLoaded is returned when loading a loaded extension.
	ErrAlreadyLoaded = errors.New("plugin is already loaded")

	// ErrNotLoaded is returned when unloading an extension that is not loaded.
	ErrNotLoaded = errors.New("plugin is not loaded")

	// ErrManagerClosed is returned after Close.
	ErrManagerClosed = errors.New("plugin manager is closed")
)

// Manifest validation errors.
var (
	ErrMissingName    = errors.New("manifest: name is required")
	ErrInvalidName    = errors.New("manifest: name must be lowercase alphanumeric with hyphens")
	ErrInvalidVersion = errors.New("manifest: version must be valid semver")
	ErrInvalidMain    = errors.New("manifest: main must be a .lua file inside the plugin directory")
)

// LoadError reports a failure while loading one extension.
type LoadError struct {
	Plugin string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load plugin %q: %v", e.Plugin, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
