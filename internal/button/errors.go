package button

import "errors"

// Validation errors returned by Descriptor.Validate.
var (
	// ErrEmptyID is returned when a descriptor has no unique ID.
	ErrEmptyID = errors.New("button id cannot be empty")

	// ErrEmptyOwner is returned when a descriptor has no owner.
	ErrEmptyOwner = errors.New("button owner cannot be empty")

	// ErrNoAction is returned when none of OnPress, OnToggle or OnHold is set.
	ErrNoAction = errors.New("button must have at least one of OnPress, OnToggle, OnHold")

	// ErrInvalidCategory is returned for a category outside Categories.
	ErrInvalidCategory = errors.New("button category is not a known category")

	// ErrInvalidMode is returned for a mode other than momentary, toggle or hold.
	ErrInvalidMode = errors.New("button mode is not a known mode")
)
