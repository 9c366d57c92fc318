package profile

import "errors"

var (
	// ErrNotFound indicates no profile exists for the given identifier.
	ErrNotFound = errors.New("profile not found")

	// ErrUnknownSection indicates an update named a section that is not
	// part of the profile document.
	ErrUnknownSection = errors.New("unknown profile section")

	// ErrEmptyKey indicates an update without a field key.
	ErrEmptyKey = errors.New("profile update key is empty")
)
