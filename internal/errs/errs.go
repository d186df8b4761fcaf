// Package errs provides common errors thrown in the app that are expected to be caught upstream
package errs

import "errors"

var (
	ErrNoMatchingProfile = errors.New("could not find a configuration matching the current setup")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProfileExists     = errors.New("a profile with this name already exists")
)
