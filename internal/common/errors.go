package common

import "errors"

var (
	// Lookup errors. Callers should match with errors.Is.
	ErrorNotFound = errors.New("not found")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
)
