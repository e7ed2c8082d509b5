package person

import "errors"

// Sentinel errors for the person service layer.
var (
	ErrNotFound     = errors.New("person not found")
	ErrEmailRequired = errors.New("person: email is required")
)
