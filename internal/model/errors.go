package model

import "errors"

// ErrNotFound reports that a requested project or session does not
// exist. Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput reports a missing or empty request parameter,
// detected before any filesystem access.
var ErrInvalidInput = errors.New("invalid input")
