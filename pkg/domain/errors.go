package domain

import "errors"

// ErrSessionNotFound is returned when no persisted state exists in the store.
var ErrSessionNotFound = errors.New("session not found")
