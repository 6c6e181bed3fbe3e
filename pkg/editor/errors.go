package editor

import "errors"

var (
	// ErrNotLoaded is returned by Save when the session has not loaded a
	// document yet.
	ErrNotLoaded = errors.New("session not loaded")

	// ErrSaveInFlight is returned when Save is called while a previous save
	// has not finished.
	ErrSaveInFlight = errors.New("save already in flight")

	// ErrRowNotFound is returned when a row operation names an unknown
	// temporary identifier.
	ErrRowNotFound = errors.New("row not found")
)
