// Package errors provides the sentinel errors shared by tmr packages.
//
// Callers categorize failures with errors.Is(). This package must not import
// any other internal package.
package errors

import "errors"

var (
	// ErrNotFound indicates that a referenced activity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a malformed or out-of-range input value.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistence indicates that the backing store rejected or failed an operation.
	ErrPersistence = errors.New("persistence error")

	// ErrActivityActive indicates an operation that is not allowed while the
	// activity is still running.
	ErrActivityActive = errors.New("activity is still active")

	// ErrNoActivities indicates that no activities exist for the requested day.
	ErrNoActivities = errors.New("no activities found")

	// ErrPromptCanceled is returned when the user aborts an interactive prompt.
	ErrPromptCanceled = errors.New("prompt canceled")

	// ErrNotInteractive is returned when a prompt is required but stdin is not a terminal.
	ErrNotInteractive = errors.New("input required but terminal is not interactive")
)
