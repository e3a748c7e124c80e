package command

import "errors"

// Sentinel errors for command execution.
var (
	// ErrMissingParameter indicates a matched intent lacks a parameter its
	// command requires. It signals a defect in the pattern table.
	ErrMissingParameter = errors.New("command: missing required parameter")

	// ErrUnknownIntent indicates a matched intent has no registered command.
	ErrUnknownIntent = errors.New("command: no command registered for intent")

	// ErrStoreWrite indicates the reminder could not be committed.
	ErrStoreWrite = errors.New("command: reminder store write failed")

	// ErrDuplicateCommand is returned by NewExecutor when two commands share
	// an intent.
	ErrDuplicateCommand = errors.New("command: duplicate command")
)
