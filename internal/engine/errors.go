package engine

import "errors"

var (
	// ErrScriptsFailed is returned after a build or update in which at least
	// one script failed. The summary is still valid and some scripts may have
	// been applied.
	ErrScriptsFailed = errors.New("one or more scripts failed")

	// ErrNoDatabase is returned when a runner has nothing to execute against.
	ErrNoDatabase = errors.New("no database connection")

	// ErrNoCreator is returned by a Builder that has no way to create the
	// database file.
	ErrNoCreator = errors.New("no database creator")
)
