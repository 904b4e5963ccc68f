package cmd

import "errors"

var errNoCommand = errors.New("no command given")

// runError marks a failure that happened while a command was running, as
// opposed to a command line that could not be parsed.
type runError struct {
	err error
}

func (e *runError) Error() string { return e.err.Error() }

func (e *runError) Unwrap() error { return e.err }

func failed(err error) error {
	if err == nil {
		return nil
	}
	return &runError{err: err}
}
