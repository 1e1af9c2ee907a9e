package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.kgctl.dev/kg/storage"
)

// Exit codes for the kgctl CLI (spec.md §6).
const (
	exitOK              = 0
	exitInvalid         = 1
	exitArgError        = 2
	exitStorageFailure  = 3
	exitInternal        = 4
	exitInterrupted     = 130
)

// exitError carries the process exit code alongside a user-facing message,
// so a subcommand's RunE can return one error and main translates it into
// both a stderr line and os.Exit call.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func argError(format string, args ...any) error {
	return &exitError{code: exitArgError, err: fmt.Errorf(format, args...)}
}

func internalError(err error) error {
	return &exitError{code: exitInternal, err: err}
}

// storageExitError maps a failed step's error into an exit code: context
// cancellation is interrupted (130); a *storage.Error, such as a
// connection failure or a schema load failure reported by the client's
// LoadSchemas, is a storage failure (3); any other error, including a
// loader error returned directly or an *exitError, is internal (4).
func storageExitError(step string, err error) error {
	if errors.Is(err, context.Canceled) {
		return &exitError{code: exitInterrupted, err: err}
	}

	var storageErr *storage.Error
	if errors.As(err, &storageErr) {
		return &exitError{code: exitStorageFailure, err: fmt.Errorf("%s: %w", step, err)}
	}

	return &exitError{code: exitInternal, err: fmt.Errorf("%s: %w", step, err)}
}

// runMain executes cmd and translates its error, if any, into a process
// exit. It is a thin wrapper so main itself stays a one-liner.
func runMain(run func() error) {
	err := run()
	if err == nil {
		os.Exit(exitOK)
	}

	var ee *exitError

	code := exitInternal
	if errors.As(err, &ee) {
		code = ee.code
	}

	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}
