// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrSubprocess is the sentinel wrapped by SubprocessError.
	ErrSubprocess = errors.New("engine subprocess failed")
	// ErrMalformedResponse is the sentinel wrapped by MalformedResponseError.
	ErrMalformedResponse = errors.New("malformed engine response")
)

type (
	// SubprocessError is returned when the engine binary exits non-zero. It
	// carries the captured standard error stream for diagnosis.
	SubprocessError struct {
		// Binary is the engine binary that was invoked.
		Binary string
		// ExitCode is the subprocess exit code.
		ExitCode int
		// Stderr is the captured standard error output, possibly empty.
		Stderr string
	}

	// MalformedResponseError is returned when the engine exits successfully
	// but its standard output is not valid JSON.
	MalformedResponseError struct {
		// Binary is the engine binary that was invoked.
		Binary string
		// Cause is the underlying decode error, if any.
		Cause error
	}
)

// Error implements the error interface.
func (e *SubprocessError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s exited with code %d: %s", e.Binary, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
}

// Unwrap returns ErrSubprocess for errors.Is() compatibility.
func (e *SubprocessError) Unwrap() error {
	return ErrSubprocess
}

// Error implements the error interface.
func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s produced output that is not valid JSON: %v", e.Binary, e.Cause)
	}
	return fmt.Sprintf("%s produced output that is not valid JSON", e.Binary)
}

// Unwrap returns ErrMalformedResponse for errors.Is() compatibility.
func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}
