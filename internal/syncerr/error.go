// Package syncerr provides error types shared by the prsync components.
package syncerr

import (
	"fmt"
	"strings"
	"time"
)

type RetryableError struct {
	// Err is the wrapped original error
	Err error
	// After is the earliest point in time that the operation can be retried
	After time.Time
}

func NewRetryableError(originalErr error, retryAfter time.Time) *RetryableError {
	return &RetryableError{
		Err:   originalErr,
		After: retryAfter,
	}
}

func NewRetryableAnytimeError(originalErr error) *RetryableError {
	return &RetryableError{
		Err: originalErr,
	}
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

func (e *RetryableError) Error() string {
	if e.After.IsZero() {
		return fmt.Sprintf("retryable error: %s", e.Err)
	}

	return fmt.Sprintf("retryable error (after %s): %s", e.After, e.Err)
}

// CommandError is returned when an executed command terminated with a
// non-zero exit code or could not be started.
type CommandError struct {
	Command  string
	ExitCode int
	// Output is the combined stdout and stderr output of the command.
	Output string
	Err    error
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func (e *CommandError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "command '%s' failed", e.Command)
	if e.ExitCode != 0 {
		fmt.Fprintf(&sb, " with exit code %d", e.ExitCode)
	}

	if e.Err != nil {
		fmt.Fprintf(&sb, ": %s", e.Err)
	}

	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&sb, ", output: %s", out)
	}

	return sb.String()
}
