package syncerr

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryableErrorUnwrap(t *testing.T) {
	origErr := errors.New("rate limited")
	err := NewRetryableError(origErr, time.Now().Add(time.Minute))

	assert.ErrorIs(t, err, origErr)
	assert.Contains(t, err.Error(), "retryable error (after")
}

func TestRetryableAnytimeErrorString(t *testing.T) {
	err := NewRetryableAnytimeError(errors.New("503"))
	assert.Equal(t, "retryable error: 503", err.Error())
}

func TestCommandErrorContainsCommandAndExitCode(t *testing.T) {
	err := &CommandError{
		Command:  "git push origin HEAD:refs/heads/main",
		ExitCode: 128,
		Output:   "fatal: could not read Username\n",
	}

	assert.Equal(t,
		"command 'git push origin HEAD:refs/heads/main' failed with exit code 128, output: fatal: could not read Username",
		err.Error(),
	)
}

func TestCommandErrorWithoutExitCode(t *testing.T) {
	execErr := errors.New("executable file not found in $PATH")
	err := &CommandError{Command: "make generate", Err: execErr}

	assert.ErrorIs(t, err, execErr)
	assert.Equal(t, "command 'make generate' failed: executable file not found in $PATH", err.Error())
}
