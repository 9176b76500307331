package branchsync

import "errors"

var (
	ErrFailedProcess   = errors.New("There is a failed process.")
	ErrFailedProcesses = errors.New("There are failed processes.")
)
