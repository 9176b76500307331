package gitrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/flock"
)

// DefaultLockTimeout is the default timeout for acquiring the working
// directory lock.
const DefaultLockTimeout = 10 * time.Second

// Lock acquires an exclusive lock on path.lock.
// The returned function releases the lock.
func Lock(ctx context.Context, path string, timeout time.Duration) (func() error, error) {
	lockPath := path + ".lock"
	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("acquiring lock on %s: %w", lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("timed out acquiring lock on %s", lockPath)
	}

	return fileLock.Unlock, nil
}
