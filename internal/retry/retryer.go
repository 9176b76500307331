// Package retry runs operations repeatedly until they succeed or fail with a
// permanent error.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
	"github.com/simplesurance/prsync/internal/syncerr"
)

// DefTimeout is the default duration after that Run gives up retrying.
const DefTimeout = 5 * time.Minute

var ErrStopped = errors.New("retryer stopped")

// Retryer executes a function repeatedly until it was successful or cancel
// condition happened.
type Retryer struct {
	logger       *zap.Logger
	shutdownChan chan struct{}

	defTimeout                 time.Duration
	backoffInitialInterval     time.Duration
	backoffRandomizationFactor float64
}

func NewRetryer() *Retryer {
	return &Retryer{
		logger:                     zap.L().Named("retryer"),
		shutdownChan:               make(chan struct{}),
		defTimeout:                 DefTimeout,
		backoffInitialInterval:     5 * time.Second,
		backoffRandomizationFactor: backoff.DefaultRandomizationFactor,
	}
}

func logFieldActionResult(val string) zap.Field {
	return zap.String("action_result", val)
}

// Run executes fn until it was successful, it returned an error that
// does not wrap syncerr.RetryableError, the default timeout expired or the
// execution was aborted via the context.
func (r *Retryer) Run(ctx context.Context, fn func(context.Context) error, logF []zap.Field) error {
	var tryCnt uint

	ctx, cancelFn := context.WithTimeout(ctx, r.defTimeout)
	defer cancelFn()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.backoffInitialInterval
	bo.RandomizationFactor = r.backoffRandomizationFactor
	bo.MaxElapsedTime = 0
	bo.Reset()

	retryTimer := time.NewTimer(0)
	defer retryTimer.Stop()

	logger := r.logger.With(logF...)

	for {
		select {
		case <-ctx.Done():
			logger.Info(
				"operation cancelled",
				logfields.Event("operation_cancelled"),
				logFieldActionResult("cancelled"),
				zap.Uint("try_count", tryCnt),
				zap.Error(ctx.Err()),
			)

			return ctx.Err()

		case <-r.shutdownChan:
			logger.Info(
				"retryer terminating, operation not executed",
				logfields.Event("operation_cancelled_retryer_terminated"),
				logFieldActionResult("cancelled"),
			)

			return ErrStopped

		case <-retryTimer.C:
			tryCnt++
			logger := logger.With(zap.Uint("try_count", tryCnt))

			err := fn(ctx)
			if err == nil {
				if tryCnt > 1 {
					logger.Debug(
						"operation succeeded after retry",
						logfields.Event("operation_retry_succeeded"),
						logFieldActionResult("success"),
					)
				}

				return nil
			}

			logger = logger.With(zap.Error(err))

			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}

			var retryError *syncerr.RetryableError
			if !errors.As(err, &retryError) {
				return err
			}

			var retryIn time.Duration
			if retryError.After.IsZero() || !retryError.After.After(time.Now()) {
				retryIn = bo.NextBackOff()
			} else {
				retryIn = time.Until(retryError.After)

				if deadline, ok := ctx.Deadline(); ok && retryError.After.After(deadline) {
					logger.Warn(
						"operation failed, next possible retry time is after timeout expiration",
						logfields.Event("operation_failed"),
						zap.Time("earliest_allowed_retry", retryError.After),
					)

					return err
				}
			}

			retryTimer.Reset(retryIn)
			logger.Info(
				"operation failed, retry scheduled",
				logfields.Event("operation_retry_scheduled"),
				zap.Duration("retry_in", retryIn),
				zap.Duration("age", bo.GetElapsedTime()),
			)
		}
	}
}

// Stop notifies all Run() methods to terminate.
// It does not wait for their termination.
func (r *Retryer) Stop() {
	r.logger.Debug("retryer terminating", logfields.Event("retryer_terminating"))

	select {
	case <-r.shutdownChan:
		return // already closed
	default:
		close(r.shutdownChan)
	}
}
