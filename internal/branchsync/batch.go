package branchsync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/event"
	"github.com/simplesurance/prsync/internal/logfields"
)

// BatchDriver runs a Syncer sequentially for multiple candidates.
type BatchDriver struct {
	syncer   Syncer
	branches *Branches
	interval time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	metrics  *Metrics
	logger   *zap.Logger
}

func NewBatchDriver(syncer Syncer, branches *Branches, interval time.Duration, metrics *Metrics) *BatchDriver {
	return &BatchDriver{
		syncer:   syncer,
		branches: branches,
		interval: interval,
		sleep:    sleepCtx,
		metrics:  metrics,
		logger:   zap.L().Named(loggerName).Named("batch"),
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Run processes all candidates sequentially.
// A failure while processing one candidate is recorded as a failed result,
// the remaining candidates are still processed.
// If candidates fail, the returned error is ErrFailedProcess or
// ErrFailedProcesses and the returned report is not nil.
// If ctx is canceled while pausing between candidates, the iteration stops
// and the report of the already processed candidates is returned together
// with the context error.
// Other errors are returned when retrieving candidates fails.
func (d *BatchDriver) Run(ctx context.Context, rc *RunContext, candidates CandidateIterator, isCloseScan bool) (*Report, error) {
	startTime := time.Now()

	kind := event.KindSchedule
	if isCloseScan {
		kind = event.KindPullRequestClosed
	}

	logger := d.logger.With(zap.Bool("close_scan", isCloseScan))
	logger.Info("batch run started", logfields.Event("batch_started"))

	var results []*ProcessResult
	var stopErr error
	processed := map[string]struct{}{}

	for i := 0; ; i++ {
		target, err := candidates.Next()
		if err != nil {
			return nil, err
		}

		if target == nil {
			break
		}

		if i > 0 {
			if err := d.sleep(ctx, d.interval); err != nil {
				stopErr = err
				break
			}
		}

		res, dedupName := d.processCandidate(ctx, rc, target, kind, processed)
		if dedupName != "" {
			processed[dedupName] = struct{}{}
		}

		d.metrics.recordResult(res)
		results = append(results, res)
	}

	report := NewReport(results)
	duration := time.Since(startTime)
	d.metrics.batchFinished(duration)

	logger.Info("batch run finished",
		logfields.Event("batch_finished"),
		logfields.Outcome(string(report.Outcome)),
		zap.Duration("duration", duration),
		zap.Int("branches.total", report.Total),
		zap.Int("branches.succeeded", report.Succeeded),
		zap.Int("branches.failed", report.Failed),
		zap.Int("branches.skipped", report.Skipped),
		zap.Error(stopErr),
	)

	if stopErr != nil {
		return report, stopErr
	}

	return report, report.Err()
}

// processCandidate processes a single candidate and returns its result.
// When the candidate was processed successfully the name under which it is
// recorded as processed is returned.
func (d *BatchDriver) processCandidate(
	ctx context.Context,
	rc *RunContext,
	target *BranchTarget,
	kind event.Kind,
	processed map[string]struct{},
) (*ProcessResult, string) {
	logger := d.logger.With(target.LogFields()...)

	if d.branches.IsFork(target) {
		logger.Debug("skipping pull request from fork", logEventBranchSkipped, logfields.Reason("fork"))
		return skipped(target, detailFromFork), ""
	}

	dedupName, err := d.branches.DedupName(ctx, target)
	if err != nil {
		logger.Warn("resolving target branch name failed", logEventBranchFailed, zap.Error(err))
		return failed(target, err.Error()), ""
	}

	if dedupName != "" {
		if _, exists := processed[dedupName]; exists {
			logger.Info("skipping branch, target branch was already processed",
				logEventBranchSkipped,
				logfields.Reason("duplicated"),
				logfields.TargetBranch(dedupName),
			)
			return skipped(target, fmt.Sprintf(detailDuplicatedFmt, dedupName)), ""
		}
	}

	res, err := d.synchronize(ctx, rc, target, kind)
	if err != nil {
		logger.Warn("processing branch failed", logEventBranchFailed, zap.Error(err))
		return failed(target, err.Error()), ""
	}

	logger.Info("branch processed",
		logEventBranchProcessed,
		logfields.Outcome(string(res.Outcome)),
		zap.String("detail", res.Detail),
	)

	return res, dedupName
}

// synchronize runs the Syncer and converts panics to errors.
func (d *BatchDriver) synchronize(ctx context.Context, rc *RunContext, target *BranchTarget, kind event.Kind) (res *ProcessResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	res, err = d.syncer.Synchronize(ctx, rc, target, kind, true)
	if err != nil {
		return nil, err
	}

	if res == nil {
		return nil, fmt.Errorf("processing %s returned no result", target.Label())
	}

	return res, nil
}
