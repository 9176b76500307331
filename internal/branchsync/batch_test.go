package branchsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prsync/internal/event"
)

type syncFunc func(target *BranchTarget) (*ProcessResult, error)

// fakeSyncer records the targets it was called for.
type fakeSyncer struct {
	fn    syncFunc
	calls []*BranchTarget
	kinds []event.Kind
}

func (s *fakeSyncer) Synchronize(_ context.Context, _ *RunContext, target *BranchTarget, kind event.Kind, isBatch bool) (*ProcessResult, error) {
	if !isBatch {
		return nil, errors.New("called with isBatch=false")
	}

	s.calls = append(s.calls, target)
	s.kinds = append(s.kinds, kind)

	return s.fn(target)
}

func newTestBatchDriver(t *testing.T, fn syncFunc) (*BatchDriver, *fakeSyncer) {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	syncer := fakeSyncer{fn: fn}
	driver := NewBatchDriver(&syncer, NewBranches(newTestConfig(), newTestRenderer(t)), time.Second, NewMetrics())
	driver.sleep = func(context.Context, time.Duration) error { return nil }

	return driver, &syncer
}

func succeedAll(target *BranchTarget) (*ProcessResult, error) {
	return succeeded(target, detailUpdated), nil
}

func TestBatchDedupsTargetBranches(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, succeedAll)

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "feature", Base: "main", PRNumber: 1},
		&BranchTarget{Branch: "feature", Base: "develop", PRNumber: 2},
		&BranchTarget{Branch: "other", Base: "main", PRNumber: 3},
	)

	report, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.NoError(t, err)

	require.Len(t, syncer.calls, 2)
	assert.Equal(t, 1, syncer.calls[0].PRNumber)
	assert.Equal(t, 3, syncer.calls[1].PRNumber)

	require.Len(t, report.Results, 3)
	assert.Equal(t, OutcomeSkipped, report.Results[1].Outcome)
	assert.Equal(t, "duplicated (prsync/feature)", report.Results[1].Detail)
	assert.Equal(t, OutcomeSucceeded, report.Outcome)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Skipped)
}

func TestBatchFailedTargetIsNotMarkedProcessed(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, func(target *BranchTarget) (*ProcessResult, error) {
		if target.PRNumber == 1 {
			return nil, errors.New("push failed")
		}

		return succeeded(target, detailUpdated), nil
	})

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "feature", PRNumber: 1},
		&BranchTarget{Branch: "feature", PRNumber: 2},
	)

	report, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.ErrorIs(t, err, ErrFailedProcess)
	require.NotNil(t, report)

	assert.Len(t, syncer.calls, 2)
	assert.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	assert.Equal(t, "push failed", report.Results[0].Detail)
	assert.Equal(t, OutcomeSucceeded, report.Results[1].Outcome)
	assert.Equal(t, OutcomeFailed, report.Outcome)
}

func TestBatchMultipleFailures(t *testing.T) {
	driver, _ := newTestBatchDriver(t, func(target *BranchTarget) (*ProcessResult, error) {
		return nil, errors.New("command failed")
	})

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "a", PRNumber: 1},
		&BranchTarget{Branch: "b", PRNumber: 2},
		&BranchTarget{Branch: "c", PRNumber: 3},
	)

	report, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.ErrorIs(t, err, ErrFailedProcesses)
	assert.Equal(t, 3, report.Failed)
	assert.Equal(t, float64(3), testutil.ToFloat64(driver.metrics.processed.WithLabelValues(string(OutcomeFailed))))
}

func TestBatchRecoversPanics(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, func(target *BranchTarget) (*ProcessResult, error) {
		if target.Branch == "a" {
			panic("boom")
		}

		return succeeded(target, detailUpdated), nil
	})

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "a", PRNumber: 1},
		&BranchTarget{Branch: "b", PRNumber: 2},
	)

	report, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.ErrorIs(t, err, ErrFailedProcess)
	assert.Len(t, syncer.calls, 2)
	assert.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	assert.Equal(t, "panic: boom", report.Results[0].Detail)
	assert.Equal(t, OutcomeSucceeded, report.Results[1].Outcome)
}

func TestBatchSkipsForksWithoutCallingSyncer(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, succeedAll)

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "feature", PRNumber: 1, HeadOwner: "forker"},
		&BranchTarget{Branch: "feature", PRNumber: 2},
	)

	report, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.NoError(t, err)

	require.Len(t, syncer.calls, 1)
	assert.Equal(t, 2, syncer.calls[0].PRNumber)
	assert.Equal(t, OutcomeSkipped, report.Results[0].Outcome)
	assert.Equal(t, detailFromFork, report.Results[0].Detail)
	assert.Equal(t, OutcomeSucceeded, report.Results[1].Outcome)
}

func TestBatchNotTargetIsNotDeduplicated(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, func(target *BranchTarget) (*ProcessResult, error) {
		return skipped(target, detailNotTarget), nil
	})
	driver.branches.cfg.TargetBranchPrefixes = []string{"release/"}

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "feature", PRNumber: 1},
		&BranchTarget{Branch: "feature", PRNumber: 2},
	)

	report, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.NoError(t, err)
	assert.Len(t, syncer.calls, 2)
	assert.Equal(t, OutcomeSkipped, report.Outcome)
}

func TestBatchCloseScanPassesCloseKind(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, succeedAll)

	_, err := driver.Run(context.Background(), NewRunContext(), NewSliceIterator(&BranchTarget{Branch: "a"}), true)
	require.NoError(t, err)

	require.Len(t, syncer.kinds, 1)
	assert.Equal(t, event.KindPullRequestClosed, syncer.kinds[0])
}

func TestBatchPausesBetweenCandidates(t *testing.T) {
	driver, _ := newTestBatchDriver(t, succeedAll)

	var sleeps []time.Duration
	driver.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "a"},
		&BranchTarget{Branch: "b"},
		&BranchTarget{Branch: "c"},
	)

	_, err := driver.Run(context.Background(), NewRunContext(), candidates, false)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Second, time.Second}, sleeps)
}

func TestBatchCanceledWhilePausing(t *testing.T) {
	driver, syncer := newTestBatchDriver(t, succeedAll)
	driver.sleep = sleepCtx

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates := NewSliceIterator(
		&BranchTarget{Branch: "a"},
		&BranchTarget{Branch: "b"},
	)

	report, err := driver.Run(ctx, NewRunContext(), candidates, false)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, syncer.calls, 1)

	require.NotNil(t, report)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "a", report.Results[0].BranchLabel)
	assert.Equal(t, OutcomeSucceeded, report.Results[0].Outcome)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Succeeded)
}

func TestBatchWithoutCandidates(t *testing.T) {
	driver, _ := newTestBatchDriver(t, succeedAll)

	report, err := driver.Run(context.Background(), NewRunContext(), NewSliceIterator(), false)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, report.Outcome)
	assert.Equal(t, 0, report.Total)
}
