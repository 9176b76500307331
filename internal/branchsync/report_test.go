package branchsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReport(t *testing.T) {
	target := &BranchTarget{Branch: "feature"}

	testcases := []struct {
		name      string
		results   []*ProcessResult
		outcome   Outcome
		succeeded int
		failed    int
		skipped   int
		err       error
	}{
		{
			name:    "empty",
			outcome: OutcomeSkipped,
		},
		{
			name:      "not_changed_only",
			results:   []*ProcessResult{notChanged(target, detailNoDiff), notChanged(target, detailNoDiff)},
			outcome:   OutcomeNotChanged,
			succeeded: 2,
		},
		{
			name:      "skipped_dominates_not_changed",
			results:   []*ProcessResult{notChanged(target, detailNoDiff), skipped(target, detailFromFork)},
			outcome:   OutcomeSkipped,
			succeeded: 1,
			skipped:   1,
		},
		{
			name:      "succeeded_dominates_skipped",
			results:   []*ProcessResult{skipped(target, detailFromFork), succeeded(target, detailUpdated)},
			outcome:   OutcomeSucceeded,
			succeeded: 1,
			skipped:   1,
		},
		{
			name:      "one_failed",
			results:   []*ProcessResult{succeeded(target, detailUpdated), failed(target, "")},
			outcome:   OutcomeFailed,
			succeeded: 1,
			failed:    1,
			err:       ErrFailedProcess,
		},
		{
			name:    "multiple_failed",
			results: []*ProcessResult{failed(target, "a"), failed(target, "b")},
			outcome: OutcomeFailed,
			failed:  2,
			err:     ErrFailedProcesses,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			report := NewReport(tc.results)

			assert.Equal(t, tc.outcome, report.Outcome)
			assert.Equal(t, len(tc.results), report.Total)
			assert.Equal(t, tc.succeeded, report.Succeeded)
			assert.Equal(t, tc.failed, report.Failed)
			assert.Equal(t, tc.skipped, report.Skipped)
			assert.Equal(t, tc.err, report.Err())
		})
	}
}

func TestFailedResultHasDetail(t *testing.T) {
	res := failed(&BranchTarget{Branch: "feature", PRNumber: 3}, "")
	assert.Equal(t, "unknown error", res.Detail)
	assert.Equal(t, "#3 (feature): unknown error (failed)", res.String())
}
