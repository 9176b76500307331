package branchsync

import (
	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
)

var (
	logEventBranchSkipped    = logfields.Event("branch_skipped")
	logEventBranchProcessed  = logfields.Event("branch_processed")
	logEventBranchFailed     = logfields.Event("branch_processing_failed")
	logEventPRCreated        = logfields.Event("pull_request_created")
	logEventPRUpdated        = logfields.Event("pull_request_updated")
	logEventPRClosed         = logfields.Event("pull_request_closed")
	logEventConflictDetected = logfields.Event("merge_conflict_detected")
	logEventAutoMerged       = logfields.Event("pull_request_auto_merged")
	logEventAutoMergeSkipped = logfields.Event("auto_merge_skipped")
)

func logFieldWorkBranch(val string) zap.Field {
	return zap.String("git.work_branch", val)
}
