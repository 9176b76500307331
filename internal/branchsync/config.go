package branchsync

import (
	"time"
)

// Config configures the synchronization of branches.
type Config struct {
	RepositoryOwner string
	Repository      string

	// BranchPrefix is the prefix of branches created by prsync.
	BranchPrefix string

	TargetBranchPrefixes []string
	IncludeLabels        []string
	ExcludeLabels        []string
	// TargetFilter is optional.
	TargetFilter TargetMatcher

	CheckDefaultBranch bool
	// NotCreatePR enables committing the changes directly to the
	// processed branch instead of creating pull requests.
	NotCreatePR bool

	// AutoMergeThresholdDays is the minimum age in days of a pull
	// request before it is merged automatically, 0 disables auto-merge.
	AutoMergeThresholdDays int
	MergeMethod            string

	PRLabels    []string
	PRReviewers []string

	// Interval is the pause between processing 2 branches in a batch
	// run.
	Interval time.Duration
}
