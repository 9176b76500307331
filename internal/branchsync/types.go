package branchsync

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
)

// Outcome is the result of processing a branch.
type Outcome string

const (
	OutcomeSucceeded  Outcome = "succeeded"
	OutcomeFailed     Outcome = "failed"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeNotChanged Outcome = "not-changed"
)

// precedence returns the significance of the outcome when outcomes of
// multiple branches are aggregated, the most significant outcome wins.
func (o Outcome) precedence() int {
	switch o {
	case OutcomeNotChanged:
		return 1
	case OutcomeSkipped:
		return 2
	case OutcomeSucceeded:
		return 3
	case OutcomeFailed:
		return 4
	default:
		return 0
	}
}

// ProcessResult is the result of processing one branch.
type ProcessResult struct {
	Outcome     Outcome
	Detail      string
	BranchLabel string
}

func (r *ProcessResult) String() string {
	return fmt.Sprintf("%s: %s (%s)", r.BranchLabel, r.Detail, r.Outcome)
}

// BranchTarget identifies a branch that is processed.
type BranchTarget struct {
	// Branch is the name of the branch, for pull requests the head
	// branch.
	Branch string
	// Base is the base branch of the pull request, empty if the target
	// is not a pull request.
	Base string
	// PRNumber is 0 if the target is not a pull request.
	PRNumber int
	// HeadOwner is the login of the owner of the repository that
	// contains Branch, empty if it is the processed repository.
	HeadOwner string
	IsDefault bool
	Labels    []string
	CreatedAt time.Time
	// JSON is the github JSON representation of the pull request.
	JSON []byte
}

// Label returns a short human readable identifier of the target.
func (t *BranchTarget) Label() string {
	if t.PRNumber != 0 {
		return fmt.Sprintf("#%d (%s)", t.PRNumber, t.Branch)
	}

	return t.Branch
}

func (t *BranchTarget) LogFields() []zap.Field {
	result := []zap.Field{logfields.Branch(t.Branch)}

	if t.Base != "" {
		result = append(result, logfields.BaseBranch(t.Base))
	}

	if t.PRNumber != 0 {
		result = append(result, logfields.PullRequest(t.PRNumber))
	}

	if t.IsDefault {
		result = append(result, zap.Bool("git.default_branch", true))
	}

	return result
}

func succeeded(target *BranchTarget, detail string) *ProcessResult {
	return &ProcessResult{Outcome: OutcomeSucceeded, Detail: detail, BranchLabel: target.Label()}
}

func notChanged(target *BranchTarget, detail string) *ProcessResult {
	return &ProcessResult{Outcome: OutcomeNotChanged, Detail: detail, BranchLabel: target.Label()}
}

func skipped(target *BranchTarget, detail string) *ProcessResult {
	return &ProcessResult{Outcome: OutcomeSkipped, Detail: detail, BranchLabel: target.Label()}
}

func failed(target *BranchTarget, detail string) *ProcessResult {
	if detail == "" {
		detail = "unknown error"
	}

	return &ProcessResult{Outcome: OutcomeFailed, Detail: detail, BranchLabel: target.Label()}
}

// Result details.
const (
	detailFromFork            = "PR from fork"
	detailDefaultBranch       = "This is default branch"
	detailNotTarget           = "This is not a target branch"
	detailNoDiff              = "There is no diff"
	detailNoRefDiff           = "There is no reference diff"
	detailCloseEvent          = "This is a close event"
	detailPRCreated           = "PullRequest created"
	detailUpdated             = "updated"
	detailClosedNoRefDiff     = "has been closed because there is no reference diff"
	detailClosedNoDiff        = "has been closed because there is no diff"
	detailClosedBaseMissing   = "has been closed because base PullRequest does not exist/has been closed"
	detailAutoMerged          = "has been auto merged"
	detailNoActionPullRequest = "There is no PullRequest for this action branch"
	detailDuplicatedFmt       = "duplicated (%s)"
)
