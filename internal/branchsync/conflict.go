package branchsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/logfields"
)

// resolveConflicts is run when the pull request of the work branch can not
// be merged cleanly into its base branch.
// The base branch is merged into the work branch. If that causes conflicts
// the work branch is recreated from the base branch and the commands are run
// again. If they do not produce changes anymore the pull request is closed.
// The mergeable state is not checked again afterwards.
func (s *Synchronizer) resolveConflicts(ctx context.Context, bs *branchState) (string, error) {
	logger := bs.logger

	logger.Info("pull request is not mergeable, merging base branch",
		logEventConflictDetected,
	)

	res, err := s.git.MergeNoEdit(ctx, bs.base)
	if err != nil {
		return "", err
	}

	if !res.Conflict {
		if err := s.git.Push(ctx, bs.workBranch); err != nil {
			return "", err
		}

		logger.Info("merged base branch into work branch",
			logfields.Event("conflict_resolved_by_merge"),
		)

		return detailUpdated, nil
	}

	logger.Info("merging base branch failed with conflicts, recreating branch from base",
		logfields.Event("merge_conflict_recreating_branch"),
		zap.String("git.merge_output", res.Output),
	)

	if err := s.git.AbortMerge(ctx); err != nil {
		return "", err
	}

	if err := s.git.ResetBranch(ctx, bs.workBranch, bs.base); err != nil {
		return "", err
	}

	cs, err := s.produce(ctx, bs)
	if err != nil {
		return "", err
	}

	if cs.Empty() {
		if bs.pr != nil {
			if err := s.closePullRequest(ctx, bs, "no_diff"); err != nil {
				return "", err
			}
		}

		return detailClosedNoDiff, nil
	}

	if err := s.commit(ctx, bs); err != nil {
		return "", err
	}

	if err := s.git.ForcePush(ctx, bs.workBranch); err != nil {
		return "", err
	}

	if bs.pr == nil {
		if err := s.createPullRequest(ctx, bs); err != nil {
			return "", err
		}

		return detailUpdated, nil
	}

	if err := s.updatePullRequest(ctx, bs); err != nil {
		return "", err
	}

	return detailUpdated, nil
}
