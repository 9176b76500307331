package branchsync

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/logfields"
)

const day = 24 * time.Hour

// autoMerge merges the pull request of the work branch when it is older
// than the configured threshold, mergeable and all its checks succeeded.
// It returns true if the pull request was merged.
func (s *Synchronizer) autoMerge(ctx context.Context, bs *branchState) (bool, error) {
	threshold := s.cfg.AutoMergeThresholdDays
	if threshold <= 0 || bs.pr == nil {
		return false, nil
	}

	pr := bs.pr
	logger := bs.logger.With(logfields.PullRequest(pr.Number))
	logF := []zap.Field{logfields.PullRequest(pr.Number)}

	days := int(s.now().Sub(pr.CreatedAt) / day)
	if days <= threshold {
		logger.Debug("pull request is too young for auto-merge",
			logEventAutoMergeSkipped,
			logfields.Reason("age"),
			zap.Int("age_days", days),
			zap.Int("threshold_days", threshold),
		)
		return false, nil
	}

	mergeable, err := s.isMergeable(ctx, bs)
	if err != nil {
		return false, err
	}

	if mergeable == nil || !*mergeable {
		logger.Debug("pull request is not mergeable, skipping auto-merge",
			logEventAutoMergeSkipped,
			logfields.Reason("not_mergeable"),
		)
		return false, nil
	}

	ref := pr.HeadSHA
	if ref == "" {
		ref = bs.workBranch
	}

	passed, err := s.checksPassed(ctx, ref, logF)
	if err != nil {
		return false, err
	}

	if !passed {
		logger.Debug("checks did not pass, skipping auto-merge",
			logEventAutoMergeSkipped,
			logfields.Reason("checks_not_passed"),
		)
		return false, nil
	}

	err = s.retryer.Run(ctx, func(ctx context.Context) error {
		return s.gh.MergePullRequest(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, pr.Number, s.cfg.MergeMethod)
	}, logF)
	if err != nil {
		if errors.Is(err, githubclt.ErrNotMergeable) {
			logger.Warn("github rejected merging the pull request",
				logEventAutoMergeSkipped,
				logfields.Reason("merge_rejected"),
				zap.Error(err),
			)
			return false, nil
		}

		return false, err
	}

	s.metrics.autoMerged()

	logger.Info("pull request merged automatically",
		logEventAutoMerged,
		zap.Int("age_days", days),
	)

	return true, nil
}

// checksPassed returns true if the combined commit status of ref is success
// and every check suite is either queued or completed successfully.
func (s *Synchronizer) checksPassed(ctx context.Context, ref string, logF []zap.Field) (bool, error) {
	var state string
	err := s.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		state, err = s.gh.CombinedStatus(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, ref)
		return err
	}, logF)
	if err != nil {
		return false, err
	}

	if state != "success" {
		return false, nil
	}

	var suites []*githubclt.CheckSuite
	err = s.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		suites, err = s.gh.ListCheckSuites(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, ref)
		return err
	}, logF)
	if err != nil {
		return false, err
	}

	for _, suite := range suites {
		if suite.Status == "queued" {
			continue
		}

		if suite.Status == "completed" && suite.Conclusion == "success" {
			continue
		}

		return false, nil
	}

	return true, nil
}
