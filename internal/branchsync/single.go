package branchsync

import (
	"context"

	"github.com/simplesurance/prsync/internal/event"
	"github.com/simplesurance/prsync/internal/logfields"
)

// RunSingle synchronizes the branch of a push or pull request event.
// Errors are returned unmodified.
func (s *Synchronizer) RunSingle(ctx context.Context, rc *RunContext, ev *event.Event) (*ProcessResult, error) {
	target := BranchTarget{
		Branch:    ev.Branch,
		Base:      ev.BaseBranch,
		PRNumber:  ev.PullRequestNr,
		HeadOwner: ev.HeadOwner,
		Labels:    ev.Labels,
		JSON:      ev.PullRequestJSON,
	}

	res, err := s.Synchronize(ctx, rc, &target, ev.Kind, false)
	if err != nil {
		return nil, err
	}

	s.metrics.recordResult(res)

	s.logger.Info("branch processed",
		append(target.LogFields(),
			logEventBranchProcessed,
			logfields.Outcome(string(res.Outcome)),
			logfields.Reason(res.Detail),
		)...,
	)

	return res, nil
}
