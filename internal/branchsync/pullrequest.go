package branchsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/logfields"
)

func (s *Synchronizer) findPullRequest(ctx context.Context, head, base string) (*githubclt.PullRequest, error) {
	var pr *githubclt.PullRequest

	err := s.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		pr, err = s.gh.FindPullRequest(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, head, base)
		return err
	}, []zap.Field{logfields.Branch(head)})
	if err != nil {
		return nil, err
	}

	return pr, nil
}

// pullRequest returns the open pull request of the work branch, nil if none
// exists.
func (s *Synchronizer) pullRequest(ctx context.Context, bs *branchState) (*githubclt.PullRequest, error) {
	if bs.prLoaded {
		return bs.pr, nil
	}

	pr, err := s.findPullRequest(ctx, bs.workBranch, bs.base)
	if err != nil {
		return nil, err
	}

	bs.setPullRequest(pr)

	return pr, nil
}

// isMergeable returns the mergeable state of the pull request of the work
// branch.
func (s *Synchronizer) isMergeable(ctx context.Context, bs *branchState) (*bool, error) {
	if bs.mergeableLoaded {
		return bs.mergeable, nil
	}

	var mergeable *bool
	err := s.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		mergeable, err = s.gh.IsMergeable(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, bs.pr.Number)
		return err
	}, []zap.Field{logfields.PullRequest(bs.pr.Number)})
	if err != nil {
		return nil, err
	}

	bs.mergeableLoaded = true
	bs.mergeable = mergeable

	return mergeable, nil
}

func (s *Synchronizer) createPullRequest(ctx context.Context, bs *branchState) error {
	data := bs.templateData(s.repository())

	title, err := s.renderer.PRTitle(data)
	if err != nil {
		return err
	}

	body, err := s.renderer.PRBody(data)
	if err != nil {
		return err
	}

	var pr *githubclt.PullRequest
	err = s.retryer.Run(ctx, func(ctx context.Context) error {
		var err error
		pr, err = s.gh.CreatePullRequest(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, &githubclt.NewPullRequestOptions{
			Head:  bs.workBranch,
			Base:  bs.base,
			Title: title,
			Body:  body,
		})
		return err
	}, []zap.Field{logfields.Branch(bs.workBranch)})
	if err != nil {
		return err
	}

	// the pull request exists from now on, failures of the following
	// operations must not cause it to be created again
	bs.setPullRequest(pr)

	bs.logger.Info("pull request created",
		logEventPRCreated,
		logfields.PullRequest(pr.Number),
	)

	logF := []zap.Field{logfields.PullRequest(pr.Number)}

	if len(s.cfg.PRLabels) > 0 {
		err := s.retryer.Run(ctx, func(ctx context.Context) error {
			return s.gh.AddLabels(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, pr.Number, s.cfg.PRLabels)
		}, logF)
		if err != nil {
			return err
		}
	}

	if len(s.cfg.PRReviewers) > 0 {
		err := s.retryer.Run(ctx, func(ctx context.Context) error {
			return s.gh.RequestReviewers(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, pr.Number, s.cfg.PRReviewers)
		}, logF)
		if err != nil {
			return err
		}
	}

	return nil
}

// updatePullRequest updates title and body of the pull request of the work
// branch and posts a comment when a comment template is configured.
func (s *Synchronizer) updatePullRequest(ctx context.Context, bs *branchState) error {
	data := bs.templateData(s.repository())

	title, err := s.renderer.PRTitle(data)
	if err != nil {
		return err
	}

	body, err := s.renderer.PRBody(data)
	if err != nil {
		return err
	}

	comment, err := s.renderer.CommentBody(data)
	if err != nil {
		return err
	}

	number := bs.pr.Number
	logF := []zap.Field{logfields.PullRequest(number)}

	err = s.retryer.Run(ctx, func(ctx context.Context) error {
		return s.gh.UpdatePullRequest(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, number, title, body)
	}, logF)
	if err != nil {
		return err
	}

	if comment != "" {
		err = s.retryer.Run(ctx, func(ctx context.Context) error {
			return s.gh.CreateIssueComment(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, number, comment)
		}, logF)
		if err != nil {
			return err
		}
	}

	bs.logger.Info("pull request updated",
		logEventPRUpdated,
		logfields.PullRequest(number),
	)

	return nil
}

// closePullRequest posts the close message, closes the pull request of the
// work branch and deletes the work branch.
func (s *Synchronizer) closePullRequest(ctx context.Context, bs *branchState, reason string) error {
	number := bs.pr.Number
	logF := []zap.Field{logfields.PullRequest(number)}

	msg, err := s.renderer.CloseMessage(bs.templateData(s.repository()))
	if err != nil {
		return err
	}

	if msg != "" {
		err := s.retryer.Run(ctx, func(ctx context.Context) error {
			return s.gh.CreateIssueComment(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, number, msg)
		}, logF)
		if err != nil {
			return err
		}
	}

	err = s.retryer.Run(ctx, func(ctx context.Context) error {
		return s.gh.ClosePullRequest(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, number)
	}, logF)
	if err != nil {
		return err
	}

	err = s.retryer.Run(ctx, func(ctx context.Context) error {
		return s.gh.DeleteBranch(ctx, s.cfg.RepositoryOwner, s.cfg.Repository, bs.workBranch)
	}, logF)
	if err != nil {
		return err
	}

	bs.logger.Info("pull request closed and branch deleted",
		logEventPRClosed,
		logfields.PullRequest(number),
		logfields.Reason(reason),
	)

	bs.setPullRequest(nil)

	return nil
}
