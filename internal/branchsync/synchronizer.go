package branchsync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/event"
	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/logfields"
	"github.com/simplesurance/prsync/internal/pipeline"
	"github.com/simplesurance/prsync/internal/tmpl"
)

const loggerName = "branchsync"

// Synchronizer synchronizes single branches.
type Synchronizer struct {
	cfg      *Config
	branches *Branches
	workDir  string

	git      GitRunner
	producer ChangeProducer
	gh       GithubClient
	renderer Renderer
	retryer  Retryer
	metrics  *Metrics

	now    func() time.Time
	logger *zap.Logger
}

func NewSynchronizer(
	cfg *Config,
	workDir string,
	git GitRunner,
	producer ChangeProducer,
	gh GithubClient,
	renderer Renderer,
	retryer Retryer,
	metrics *Metrics,
) *Synchronizer {
	return &Synchronizer{
		cfg:      cfg,
		branches: NewBranches(cfg, renderer),
		workDir:  workDir,
		git:      git,
		producer: producer,
		gh:       gh,
		renderer: renderer,
		retryer:  retryer,
		metrics:  metrics,
		now:      time.Now,
		logger:   zap.L().Named(loggerName),
	}
}

// branchState is the state of the processing of one branch.
// Values retrieved from github are cached for the duration of the processing.
type branchState struct {
	target *BranchTarget
	logger *zap.Logger

	// workBranch is the branch that changes are pushed to.
	workBranch string
	// base is the branch the pull request of workBranch is merged into.
	base         string
	basePRNumber int

	prLoaded bool
	pr       *githubclt.PullRequest

	mergeableLoaded bool
	mergeable       *bool

	changes *pipeline.ChangeSet
}

func (bs *branchState) templateData(repository string) *tmpl.Data {
	data := tmpl.Data{
		Branch:       bs.target.Branch,
		Base:         bs.base,
		BasePRNumber: bs.basePRNumber,
		WorkBranch:   bs.workBranch,
		Repository:   repository,
	}

	if bs.changes != nil {
		data.Files = bs.changes.Files
		data.Outputs = bs.changes.Outputs
	}

	return &data
}

func (bs *branchState) setPullRequest(pr *githubclt.PullRequest) {
	bs.prLoaded = true
	bs.pr = pr
	bs.mergeableLoaded = false
	bs.mergeable = nil
}

// Synchronize runs the commands for the branch of target and decides how the
// resulting changes are applied.
// Errors are not converted to results, they are returned.
func (s *Synchronizer) Synchronize(ctx context.Context, rc *RunContext, target *BranchTarget, kind event.Kind, isBatch bool) (*ProcessResult, error) {
	logger := s.logger.With(target.LogFields()...)
	logger = logger.With(zap.String("event_kind", string(kind)), zap.Bool("batch", isBatch))

	if s.branches.IsFork(target) {
		logger.Debug("skipping branch, pull request is from a fork",
			logEventBranchSkipped,
			logfields.Reason("fork"),
		)
		return skipped(target, detailFromFork), nil
	}

	isDefault := target.IsDefault
	if !isDefault {
		defaultBranch, err := rc.DefaultBranch(ctx, s.gh, s.retryer, s.cfg.RepositoryOwner, s.cfg.Repository)
		if err != nil {
			return nil, err
		}

		isDefault = target.Branch == defaultBranch
	}

	if isDefault && !s.cfg.CheckDefaultBranch {
		logger.Debug("skipping default branch", logEventBranchSkipped, logfields.Reason("default_branch"))
		return skipped(target, detailDefaultBranch), nil
	}

	actionOwned := s.branches.IsActionOwned(target.Branch)

	if isBatch && !isDefault && !actionOwned {
		isTarget, err := s.branches.IsTarget(ctx, target)
		if err != nil {
			return nil, err
		}

		if !isTarget {
			logger.Debug("skipping branch, not a target branch", logEventBranchSkipped, logfields.Reason("not_target"))
			return skipped(target, detailNotTarget), nil
		}
	}

	bs := branchState{
		target: target,
		logger: logger,
	}

	if actionOwned {
		return s.syncActionBranch(ctx, rc, &bs, kind, isBatch)
	}

	if s.cfg.NotCreatePR {
		return s.syncDirect(ctx, &bs, kind)
	}

	return s.syncWithPullRequest(ctx, &bs, kind, isBatch)
}

// syncWithPullRequest commits the changes to the work branch and creates or
// updates the pull request for the work branch into the target branch.
func (s *Synchronizer) syncWithPullRequest(ctx context.Context, bs *branchState, kind event.Kind, isBatch bool) (*ProcessResult, error) {
	target := bs.target

	workBranch, err := s.branches.WorkBranch(target)
	if err != nil {
		return nil, err
	}

	bs.workBranch = workBranch
	bs.base = target.Branch
	bs.basePRNumber = target.PRNumber
	bs.logger = bs.logger.With(logFieldWorkBranch(workBranch))

	if _, err := s.git.MaterializeBranch(ctx, workBranch, target.Branch); err != nil {
		return nil, err
	}

	cs, err := s.produce(ctx, bs)
	if err != nil {
		return nil, err
	}

	pr, err := s.pullRequest(ctx, bs)
	if err != nil {
		return nil, err
	}

	if cs.Empty() {
		refDiff, err := s.git.DiffAgainst(ctx, target.Branch)
		if err != nil {
			return nil, err
		}

		if len(refDiff) == 0 {
			if pr != nil {
				if err := s.closePullRequest(ctx, bs, "no_reference_diff"); err != nil {
					return nil, err
				}

				return succeeded(target, detailClosedNoRefDiff), nil
			}

			return notChanged(target, detailNoDiff), nil
		}

		if kind == event.KindPullRequestClosed {
			return notChanged(target, detailCloseEvent), nil
		}

		if pr == nil {
			if err := s.createPullRequest(ctx, bs); err != nil {
				return nil, err
			}

			return succeeded(target, detailPRCreated), nil
		}

		mergeable, err := s.isMergeable(ctx, bs)
		if err != nil {
			return nil, err
		}

		if mergeable == nil || *mergeable {
			if isBatch {
				merged, err := s.autoMerge(ctx, bs)
				if err != nil {
					return nil, err
				}

				if merged {
					return succeeded(target, detailAutoMerged), nil
				}
			}

			return notChanged(target, detailNoDiff), nil
		}

		detail, err := s.resolveConflicts(ctx, bs)
		if err != nil {
			return nil, err
		}

		return succeeded(target, detail), nil
	}

	if err := s.commit(ctx, bs); err != nil {
		return nil, err
	}

	refDiff, err := s.git.DiffAgainst(ctx, target.Branch)
	if err != nil {
		return nil, err
	}

	if len(refDiff) == 0 {
		if pr != nil {
			if err := s.closePullRequest(ctx, bs, "no_reference_diff"); err != nil {
				return nil, err
			}

			return succeeded(target, detailClosedNoRefDiff), nil
		}

		return notChanged(target, detailNoRefDiff), nil
	}

	if kind == event.KindPullRequestClosed {
		return notChanged(target, detailCloseEvent), nil
	}

	if err := s.git.Push(ctx, workBranch); err != nil {
		return nil, err
	}

	if pr == nil {
		if err := s.createPullRequest(ctx, bs); err != nil {
			return nil, err
		}

		return succeeded(target, detailPRCreated), nil
	}

	if err := s.updatePullRequest(ctx, bs); err != nil {
		return nil, err
	}

	// the push changed the pull request, the mergeable state is recomputed
	bs.mergeableLoaded = false

	mergeable, err := s.isMergeable(ctx, bs)
	if err != nil {
		return nil, err
	}

	if mergeable != nil && !*mergeable {
		detail, err := s.resolveConflicts(ctx, bs)
		if err != nil {
			return nil, err
		}

		return succeeded(target, detail), nil
	}

	return succeeded(target, detailUpdated), nil
}

// syncActionBranch recreates a branch that was created by prsync from its
// base branch.
// If the pull request of the base branch does not exist anymore, the pull
// request of the action branch is closed.
func (s *Synchronizer) syncActionBranch(ctx context.Context, rc *RunContext, bs *branchState, kind event.Kind, isBatch bool) (*ProcessResult, error) {
	target := bs.target
	bs.workBranch = target.Branch

	if target.PRNumber == 0 {
		pr, err := s.findPullRequest(ctx, target.Branch, "")
		if err != nil {
			return nil, err
		}

		if pr == nil {
			bs.logger.Debug("skipping action branch without pull request",
				logEventBranchSkipped,
				logfields.Reason("no_pull_request"),
			)
			return skipped(target, detailNoActionPullRequest), nil
		}

		bs.setPullRequest(pr)
	} else {
		bs.setPullRequest(&githubclt.PullRequest{
			Number:    target.PRNumber,
			State:     "open",
			HeadRef:   target.Branch,
			HeadOwner: target.HeadOwner,
			BaseRef:   target.Base,
			CreatedAt: target.CreatedAt,
			Labels:    target.Labels,
		})
	}

	bs.base = bs.pr.BaseRef

	baseExists, err := s.resolveBasePullRequest(ctx, rc, bs)
	if err != nil {
		return nil, err
	}

	if !baseExists {
		if err := s.closePullRequest(ctx, bs, "base_pull_request_missing"); err != nil {
			return nil, err
		}

		return succeeded(target, detailClosedBaseMissing), nil
	}

	if _, err := s.git.MaterializeBranch(ctx, bs.workBranch, bs.base); err != nil {
		return nil, err
	}

	if err := s.git.ResetBranch(ctx, bs.workBranch, bs.base); err != nil {
		return nil, err
	}

	cs, err := s.produce(ctx, bs)
	if err != nil {
		return nil, err
	}

	if cs.Empty() {
		if isBatch {
			if err := s.closePullRequest(ctx, bs, "no_reference_diff"); err != nil {
				return nil, err
			}

			return succeeded(target, detailClosedNoRefDiff), nil
		}

		return notChanged(target, detailNoDiff), nil
	}

	if err := s.commit(ctx, bs); err != nil {
		return nil, err
	}

	if isBatch {
		refDiff, err := s.git.DiffAgainst(ctx, bs.base)
		if err != nil {
			return nil, err
		}

		if len(refDiff) == 0 {
			if err := s.closePullRequest(ctx, bs, "no_reference_diff"); err != nil {
				return nil, err
			}

			return succeeded(target, detailClosedNoRefDiff), nil
		}
	}

	remoteExists, err := s.git.RemoteBranchExists(ctx, bs.workBranch)
	if err != nil {
		return nil, err
	}

	if remoteExists {
		diff, err := s.git.DiffAgainst(ctx, bs.workBranch)
		if err != nil {
			return nil, err
		}

		if len(diff) == 0 {
			return notChanged(target, detailNoDiff), nil
		}
	}

	if kind == event.KindPullRequestClosed {
		return notChanged(target, detailCloseEvent), nil
	}

	if err := s.git.ForcePush(ctx, bs.workBranch); err != nil {
		return nil, err
	}

	if err := s.updatePullRequest(ctx, bs); err != nil {
		return nil, err
	}

	return succeeded(target, detailUpdated), nil
}

// resolveBasePullRequest returns true if the base branch of the action
// branch is the default branch or has an open pull request.
func (s *Synchronizer) resolveBasePullRequest(ctx context.Context, rc *RunContext, bs *branchState) (bool, error) {
	defaultBranch, err := rc.DefaultBranch(ctx, s.gh, s.retryer, s.cfg.RepositoryOwner, s.cfg.Repository)
	if err != nil {
		return false, err
	}

	if bs.base == defaultBranch {
		return true, nil
	}

	basePR, err := s.findPullRequest(ctx, bs.base, "")
	if err != nil {
		return false, fmt.Errorf("retrieving pull request of base branch failed: %w", err)
	}

	if basePR == nil || !basePR.IsOpen() {
		bs.logger.Info("pull request of base branch does not exist",
			logfields.Event("base_pull_request_missing"),
		)
		return false, nil
	}

	bs.basePRNumber = basePR.Number

	return true, nil
}

// syncDirect commits the changes directly to the branch of the target.
func (s *Synchronizer) syncDirect(ctx context.Context, bs *branchState, kind event.Kind) (*ProcessResult, error) {
	target := bs.target
	bs.workBranch = target.Branch
	bs.base = target.Branch

	if _, err := s.git.MaterializeBranch(ctx, target.Branch, target.Branch); err != nil {
		return nil, err
	}

	cs, err := s.produce(ctx, bs)
	if err != nil {
		return nil, err
	}

	if cs.Empty() {
		return notChanged(target, detailNoDiff), nil
	}

	if err := s.commit(ctx, bs); err != nil {
		return nil, err
	}

	if kind == event.KindPullRequestClosed {
		return notChanged(target, detailCloseEvent), nil
	}

	if err := s.git.Push(ctx, target.Branch); err != nil {
		return nil, err
	}

	return succeeded(target, detailUpdated), nil
}

func (s *Synchronizer) produce(ctx context.Context, bs *branchState) (*pipeline.ChangeSet, error) {
	cs, err := s.producer.Produce(ctx, &pipeline.Env{
		Dir:        s.workDir,
		Branch:     bs.target.Branch,
		BaseBranch: bs.base,
	})
	if err != nil {
		return nil, err
	}

	bs.changes = cs

	bs.logger.Debug("commands executed",
		logfields.Event("changes_produced"),
		zap.Strings("changed_files", cs.Files),
	)

	return cs, nil
}

func (s *Synchronizer) commit(ctx context.Context, bs *branchState) error {
	msg, err := s.renderer.CommitMessage(bs.templateData(s.repository()))
	if err != nil {
		return err
	}

	return s.git.Commit(ctx, msg)
}

func (s *Synchronizer) repository() string {
	return s.cfg.RepositoryOwner + "/" + s.cfg.Repository
}
