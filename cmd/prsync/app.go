package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/thecodeteam/goodbye"
	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/branchsync"
	"github.com/simplesurance/prsync/internal/cfg"
	"github.com/simplesurance/prsync/internal/event"
	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/gitrepo"
	"github.com/simplesurance/prsync/internal/logfields"
	"github.com/simplesurance/prsync/internal/pipeline"
	"github.com/simplesurance/prsync/internal/prfilter"
	"github.com/simplesurance/prsync/internal/report"
	"github.com/simplesurance/prsync/internal/retry"
	"github.com/simplesurance/prsync/internal/tmpl"
)

func loadConfig(args *arguments) (*cfg.Config, error) {
	config, err := cfg.LoadFile(args.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("could not load configuration file %s: %w", args.ConfigFile, err)
	}

	if args.WorkDir != "" {
		config.WorkDir = args.WorkDir
	}

	if args.DryRun {
		config.DryRun = true
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", args.ConfigFile, err)
	}

	return config, nil
}

func newRenderer(config *cfg.Config) (*tmpl.Renderer, error) {
	return tmpl.New(&tmpl.Templates{
		BranchName:    config.BranchName,
		CommitMessage: config.CommitMessage,
		PRTitle:       config.PRTitle,
		PRBody:        config.PRBody,
		CommentBody:   config.PRCommentBody,
		CloseMessage:  config.PRCloseMessage,
	})
}

func newBranchsyncConfig(config *cfg.Config) (*branchsync.Config, error) {
	interval, err := config.PacingInterval()
	if err != nil {
		return nil, err
	}

	result := branchsync.Config{
		RepositoryOwner:        config.Repository.Owner,
		Repository:             config.Repository.RepositoryName,
		BranchPrefix:           config.BranchPrefix,
		TargetBranchPrefixes:   config.TargetBranchPrefixes,
		IncludeLabels:          config.IncludeLabels,
		ExcludeLabels:          config.ExcludeLabels,
		CheckDefaultBranch:     config.CheckDefaultBranch,
		NotCreatePR:            config.NotCreatePR,
		AutoMergeThresholdDays: config.AutoMergeThresholdDays,
		MergeMethod:            config.MergeMethod,
		PRLabels:               config.PRLabels,
		PRReviewers:            config.PRReviewers,
		Interval:               interval,
	}

	if config.TargetFilter != "" {
		filter, err := prfilter.New(config.TargetFilter)
		if err != nil {
			return nil, fmt.Errorf("parsing target_filter failed: %w", err)
		}

		result.TargetFilter = filter
	}

	return &result, nil
}

func newRepository(config *cfg.Config) *gitrepo.Repository {
	cloneURL := config.CloneURL
	if cloneURL == "" {
		cloneURL = gitrepo.GithubCloneURL(config.Repository.Owner, config.Repository.RepositoryName)
	}

	opts := []gitrepo.Opt{
		gitrepo.WithToken(config.GithubAPIToken),
		gitrepo.WithCommitter(config.GitUserName, config.GitUserEmail),
	}

	if config.DryRun {
		opts = append(opts, gitrepo.WithDryRun())
	}

	return gitrepo.New(config.WorkDir, cloneURL, opts...)
}

func logConfig(args *arguments, config *cfg.Config) {
	logger.Info(
		"loaded cfg file",
		logfields.Event("cfg_loaded"),
		zap.String("cfg_file", args.ConfigFile),
		zap.String("github_api_token", hide(config.GithubAPIToken)),
		zap.String("repository", config.Repository.String()),
		zap.String("work_dir", config.WorkDir),
		zap.Strings("commands", config.Commands),
		zap.String("branch_prefix", config.BranchPrefix),
		zap.Strings("target_branch_prefixes", config.TargetBranchPrefixes),
		zap.String("target_filter", config.TargetFilter),
		zap.Bool("check_default_branch", config.CheckDefaultBranch),
		zap.Bool("not_create_pr", config.NotCreatePR),
		zap.Int("auto_merge_threshold_days", config.AutoMergeThresholdDays),
		zap.String("interval", config.Interval),
		zap.Bool("dry_run", config.DryRun),
		zap.String("log_format", config.LogFormat),
		zap.String("log_level", config.LogLevel),
	)
}

// execute runs the synchronization. When forceBatch is true all open pull
// requests are processed independent of the triggering event.
func execute(ctx context.Context, args *arguments, out io.Writer, forceBatch bool) error {
	config, err := loadConfig(args)
	if err != nil {
		return err
	}

	if err := initLogger(config, args.Verbose); err != nil {
		return err
	}

	logConfig(args, config)

	ctx, cancelFn := context.WithCancel(ctx)
	defer cancelFn()

	goodbye.Register(func(_ context.Context, sig os.Signal) {
		if sig != nil {
			logger.Info(fmt.Sprintf("terminating, received signal %s", sig.String()))
		}
		cancelFn()
	})

	if err := os.MkdirAll(filepath.Dir(config.WorkDir), 0o755); err != nil {
		return fmt.Errorf("creating parent directory of work_dir failed: %w", err)
	}

	unlock, err := gitrepo.Lock(ctx, config.WorkDir, gitrepo.DefaultLockTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			logger.Warn("releasing work directory lock failed", zap.Error(err))
		}
	}()

	ev, err := triggeringEvent(forceBatch)
	if err != nil {
		return err
	}

	logger.Info("processing event", append(ev.LogFields(), logfields.Event("event_received"))...)

	retryer := retry.NewRetryer()
	goodbye.Register(func(context.Context, os.Signal) {
		retryer.Stop()
	})

	var gh branchsync.GithubClient = githubclt.New(config.GithubAPIToken)
	if config.DryRun {
		gh = branchsync.NewDryGithubClient(gh, logger)
	}

	repo := newRepository(config)
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("initializing git repository failed: %w", err)
	}

	renderer, err := newRenderer(config)
	if err != nil {
		return err
	}

	bcfg, err := newBranchsyncConfig(config)
	if err != nil {
		return err
	}

	metrics := branchsync.NewMetrics()
	producer := pipeline.NewProducer(pipeline.Literals(config.Commands), repo)
	syncer := branchsync.NewSynchronizer(bcfg, repo.Dir(), repo, producer, gh, renderer, retryer, metrics)
	rc := branchsync.NewRunContext()

	var outcome branchsync.Outcome
	if ev.Kind.IsBatch() {
		outcome, err = runBatch(ctx, out, rc, config, bcfg, ev, syncer, gh, renderer, retryer, metrics)
	} else {
		outcome, err = runSingle(ctx, out, rc, ev, syncer)
	}

	if outErr := writeActionOutput(outcome); outErr != nil {
		logger.Warn("writing action output failed", zap.Error(outErr))
	}

	fmt.Fprintf(out, "result: %s\n", outcome)

	if config.MetricsTextfile != "" {
		if mErr := metrics.WriteToTextfile(config.MetricsTextfile); mErr != nil {
			logger.Warn("writing metrics textfile failed",
				zap.String("path", config.MetricsTextfile),
				zap.Error(mErr),
			)
		}
	}

	return err
}

func triggeringEvent(forceBatch bool) (*event.Event, error) {
	if forceBatch {
		return &event.Event{Kind: event.KindSchedule}, nil
	}

	ev, err := event.FromEnv()
	if err != nil {
		return nil, fmt.Errorf("could not determine triggering event: %w", err)
	}

	return ev, nil
}

func runBatch(
	ctx context.Context,
	out io.Writer,
	rc *branchsync.RunContext,
	config *cfg.Config,
	bcfg *branchsync.Config,
	ev *event.Event,
	syncer *branchsync.Synchronizer,
	gh branchsync.GithubClient,
	renderer *tmpl.Renderer,
	retryer *retry.Retryer,
	metrics *branchsync.Metrics,
) (branchsync.Outcome, error) {
	owner := config.Repository.Owner
	repoName := config.Repository.RepositoryName

	defaultBranch, err := rc.DefaultBranch(ctx, gh, retryer, owner, repoName)
	if err != nil {
		return branchsync.OutcomeFailed, err
	}

	candidates := branchsync.NewCandidates(gh, retryer, owner, repoName, defaultBranch, config.CheckDefaultBranch)
	driver := branchsync.NewBatchDriver(syncer, branchsync.NewBranches(bcfg, renderer), bcfg.Interval, metrics)

	rep, err := driver.Run(ctx, rc, candidates.Iter(ctx), ev.Kind == event.KindPullRequestClosed)
	if rep == nil {
		return branchsync.OutcomeFailed, err
	}

	if wErr := report.Write(out, rep); wErr != nil {
		logger.Warn("writing report failed", zap.Error(wErr))
	}

	if err != nil {
		return branchsync.OutcomeFailed, err
	}

	return rep.Outcome, nil
}

func runSingle(
	ctx context.Context,
	out io.Writer,
	rc *branchsync.RunContext,
	ev *event.Event,
	syncer *branchsync.Synchronizer,
) (branchsync.Outcome, error) {
	res, err := syncer.RunSingle(ctx, rc, ev)
	if err != nil {
		res = &branchsync.ProcessResult{
			Outcome:     branchsync.OutcomeFailed,
			Detail:      err.Error(),
			BranchLabel: ev.Branch,
		}
	}

	if wErr := report.WriteResult(out, res); wErr != nil {
		logger.Warn("writing result failed", zap.Error(wErr))
	}

	return res.Outcome, err
}

// writeActionOutput appends the outcome as step output to the file
// referenced by GITHUB_OUTPUT.
func writeActionOutput(outcome branchsync.Outcome) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(f, "result=%s\n", outcome)

	return errors.Join(err, f.Close())
}
