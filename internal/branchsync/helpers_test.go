package branchsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/prsync/internal/branchsync/mocks"
	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/pipeline"
	"github.com/simplesurance/prsync/internal/syncerr"
	"github.com/simplesurance/prsync/internal/tmpl"
)

const repo = "repo"
const repoOwner = "testman"
const defaultBranch = "main"
const workDir = "/tmp/prsync-test"

type noRetryer struct{}

func (noRetryer) Run(ctx context.Context, fn func(context.Context) error, _ []zap.Field) error {
	return fn(ctx)
}

type testEnv struct {
	cfg      *Config
	git      *mocks.MockGitRunner
	producer *mocks.MockChangeProducer
	gh       *mocks.MockGithubClient
	metrics  *Metrics
	syncer   *Synchronizer
	now      time.Time
}

func newTestConfig() *Config {
	return &Config{
		RepositoryOwner: repoOwner,
		Repository:      repo,
		BranchPrefix:    "prsync/",
		MergeMethod:     "squash",
	}
}

func newTestRenderer(t *testing.T) *tmpl.Renderer {
	return newTestRendererWithComment(t, "")
}

func newTestRendererWithComment(t *testing.T, commentTemplate string) *tmpl.Renderer {
	t.Helper()

	r, err := tmpl.New(&tmpl.Templates{
		BranchName:    "{{.Branch}}",
		CommitMessage: "chore: run commands on {{.Branch}}",
		PRTitle:       "Update {{.Base}}",
		PRBody:        "Files:\n{{join .Files \"\\n\"}}",
		CommentBody:   commentTemplate,
		CloseMessage:  "closing {{.WorkBranch}}",
	})
	require.NoError(t, err)

	return r
}

// newTestEnv creates a Synchronizer with mocked dependencies.
// cfgFn can be nil, otherwise it is called to modify the default
// configuration.
func newTestEnv(t *testing.T, cfgFn func(*Config)) *testEnv {
	t.Helper()

	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t).Named(t.Name())))

	cfg := newTestConfig()
	if cfgFn != nil {
		cfgFn(cfg)
	}

	mockctrl := gomock.NewController(t)

	env := testEnv{
		cfg:      cfg,
		git:      mocks.NewMockGitRunner(mockctrl),
		producer: mocks.NewMockChangeProducer(mockctrl),
		gh:       mocks.NewMockGithubClient(mockctrl),
		metrics:  NewMetrics(),
		now:      time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
	}

	env.syncer = NewSynchronizer(
		cfg,
		workDir,
		env.git,
		env.producer,
		env.gh,
		newTestRenderer(t),
		noRetryer{},
		env.metrics,
	)
	env.syncer.now = func() time.Time { return env.now }

	return &env
}

func (e *testEnv) mockDefaultBranch() *gomock.Call {
	return e.gh.EXPECT().
		DefaultBranch(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo)).
		Return(defaultBranch, nil)
}

func (e *testEnv) mockProduce(files ...string) *gomock.Call {
	return e.producer.EXPECT().
		Produce(gomock.Any(), gomock.Any()).
		Return(&pipeline.ChangeSet{Files: files}, nil)
}

func (e *testEnv) mockFindPullRequest(head, base string, pr *githubclt.PullRequest) *gomock.Call {
	return e.gh.EXPECT().
		FindPullRequest(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(head), gomock.Eq(base)).
		Return(pr, nil)
}

func (e *testEnv) mockIsMergeable(prNumber int, mergeable *bool) *gomock.Call {
	return e.gh.EXPECT().
		IsMergeable(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(prNumber)).
		Return(mergeable, nil)
}

// mockClosePullRequest expects the close message to be posted, the pull
// request to be closed and the branch to be deleted, in this order.
func (e *testEnv) mockClosePullRequest(prNumber int, branch string) {
	gomock.InOrder(
		e.gh.EXPECT().
			CreateIssueComment(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(prNumber), gomock.Eq("closing "+branch)).
			Return(nil),
		e.gh.EXPECT().
			ClosePullRequest(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(prNumber)).
			Return(nil),
		e.gh.EXPECT().
			DeleteBranch(gomock.Any(), gomock.Eq(repoOwner), gomock.Eq(repo), gomock.Eq(branch)).
			Return(nil),
	)
}

func boolPtr(v bool) *bool {
	return &v
}

func featureTarget() *BranchTarget {
	return &BranchTarget{
		Branch:   "feature",
		Base:     defaultBranch,
		PRNumber: 10,
	}
}

// retryingRetryer runs fn up to attempts times while it returns retryable
// errors.
type retryingRetryer struct {
	attempts int
}

func (r *retryingRetryer) Run(ctx context.Context, fn func(context.Context) error, _ []zap.Field) error {
	var err error

	for i := 0; i < r.attempts; i++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}

		var retryErr *syncerr.RetryableError
		if !errors.As(err, &retryErr) {
			return err
		}
	}

	return err
}
