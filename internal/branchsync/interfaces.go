package branchsync

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/event"
	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/gitrepo"
	"github.com/simplesurance/prsync/internal/pipeline"
	"github.com/simplesurance/prsync/internal/tmpl"
)

//go:generate mockgen -destination=mocks/git.go -package=mocks . GitRunner
//go:generate mockgen -destination=mocks/producer.go -package=mocks . ChangeProducer
//go:generate mockgen -destination=mocks/githubclient.go -package=mocks . GithubClient

// GitRunner operates on the local working directory.
// Branch arguments are names of remote branches without the remote name.
type GitRunner interface {
	MaterializeBranch(ctx context.Context, name, sourceRef string) (string, error)
	ResetBranch(ctx context.Context, name, baseRef string) error
	RemoteBranchExists(ctx context.Context, branch string) (bool, error)
	Commit(ctx context.Context, msg string) error
	Push(ctx context.Context, branch string) error
	ForcePush(ctx context.Context, branch string) error
	MergeNoEdit(ctx context.Context, ref string) (*gitrepo.MergeResult, error)
	AbortMerge(ctx context.Context) error
	DiffAgainst(ctx context.Context, ref string) ([]string, error)
}

// ChangeProducer runs the configured commands in the working directory.
type ChangeProducer interface {
	Produce(ctx context.Context, env *pipeline.Env) (*pipeline.ChangeSet, error)
}

// GithubClient is the github API.
type GithubClient interface {
	FindPullRequest(ctx context.Context, owner, repo, head, base string) (*githubclt.PullRequest, error)
	CreatePullRequest(ctx context.Context, owner, repo string, opts *githubclt.NewPullRequestOptions) (*githubclt.PullRequest, error)
	AddLabels(ctx context.Context, owner, repo string, issueOrPRNr int, labels []string) error
	RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error
	UpdatePullRequest(ctx context.Context, owner, repo string, number int, title, body string) error
	CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error
	ClosePullRequest(ctx context.Context, owner, repo string, number int) error
	DeleteBranch(ctx context.Context, owner, repo, branch string) error
	IsMergeable(ctx context.Context, owner, repo string, prNumber int) (*bool, error)
	MergePullRequest(ctx context.Context, owner, repo string, number int, method string) error
	CombinedStatus(ctx context.Context, owner, repo, ref string) (string, error)
	ListCheckSuites(ctx context.Context, owner, repo, ref string) ([]*githubclt.CheckSuite, error)
	DefaultBranch(ctx context.Context, owner, repo string) (string, error)
	ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) githubclt.PRIterator
}

// Renderer renders branch names, commit messages and pull request texts.
type Renderer interface {
	BranchName(data *tmpl.Data) (string, error)
	CommitMessage(data *tmpl.Data) (string, error)
	PRTitle(data *tmpl.Data) (string, error)
	PRBody(data *tmpl.Data) (string, error)
	CommentBody(data *tmpl.Data) (string, error)
	CloseMessage(data *tmpl.Data) (string, error)
}

// Retryer runs fn until it succeeds or a non-retryable error happens.
type Retryer interface {
	Run(ctx context.Context, fn func(context.Context) error, logF []zap.Field) error
}

// TargetMatcher decides if the JSON representation of a pull request
// matches a filter.
type TargetMatcher interface {
	Match(ctx context.Context, jsonDoc []byte) (bool, error)
}

// Syncer synchronizes a single branch.
type Syncer interface {
	Synchronize(ctx context.Context, rc *RunContext, target *BranchTarget, kind event.Kind, isBatch bool) (*ProcessResult, error)
}

var (
	_ GitRunner      = &gitrepo.Repository{}
	_ ChangeProducer = &pipeline.Producer{}
	_ GithubClient   = &githubclt.Client{}
	_ GithubClient   = &DryGithubClient{}
	_ Renderer       = &tmpl.Renderer{}
	_ Syncer         = &Synchronizer{}
)
