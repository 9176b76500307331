package branchsync

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/simplesurance/prsync/internal/githubclt"
	"github.com/simplesurance/prsync/internal/logfields"
)

// DryGithubClient is a github-client that does not do any changes on github.
// All operations that could cause a change are simulated and always succeed.
// All all other operations are forwarded to a wrapped GithubClient.
type DryGithubClient struct {
	clt    GithubClient
	logger *zap.Logger
}

func NewDryGithubClient(clt GithubClient, logger *zap.Logger) *DryGithubClient {
	return &DryGithubClient{
		clt:    clt,
		logger: logger.Named("dry_github_client"),
	}
}

func (c *DryGithubClient) FindPullRequest(ctx context.Context, owner, repo, head, base string) (*githubclt.PullRequest, error) {
	return c.clt.FindPullRequest(ctx, owner, repo, head, base)
}

func (c *DryGithubClient) CreatePullRequest(_ context.Context, _, _ string, opts *githubclt.NewPullRequestOptions) (*githubclt.PullRequest, error) {
	c.logger.Info("simulated creating of pull request, no pull request created on github",
		logfields.Branch(opts.Head),
		logfields.BaseBranch(opts.Base),
	)

	return &githubclt.PullRequest{
		State:     "open",
		HeadRef:   opts.Head,
		BaseRef:   opts.Base,
		CreatedAt: time.Now(),
	}, nil
}

func (c *DryGithubClient) AddLabels(_ context.Context, _, _ string, issueOrPRNr int, labels []string) error {
	c.logger.Info("simulated adding labels",
		logfields.PullRequest(issueOrPRNr),
		zap.Strings("labels", labels),
	)
	return nil
}

func (c *DryGithubClient) RequestReviewers(_ context.Context, _, _ string, number int, reviewers []string) error {
	c.logger.Info("simulated requesting reviewers",
		logfields.PullRequest(number),
		zap.Strings("reviewers", reviewers),
	)
	return nil
}

func (c *DryGithubClient) UpdatePullRequest(_ context.Context, _, _ string, number int, _, _ string) error {
	c.logger.Info("simulated updating of pull request", logfields.PullRequest(number))
	return nil
}

func (c *DryGithubClient) CreateIssueComment(context.Context, string, string, int, string) error {
	c.logger.Info("simulated creating of github issue comment, no comment created on github")
	return nil
}

func (c *DryGithubClient) ClosePullRequest(_ context.Context, _, _ string, number int) error {
	c.logger.Info("simulated closing of pull request", logfields.PullRequest(number))
	return nil
}

func (c *DryGithubClient) DeleteBranch(_ context.Context, _, _, branch string) error {
	c.logger.Info("simulated deleting of branch", logfields.Branch(branch))
	return nil
}

func (c *DryGithubClient) IsMergeable(ctx context.Context, owner, repo string, prNumber int) (*bool, error) {
	if prNumber == 0 {
		// pull request was created by the dry client
		return nil, nil
	}

	return c.clt.IsMergeable(ctx, owner, repo, prNumber)
}

func (c *DryGithubClient) MergePullRequest(_ context.Context, _, _ string, number int, method string) error {
	c.logger.Info("simulated merging of pull request",
		logfields.PullRequest(number),
		zap.String("merge_method", method),
	)
	return nil
}

func (c *DryGithubClient) CombinedStatus(ctx context.Context, owner, repo, ref string) (string, error) {
	return c.clt.CombinedStatus(ctx, owner, repo, ref)
}

func (c *DryGithubClient) ListCheckSuites(ctx context.Context, owner, repo, ref string) ([]*githubclt.CheckSuite, error) {
	return c.clt.ListCheckSuites(ctx, owner, repo, ref)
}

func (c *DryGithubClient) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	return c.clt.DefaultBranch(ctx, owner, repo)
}

func (c *DryGithubClient) ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) githubclt.PRIterator {
	return c.clt.ListPullRequests(ctx, owner, repo, state, sort, sortDirection)
}
