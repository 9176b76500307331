// Package githubclt provides a github API client.
package githubclt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v59/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/simplesurance/prsync/internal/logfields"
	"github.com/simplesurance/prsync/internal/syncerr"
)

const DefaultHTTPClientTimeout = time.Minute

const loggerName = "github_client"

// ErrNotMergeable is returned by MergePullRequest when github rejects merging
// the pull request.
var ErrNotMergeable = errors.New("pull request is not mergeable")

// New returns a new github api client.
func New(oauthAPItoken string) *Client {
	httpClient := newHTTPClient(oauthAPItoken)
	return &Client{
		restClt:    github.NewClient(httpClient),
		graphQLClt: githubv4.NewClient(httpClient),
		logger:     zap.L().Named(loggerName),
	}
}

func newHTTPClient(apiToken string) *http.Client {
	var transport http.RoundTripper
	if apiToken != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: apiToken},
		)

		transport = oauth2.NewClient(context.Background(), ts).Transport
	}

	// the ratelimit client sleeps when the secondary rate limit is hit,
	// primary rate limit errors are converted to RetryableErrors.
	clt := github_ratelimit.NewClient(transport)
	clt.Timeout = DefaultHTTPClientTimeout

	return clt
}

// Client is an github API client.
// All methods return a syncerr.RetryableError when an operation can be retried.
// This can be e.g. the case when the API ratelimit is exceeded.
type Client struct {
	restClt    *github.Client
	graphQLClt *githubv4.Client
	logger     *zap.Logger
}

// PullRequest is the subset of the github pull request state that is needed
// to decide how a branch is synchronized.
type PullRequest struct {
	Number    int
	State     string
	HeadRef   string
	HeadSHA   string
	HeadOwner string
	BaseRef   string
	CreatedAt time.Time
	Labels    []string
}

// NewPullRequestFromGithub converts a go-github pull request.
func NewPullRequestFromGithub(pr *github.PullRequest) *PullRequest {
	result := PullRequest{
		Number:    pr.GetNumber(),
		State:     pr.GetState(),
		HeadRef:   pr.GetHead().GetRef(),
		HeadSHA:   pr.GetHead().GetSHA(),
		HeadOwner: pr.GetHead().GetRepo().GetOwner().GetLogin(),
		BaseRef:   pr.GetBase().GetRef(),
		CreatedAt: pr.GetCreatedAt().Time,
	}

	for _, l := range pr.Labels {
		result.Labels = append(result.Labels, l.GetName())
	}

	return &result
}

// IsOpen returns true if the state of the pull request is open.
func (pr *PullRequest) IsOpen() bool {
	return pr.State == "open"
}

// CheckSuite is the state of a github check suite.
type CheckSuite struct {
	Status     string
	Conclusion string
}

// NewPullRequestOptions defines a pull request that is created.
type NewPullRequestOptions struct {
	Head  string
	Base  string
	Title string
	Body  string
}

// FindPullRequest returns the open pull request for the head branch and base
// branch.
// If base is empty, pull requests with any base branch are considered.
// If no pull request exists, nil is returned.
func (clt *Client) FindPullRequest(ctx context.Context, owner, repo, head, base string) (*PullRequest, error) {
	prs, _, err := clt.restClt.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State:       "open",
		Head:        owner + ":" + head,
		Base:        base,
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	if len(prs) == 0 {
		return nil, nil
	}

	return NewPullRequestFromGithub(prs[0]), nil
}

// CreatePullRequest creates a pull request.
func (clt *Client) CreatePullRequest(ctx context.Context, owner, repo string, opts *NewPullRequestOptions) (*PullRequest, error) {
	pr, _, err := clt.restClt.PullRequests.Create(ctx, owner, repo, &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Body:  github.String(opts.Body),
	})
	if err != nil {
		return nil, clt.wrapRetryableErrors(err)
	}

	clt.logger.Debug("pull request created",
		logfields.RepositoryOwner(owner),
		logfields.Repository(repo),
		logfields.PullRequest(pr.GetNumber()),
		logfields.Event("github_pull_request_created"),
	)

	return NewPullRequestFromGithub(pr), nil
}

// AddLabels adds labels to a pull request or issue.
func (clt *Client) AddLabels(ctx context.Context, owner, repo string, issueOrPRNr int, labels []string) error {
	_, _, err := clt.restClt.Issues.AddLabelsToIssue(ctx, owner, repo, issueOrPRNr, labels)
	if err != nil {
		return fmt.Errorf("adding labels to #%d failed: %w", issueOrPRNr, clt.wrapRetryableErrors(err))
	}

	return nil
}

// RequestReviewers requests reviews of a pull request from the given users.
func (clt *Client) RequestReviewers(ctx context.Context, owner, repo string, number int, reviewers []string) error {
	_, _, err := clt.restClt.PullRequests.RequestReviewers(ctx, owner, repo, number, github.ReviewersRequest{
		Reviewers: reviewers,
	})
	if err != nil {
		return fmt.Errorf("requesting reviewers for pull request #%d failed: %w", number, clt.wrapRetryableErrors(err))
	}

	return nil
}

// UpdatePullRequest changes the title and body of a pull request.
func (clt *Client) UpdatePullRequest(ctx context.Context, owner, repo string, number int, title, body string) error {
	_, _, err := clt.restClt.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{
		Title: github.String(title),
		Body:  github.String(body),
	})
	return clt.wrapRetryableErrors(err)
}

// CreateIssueComment creates a comment in a issue or pull request
func (clt *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueOrPRNr int, comment string) error {
	_, _, err := clt.restClt.Issues.CreateComment(ctx, owner, repo, issueOrPRNr, &github.IssueComment{Body: &comment})
	return clt.wrapRetryableErrors(err)
}

// ClosePullRequest closes a pull request.
func (clt *Client) ClosePullRequest(ctx context.Context, owner, repo string, number int) error {
	_, _, err := clt.restClt.PullRequests.Edit(ctx, owner, repo, number, &github.PullRequest{
		State: github.String("closed"),
	})
	return clt.wrapRetryableErrors(err)
}

// DeleteBranch deletes the remote branch.
// If the branch does not exist, the operation succeeds.
func (clt *Client) DeleteBranch(ctx context.Context, owner, repo, branch string) error {
	_, err := clt.restClt.Git.DeleteRef(ctx, owner, repo, "heads/"+branch)
	if err != nil {
		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) && respErr.Response.StatusCode == http.StatusUnprocessableEntity {
			clt.logger.Debug("deleting branch returned unprocessable entity, interpreting it as branch does not exist",
				logfields.RepositoryOwner(owner),
				logfields.Repository(repo),
				logfields.Branch(branch),
				logfields.Event("github_delete_ref_not_found"),
				zap.Error(err),
			)
			return nil
		}

		return clt.wrapRetryableErrors(err)
	}

	return nil
}

// MergePullRequest merges a pull request with the given method (merge,
// squash, rebase).
// If github refuses the merge, an error wrapping ErrNotMergeable is returned.
func (clt *Client) MergePullRequest(ctx context.Context, owner, repo string, number int, method string) error {
	_, _, err := clt.restClt.PullRequests.Merge(ctx, owner, repo, number, "", &github.PullRequestOptions{
		MergeMethod: method,
	})
	if err != nil {
		var respErr *github.ErrorResponse
		if errors.As(err, &respErr) {
			switch respErr.Response.StatusCode {
			case http.StatusMethodNotAllowed, http.StatusConflict:
				return fmt.Errorf("%w: %s", ErrNotMergeable, respErr.Message)
			}
		}

		return clt.wrapRetryableErrors(err)
	}

	return nil
}

// CombinedStatus returns the combined commit status state of ref
// (failure, pending or success).
func (clt *Client) CombinedStatus(ctx context.Context, owner, repo, ref string) (string, error) {
	status, _, err := clt.restClt.Repositories.GetCombinedStatus(ctx, owner, repo, ref, &github.ListOptions{PerPage: 100})
	if err != nil {
		return "", clt.wrapRetryableErrors(err)
	}

	return status.GetState(), nil
}

// ListCheckSuites returns all check suites of ref.
func (clt *Client) ListCheckSuites(ctx context.Context, owner, repo, ref string) ([]*CheckSuite, error) {
	var result []*CheckSuite

	opts := github.ListCheckSuiteOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		suites, resp, err := clt.restClt.Checks.ListCheckSuitesForRef(ctx, owner, repo, ref, &opts)
		if err != nil {
			return nil, clt.wrapRetryableErrors(err)
		}

		for _, s := range suites.CheckSuites {
			result = append(result, &CheckSuite{
				Status:     s.GetStatus(),
				Conclusion: s.GetConclusion(),
			})
		}

		if resp.NextPage == 0 {
			return result, nil
		}

		opts.Page = resp.NextPage
	}
}

// DefaultBranch returns the name of the default branch of the repository.
func (clt *Client) DefaultBranch(ctx context.Context, owner, repo string) (string, error) {
	r, _, err := clt.restClt.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return "", clt.wrapRetryableErrors(err)
	}

	if r.GetDefaultBranch() == "" {
		return "", errors.New("github returned an empty default branch")
	}

	return r.GetDefaultBranch(), nil
}

type PRIterator interface {
	Next() (*github.PullRequest, error)
}

type PRIter struct {
	clt *Client

	ctx   context.Context
	owner string
	repo  string

	filterState   string
	sort          string
	sortDirection string

	unseen []*github.PullRequest

	nextPage int
	finished bool
}

// Next returns the next pullRequest.
// When the last result was returned a nil PullRequest is returned.
func (it *PRIter) Next() (*github.PullRequest, error) {
	if len(it.unseen) > 0 {
		result := it.unseen[0]
		it.unseen = it.unseen[1:]

		return result, nil
	}

	if it.finished {
		return nil, nil
	}

	prs, resp, err := it.clt.restClt.PullRequests.List(it.ctx, it.owner, it.repo, &github.PullRequestListOptions{
		State:     it.filterState,
		Sort:      it.sort,
		Direction: it.sortDirection,
		ListOptions: github.ListOptions{
			Page:    it.nextPage,
			PerPage: 100,
		},
	})
	if err != nil {
		return nil, it.clt.wrapRetryableErrors(err)
	}

	if resp.NextPage == 0 || len(prs) == 0 {
		it.finished = true
	} else {
		it.nextPage = resp.NextPage
	}

	it.unseen = prs

	return it.Next()
}

// ListPullRequests returns an iterator for receiving all pull requests.
// The parameters state, sort, sortDirection expect the same values then their pendants in the struct github.PullRequestListOptions.
func (clt *Client) ListPullRequests(ctx context.Context, owner, repo, state, sort, sortDirection string) PRIterator { // interface is returned to make the method mockable
	return &PRIter{
		clt:           clt,
		ctx:           ctx,
		owner:         owner,
		repo:          repo,
		sort:          sort,
		sortDirection: sortDirection,
		filterState:   state,
		nextPage:      1,
	}
}

func (clt *Client) wrapRetryableErrors(err error) error {
	switch v := err.(type) {
	case *github.RateLimitError:
		clt.logger.Info(
			"rate limit exceeded",
			logfields.Event("github_api_rate_limit_exceeded"),
			zap.Int("github_api_rate_limit", v.Rate.Limit),
			zap.Time("github_api_rate_limit_reset_time", v.Rate.Reset.Time),
		)

		return syncerr.NewRetryableError(err, v.Rate.Reset.Time)

	case *github.ErrorResponse:
		if v.Response.StatusCode >= 500 && v.Response.StatusCode < 600 {
			return syncerr.NewRetryableAnytimeError(err)
		}
	}

	return err
}

var graphQlHTTPStatusErrRe = regexp.MustCompile(`^non-200 OK status code: ([0-9]+) .*`)

func (clt *Client) wrapGraphQLRetryableErrors(err error) error {
	matches := graphQlHTTPStatusErrRe.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return err
	}

	errcode, atoiErr := strconv.Atoi(matches[1])
	if atoiErr != nil {
		clt.logger.Info(
			"parsing http code from error string failed",
			zap.Error(atoiErr),
			zap.String("error_string", err.Error()),
			zap.String("http_errcode", matches[1]),
		)
		return err
	}

	if errcode >= 500 && errcode < 600 {
		return syncerr.NewRetryableAnytimeError(err)
	}

	return err
}
